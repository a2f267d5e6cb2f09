package transport

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Default tuning values for a Listener.
const (
	// DefaultReadBufferSize is the socket receive buffer requested from
	// the OS. A full frame can arrive as a burst of near-64KB datagrams,
	// so the default is sized to absorb several frames.
	DefaultReadBufferSize = 4 * 1024 * 1024

	// DefaultReadTimeout bounds each blocking read so the receive loop
	// re-checks the shutdown signal at least this often.
	DefaultReadTimeout = 1 * time.Second
)

// DatagramHandler consumes one parsed datagram: the continuation flag and
// the payload fragment. The payload slice is only valid for the duration
// of the call; handlers must copy bytes they retain.
type DatagramHandler func(final bool, payload []byte)

// Config describes one stream's listening endpoint.
type Config struct {
	// Name identifies the stream in logs (for example "top", "bottom").
	Name string

	// BindAddr is the local address to bind. Empty means all interfaces.
	BindAddr string

	// Port is the stream's UDP port.
	Port int

	// ReadBufferSize is the requested socket receive buffer in bytes.
	// Zero selects DefaultReadBufferSize.
	ReadBufferSize int

	// ReadTimeout bounds each blocking read. Zero selects
	// DefaultReadTimeout.
	ReadTimeout time.Duration
}

// Listener receives one stream's datagrams from a dedicated UDP socket.
//
// The receive loop parses each datagram and hands it to the configured
// handler. Errors are contained: a malformed datagram is dropped, a
// transient socket error resets downstream reassembly state via the
// error callback, and only a bind failure is fatal.
type Listener struct {
	name    string
	conn    net.PacketConn
	timeout time.Duration
	handler DatagramHandler
	onError func()
	log     *logrus.Entry

	received  atomic.Uint64
	malformed atomic.Uint64
}

// Listen binds the stream's UDP socket and prepares a Listener. The
// handler is invoked from the receive loop for every well-formed datagram;
// onError is invoked after a non-timeout socket error so the caller can
// reset reassembly state. A bind failure is returned to the caller and is
// fatal for this stream only.
func Listen(cfg Config, handler DatagramHandler, onError func()) (*Listener, error) {
	addr := net.JoinHostPort(cfg.BindAddr, fmt.Sprintf("%d", cfg.Port))
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind stream %q on %s: %w", cfg.Name, addr, err)
	}

	bufSize := cfg.ReadBufferSize
	if bufSize <= 0 {
		bufSize = DefaultReadBufferSize
	}
	log := logrus.WithFields(logrus.Fields{
		"component": "listener",
		"stream":    cfg.Name,
		"addr":      conn.LocalAddr().String(),
	})

	// Best effort: a kernel that clamps the buffer is survivable, a
	// bursty frame may just lose fragments.
	if udp, ok := conn.(*net.UDPConn); ok {
		if err := udp.SetReadBuffer(bufSize); err != nil {
			log.WithError(err).Warn("failed to set socket receive buffer")
		}
	}

	timeout := cfg.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}

	log.Info("stream listener bound")

	return &Listener{
		name:    cfg.Name,
		conn:    conn,
		timeout: timeout,
		handler: handler,
		onError: onError,
		log:     log,
	}, nil
}

// Run executes the receive loop until ctx is cancelled, then closes the
// socket. The loop observes cancellation within one read timeout.
func (l *Listener) Run(ctx context.Context) {
	defer func() {
		if err := l.conn.Close(); err != nil {
			l.log.WithError(err).Warn("error closing socket")
		}
		l.log.Info("stream listener stopped")
	}()

	buf := make([]byte, MaxDatagramSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		l.readOne(buf)
	}
}

// readOne performs a single bounded-wait read and dispatches the result.
func (l *Listener) readOne(buf []byte) {
	_ = l.conn.SetReadDeadline(time.Now().Add(l.timeout))

	n, _, err := l.conn.ReadFrom(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return
		}
		// A real socket error may have desynchronized the fragment
		// sequence; drop any partial frame rather than propagating it.
		l.log.WithError(err).Error("socket read error, resetting reassembly")
		if l.onError != nil {
			l.onError()
		}
		return
	}

	final, payload, ok := ParseDatagram(buf[:n])
	if !ok {
		l.malformed.Add(1)
		return
	}

	l.received.Add(1)
	l.handler(final, payload)
}

// LocalAddr returns the bound address, useful when Port 0 was requested.
func (l *Listener) LocalAddr() net.Addr {
	return l.conn.LocalAddr()
}

// Received returns the count of well-formed datagrams handled so far.
func (l *Listener) Received() uint64 {
	return l.received.Load()
}

// Malformed returns the count of datagrams dropped as too short.
func (l *Listener) Malformed() uint64 {
	return l.malformed.Load()
}

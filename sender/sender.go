package sender

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/visionward/camview/frame"
)

// Sender transmits encoded frames to one receiver endpoint over UDP.
//
// Frames are enqueued through a capacity-1 latest-wins slot: if the send
// goroutine falls behind the producer, intermediate frames are dropped
// and only the newest is transmitted. This mirrors the receive side's
// freshness-over-completeness policy end to end.
type Sender struct {
	conn      net.Conn
	chunkSize int
	queue     *frame.Slot[[]byte]
	log       *logrus.Entry
}

// Dial connects a Sender to addr (host:port). chunkSize <= 0 selects
// DefaultChunkSize.
func Dial(addr string, chunkSize int) (*Sender, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial receiver %s: %w", addr, err)
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	log := logrus.WithFields(logrus.Fields{
		"component": "sender",
		"addr":      addr,
	})
	log.Info("sender connected")

	return &Sender{
		conn:      conn,
		chunkSize: chunkSize,
		queue:     frame.NewSlot[[]byte](),
		log:       log,
	}, nil
}

// Enqueue queues one encoded frame for transmission, replacing any frame
// not yet sent. Never blocks.
func (s *Sender) Enqueue(encoded []byte) {
	if s.queue.Put(encoded) {
		s.log.Debug("unsent frame replaced by newer frame")
	}
}

// Send transmits one encoded frame synchronously as a burst of
// flag-delimited datagrams.
func (s *Sender) Send(encoded []byte) error {
	for _, dgram := range Chunk(encoded, s.chunkSize) {
		if _, err := s.conn.Write(dgram); err != nil {
			return fmt.Errorf("send fragment: %w", err)
		}
	}
	return nil
}

// Run drains the queue until ctx is cancelled, transmitting each frame as
// it becomes available. Send errors are logged and the frame dropped;
// UDP gives no delivery guarantee anyway.
func (s *Sender) Run(ctx context.Context) {
	defer s.log.Info("sender stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		encoded, ok := s.queue.Take(500 * time.Millisecond)
		if !ok {
			continue
		}
		if err := s.Send(encoded); err != nil {
			s.log.WithError(err).Warn("frame transmission failed")
		}
	}
}

// Close releases the socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}

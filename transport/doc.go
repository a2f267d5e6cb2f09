// Package transport implements the UDP receive side of the camera stream
// protocol.
//
// Each stream arrives on its own UDP port as a sequence of datagrams. The
// first byte of every datagram is a continuation flag (0 = more fragments
// follow, 1 = this fragment completes the frame); the remaining bytes are
// an opaque fragment of the compressed image. There is no length prefix,
// sequence number or checksum.
//
// A Listener owns one socket and one receive loop. Reads use a short
// deadline so the loop observes shutdown promptly without busy-spinning.
package transport

// Package sender implements the transmit side of the camera stream
// protocol: splitting an encoded frame into flag-delimited UDP datagrams
// and pushing frames at a fixed rate with a latest-wins send queue.
//
// It exists for the companion send tool and for end-to-end tests of the
// receive pipeline; a production camera host runs its own sender.
package sender

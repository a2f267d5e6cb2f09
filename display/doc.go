// Package display drives the presentation side of the receiver: a single
// goroutine that polls every stream at a fixed cadence and forwards the
// freshest decoded frame to a Renderer.
//
// The loop never blocks on a stream. A stream that produces faster than
// the cadence is throttled by the decoded slot's overwrite policy; a
// stream that stalls simply contributes nothing that tick, and whatever
// the renderer last showed stays on screen.
package display

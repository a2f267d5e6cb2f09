// Package video defines the decoded frame type and the codec boundary of
// the receive pipeline.
//
// The pipeline treats decoding as an opaque capability behind the Decoder
// interface: compressed bytes in, image out, error on anything it cannot
// parse. Decode failures are an expected condition under packet loss, so
// implementations must return errors rather than panic on truncated or
// corrupt input.
package video

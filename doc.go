// Package camview implements a UDP camera stream receiver.
//
// A camera host transmits each compressed video frame as a burst of UDP
// datagrams: one flag byte (0 = more fragments follow, 1 = frame
// complete) followed by an opaque fragment of the encoded image. camview
// reassembles those bursts per stream, decodes them, and delivers the
// freshest decoded frame per stream to a renderer at a fixed cadence.
//
// The pipeline trades completeness for freshness everywhere: every
// hand-off is a capacity-1 overwrite-on-put slot, so a slow stage costs
// at most one stale frame and nothing ever queues unboundedly. A lost
// datagram surfaces as one failed decode and the stream self-corrects at
// the next completed frame.
//
// Example:
//
//	cfg := config.Default()
//	renderer, err := display.NewFileRenderer("/var/run/camview", 80)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	recv, err := camview.New(cfg, video.NewImageDecoder(), renderer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	recv.Run(ctx)
package camview

// camview-send transmits a test video stream in the camview wire format:
// each frame JPEG-encoded and split into flag-delimited UDP datagrams.
// It sends either a still image file on repeat or a moving synthetic
// pattern, and exists to exercise a receiver without camera hardware.
package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/visionward/camview/sender"
	"github.com/visionward/camview/video"
)

var (
	destAddr  string
	imageFile string
	frameRate int
	width     int
	height    int
	quality   int
	chunkSize int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&destAddr, "addr", "a", "127.0.0.1:50000", "receiver address (host:port)")
	rootCmd.PersistentFlags().StringVarP(&imageFile, "file", "f", "", "image file to send on repeat (synthetic pattern when empty)")
	rootCmd.PersistentFlags().IntVarP(&frameRate, "fps", "r", 30, "frames per second to transmit")
	rootCmd.PersistentFlags().IntVar(&width, "width", 640, "synthetic pattern width")
	rootCmd.PersistentFlags().IntVar(&height, "height", 480, "synthetic pattern height")
	rootCmd.PersistentFlags().IntVarP(&quality, "quality", "q", video.DefaultJPEGQuality, "JPEG quality (1-100)")
	rootCmd.PersistentFlags().IntVar(&chunkSize, "chunk_size", sender.DefaultChunkSize, "payload bytes per datagram")
}

var rootCmd = &cobra.Command{
	Use:   "camview-send",
	Short: "camview-send streams test frames to a camview receiver",
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		snd, err := sender.Dial(destAddr, chunkSize)
		if err != nil {
			return err
		}
		defer snd.Close()

		source, err := frameSource()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go snd.Run(ctx)

		enc := video.NewJPEGEncoder(quality)
		ticker := time.NewTicker(time.Second / time.Duration(frameRate))
		defer ticker.Stop()

		logrus.WithFields(logrus.Fields{
			"addr": destAddr,
			"fps":  frameRate,
		}).Info("streaming started")

		for n := 0; ; n++ {
			select {
			case <-ctx.Done():
				logrus.Info("streaming stopped")
				return nil
			case <-ticker.C:
			}

			encoded, err := enc.Encode(source(n))
			if err != nil {
				return fmt.Errorf("encode frame: %w", err)
			}
			snd.Enqueue(encoded)
		}
	},
}

// frameSource returns a generator of the frames to transmit: a decoded
// still file, or a drifting color gradient whose motion makes frame
// updates visible on the receiver.
func frameSource() (func(n int) image.Image, error) {
	if imageFile != "" {
		data, err := os.ReadFile(imageFile)
		if err != nil {
			return nil, fmt.Errorf("read image file: %w", err)
		}
		img, err := video.NewImageDecoder().Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode image file: %w", err)
		}
		return func(int) image.Image { return img }, nil
	}

	return func(n int) image.Image {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.Set(x, y, color.RGBA{
					R: uint8(x + n*4),
					G: uint8(y + n*2),
					B: uint8(x + y),
					A: 0xff,
				})
			}
		}
		return img
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/visionward/camview"
	"github.com/visionward/camview/config"
	"github.com/visionward/camview/display"
	"github.com/visionward/camview/video"
)

var (
	cfgFile       string
	outDir        string
	statsInterval time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to YAML config file (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "directory to write the latest frame per stream as <stream>.jpg")
	rootCmd.PersistentFlags().DurationVar(&statsInterval, "stats_interval", 10*time.Second, "how often to log per-stream pipeline stats")
}

var rootCmd = &cobra.Command{
	Use:   "camview",
	Short: "camview receives UDP camera streams and keeps the freshest frame per stream on display",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg.Log)

		renderer, err := buildRenderer(cfg)
		if err != nil {
			return err
		}

		recv, err := camview.New(cfg, video.NewImageDecoder(), renderer)
		if err != nil {
			return fmt.Errorf("start receiver: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if statsInterval > 0 {
			go logStats(ctx, recv)
		}

		recv.Run(ctx)
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func setupLogging(lc config.LogConfig) {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if lc.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// buildRenderer selects the display sink: JPEG files under --out, or a
// log line per frame when no output directory is given.
func buildRenderer(cfg *config.Config) (display.Renderer, error) {
	if outDir != "" {
		return display.NewFileRenderer(outDir, cfg.Display.JPEGQuality)
	}

	log := logrus.WithField("component", "log_renderer")
	return display.FuncRenderer(func(stream string, f *video.Frame) error {
		log.WithFields(logrus.Fields{
			"stream":   stream,
			"sequence": f.Sequence,
			"size":     fmt.Sprintf("%dx%d", f.Width, f.Height),
		}).Debug("frame displayed")
		return nil
	}), nil
}

func logStats(ctx context.Context, recv *camview.Receiver) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, s := range recv.Streams() {
				st := s.Stats()
				logrus.WithFields(logrus.Fields{
					"stream":           s.Name(),
					"datagrams":        st.DatagramsReceived,
					"malformed":        st.DatagramsMalformed,
					"frames_assembled": st.FramesAssembled,
					"frames_decoded":   st.FramesDecoded,
					"decode_failures":  st.DecodeFailures,
					"raw_dropped":      st.RawOverwritten,
					"decoded_dropped":  st.DecodedOverwritten,
				}).Info("stream stats")
			}
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

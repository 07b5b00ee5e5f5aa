package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/0xlemi/vocalnote/internal/config"
	"github.com/0xlemi/vocalnote/internal/logging"
)

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "vocalnote",
	Short: "Real-time vocal pitch, level and note analysis",
	Long: `VocalNote listens to a mono audio stream and reports, for every window,
the sung pitch in Hz, the level in dB, the nearest note name and a 0..1
value for the note's pitch class.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Validate()
	},
	RunE: runListen,
}

func init() {
	cfg.BindFlags(rootCmd.PersistentFlags())
}

// openLogger builds the logger from the config. Without a log file, logs
// go to fallback. The returned function closes the log file, if any.
func openLogger(fallback io.Writer) (*log.Logger, func() error, error) {
	w := fallback
	closeFn := func() error { return nil }

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger, err := logging.New(w, cfg.LogLevel)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return logger, closeFn, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

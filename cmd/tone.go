package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xlemi/vocalnote/internal/analyzer"
	"github.com/0xlemi/vocalnote/internal/audio"
)

var (
	toneFrequency float64
	toneAmplitude float64
	toneTicks     int
)

func init() {
	toneCmd.Flags().Float64VarP(&toneFrequency, "freq", "f", 440, "tone frequency in Hz")
	toneCmd.Flags().Float64VarP(&toneAmplitude, "amp", "a", 0.5, "tone amplitude (0..1)")
	toneCmd.Flags().IntVarP(&toneTicks, "ticks", "n", 10, "number of windows to analyze, 0 runs until interrupted")
	rootCmd.AddCommand(toneCmd)
}

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Analyze a synthetic sine tone and log the results",
	Long: `Analyze a synthetic sine tone and log the results.

Useful for checking the analysis without a microphone. The first window is
analyzed without a previous window for context.`,
	RunE: runTone,
}

func runTone(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := openLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	an, err := analyzer.New(cfg.SampleRate, cfg.ReferenceAmplitude, analyzer.WithLogger(logger))
	if err != nil {
		return err
	}

	tone := audio.NewToneCapturer(cfg.WindowSize, cfg.SampleRate, toneFrequency, toneAmplitude)
	if err := tone.Start(); err != nil {
		return err
	}
	defer tone.Stop()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	n := 0
	sink := analyzer.SinkFunc(func(r analyzer.Result) {
		if ctx.Err() != nil {
			return
		}
		n++
		logger.Info("window",
			"n", n,
			"freq", r.Pitch,
			"db", r.Decibel,
			"note", r.Note,
			"value", r.NoteValue,
		)
		if toneTicks > 0 && n >= toneTicks {
			cancel()
		}
	})

	logger.Info("analyzing tone", "freq", toneFrequency, "amp", toneAmplitude, "ticks", toneTicks)
	return an.Run(ctx, tone, sink, cfg.TickInterval)
}

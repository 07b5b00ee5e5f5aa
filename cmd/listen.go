package main

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/0xlemi/vocalnote/internal/analyzer"
	"github.com/0xlemi/vocalnote/internal/audio/mic"
	"github.com/0xlemi/vocalnote/internal/ui"
)

func init() {
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Analyze the default microphone in a terminal UI",
	Long:  `Analyze the default microphone in a terminal UI. This is also what runs when no command is given.`,
	RunE:  runListen,
}

func runListen(cmd *cobra.Command, _ []string) error {
	// The TUI owns the terminal, so logs only go to --log-file
	logger, closeLog, err := openLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	an, err := analyzer.New(cfg.SampleRate, cfg.ReferenceAmplitude, analyzer.WithLogger(logger))
	if err != nil {
		return err
	}

	capturer, err := mic.NewPortAudioCapturer(cfg.WindowSize, cfg.SampleRate)
	if err != nil {
		return err
	}
	capturer.SetAmplification(float32(cfg.Amplification))

	if err := capturer.Start(); err != nil {
		return err
	}
	defer capturer.Stop()

	logger.Info("listening",
		"sample_rate", cfg.SampleRate,
		"window", cfg.WindowSize,
		"gain", cfg.Amplification,
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	model := ui.NewModel(cfg.MuteDuration, func(d time.Duration) {
		logger.Info("muting input", "duration", d)
		capturer.Mute(d)
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	trace := analyzer.LogSink(logger)
	sink := analyzer.SinkFunc(func(r analyzer.Result) {
		trace.Publish(r)
		p.Send(ui.UpdateAnalysisMsg(r))
	})

	g.Go(func() error {
		return an.Run(ctx, capturer, sink, cfg.TickInterval)
	})
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			// Stopped because the analysis loop failed; that error wins
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("listen", "err", err)
		return err
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"heatcut/internal/pipeline"
	"heatcut/internal/signal"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
)

func newClipCommand(ctx *commandContext) *cobra.Command {
	clipCmd := &cobra.Command{
		Use:   "clip",
		Short: "Download a video and render its clip plan",
	}

	clipCmd.AddCommand(newClipRunCommand(ctx, signal.KindHeatmap,
		"Clip the most replayed moments using the viewer heatmap"))
	clipCmd.AddCommand(newClipRunCommand(ctx, signal.KindChapters,
		"Clip chapter highlights using the video's chapter list"))

	return clipCmd
}

func newClipRunCommand(ctx *commandContext, kind signal.Kind, short string) *cobra.Command {
	var videoURL string
	var dryRun bool
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClip(ctx, cmd, kind, videoURL, flags, dryRun)
		},
	}

	cmd.Flags().StringVar(&videoURL, "video-url", "", "YouTube video URL (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan only, without downloading or rendering")
	registerSelectionFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("video-url")

	return cmd
}

func runClip(ctx *commandContext, cmd *cobra.Command, kind signal.Kind, videoURL string, flags selectionFlags, dryRun bool) error {
	if strings.TrimSpace(videoURL) == "" {
		return errors.New("--video-url is required")
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	selection, err := resolveSelection(cmd, flags, cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	result, err := p.Run(cmd.Context(), pipeline.Request{
		VideoURL:  strings.TrimSpace(videoURL),
		Kind:      kind,
		Selection: selection,
		DryRun:    dryRun,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Title != "" {
		fmt.Fprintf(out, "%s (%s)\n", result.Title, result.VideoID)
	} else {
		fmt.Fprintln(out, result.VideoID)
	}
	writePlanTable(out, result.Plan)

	if dryRun {
		fmt.Fprintln(out, "Dry run: nothing downloaded or rendered")
		return nil
	}

	colorize := shouldColorize(out)
	for _, path := range result.ClipPaths {
		line := "wrote " + path
		if colorize {
			line = ansiGreen + line + ansiReset
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

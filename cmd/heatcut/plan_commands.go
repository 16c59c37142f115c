package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"heatcut/internal/pipeline"
	"heatcut/internal/signal"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the clip plan without downloading or rendering",
	}

	planCmd.AddCommand(newPlanRunCommand(ctx, signal.KindHeatmap,
		"Plan clips from the viewer heatmap"))
	planCmd.AddCommand(newPlanRunCommand(ctx, signal.KindChapters,
		"Plan clips from the chapter list"))

	return planCmd
}

func newPlanRunCommand(ctx *commandContext, kind signal.Kind, short string) *cobra.Command {
	var videoURL string
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
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
				DryRun:    true,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Title != "" {
				fmt.Fprintf(out, "%s (%s)\n", result.Title, result.VideoID)
			}
			writePlanTable(out, result.Plan)
			if result.SignalFromCache {
				fmt.Fprintln(out, "Signal served from cache")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&videoURL, "video-url", "", "YouTube video URL (required)")
	registerSelectionFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("video-url")

	return cmd
}

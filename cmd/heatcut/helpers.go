package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"heatcut/internal/config"
	"heatcut/internal/planner"
	"heatcut/internal/selector"
)

// selectionFlags carries the per-run selection overrides. Unset flags fall
// back to the configured defaults.
type selectionFlags struct {
	clipLength  float64
	clipCount   int
	align       string
	mostIntense bool
}

func registerSelectionFlags(cmd *cobra.Command, flags *selectionFlags) {
	cmd.Flags().Float64Var(&flags.clipLength, "clip-length", 0, "Clip length in seconds")
	cmd.Flags().IntVar(&flags.clipCount, "clip-count", 0, "Maximum number of clips")
	cmd.Flags().StringVar(&flags.align, "align", "", "Window alignment within the chosen interval (left, center, right)")
	cmd.Flags().BoolVar(&flags.mostIntense, "most-intense", true, "Rank clips by signal intensity instead of playback order")
}

func resolveSelection(cmd *cobra.Command, flags selectionFlags, cfg *config.Config) (selector.Config, error) {
	selection := selector.Config{
		ClipLength:      cfg.Selection.ClipLength,
		ClipCount:       cfg.Selection.ClipCount,
		RankByIntensity: cfg.Selection.MostIntense,
	}
	alignment, err := selector.ParseAlignment(cfg.Selection.Align)
	if err != nil {
		return selector.Config{}, err
	}
	selection.Alignment = alignment

	if cmd.Flags().Changed("clip-length") {
		selection.ClipLength = flags.clipLength
	}
	if cmd.Flags().Changed("clip-count") {
		selection.ClipCount = flags.clipCount
	}
	if cmd.Flags().Changed("align") {
		alignment, err := selector.ParseAlignment(flags.align)
		if err != nil {
			return selector.Config{}, err
		}
		selection.Alignment = alignment
	}
	if cmd.Flags().Changed("most-intense") {
		selection.RankByIntensity = flags.mostIntense
	}
	if err := selection.Validate(); err != nil {
		return selector.Config{}, err
	}
	return selection, nil
}

func writePlanTable(out io.Writer, plan *planner.Plan) {
	rows := make([][]string, 0, len(plan.Windows))
	for _, window := range plan.Windows {
		rows = append(rows, []string{
			fmt.Sprintf("%d", window.Rank),
			formatTimestamp(window.Start),
			formatTimestamp(window.End),
			fmt.Sprintf("%.1fs", window.Duration()),
			window.Source.Label,
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Rank", "Start", "End", "Length", "Source"}, rows, 1, 4))
	fmt.Fprintf(out, "%d clip window(s) over %s of video\n", len(plan.Windows), formatTimestamp(plan.VideoDuration))
}

// formatTimestamp renders seconds as h:mm:ss for display.
func formatTimestamp(seconds float64) string {
	d := time.Duration(math.Round(seconds * float64(time.Second)))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

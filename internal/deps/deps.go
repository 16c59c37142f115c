// Package deps reports availability of the external binaries heatcut shells
// out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"heatcut/internal/config"
)

// Requirement defines an external dependency heatcut relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the binaries a full clip run needs, using the configured
// command names.
func Requirements(cfg *config.Config) []Requirement {
	ytdlp := "yt-dlp"
	ffmpeg := "ffmpeg"
	if cfg != nil {
		ytdlp = cfg.YtDlp.Binary
		ffmpeg = cfg.FFmpeg.Binary
	}
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     ytdlp,
			Description: "Downloads source videos and reports their metadata",
		},
		{
			Name:        "FFmpeg",
			Command:     ffmpeg,
			Description: "Extracts and renders vertical clips",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required binaries that are not
// available.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}

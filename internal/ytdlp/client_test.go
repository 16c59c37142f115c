package ytdlp_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"heatcut/internal/ytdlp"
)

type fakeExecutor struct {
	binary string
	args   []string
	lines  []string
	err    error
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string, onStdout func(string)) error {
	f.binary = binary
	f.args = slices.Clone(args)
	for _, line := range f.lines {
		onStdout(line)
	}
	return f.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := ytdlp.New("  ", "", 0, 0); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestInspectDecodesMetadata(t *testing.T) {
	exec := &fakeExecutor{lines: []string{
		`{"id":"dQw4w9WgXcQ","title":"Example","ext":"webm","duration":212.5}`,
	}}
	client, err := ytdlp.New("yt-dlp", "best", 60, 1800, ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	meta, err := client.Inspect(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if meta.ID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected id %q", meta.ID)
	}
	if meta.Duration != 212.5 {
		t.Fatalf("unexpected duration %v", meta.Duration)
	}
	if exec.binary != "yt-dlp" {
		t.Fatalf("unexpected binary %q", exec.binary)
	}
	if !slices.Contains(exec.args, "--dump-json") || !slices.Contains(exec.args, "--no-download") {
		t.Fatalf("unexpected args %v", exec.args)
	}
}

func TestInspectRejectsMissingDuration(t *testing.T) {
	exec := &fakeExecutor{lines: []string{`{"id":"abc123","title":"Live"}`}}
	client, err := ytdlp.New("yt-dlp", "", 0, 0, ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := client.Inspect(context.Background(), "https://example.com/watch"); err == nil {
		t.Fatal("expected error for missing duration")
	}
}

func TestDownloadReturnsReportedPath(t *testing.T) {
	destDir := t.TempDir()
	downloaded := filepath.Join(destDir, "abc123.mp4")
	if err := os.WriteFile(downloaded, []byte("video"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	exec := &fakeExecutor{lines: []string{"[download] progress", downloaded, ""}}
	client, err := ytdlp.New("yt-dlp", "bestvideo*+bestaudio/best", 0, 0, ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := client.Download(context.Background(), "https://youtu.be/abc123", destDir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if path != downloaded {
		t.Fatalf("unexpected path %q", path)
	}

	formatIdx := slices.Index(exec.args, "-f")
	if formatIdx < 0 || exec.args[formatIdx+1] != "bestvideo*+bestaudio/best" {
		t.Fatalf("format not passed: %v", exec.args)
	}
	outputIdx := slices.Index(exec.args, "-o")
	if outputIdx < 0 || !strings.HasPrefix(exec.args[outputIdx+1], destDir) {
		t.Fatalf("output template not rooted in dest dir: %v", exec.args)
	}
}

func TestDownloadRejectsMissingFile(t *testing.T) {
	destDir := t.TempDir()
	exec := &fakeExecutor{lines: []string{filepath.Join(destDir, "gone.mp4")}}
	client, err := ytdlp.New("yt-dlp", "", 0, 0, ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := client.Download(context.Background(), "https://youtu.be/abc123", destDir); err == nil {
		t.Fatal("expected error for missing downloaded file")
	}
}

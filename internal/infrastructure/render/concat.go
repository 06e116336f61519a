package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Concatenator downloads rendered chunk files and joins them with the
// ffmpeg concat demuxer
type Concatenator struct {
	ffmpegPath string
	workDir    string
	httpClient *http.Client
}

// NewConcatenator creates a concatenator. ffmpegPath defaults to "ffmpeg"
// on the PATH; workDir defaults to the OS temp directory.
func NewConcatenator(ffmpegPath, workDir string) *Concatenator {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &Concatenator{
		ffmpegPath: ffmpegPath,
		workDir:    workDir,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Concat downloads each chunk URL in order and concatenates them into a
// single mp4. It returns the path of the combined file; the caller owns the
// scratch directory cleanup via the returned cleanup func.
func (c *Concatenator) Concat(ctx context.Context, jobID string, chunkURLs []string) (string, func(), error) {
	if len(chunkURLs) == 0 {
		return "", nil, fmt.Errorf("render: no chunks to concatenate")
	}

	dir, err := os.MkdirTemp(c.workDir, "render-"+jobID+"-")
	if err != nil {
		return "", nil, fmt.Errorf("render: failed to create scratch dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	paths := make([]string, 0, len(chunkURLs))
	for i, chunkURL := range chunkURLs {
		path := filepath.Join(dir, fmt.Sprintf("chunk-%03d.mp4", i))
		if err := c.download(ctx, chunkURL, path); err != nil {
			cleanup()
			return "", nil, err
		}
		paths = append(paths, path)
	}

	// Single chunk needs no ffmpeg pass
	if len(paths) == 1 {
		return paths[0], cleanup, nil
	}

	listPath := filepath.Join(dir, "concat.txt")
	if err := writeConcatList(listPath, paths); err != nil {
		cleanup()
		return "", nil, err
	}

	outPath := filepath.Join(dir, "combined.mp4")
	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("render: ffmpeg concat failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	return outPath, cleanup, nil
}

// download streams a URL to a local file
func (c *Concatenator) download(ctx context.Context, srcURL, dstPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("render: failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("render: chunk download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("render: chunk download returned HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("render: failed to create chunk file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("render: failed to write chunk file: %w", err)
	}
	return nil
}

// writeConcatList writes the ffmpeg concat demuxer input file. Single
// quotes in paths are escaped per the demuxer's quoting rules.
func writeConcatList(listPath string, paths []string) error {
	var b strings.Builder
	for _, p := range paths {
		escaped := strings.ReplaceAll(p, "'", `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", escaped)
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("render: failed to write concat list: %w", err)
	}
	return nil
}

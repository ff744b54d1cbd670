// Package encode assembles rendered frame files into a video via the
// ffmpeg command-line tool.
package encode

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lineagekit/lineage/pkg/errors"
)

var commandContext = exec.CommandContext

// Option configures the encoder.
type Option func(*FFmpeg)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(f *FFmpeg) {
		if binary != "" {
			f.binary = binary
		}
	}
}

// FFmpeg wraps the ffmpeg command-line encoder.
type FFmpeg struct {
	binary string
}

// New constructs an encoder resolving "ffmpeg" from PATH unless overridden.
func New(opts ...Option) *FFmpeg {
	f := &FFmpeg{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Encode muxes the numbered frames matching pattern (a printf-style path,
// e.g. frames/frame_%06d.png) into an H.264 MP4 at outputPath. yuv420p keeps
// the output playable in browsers and stock players.
func (f *FFmpeg) Encode(ctx context.Context, pattern, outputPath string, fps int) error {
	if pattern == "" {
		return errors.New(errors.ErrCodeEncode, "frame pattern required")
	}
	if outputPath == "" {
		return errors.New(errors.ErrCodeEncode, "output path required")
	}
	if fps <= 0 {
		return errors.New(errors.ErrCodeEncode, "fps must be positive, got %d", fps)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeEncode, err, "create output dir %s", dir)
		}
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-framerate", strconv.Itoa(fps),
		"-i", pattern,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		outputPath,
	}
	cmd := commandContext(ctx, f.binary, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return errors.Wrap(errors.ErrCodeEncode, err, "ffmpeg: %s", msg)
	}
	return nil
}

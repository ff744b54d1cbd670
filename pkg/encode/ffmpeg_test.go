package encode

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lineagekit/lineage/pkg/errors"
)

func TestNewWithBinary(t *testing.T) {
	f := New(WithBinary("/opt/ffmpeg"))
	if f.binary != "/opt/ffmpeg" {
		t.Fatalf("binary = %q, want override", f.binary)
	}
	if f := New(WithBinary("")); f.binary != "ffmpeg" {
		t.Fatalf("empty override changed binary to %q", f.binary)
	}
}

func TestEncodeValidation(t *testing.T) {
	f := New()
	tests := []struct {
		name    string
		pattern string
		output  string
		fps     int
	}{
		{"NoPattern", "", "out.mp4", 24},
		{"NoOutput", "frames/frame_%06d.png", "", 24},
		{"ZeroFPS", "frames/frame_%06d.png", "out.mp4", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.Encode(context.Background(), tt.pattern, tt.output, tt.fps)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeEncode) {
				t.Errorf("code = %q, want ENCODE_ERROR", errors.GetCode(err))
			}
		})
	}
}

func stubCommand(t *testing.T, mode string, captured *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append([]string(nil), args...)
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFMPEG_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() { commandContext = original })
}

func TestEncodeBuildsArgs(t *testing.T) {
	var args []string
	stubCommand(t, "success", &args)

	dir := t.TempDir()
	pattern := filepath.Join(dir, "frame_%06d.png")
	output := filepath.Join(dir, "out", "tree.mp4")

	f := New()
	if err := f.Encode(context.Background(), pattern, output, 24); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-framerate", "24",
		"-i", pattern,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		output,
	}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, args[i], want[i])
		}
	}

	// The output directory is created up front.
	if _, err := os.Stat(filepath.Dir(output)); err != nil {
		t.Errorf("output dir not created: %v", err)
	}
}

func TestEncodeFailurePropagatesStderr(t *testing.T) {
	stubCommand(t, "fail", nil)

	f := New()
	err := f.Encode(context.Background(), "frames/frame_%06d.png", filepath.Join(t.TempDir(), "out.mp4"), 24)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeEncode) {
		t.Errorf("code = %q, want ENCODE_ERROR", errors.GetCode(err))
	}
	if msg := err.Error(); !strings.Contains(msg, "frame sequence not found") {
		t.Errorf("error %q does not carry ffmpeg output", msg)
	}
}

func TestEncodeMissingBinary(t *testing.T) {
	f := New(WithBinary(filepath.Join(t.TempDir(), "definitely-not-ffmpeg")))
	err := f.Encode(context.Background(), "frames/frame_%06d.png", filepath.Join(t.TempDir(), "out.mp4"), 24)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeEncode) {
		t.Errorf("code = %q, want ENCODE_ERROR", errors.GetCode(err))
	}
}

// TestHelperProcess stands in for the ffmpeg binary in the tests above.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "fail":
		fmt.Fprint(os.Stderr, "frame sequence not found\n")
		os.Exit(1)
	}
	os.Exit(0)
}

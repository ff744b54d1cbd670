package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lineagekit/lineage/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("code = %q, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[style.colors]
background = [255, 255, 255]

[style.dimensions]
dpi = 72
padding = 40

[animation]
fps = 30
line_duration = 0.25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Style.Colors.Background != (RGB{255, 255, 255}) {
		t.Errorf("background = %v", cfg.Style.Colors.Background)
	}
	if cfg.Style.Dimensions.DPI != 72 {
		t.Errorf("dpi = %d, want 72", cfg.Style.Dimensions.DPI)
	}
	if cfg.Animation.FPS != 30 {
		t.Errorf("fps = %d, want 30", cfg.Animation.FPS)
	}
	if cfg.Animation.LineDuration != 0.25 {
		t.Errorf("line_duration = %v, want 0.25", cfg.Animation.LineDuration)
	}

	// Untouched keys keep their defaults.
	if cfg.Style.Colors.MarriageLine != Default().Style.Colors.MarriageLine {
		t.Errorf("marriage_line = %v, want default", cfg.Style.Colors.MarriageLine)
	}
	if cfg.Animation.FinalPause != 2.0 {
		t.Errorf("final_pause = %v, want 2.0", cfg.Animation.FinalPause)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "RGBOutOfRange",
			content: `
[style.colors]
background = [300, 0, 0]
`,
		},
		{
			name: "NegativeDuration",
			content: `
[animation]
pause_duration = -1.0
`,
		},
		{
			name: "ZeroFPS",
			content: `
[animation]
fps = 0
`,
		},
		{
			name: "ZeroLineDuration",
			content: `
[animation]
line_duration = 0.0
`,
		},
		{
			name: "ZeroNodeWidthScale",
			content: `
[style.dimensions]
node_width_scale = 0.0
`,
		},
		{
			name: "MalformedTOML",
			content: `[style.colors`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %q, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestRGBColor(t *testing.T) {
	c := RGB{10, 20, 30}.Color()
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("Color() = %v", c)
	}
}

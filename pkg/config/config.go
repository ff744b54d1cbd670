// Package config loads the TOML rendering configuration.
//
// A config file is optional: when none is given, Load looks for config.toml
// in the working directory and falls back to defaults. Every component that
// needs styling or timing parameters receives the loaded Config explicitly;
// there is no ambient mutable state.
package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lineagekit/lineage/pkg/errors"
)

// DefaultPath is probed when no config file is passed explicitly.
const DefaultPath = "config.toml"

// RGB is a TOML [R, G, B] triple with 0-255 components.
type RGB [3]int

// Color converts the triple to an opaque color.
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 255}
}

func (c RGB) valid() bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// Colors holds the palette used by the frame renderer.
type Colors struct {
	Background   RGB `toml:"background"`
	MaleFill     RGB `toml:"male_fill"`
	FemaleFill   RGB `toml:"female_fill"`
	MaleBorder   RGB `toml:"male_border"`
	FemaleBorder RGB `toml:"female_border"`
	MarriageLine RGB `toml:"marriage_line"`
	ChildLine    RGB `toml:"child_line"`
	Text         RGB `toml:"text"`
}

// Dimensions holds raster geometry parameters. DPI doubles as the
// points→pixels scale factor for the layout engine (1 inch = DPI pixels).
type Dimensions struct {
	DPI               int     `toml:"dpi"`
	Padding           int     `toml:"padding"`
	LineWidthMarriage int     `toml:"line_width_marriage"`
	LineWidthChild    int     `toml:"line_width_child"`
	BorderWidth       int     `toml:"border_width"`
	CornerRadius      int     `toml:"corner_radius"`
	FontSizeName      int     `toml:"font_size_name"`
	NodeWidthScale    float64 `toml:"node_width_scale"` // widens boxes after layout
}

// Animation holds timing parameters in seconds (except FPS).
type Animation struct {
	FPS           int     `toml:"fps"`
	LineDuration  float64 `toml:"line_duration"`  // line grow time (flow)
	PauseDuration float64 `toml:"pause_duration"` // pause folded into each action
	FinalPause    float64 `toml:"final_pause"`    // hold after the last action
	SceneDuration float64 `toml:"scene_duration"` // per-generation hold (animate)
	FadeDuration  float64 `toml:"fade_duration"`  // per-generation fade-in (animate)
}

// Style groups the visual sections of the config file.
type Style struct {
	Colors     Colors     `toml:"colors"`
	Dimensions Dimensions `toml:"dimensions"`
}

// Config is the full application configuration.
type Config struct {
	Style     Style     `toml:"style"`
	Animation Animation `toml:"animation"`
}

// Default returns the built-in configuration: a 432 DPI canvas sized for
// large screens and a traditional washi-paper palette.
func Default() Config {
	return Config{
		Style: Style{
			Colors: Colors{
				Background:   RGB{245, 240, 232},
				MaleFill:     RGB{193, 216, 236},
				FemaleFill:   RGB{253, 239, 242},
				MaleBorder:   RGB{46, 79, 111},
				FemaleBorder: RGB{142, 53, 74},
				MarriageLine: RGB{197, 61, 67},
				ChildLine:    RGB{89, 88, 87},
				Text:         RGB{43, 43, 43},
			},
			Dimensions: Dimensions{
				DPI:               432,
				Padding:           240,
				LineWidthMarriage: 18,
				LineWidthChild:    12,
				BorderWidth:       10,
				CornerRadius:      48,
				FontSizeName:      90,
				NodeWidthScale:    1.0,
			},
		},
		Animation: Animation{
			FPS:           24,
			LineDuration:  0.5,
			PauseDuration: 0.3,
			FinalPause:    2.0,
			SceneDuration: 2.0,
			FadeDuration:  1.0,
		},
	}
}

// Load reads the config file at path. An empty path probes [DefaultPath];
// a missing file (for either case) yields Default(). Keys absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges. It is called by Load but exported so that
// programmatically built configs can be checked too.
func (c Config) Validate() error {
	rgbFields := []struct {
		name string
		val  RGB
	}{
		{"style.colors.background", c.Style.Colors.Background},
		{"style.colors.male_fill", c.Style.Colors.MaleFill},
		{"style.colors.female_fill", c.Style.Colors.FemaleFill},
		{"style.colors.male_border", c.Style.Colors.MaleBorder},
		{"style.colors.female_border", c.Style.Colors.FemaleBorder},
		{"style.colors.marriage_line", c.Style.Colors.MarriageLine},
		{"style.colors.child_line", c.Style.Colors.ChildLine},
		{"style.colors.text", c.Style.Colors.Text},
	}
	for _, f := range rgbFields {
		if !f.val.valid() {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: components must be 0-255, got %v", f.name, f.val)
		}
	}

	intFields := []struct {
		name string
		val  int
	}{
		{"style.dimensions.dpi", c.Style.Dimensions.DPI},
		{"style.dimensions.line_width_marriage", c.Style.Dimensions.LineWidthMarriage},
		{"style.dimensions.line_width_child", c.Style.Dimensions.LineWidthChild},
		{"style.dimensions.border_width", c.Style.Dimensions.BorderWidth},
		{"style.dimensions.font_size_name", c.Style.Dimensions.FontSizeName},
		{"animation.fps", c.Animation.FPS},
	}
	for _, f := range intFields {
		if f.val <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %d", f.name, f.val)
		}
	}
	if c.Style.Dimensions.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "style.dimensions.padding must not be negative")
	}
	if c.Style.Dimensions.CornerRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "style.dimensions.corner_radius must not be negative")
	}
	if c.Style.Dimensions.NodeWidthScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "style.dimensions.node_width_scale must be positive, got %v", c.Style.Dimensions.NodeWidthScale)
	}

	durFields := []struct {
		name string
		val  float64
	}{
		{"animation.line_duration", c.Animation.LineDuration},
		{"animation.pause_duration", c.Animation.PauseDuration},
		{"animation.final_pause", c.Animation.FinalPause},
		{"animation.scene_duration", c.Animation.SceneDuration},
		{"animation.fade_duration", c.Animation.FadeDuration},
	}
	for _, f := range durFields {
		if f.val < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %v", f.name, f.val)
		}
	}
	if c.Animation.LineDuration == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "animation.line_duration must be positive")
	}
	return nil
}

// String summarizes the animation timing for logs.
func (a Animation) String() string {
	return fmt.Sprintf("%d fps, line %.2fs, pause %.2fs, final %.2fs", a.FPS, a.LineDuration, a.PauseDuration, a.FinalPause)
}

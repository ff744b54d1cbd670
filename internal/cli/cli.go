// Package cli implements the lineage command-line interface.
//
// Three commands cover the pipeline: render produces a static image of the
// fully revealed tree, flow produces the line-by-line animation video, and
// animate produces the generation-fade video. All commands read the same
// CSV input and optional TOML config.
//
// Logging uses charmbracelet/log; loggers travel through context.Context so
// every command sees the level chosen by --verbose.
package cli

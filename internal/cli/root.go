package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version
	commit  = ""    // git commit SHA
	date    = ""    // build timestamp
)

// SetVersion sets the version information displayed by --version. Called by
// the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the lineage CLI. The logger is attached to the context and
// accessible to all commands via loggerFromContext; --verbose raises it to
// debug level.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "lineage",
		Short:        "lineage renders family trees as flow-animation videos",
		Long:         `lineage reads a family CSV, lays the tree out with graphviz, and renders either a static image or a video in which people and relationship lines appear step by step.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("lineage %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newFlowCmd())
	root.AddCommand(newAnimateCmd())

	return root.ExecuteContext(ctx)
}

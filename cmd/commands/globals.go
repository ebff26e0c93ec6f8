package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-convert/internal/cli"
)

// GlobalFlags holds the persistent flags shared by every command
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Yes        bool
}

// Bind registers the flags on the root command
func (g *GlobalFlags) Bind(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&g.ConfigPath, "config", "", "Settings file (default .pluqqy/settings.yaml)")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Log at debug level")
	flags.BoolVarP(&g.Quiet, "quiet", "q", false, "Suppress informational output")
	flags.BoolVar(&g.NoColor, "no-color", false, "Disable symbols and color in output")
	flags.BoolVarP(&g.Yes, "yes", "y", false, "Answer yes to all prompts")
}

// CommandContext applies the output flags and returns a fresh context
func (g *GlobalFlags) CommandContext() *cli.CommandContext {
	cli.SetGlobalFlags(g.Quiet, g.NoColor, g.Yes)
	return cli.NewCommandContext(g.ConfigPath, g.Verbose)
}

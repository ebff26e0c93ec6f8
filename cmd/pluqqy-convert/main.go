package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-convert/cmd/commands"
	"github.com/pluqqy/pluqqy-convert/internal/cli"
	"github.com/pluqqy/pluqqy-convert/pkg/clip"
	"github.com/pluqqy/pluqqy-convert/pkg/files"
	"github.com/pluqqy/pluqqy-convert/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var globals = &commands.GlobalFlags{}

var rootCmd = &cobra.Command{
	Use:   "pluqqy-convert",
	Short: "Convert code between programming languages with an AI backend",
	Long: `pluqqy-convert rewrites source code into another programming language using a
configured AI chat backend (Gemini, OpenAI or Ollama). Run it without arguments
for the interactive editor, or use 'convert' for scripted conversions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		cc := globals.CommandContext()
		defer cc.Close()

		settings := cc.LoadSettingsWithDefault()
		logger := cc.Logger()

		monitor, err := cc.Monitor(ctx)
		if err != nil {
			return err
		}

		var cb clip.Clipboard = clip.System{}
		if err := clip.Available(); err != nil {
			logger.Warn("system clipboard unavailable, copies stay in memory", zap.Error(err))
			cb = &clip.Memory{}
		}

		app := tui.NewApp(ctx, tui.Options{
			Controller: cc.NewController(monitor),
			Monitor:    monitor,
			Clipboard:  cb,
			Settings:   settings,
			Logger:     logger,
		})

		logger.Info("starting interactive converter",
			zap.String("provider", settings.AI.Provider),
			zap.String("model", settings.AI.Model))

		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project settings file",
	Long:  `Creates the .pluqqy folder with a default settings.yaml and a logs directory`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli.SetGlobalFlags(globals.Quiet, globals.NoColor, globals.Yes)

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}
		cli.PrintInfo("Initializing in %s...", cwd)

		if err := files.InitProjectStructure(); err != nil {
			return fmt.Errorf("failed to initialize project structure: %w", err)
		}

		cli.PrintSuccess("Created %s", files.SettingsPath)
		cli.PrintInfo("Set GEMINI_API_KEY (or edit the ai section) and run 'pluqqy-convert'")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pluqqy-convert version %s\n", version)
	},
}

func init() {
	globals.Bind(rootCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewConvertCommand(globals))
	rootCmd.AddCommand(commands.NewLanguagesCommand(globals))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.PrintError("%v", err)
		stop()
		os.Exit(1)
	}
}

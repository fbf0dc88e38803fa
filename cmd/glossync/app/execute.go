package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
)

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.out)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "glossync",
		Short:   "Egeria and Apache Atlas glossary synchronization",
		Version: a.version,
		Long: `glossync keeps the glossaries of an Egeria open metadata server and an
Apache Atlas server in step. Glossaries, categories and terms that originate
in Egeria are copied to Atlas; those that originate in Atlas are copied to
Egeria. Each copy is correlated with its original so later cycles update it
in place.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.ConfigFile, "config", "", "config file (default is ./glossync.yaml or $HOME/glossync.yaml)")
	flags.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.StringVarP(&a.flags.Format, "format", "o", "", "output format: table, json, yaml")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.StringVar(&a.flags.LogFormat, "log-format", "", "log format: auto, console, json")

	rootCmd.SetVersionTemplate("glossync {{.Version}}\n")

	rootCmd.AddCommand(a.NewRefreshCommand())
	rootCmd.AddCommand(a.NewServeCommand())
	rootCmd.AddCommand(a.NewVersionCommand())

	return rootCmd
}

// setupCommand loads configuration and the logger once flags are parsed.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(a.flags.ConfigFile)
	if err != nil {
		return errors.WrapResource("load", "config", a.flags.ConfigFile, err)
	}
	a.config = cfg

	logger := NewLogger(cfg.Log, a.flags)
	a.logger = &logger
	if cfg.ConfigFile != "" {
		a.logger.Debug().Str("file", cfg.ConfigFile).Msg("Loaded config file")
	}

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

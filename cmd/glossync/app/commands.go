package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/glossync/internal/cmd/output"
	"github.com/agentstation/glossync/internal/server"
	"github.com/agentstation/glossync/internal/server/handlers"
	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
	"github.com/agentstation/glossync/pkg/reconciler"
)

// NewRefreshCommand creates the refresh command.
func (a *App) NewRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Run one refresh cycle and print what it did",
		Long: `Refresh runs a single reconciliation cycle between Egeria and Atlas and
prints the per-kind action counts. A failed cycle still prints the work done
before the failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(a.flags.Format)
			if err != nil {
				return err
			}
			format = output.DetectFormat(string(format))

			conn, _, err := a.Connector(false)
			if err != nil {
				return err
			}

			ctx := logging.WithOperation(cmd.Context(), "refresh")
			result, refreshErr := conn.Refresh(ctx)
			if result != nil {
				if err := output.WriteResult(cmd.OutOrStdout(), format, result); err != nil {
					return errors.WrapResource("write", "result", string(format), err)
				}
			}
			return refreshErr
		},
	}
}

// NewServeCommand creates the serve command.
func (a *App) NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the connector with scheduled refreshes and the HTTP control surface",
		Long: `Serve runs an initial refresh, then refreshes on the configured schedule
and processes Egeria change events posted to the events endpoint.

Endpoints:
  GET  /health             liveness
  POST {prefix}/refresh    on-demand refresh
  POST {prefix}/events     Egeria change event webhook
  GET  /metrics            Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			conn, exchange, err := a.Connector(true)
			if err != nil {
				return err
			}
			sink, ok := exchange.(handlers.EventSink)
			if !ok {
				return errors.NewConfigError("serve", "egeria exchange cannot accept pushed events", nil)
			}

			conn.OnRefreshed(func(result *reconciler.Result) {
				a.logger.Info().
					Int("writes", result.Writes()).
					Dur("duration", result.Metadata.Duration).
					Msg(result.Summary())
			})
			conn.OnRefreshFailed(func(err error, _ *reconciler.Result) {
				a.logger.Error().Err(err).Msg("Refresh failed")
			})

			cfg := server.DefaultConfig()
			cfg.Port = a.config.Server.Port
			if port != 0 {
				cfg.Port = port
			}
			if a.config.Server.PathPrefix != "" {
				cfg.PathPrefix = a.config.Server.PathPrefix
			}
			cfg.APIKey = a.config.Server.APIKey

			srv, err := server.New(conn, sink, a.Metrics().Handler(), a.logger, cfg, a.version)
			if err != nil {
				return err
			}

			if err := conn.Start(ctx); err != nil {
				return err
			}
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
				defer cancel()
				if err := conn.Stop(stopCtx); err != nil {
					a.logger.Warn().Err(err).Msg("Scheduler did not stop cleanly")
				}
			}()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "server port (overrides server.port)")
	return cmd
}

// versionInfo is printed by the version command.
type versionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"build_date" yaml:"build_date"`
	BuiltBy string `json:"built_by" yaml:"built_by"`
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(a.flags.Format)
			if err != nil {
				return err
			}
			info := versionInfo{Version: a.version, Commit: a.commit, Date: a.date, BuiltBy: a.builtBy}
			return output.NewFormatter(output.DetectFormat(string(format))).Format(cmd.OutOrStdout(), info)
		},
	}
}

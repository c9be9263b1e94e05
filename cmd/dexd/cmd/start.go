package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/api"
	"github.com/simpledex/simpledex/app/health"
	"github.com/simpledex/simpledex/app/telemetry"
)

const flagAPIAddress = "api-address"

// StartCmd runs the node until interrupted.
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the node and its HTTP API",
		Long: `Open the ledger under --home, load genesis.json if the ledger is empty and
serve the HTTP API until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := loadNodeContext(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString(flagAPIAddress); addr != "" {
				nc.config.API.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runNode(ctx, nc)
		},
	}

	cmd.Flags().String(flagAPIAddress, "", "API listen address; overrides config")
	return cmd
}

func runNode(ctx context.Context, nc *nodeContext) (err error) {
	telemetryCfg := nc.config.Telemetry
	telemetryCfg.ChainID = nc.config.App.ChainID
	provider, err := telemetry.NewProvider(telemetryCfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = errors.Join(err, provider.Shutdown(shutdownCtx))
	}()

	dexApp, closeApp, err := nc.openApp()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeApp()) }()

	if err := nc.initFromGenesis(dexApp); err != nil {
		return err
	}
	if msg, broken := dexApp.CheckInvariants(); broken {
		nc.logger.Error("invariant broken at startup", "msg", msg)
	}

	checker, err := health.NewChecker(nc.logger, dexApp, health.Config{
		MaxCommitAge:  nc.config.Health.MaxCommitAge,
		CacheDuration: nc.config.Health.CacheDuration,
	})
	if err != nil {
		return err
	}

	server, err := api.NewServer(nc.logger, dexApp, checker, nc.config.API)
	if err != nil {
		return err
	}

	nc.logger.Info("node started",
		"chain_id", dexApp.ChainID(),
		"height", dexApp.LastBlockHeight(),
		"db", nc.config.DB.Backend,
		"tracing", telemetryCfg.Enabled,
	)
	return server.ListenAndServe(ctx)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/app"
	dexcli "github.com/simpledex/simpledex/x/dex/client/cli"
	tokencli "github.com/simpledex/simpledex/x/token/client/cli"
)

const (
	FlagHome      = "home"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// NewRootCmd creates the dexd root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dexd",
		Short: "simpledex node and client",
		Long: `dexd runs a constant-product AMM over a ledger of test tokens and serves it
over HTTP. The tx and query subcommands talk to a running node.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(FlagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(FlagLogLevel, "", "log level (trace|debug|info|warn|error); overrides config")
	rootCmd.PersistentFlags().String(FlagLogFormat, "", "log format (plain|json); overrides config")

	rootCmd.AddCommand(
		InitCmd(),
		StartCmd(),
		SeedCmd(),
		ExportCmd(),
		queryCommand(),
		txCommand(),
	)
	return rootCmd
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Querying subcommands",
	}
	cmd.AddCommand(
		dexcli.GetQueryCmd(),
		tokencli.GetQueryCmd(),
	)
	return cmd
}

func txCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transactions subcommands",
	}
	cmd.AddCommand(
		dexcli.GetTxCmd(),
		tokencli.GetTxCmd(),
	)
	return cmd
}

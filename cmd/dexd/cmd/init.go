package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/app"
	"github.com/simpledex/simpledex/config"
	dextypes "github.com/simpledex/simpledex/x/dex/types"
)

const (
	flagOverwrite = "overwrite"
	flagChainID   = "chain-id"
	flagSwapFee   = "swap-fee"
	flagDBBackend = "db-backend"
)

// InitCmd writes config.toml and genesis.json under --home.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the node configuration and genesis files",
		Long: `Write config/config.toml and config/genesis.json under the home directory.
The genesis holds no tokens or pools and the configured swap fee.

Example:
  dexd init --chain-id simpledex-local --swap-fee 0.003 --home ~/.simpledex
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, err := cmd.Flags().GetString(FlagHome)
			if err != nil {
				return err
			}

			cfg := config.DefaultConfig()
			if chainID, _ := cmd.Flags().GetString(flagChainID); chainID != "" {
				cfg.App.ChainID = chainID
			}
			if fee, _ := cmd.Flags().GetString(flagSwapFee); fee != "" {
				cfg.Dex.SwapFee = fee
			}
			if backend, _ := cmd.Flags().GetString(flagDBBackend); backend != "" {
				cfg.DB.Backend = backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			configPath := config.ConfigFilePath(home)
			genesisPath := filepath.Join(home, config.ConfigDir, config.GenesisFile)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if !overwrite {
				for _, path := range []string{configPath, genesisPath} {
					if fileExists(path) {
						return fmt.Errorf("%s already exists; pass --%s to replace it", path, flagOverwrite)
					}
				}
			}

			if err := config.WriteConfigFile(configPath, cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			fee, err := cfg.SwapFee()
			if err != nil {
				return err
			}
			dexGenesis := dextypes.DefaultGenesis()
			dexGenesis.Params = dextypes.NewParams(fee)
			genesis, err := app.NewDefaultGenesisState().WithModule(dextypes.ModuleName, dexGenesis)
			if err != nil {
				return err
			}
			if err := genesis.Validate(); err != nil {
				return err
			}
			if err := app.WriteGenesisFile(genesisPath, &app.GenesisFile{ChainID: cfg.App.ChainID, AppState: genesis}); err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.DBPath(home), 0o755); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s (chain %s, swap fee %s)\n", home, cfg.App.ChainID, fee)
			return nil
		},
	}

	cmd.Flags().Bool(flagOverwrite, false, "overwrite existing config and genesis files")
	cmd.Flags().String(flagChainID, "", "chain id stamped on every block")
	cmd.Flags().String(flagSwapFee, "", "swap fee as a fraction of the input, e.g. 0.003")
	cmd.Flags().String(flagDBBackend, "", "database backend (goleveldb|memdb)")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

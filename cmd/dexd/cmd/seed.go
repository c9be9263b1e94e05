package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/api"
	"github.com/simpledex/simpledex/app"
)

const (
	flagDeployer = "deployer"
	flagTrader   = "trader"
	flagOutput   = "output"

	// first two accounts of the standard development mnemonic
	defaultDeployer = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	defaultTrader   = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

// SeedCmd runs the development deployment against the ledger under --home.
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Deploy the development tokens and pools",
		Long: `Deploy ETH, USDT and DAI test tokens, create the ETH/USDT, ETH/DAI and
USDT/DAI pools priced at 1 ETH = 200 USDT = 200 DAI and fund a trader
account. Operates on the ledger under --home; stop the node first.

The deployed addresses are printed as JSON and, with --output, written to a
file for frontends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			deployer, err := addressFlag(cmd, flagDeployer)
			if err != nil {
				return err
			}
			trader, err := addressFlag(cmd, flagTrader)
			if err != nil {
				return err
			}

			nc, err := loadNodeContext(cmd)
			if err != nil {
				return err
			}
			dexApp, closeApp, err := nc.openApp()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeApp(); err == nil {
					err = cerr
				}
			}()

			if err := nc.initFromGenesis(dexApp); err != nil {
				return err
			}

			result, err := dexApp.Seed(cmd.Context(), deployer, trader, app.DefaultSeedPlan())
			if err != nil {
				return err
			}

			bz, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			if output, _ := cmd.Flags().GetString(flagOutput); output != "" {
				if err := os.WriteFile(output, bz, 0o644); err != nil {
					return fmt.Errorf("write deployments: %w", err)
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}

	cmd.Flags().String(flagDeployer, defaultDeployer, "account that deploys the tokens and provides liquidity")
	cmd.Flags().String(flagTrader, defaultTrader, "account funded from the faucet amounts")
	cmd.Flags().String(flagOutput, "", "also write the deployed addresses to this file")
	return cmd
}

func addressFlag(cmd *cobra.Command, name string) (common.Address, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := api.ParseAddress(s)
	if err != nil {
		return common.Address{}, fmt.Errorf("--%s: %w", name, err)
	}
	return addr, nil
}

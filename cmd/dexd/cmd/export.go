package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/app"
)

// ExportCmd dumps the committed ledger as a genesis document.
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger state as genesis JSON",
		Long: `Export tokens, balances, allowances, pools and params at the latest
height. The output can be used as genesis.json for a fresh home. Stop the
node first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
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

			if dexApp.LastBlockHeight() == 0 {
				return fmt.Errorf("ledger under %s is empty", nc.home)
			}

			genesis, err := dexApp.ExportGenesis()
			if err != nil {
				return err
			}
			bz, err := json.MarshalIndent(app.GenesisFile{ChainID: dexApp.ChainID(), AppState: genesis}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
	return cmd
}

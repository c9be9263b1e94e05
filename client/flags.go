// Package client holds the flags and helpers shared by the dexd client
// commands.
package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/api"
	dextypes "github.com/simpledex/simpledex/x/dex/types"
)

const (
	FlagNode = "node"
	FlagFrom = "from"

	DefaultNode = "http://127.0.0.1:1317"

	// ModuleAlias may be given instead of the dex custody address.
	ModuleAlias = "dex"
)

// AddQueryFlagsToCmd adds the flags every query command takes.
func AddQueryFlagsToCmd(cmd *cobra.Command) {
	cmd.Flags().String(FlagNode, DefaultNode, "<host>:<port> of the dexd API server")
}

// AddTxFlagsToCmd adds the flags every transaction command takes.
func AddTxFlagsToCmd(cmd *cobra.Command) {
	AddQueryFlagsToCmd(cmd)
	cmd.Flags().String(FlagFrom, "", "account address sending the transaction")
	_ = cmd.MarkFlagRequired(FlagFrom)
}

// GetClient builds an API client from the --node flag.
func GetClient(cmd *cobra.Command) (*api.Client, error) {
	node, err := cmd.Flags().GetString(FlagNode)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(node, "://") {
		node = "http://" + node
	}
	return api.NewClient(node), nil
}

// GetFromAddress parses the --from flag.
func GetFromAddress(cmd *cobra.Command) (common.Address, error) {
	from, err := cmd.Flags().GetString(FlagFrom)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := api.ParseAddress(from)
	if err != nil {
		return common.Address{}, fmt.Errorf("--%s: %w", FlagFrom, err)
	}
	return addr, nil
}

// ParseAccount parses an address argument, accepting "dex" for the dex
// custody account.
func ParseAccount(s string) (common.Address, error) {
	if strings.EqualFold(strings.TrimSpace(s), ModuleAlias) {
		return dextypes.ModuleAddress, nil
	}
	return api.ParseAddress(s)
}

// PrintJSON writes v as indented JSON to the command output.
func PrintJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

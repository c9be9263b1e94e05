package cli

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/api"
	"github.com/simpledex/simpledex/client"
	"github.com/simpledex/simpledex/x/token/types"
)

const FlagDecimals = "decimals"

// GetTxCmd returns the transaction commands for the token module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   types.ModuleName,
		Short: "Test token transaction subcommands",
	}

	cmd.AddCommand(
		CmdDeploy(),
		CmdMint(),
		CmdTransfer(),
		CmdApprove(),
	)
	return cmd
}

// CmdDeploy deploys a token owned by --from, minting the whole supply to it.
func CmdDeploy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [name] [symbol] [supply]",
		Short: "Deploy a test token",
		Long: `Deploy a token owned by the sender. supply is in base units and is minted
to the sender. The address follows the deployer's nonce.

Example:
  $ dexd tx token deploy "ETH Token" ETH 1000000000000000000000000 --from 0xf39F...`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := client.GetFromAddress(cmd)
			if err != nil {
				return err
			}
			c, err := client.GetClient(cmd)
			if err != nil {
				return err
			}
			supply, err := api.ParseAmount(args[2])
			if err != nil {
				return fmt.Errorf("supply: %w", err)
			}
			decimals, err := cmd.Flags().GetUint8(FlagDecimals)
			if err != nil {
				return err
			}

			addr, tx, err := c.DeployToken(cmd.Context(), api.DeployTokenRequest{
				Deployer: from,
				Name:     args[0],
				Symbol:   args[1],
				Decimals: decimals,
				Supply:   supply,
			})
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, map[string]interface{}{"address": addr, "height": tx.Height})
		},
	}

	cmd.Flags().Uint8(FlagDecimals, types.DefaultDecimals, "token decimals")
	client.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdMint mints new tokens. Only the owner may mint.
func CmdMint() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint [token] [to] [amount]",
		Short: "Mint tokens to an account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, from, token, to, amount, err := transferArgs(cmd, args)
			if err != nil {
				return err
			}
			tx, err := c.Mint(cmd.Context(), token, api.MintRequest{Caller: from, To: to, Amount: amount})
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, tx)
		},
	}

	client.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdTransfer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer [token] [to] [amount]",
		Short: "Transfer tokens from the sender",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, from, token, to, amount, err := transferArgs(cmd, args)
			if err != nil {
				return err
			}
			tx, err := c.Transfer(cmd.Context(), token, api.TransferRequest{From: from, To: to, Amount: amount})
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, tx)
		},
	}

	client.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApprove sets an allowance. Use "dex" as spender before adding
// liquidity or swapping.
func CmdApprove() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [token] [spender] [amount]",
		Short: "Allow spender to move the sender's tokens",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, from, token, spender, amount, err := transferArgs(cmd, args)
			if err != nil {
				return err
			}
			tx, err := c.Approve(cmd.Context(), token, api.ApproveRequest{Owner: from, Spender: spender, Amount: amount})
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, tx)
		},
	}

	client.AddTxFlagsToCmd(cmd)
	return cmd
}

// transferArgs parses [token] [account] [amount] plus --from and --node.
func transferArgs(cmd *cobra.Command, args []string) (*api.Client, common.Address, common.Address, common.Address, math.Int, error) {
	var zero common.Address
	from, err := client.GetFromAddress(cmd)
	if err != nil {
		return nil, zero, zero, zero, math.Int{}, err
	}
	c, err := client.GetClient(cmd)
	if err != nil {
		return nil, zero, zero, zero, math.Int{}, err
	}
	token, err := api.ParseAddress(args[0])
	if err != nil {
		return nil, zero, zero, zero, math.Int{}, err
	}
	account, err := client.ParseAccount(args[1])
	if err != nil {
		return nil, zero, zero, zero, math.Int{}, err
	}
	amount, err := api.ParseAmount(args[2])
	if err != nil {
		return nil, zero, zero, zero, math.Int{}, err
	}
	return c, from, token, account, amount, nil
}

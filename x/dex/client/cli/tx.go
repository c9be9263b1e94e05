package cli

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/api"
	"github.com/simpledex/simpledex/client"
	"github.com/simpledex/simpledex/x/dex/types"
)

// GetTxCmd returns the transaction commands for the dex module
func GetTxCmd() *cobra.Command {
	dexTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "DEX transaction subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       validateCmd,
	}

	dexTxCmd.AddCommand(
		CmdCreatePool(),
		CmdAddLiquidity(),
		CmdSwap(),
	)

	return dexTxCmd
}

// CmdCreatePool returns a CLI command handler for creating a liquidity pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [token-a] [token-b]",
		Short: "Create an empty liquidity pool for a token pair",
		Long: `Create an empty liquidity pool for two deployed tokens. Each pair may have
only one pool, whatever the argument order.

Example:
  $ dexd tx dex create-pool 0x5FbDB2315678afecb367f032d93F642f64180aa3 0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512 --from 0xf39F...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, from, err := txContext(cmd)
			if err != nil {
				return err
			}
			tokenA, err := api.ParseAddress(args[0])
			if err != nil {
				return err
			}
			tokenB, err := api.ParseAddress(args[1])
			if err != nil {
				return err
			}

			msg := types.NewMsgCreatePool(from, tokenA, tokenB)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			resp, tx, err := c.CreatePool(cmd.Context(), msg)
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, map[string]interface{}{"pool_id": resp.PoolId, "height": tx.Height})
		},
	}

	client.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAddLiquidity returns a CLI command handler for adding liquidity to a pool
func CmdAddLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [token-a] [amount-a] [token-b] [amount-b]",
		Short: "Deposit both tokens of a pair into its pool",
		Long: `Deposit both tokens into an existing pool. The sender must have approved
the dex account ("dex") for both amounts beforehand.

Example:
  $ dexd tx token approve 0x5FbD... dex 1000000000000000000000 --from 0xf39F...
  $ dexd tx dex add-liquidity 0x5FbD... 1000000000000000000000 0xe7f1... 200000000000000000000000 --from 0xf39F...`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, from, err := txContext(cmd)
			if err != nil {
				return err
			}
			tokenA, err := api.ParseAddress(args[0])
			if err != nil {
				return err
			}
			amountA, err := api.ParseAmount(args[1])
			if err != nil {
				return fmt.Errorf("amount-a: %w", err)
			}
			tokenB, err := api.ParseAddress(args[2])
			if err != nil {
				return err
			}
			amountB, err := api.ParseAmount(args[3])
			if err != nil {
				return fmt.Errorf("amount-b: %w", err)
			}

			msg := types.NewMsgAddLiquidity(from, tokenA, tokenB, amountA, amountB)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			resp, _, err := c.AddLiquidity(cmd.Context(), msg)
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, resp.Pool)
		},
	}

	client.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwap returns a CLI command handler for swapping tokens
func CmdSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [token-in] [amount-in] [token-out]",
		Short: "Swap an exact input amount through a pool",
		Long: `Swap amount-in of token-in for token-out. Without --min-amount-out the
minimum is the current quote reduced by --slippage.

Example:
  $ dexd tx dex swap 0x5FbD... 1000000000000000000 0xe7f1... --min-amount-out 190000000000000000000 --from 0x7099...
  $ dexd tx dex swap 0x5FbD... 1000000000000000000 0xe7f1... --slippage 0.01 --from 0x7099...`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, from, err := txContext(cmd)
			if err != nil {
				return err
			}
			tokenIn, err := api.ParseAddress(args[0])
			if err != nil {
				return err
			}
			amountIn, err := api.ParseAmount(args[1])
			if err != nil {
				return fmt.Errorf("amount-in: %w", err)
			}
			tokenOut, err := api.ParseAddress(args[2])
			if err != nil {
				return err
			}

			minAmountOut, err := minOutput(cmd, c, tokenIn, tokenOut, amountIn)
			if err != nil {
				return err
			}

			msg := types.NewMsgSwap(from, tokenIn, tokenOut, amountIn, minAmountOut)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			resp, tx, err := c.Swap(cmd.Context(), msg)
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, map[string]interface{}{
				"amount_out":     resp.AmountOut,
				"min_amount_out": minAmountOut,
				"height":         tx.Height,
			})
		},
	}

	cmd.Flags().String(FlagMinAmountOut, "", "minimum output amount; overrides --slippage")
	cmd.Flags().String(FlagSlippage, DefaultSlippage, "tolerated shortfall from the quote, as a fraction")
	client.AddTxFlagsToCmd(cmd)
	return cmd
}

// minOutput reads --min-amount-out, or derives it from a fresh quote.
func minOutput(cmd *cobra.Command, c *api.Client, tokenIn, tokenOut common.Address, amountIn math.Int) (math.Int, error) {
	minStr, err := cmd.Flags().GetString(FlagMinAmountOut)
	if err != nil {
		return math.Int{}, err
	}
	if minStr != "" {
		return api.ParseAmount(minStr)
	}

	slippageStr, err := cmd.Flags().GetString(FlagSlippage)
	if err != nil {
		return math.Int{}, err
	}
	slippage, err := math.LegacyNewDecFromStr(slippageStr)
	if err != nil || slippage.IsNegative() || slippage.GTE(math.LegacyOneDec()) {
		return math.Int{}, fmt.Errorf("--%s must be a fraction in [0, 1), got %q", FlagSlippage, slippageStr)
	}

	quote, err := c.Quote(cmd.Context(), tokenIn, tokenOut, amountIn)
	if err != nil {
		return math.Int{}, err
	}
	return math.LegacyNewDecFromInt(quote.AmountOut).Mul(math.LegacyOneDec().Sub(slippage)).TruncateInt(), nil
}

func txContext(cmd *cobra.Command) (*api.Client, common.Address, error) {
	from, err := client.GetFromAddress(cmd)
	if err != nil {
		return nil, from, err
	}
	c, err := client.GetClient(cmd)
	return c, from, err
}

func validateCmd(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return cmd.Help()
}

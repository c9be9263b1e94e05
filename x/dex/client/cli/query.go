package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/api"
	"github.com/simpledex/simpledex/client"
	"github.com/simpledex/simpledex/x/dex/types"
)

// GetQueryCmd returns the cli query commands for the dex module
func GetQueryCmd() *cobra.Command {
	dexQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the dex module",
		SuggestionsMinimumDistance: 2,
		RunE:                       validateCmd,
	}

	dexQueryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryPool(),
		GetCmdQueryPools(),
		GetCmdQueryPrice(),
		GetCmdQueryQuote(),
	)

	return dexQueryCmd
}

// GetCmdQueryParams returns the command to query module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current dex module parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := client.GetClient(cmd)
			if err != nil {
				return err
			}
			params, err := c.Params(cmd.Context())
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, params)
		},
	}

	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPool returns the command to query the pool of a token pair
func GetCmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [token-a] [token-b]",
		Short: "Query the pool of a token pair",
		Long: `Query a pool and its reserves by token pair, in either order.

Example:
  $ dexd query dex pool 0x5FbD... 0xe7f1...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.GetClient(cmd)
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
			pool, err := c.Pool(cmd.Context(), tokenA, tokenB)
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, pool)
		},
	}

	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPools returns the command to list all pools
func GetCmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List all liquidity pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := client.GetClient(cmd)
			if err != nil {
				return err
			}
			pools, err := c.Pools(cmd.Context())
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, pools)
		},
	}

	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPrice returns the command to query a spot price
func GetCmdQueryPrice() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price [base] [quote]",
		Short: "Query the spot price of base in units of quote",
		Long: `Query how many quote tokens one base token is worth at the current
reserves. "price" is 18-decimal fixed point, "price_dec" the same value as a
decimal.

Example:
  $ dexd query dex price 0x5FbD... 0xe7f1...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.GetClient(cmd)
			if err != nil {
				return err
			}
			base, err := api.ParseAddress(args[0])
			if err != nil {
				return err
			}
			quote, err := api.ParseAddress(args[1])
			if err != nil {
				return err
			}
			price, err := c.Price(cmd.Context(), base, quote)
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, price)
		},
	}

	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryQuote returns the command to simulate a swap
func GetCmdQueryQuote() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [token-in] [amount-in] [token-out]",
		Short: "Simulate a swap against the current reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.GetClient(cmd)
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
			quote, err := c.Quote(cmd.Context(), tokenIn, tokenOut, amountIn)
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, quote)
		},
	}

	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

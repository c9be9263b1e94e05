package cli

import (
	"github.com/spf13/cobra"

	"github.com/simpledex/simpledex/api"
	"github.com/simpledex/simpledex/client"
	"github.com/simpledex/simpledex/x/token/types"
)

// GetQueryCmd returns the cli query commands for the token module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   types.ModuleName,
		Short: "Querying commands for test tokens",
	}

	cmd.AddCommand(
		CmdQueryInfo(),
		CmdQueryList(),
		CmdQueryBalance(),
		CmdQueryAllowance(),
	)
	return cmd
}

func CmdQueryInfo() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [token]",
		Short: "Query token metadata and supply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.GetClient(cmd)
			if err != nil {
				return err
			}
			token, err := api.ParseAddress(args[0])
			if err != nil {
				return err
			}
			info, err := c.Token(cmd.Context(), token)
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, info)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func CmdQueryList() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployed tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := client.GetClient(cmd)
			if err != nil {
				return err
			}
			tokens, err := c.Tokens(cmd.Context())
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, tokens)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func CmdQueryBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [token] [account]",
		Short: "Query an account balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.GetClient(cmd)
			if err != nil {
				return err
			}
			token, err := api.ParseAddress(args[0])
			if err != nil {
				return err
			}
			account, err := client.ParseAccount(args[1])
			if err != nil {
				return err
			}
			balance, err := c.Balance(cmd.Context(), token, account)
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, balance)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func CmdQueryAllowance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allowance [token] [owner] [spender]",
		Short: "Query how much spender may move from owner",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.GetClient(cmd)
			if err != nil {
				return err
			}
			token, err := api.ParseAddress(args[0])
			if err != nil {
				return err
			}
			owner, err := client.ParseAccount(args[1])
			if err != nil {
				return err
			}
			spender, err := client.ParseAccount(args[2])
			if err != nil {
				return err
			}
			allowance, err := c.Allowance(cmd.Context(), token, owner, spender)
			if err != nil {
				return err
			}
			return client.PrintJSON(cmd, allowance)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

package cli

import (
	"context"

	"github.com/malbeclabs/nftstake/client/stakeview/internal/actions"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/app"
	"github.com/malbeclabs/nftstake/config"
	"github.com/spf13/cobra"
)

type InitCmd struct{}

func NewInitCmd() *InitCmd {
	return &InitCmd{}
}

func (c *InitCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the user account of the signing wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, func(ctx context.Context, a *app.App, _ *config.Settings) error {
				return printNotice(cmd.OutOrStdout(), a.Actions.InitializeUser(ctx))
			})
		},
	}
}

type StakeCmd struct{}

func NewStakeCmd() *StakeCmd {
	return &StakeCmd{}
}

func (c *StakeCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "stake <mint> <collection-mint>",
		Short: "Stake an NFT of the given collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, func(ctx context.Context, a *app.App, _ *config.Settings) error {
				form := &actions.StakeForm{MintAddress: args[0], CollectionMint: args[1]}
				return printNotice(cmd.OutOrStdout(), form.Submit(ctx, a.Actions))
			})
		},
	}
}

type UnstakeCmd struct{}

func NewUnstakeCmd() *UnstakeCmd {
	return &UnstakeCmd{}
}

func (c *UnstakeCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "unstake <mint>",
		Short: "Unstake an NFT once its freeze period has passed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, func(ctx context.Context, a *app.App, _ *config.Settings) error {
				form := &actions.UnstakeForm{MintAddress: args[0]}
				return printNotice(cmd.OutOrStdout(), form.Submit(ctx, a.Actions))
			})
		},
	}
}

type ClaimCmd struct{}

func NewClaimCmd() *ClaimCmd {
	return &ClaimCmd{}
}

func (c *ClaimCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "claim",
		Short: "Convert accrued points into reward tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, func(ctx context.Context, a *app.App, _ *config.Settings) error {
				return printNotice(cmd.OutOrStdout(), a.Actions.Claim(ctx))
			})
		},
	}
}

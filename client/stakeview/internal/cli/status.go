package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/malbeclabs/nftstake/client/stakeview/internal/app"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/loadable"
	"github.com/malbeclabs/nftstake/config"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
	"github.com/spf13/cobra"
)

type StatusCmd struct{}

func NewStatusCmd() *StatusCmd {
	return &StatusCmd{}
}

func (c *StatusCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the wallet's user account and rewards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, func(ctx context.Context, a *app.App, settings *config.Settings) error {
				out := cmd.OutOrStdout()
				wallet := a.Session.Wallet()

				fmt.Fprintln(out, "Environment:", settings.Network.Moniker)
				fmt.Fprintln(out, "RPC:", settings.Network.RPCURL)
				fmt.Fprintln(out, "WebSocket RPC:", settings.Network.WSRPCURL)
				fmt.Fprintln(out, "Program:", a.Session.ProgramID())
				if !wallet.Connected() {
					fmt.Fprintln(out, "Wallet: not connected")
					return nil
				}
				fmt.Fprintln(out, "Wallet:", wallet.PublicKey())

				user := a.Accounts.UserHook().Load(ctx, wallet)
				switch user.Status {
				case loadable.Absent:
					fmt.Fprintln(out, "User account: not initialized (run `stakeview init`)")
					return nil
				case loadable.Failed:
					return fmt.Errorf("failed to load user account: %w", user.Err)
				}

				rewards := "-"
				balance, err := a.Accounts.GetRewardsBalance(ctx, wallet.PublicKey())
				switch {
				case err == nil:
					rewards = balance.UIAmount
				case errors.Is(err, staking.ErrAccountNotFound):
					rewards = "0"
				default:
					return fmt.Errorf("failed to load rewards balance: %w", err)
				}

				table := newTable(out, []string{"Points", "Staked NFTs", "Rewards"})
				table.Append([]string{
					fmt.Sprintf("%d", user.Data.Points),
					fmt.Sprintf("%d", user.Data.AmountStaked),
					rewards,
				})
				table.Render()
				return nil
			})
		},
	}
}

type ConfigCmd struct{}

func NewConfigCmd() *ConfigCmd {
	return &ConfigCmd{}
}

func (c *ConfigCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the staking program configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, func(ctx context.Context, a *app.App, _ *config.Settings) error {
				cfg := a.Accounts.ConfigHook().Load(ctx)
				switch cfg.Status {
				case loadable.Absent:
					return errors.New("staking program is not initialized")
				case loadable.Failed:
					return fmt.Errorf("failed to load config: %w", cfg.Err)
				}

				table := newTable(cmd.OutOrStdout(), []string{"Points\nper stake", "Max\nstake", "Freeze\nperiod"})
				table.Append([]string{
					fmt.Sprintf("%d", cfg.Data.PointsPerStake),
					fmt.Sprintf("%d", cfg.Data.MaxStake),
					cfg.Data.FreezePeriodDuration().String(),
				})
				table.Render()
				return nil
			})
		},
	}
}

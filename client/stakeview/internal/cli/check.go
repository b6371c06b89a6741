package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/accounts"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/app"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/loadable"
	"github.com/malbeclabs/nftstake/config"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
	"github.com/spf13/cobra"
)

type CheckCmd struct{}

func NewCheckCmd() *CheckCmd {
	return &CheckCmd{}
}

func (c *CheckCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "check <mint>",
		Short: "Show how long an NFT has been staked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, func(ctx context.Context, a *app.App, _ *config.Settings) error {
				stake := a.Accounts.StakeHook().Load(ctx, args[0])
				switch stake.Status {
				case loadable.Absent:
					fmt.Fprintln(cmd.OutOrStdout(), "Not staked:", args[0])
					return nil
				case loadable.Failed:
					if errors.Is(stake.Err, staking.ErrInvalidAddress) {
						return stake.Err
					}
					return fmt.Errorf("failed to load stake: %w", stake.Err)
				}

				cfg := loadConfig(ctx, a)
				printStakes(cmd.OutOrStdout(), a.Accounts.Clock(), cfg, []staking.StakeAccount{*stake.Data})
				return nil
			})
		},
	}
}

type StakesCmd struct{}

func NewStakesCmd() *StakesCmd {
	return &StakesCmd{}
}

func (c *StakesCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stakes",
		Short: "List staked NFTs of a wallet or of the given mints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerStr, err := cmd.Flags().GetString("owner")
			if err != nil {
				return fmt.Errorf("failed to get owner flag: %w", err)
			}
			mintStrs, err := cmd.Flags().GetStringSlice("mint")
			if err != nil {
				return fmt.Errorf("failed to get mint flag: %w", err)
			}

			return runApp(cmd, func(ctx context.Context, a *app.App, _ *config.Settings) error {
				var stakes []staking.StakeAccount
				if len(mintStrs) > 0 {
					mints, err := staking.ParseAddresses(mintStrs)
					if err != nil {
						return err
					}
					results, err := a.Accounts.GetStakes(ctx, mints)
					if err != nil {
						return fmt.Errorf("failed to load stakes: %w", err)
					}
					for _, r := range results {
						switch r.Value.Status {
						case loadable.Found:
							stakes = append(stakes, *r.Value.Data)
						case loadable.Absent:
							fmt.Fprintln(cmd.OutOrStdout(), "Not staked:", r.Mint)
						default:
							fmt.Fprintf(cmd.OutOrStdout(), "Failed to load %s: %v\n", r.Mint, r.Value.Err)
						}
					}
				} else {
					owner := a.Session.Wallet().PublicKey()
					if ownerStr != "" {
						if owner, err = staking.ParseAddress(ownerStr); err != nil {
							return err
						}
					} else if !a.Session.Wallet().Connected() {
						return errors.New("no wallet connected: pass --owner, --wallet or --keypair")
					}
					if stakes, err = a.Accounts.GetStakesByOwner(ctx, owner); err != nil {
						return fmt.Errorf("failed to list stakes: %w", err)
					}
				}

				if len(stakes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No staked NFTs")
					return nil
				}
				printStakes(cmd.OutOrStdout(), a.Accounts.Clock(), loadConfig(ctx, a), stakes)
				return nil
			})
		},
	}

	cmd.Flags().String("owner", "", "Wallet whose stakes to list (defaults to the connected wallet)")
	cmd.Flags().StringSlice("mint", nil, "Look up specific mints instead of listing by owner")

	return cmd
}

// loadConfig returns nil when the config is unavailable; stakes are then
// shown without freeze state.
func loadConfig(ctx context.Context, a *app.App) *staking.Config {
	cfg := a.Accounts.ConfigHook().Load(ctx)
	return cfg.Data
}

func printStakes(w io.Writer, clock clockwork.Clock, cfg *staking.Config, stakes []staking.StakeAccount) {
	table := newTable(w, []string{"Mint", "Owner", "Staked at", "Duration", "Status"})
	for i := range stakes {
		info := accounts.NewStakeInfo(clock, &stakes[i], cfg)
		table.Append([]string{
			stakes[i].Mint.String(),
			shortKey(stakes[i].Owner),
			info.StakedAt.Format(time.RFC3339),
			info.Duration(),
			lockStatus(info),
		})
	}
	table.Render()
}

func lockStatus(info accounts.StakeInfo) string {
	if info.Unlocked {
		return "unlocked"
	}
	return "locked " + info.FreezeRemaining.Truncate(time.Minute).String()
}

func shortKey(pk solana.PublicKey) string {
	s := pk.String()
	if len(s) <= 8 {
		return s
	}
	return s[:4] + ".." + s[len(s)-4:]
}

package cli

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/app"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/session"
	"github.com/malbeclabs/nftstake/config"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
	"github.com/spf13/cobra"
)

type PDACmd struct{}

func NewPDACmd() *PDACmd {
	return &PDACmd{}
}

func (c *PDACmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pda <kind> [key]",
		Short: "Derive a program address (config, user, stake, rewards, ata, metadata, edition)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerStr, err := cmd.Flags().GetString("owner")
			if err != nil {
				return fmt.Errorf("failed to get owner flag: %w", err)
			}

			return runApp(cmd, func(_ context.Context, a *app.App, _ *config.Settings) error {
				kind := args[0]
				wallet := a.Session.Wallet()

				var key, owner solana.PublicKey
				switch kind {
				case session.KindConfig, session.KindRewards:
				case session.KindUser:
					if len(args) < 2 {
						if !wallet.Connected() {
							return fmt.Errorf("%s requires a wallet address", kind)
						}
						key = wallet.PublicKey()
						break
					}
					if key, err = staking.ParseAddress(args[1]); err != nil {
						return err
					}
				case session.KindStake, session.KindMetadata, session.KindEdition, session.KindATA:
					if len(args) < 2 {
						return fmt.Errorf("%s requires a mint address", kind)
					}
					if key, err = staking.ParseAddress(args[1]); err != nil {
						return err
					}
					if kind != session.KindATA {
						break
					}
					owner = wallet.PublicKey()
					if ownerStr != "" {
						if owner, err = staking.ParseAddress(ownerStr); err != nil {
							return err
						}
					} else if !wallet.Connected() {
						return fmt.Errorf("%s requires --owner or a connected wallet", kind)
					}
				default:
					return fmt.Errorf("unknown address kind %q", kind)
				}

				d, err := a.Session.Addresses.Lookup(kind, key, owner)
				if err != nil {
					return err
				}
				bump := "-"
				switch kind {
				case session.KindConfig, session.KindUser, session.KindStake, session.KindRewards:
					bump = fmt.Sprintf("%d", d.Bump)
				}
				table := newTable(cmd.OutOrStdout(), []string{"Kind", "Address", "Bump"})
				table.Append([]string{kind, d.Address.String(), bump})
				table.Render()
				return nil
			})
		},
	}

	cmd.Flags().String("owner", "", "Token account owner for the ata kind (defaults to the connected wallet)")

	return cmd
}

package accounts

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/loadable"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/session"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

// UserHook tracks the user account of the connected wallet.
type UserHook struct {
	loader *loadable.Loader[solana.PublicKey, staking.UserAccount]
}

func (p *Provider) UserHook() *UserHook {
	return &UserHook{loader: loadable.NewLoader[solana.PublicKey, staking.UserAccount](p.GetUser)}
}

// Load fetches the user account of wallet. A disconnected wallet resets the
// hook to Absent without a fetch.
func (h *UserHook) Load(ctx context.Context, wallet session.Wallet) loadable.Value[staking.UserAccount] {
	if wallet == nil || !wallet.Connected() {
		h.loader.Reset()
		return h.loader.Current()
	}
	return h.loader.Load(ctx, wallet.PublicKey())
}

func (h *UserHook) Reset()                                       { h.loader.Reset() }
func (h *UserHook) Current() loadable.Value[staking.UserAccount] { return h.loader.Current() }

// ConfigHook tracks the singleton config account.
type ConfigHook struct {
	loader *loadable.Loader[struct{}, staking.Config]
}

func (p *Provider) ConfigHook() *ConfigHook {
	return &ConfigHook{loader: loadable.NewLoader[struct{}, staking.Config](func(ctx context.Context, _ struct{}) (*staking.Config, error) {
		return p.GetConfig(ctx)
	})}
}

func (h *ConfigHook) Load(ctx context.Context) loadable.Value[staking.Config] {
	return h.loader.Load(ctx, struct{}{})
}

func (h *ConfigHook) Current() loadable.Value[staking.Config] { return h.loader.Current() }

// StakeHook tracks the stake record of a user-supplied mint.
type StakeHook struct {
	loader *loadable.Loader[solana.PublicKey, staking.StakeAccount]
}

func (p *Provider) StakeHook() *StakeHook {
	return &StakeHook{loader: loadable.NewLoader[solana.PublicKey, staking.StakeAccount](p.GetStake)}
}

// Load parses mint and fetches its stake record. A malformed mint fails with
// staking.ErrInvalidAddress before any derivation or RPC call.
func (h *StakeHook) Load(ctx context.Context, mint string) loadable.Value[staking.StakeAccount] {
	pk, err := staking.ParseAddress(mint)
	if err != nil {
		h.loader.Set(loadable.FailedValue[staking.StakeAccount](err))
		return h.loader.Current()
	}
	return h.loader.Load(ctx, pk)
}

func (h *StakeHook) Reset()                                        { h.loader.Reset() }
func (h *StakeHook) Current() loadable.Value[staking.StakeAccount] { return h.loader.Current() }

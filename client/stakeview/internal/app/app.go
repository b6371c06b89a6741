package app

import (
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/accounts"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/actions"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/session"
	"github.com/malbeclabs/nftstake/config"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

type Config struct {
	Logger   *slog.Logger
	Settings *config.Settings
	Clock    clockwork.Clock

	// RPC overrides the client built from Settings.Network.RPCURL.
	RPC staking.RPCClient

	ExecutorOptions []staking.ExecutorOption
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Settings == nil {
		return errors.New("settings are required")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return nil
}

// App wires one session to its account reader, actions and refresh signal.
// A successful action invalidates the account cache and a disconnect resets
// the refresh counter.
type App struct {
	Session  *session.Session
	Accounts *accounts.Provider
	Actions  *actions.Actions
	Refresh  *actions.RefreshSignal

	unsubscribe func()
}

func New(cfg *Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		sess *session.Session
		err  error
	)
	if cfg.RPC != nil {
		var wallet session.Wallet
		wallet, err = session.WalletFromSettings(cfg.Settings)
		if err != nil {
			return nil, err
		}
		sess, err = session.New(cfg.Logger, cfg.RPC, cfg.Settings.Network.ProgramID, wallet, cfg.ExecutorOptions...)
	} else {
		sess, err = session.NewFromSettings(cfg.Logger, cfg.Settings, cfg.ExecutorOptions...)
	}
	if err != nil {
		return nil, err
	}

	provider, err := accounts.NewProvider(&accounts.ProviderConfig{
		Logger: cfg.Logger,
		Client: sess.Program(),
		Clock:  cfg.Clock,
	})
	if err != nil {
		return nil, err
	}

	refresh := actions.NewRefreshSignal()
	unsubscribe := refresh.Subscribe(func(uint64) {
		provider.Invalidate()
	})
	sess.OnWalletChange(func(w session.Wallet) {
		if !w.Connected() {
			refresh.Reset()
		}
	})

	return &App{
		Session:     sess,
		Accounts:    provider,
		Actions:     actions.New(cfg.Logger, sess, provider, refresh, actions.WithClock(cfg.Clock)),
		Refresh:     refresh,
		unsubscribe: unsubscribe,
	}, nil
}

func (a *App) Close() {
	a.unsubscribe()
	a.Accounts.Close()
}

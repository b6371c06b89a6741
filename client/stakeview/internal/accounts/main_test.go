package accounts_test

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/lmittmann/tint"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/accounts"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

var (
	log *slog.Logger
)

func TestMain(m *testing.M) {
	flag.Parse()
	verbose := false
	if vFlag := flag.Lookup("test.v"); vFlag != nil && vFlag.Value.String() == "true" {
		verbose = true
	}
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	log = slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.RFC3339,
		AddSource:  true,
	}))

	os.Exit(m.Run())
}

type mockProgramClient struct {
	accounts.ProgramClient

	GetConfigFunc               func(context.Context) (*staking.Config, error)
	GetUserAccountFunc          func(context.Context, solana.PublicKey) (*staking.UserAccount, error)
	GetStakeAccountFunc         func(context.Context, solana.PublicKey) (*staking.StakeAccount, error)
	GetStakeAccountsByOwnerFunc func(context.Context, solana.PublicKey) ([]staking.StakeAccount, error)
	GetRewardsBalanceFunc       func(context.Context, solana.PublicKey) (*staking.TokenBalance, error)
}

func (m *mockProgramClient) GetConfig(ctx context.Context) (*staking.Config, error) {
	return m.GetConfigFunc(ctx)
}

func (m *mockProgramClient) GetUserAccount(ctx context.Context, owner solana.PublicKey) (*staking.UserAccount, error) {
	return m.GetUserAccountFunc(ctx, owner)
}

func (m *mockProgramClient) GetStakeAccount(ctx context.Context, mint solana.PublicKey) (*staking.StakeAccount, error) {
	return m.GetStakeAccountFunc(ctx, mint)
}

func (m *mockProgramClient) GetStakeAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]staking.StakeAccount, error) {
	return m.GetStakeAccountsByOwnerFunc(ctx, owner)
}

func (m *mockProgramClient) GetRewardsBalance(ctx context.Context, owner solana.PublicKey) (*staking.TokenBalance, error) {
	return m.GetRewardsBalanceFunc(ctx, owner)
}

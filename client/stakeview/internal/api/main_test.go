package api_test

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/lmittmann/tint"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/actions"
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

type mockReader struct {
	GetConfigFunc        func(context.Context) (*staking.Config, error)
	GetUserFunc          func(context.Context, solana.PublicKey) (*staking.UserAccount, error)
	GetStakeFunc         func(context.Context, solana.PublicKey) (*staking.StakeAccount, error)
	GetStakesByOwnerFunc func(context.Context, solana.PublicKey) ([]staking.StakeAccount, error)
}

func (m *mockReader) GetConfig(ctx context.Context) (*staking.Config, error) {
	if m.GetConfigFunc == nil {
		return nil, staking.ErrAccountNotFound
	}
	return m.GetConfigFunc(ctx)
}

func (m *mockReader) GetUser(ctx context.Context, owner solana.PublicKey) (*staking.UserAccount, error) {
	return m.GetUserFunc(ctx, owner)
}

func (m *mockReader) GetStake(ctx context.Context, mint solana.PublicKey) (*staking.StakeAccount, error) {
	return m.GetStakeFunc(ctx, mint)
}

func (m *mockReader) GetStakesByOwner(ctx context.Context, owner solana.PublicKey) ([]staking.StakeAccount, error) {
	return m.GetStakesByOwnerFunc(ctx, owner)
}

type mockSubmitter struct {
	InitializeUserFunc func(context.Context) actions.Notice
	StakeFunc          func(context.Context, string, string) actions.Notice
	UnstakeFunc        func(context.Context, string) actions.Notice
	ClaimFunc          func(context.Context) actions.Notice
}

func (m *mockSubmitter) InitializeUser(ctx context.Context) actions.Notice {
	return m.InitializeUserFunc(ctx)
}

func (m *mockSubmitter) Stake(ctx context.Context, mint, collection string) actions.Notice {
	return m.StakeFunc(ctx, mint, collection)
}

func (m *mockSubmitter) Unstake(ctx context.Context, mint string) actions.Notice {
	return m.UnstakeFunc(ctx, mint)
}

func (m *mockSubmitter) Claim(ctx context.Context) actions.Notice {
	return m.ClaimFunc(ctx)
}

var (
	programID = solana.MustPublicKeyFromBase58(staking.DefaultProgramID)
	now       = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
)

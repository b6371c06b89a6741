package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/metrics"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/session"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

const (
	MsgWalletNotConnected = "Wallet not connected"
	MsgReadOnlyWallet     = "Wallet cannot sign transactions"
	MsgUserInitialized    = "User account initialized!"
	MsgUserInitFailed     = "Failed to initialize user account"
	MsgStaked             = "NFT staked successfully!"
	MsgStakeFailed        = "Failed to stake NFT"
	MsgUnstaked           = "NFT unstaked successfully!"
	MsgUnstakeFailed      = "Failed to unstake NFT"
	MsgClaimed            = "Rewards claimed successfully!"
	MsgClaimFailed        = "Failed to claim rewards"
	MsgNoPointsToClaim    = "No points to claim"
	MsgUserNotInitialized = "Initialize your account to claim rewards"
	MsgInvalidMint        = "Invalid mint address"
	MsgInvalidCollection  = "Invalid collection mint address"
)

// UserReader reads the user account used to gate claims.
type UserReader interface {
	GetUser(ctx context.Context, owner solana.PublicKey) (*staking.UserAccount, error)
}

// Actions submits staking instructions for the session wallet. Every action
// returns a Notice and bumps the refresh signal only on success.
type Actions struct {
	log     *slog.Logger
	session *session.Session
	users   UserReader
	refresh *RefreshSignal
	clock   clockwork.Clock
}

type Option func(*Actions)

// WithClock sets the clock used to time submissions.
func WithClock(clock clockwork.Clock) Option {
	return func(a *Actions) {
		a.clock = clock
	}
}

func New(log *slog.Logger, sess *session.Session, users UserReader, refresh *RefreshSignal, opts ...Option) *Actions {
	a := &Actions{
		log:     log,
		session: sess,
		users:   users,
		refresh: refresh,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Actions) InitializeUser(ctx context.Context) Notice {
	if n, ok := a.requireSigner(); !ok {
		return n
	}
	return a.submit(ctx, staking.InstructionNameInitializeUser, MsgUserInitialized, MsgUserInitFailed, func(c *staking.Client) (solana.Signature, *solanarpc.GetTransactionResult, error) {
		return c.InitializeUser(ctx)
	})
}

func (a *Actions) Stake(ctx context.Context, mintAddress, collectionMint string) Notice {
	if n, ok := a.requireSigner(); !ok {
		return n
	}
	mint, err := staking.ParseAddress(mintAddress)
	if err != nil {
		return failure(MsgInvalidMint, err)
	}
	collection, err := staking.ParseAddress(collectionMint)
	if err != nil {
		return failure(MsgInvalidCollection, err)
	}
	return a.submit(ctx, staking.InstructionNameStake, MsgStaked, MsgStakeFailed, func(c *staking.Client) (solana.Signature, *solanarpc.GetTransactionResult, error) {
		return c.Stake(ctx, mint, collection)
	})
}

func (a *Actions) Unstake(ctx context.Context, mintAddress string) Notice {
	if n, ok := a.requireSigner(); !ok {
		return n
	}
	mint, err := staking.ParseAddress(mintAddress)
	if err != nil {
		return failure(MsgInvalidMint, err)
	}
	return a.submit(ctx, staking.InstructionNameUnstake, MsgUnstaked, MsgUnstakeFailed, func(c *staking.Client) (solana.Signature, *solanarpc.GetTransactionResult, error) {
		return c.Unstake(ctx, mint)
	})
}

// Claim is refused locally when the user account is missing or holds no points.
func (a *Actions) Claim(ctx context.Context) Notice {
	signer, n, ok := a.signer()
	if !ok {
		return n
	}
	user, err := a.users.GetUser(ctx, signer.PublicKey())
	switch {
	case errors.Is(err, staking.ErrAccountNotFound):
		return failure(MsgUserNotInitialized, err)
	case err != nil:
		return failure(MsgClaimFailed, err)
	case user.Points == 0:
		return failure(MsgNoPointsToClaim, nil)
	}
	return a.submit(ctx, staking.InstructionNameClaim, MsgClaimed, MsgClaimFailed, func(c *staking.Client) (solana.Signature, *solanarpc.GetTransactionResult, error) {
		return c.Claim(ctx)
	})
}

func (a *Actions) requireSigner() (Notice, bool) {
	_, n, ok := a.signer()
	return n, ok
}

func (a *Actions) signer() (session.Signer, Notice, bool) {
	signer, err := a.session.RequireSigner()
	switch {
	case errors.Is(err, session.ErrWalletNotConnected):
		return nil, failure(MsgWalletNotConnected, err), false
	case err != nil:
		return nil, failure(MsgReadOnlyWallet, err), false
	}
	return signer, Notice{}, true
}

func (a *Actions) submit(
	ctx context.Context,
	instruction, okMsg, failMsg string,
	send func(*staking.Client) (solana.Signature, *solanarpc.GetTransactionResult, error),
) Notice {
	start := a.clock.Now()
	sig, _, err := send(a.session.Program())
	metrics.SubmissionDuration.WithLabelValues(instruction).Observe(a.clock.Since(start).Seconds())
	if err != nil {
		metrics.Submissions.WithLabelValues(instruction, metrics.ResultFailure).Inc()
		a.log.Error("Submission failed", "instruction", instruction, "error", err)
		return failure(failMsg, fmt.Errorf("%s: %w", instruction, err))
	}
	metrics.Submissions.WithLabelValues(instruction, metrics.ResultSuccess).Inc()
	a.log.Info("Transaction signature", "instruction", instruction, "sig", sig)

	a.refresh.Bump()
	metrics.Refreshes.Inc()
	return success(okMsg, sig)
}

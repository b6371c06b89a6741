package staking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
)

var (
	// ErrNoPrivateKey is returned when a transaction signing operation is attempted without a configured private key.
	ErrNoPrivateKey = errors.New("no private key configured")

	// ErrNoProgramID is returned when a transaction signing operation is attempted without a configured program ID.
	ErrNoProgramID = errors.New("no program ID configured")

	// ErrTransactionFailed is returned when the cluster reports an execution error for a landed transaction.
	ErrTransactionFailed = errors.New("transaction failed")
)

type executor struct {
	log                   *slog.Logger
	rpc                   RPCClient
	signer                *solana.PrivateKey
	programID             solana.PublicKey
	commitment            solanarpc.CommitmentType
	waitForVisibleTimeout time.Duration
	pollInterval          time.Duration
}

type ExecutorOption func(*executor)

func WithWaitForVisibleTimeout(timeout time.Duration) ExecutorOption {
	return func(e *executor) {
		e.waitForVisibleTimeout = timeout
	}
}

// WithCommitment sets the commitment level a transaction must reach before it is reported as landed.
func WithCommitment(commitment solanarpc.CommitmentType) ExecutorOption {
	return func(e *executor) {
		e.commitment = commitment
	}
}

func WithPollInterval(interval time.Duration) ExecutorOption {
	return func(e *executor) {
		e.pollInterval = interval
	}
}

func NewExecutor(log *slog.Logger, rpc RPCClient, signer *solana.PrivateKey, programID solana.PublicKey, opts ...ExecutorOption) *executor {
	e := &executor{
		log:                   log,
		rpc:                   rpc,
		signer:                signer,
		programID:             programID,
		commitment:            solanarpc.CommitmentConfirmed,
		waitForVisibleTimeout: 3 * time.Second,
		pollInterval:          250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type ExecuteTransactionOptions struct {
	SkipPreflight bool
}

func (e *executor) ExecuteTransaction(ctx context.Context, instruction solana.Instruction, opts *ExecuteTransactionOptions) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	return e.ExecuteTransactions(ctx, []solana.Instruction{instruction}, opts)
}

func (e *executor) ExecuteTransactions(ctx context.Context, instructions []solana.Instruction, opts *ExecuteTransactionOptions) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	if opts == nil {
		opts = &ExecuteTransactionOptions{}
	}

	if e.signer == nil {
		return solana.Signature{}, nil, ErrNoPrivateKey
	}
	if e.programID.IsZero() {
		return solana.Signature{}, nil, ErrNoProgramID
	}

	blockhashResult, err := e.rpc.GetLatestBlockhash(ctx, solanarpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		blockhashResult.Value.Blockhash,
		solana.TransactionPayer(e.signer.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to build transaction: %w", err)
	}
	if tx == nil {
		return solana.Signature{}, nil, errors.New("transaction build failed: nil result")
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(e.signer.PublicKey()) {
			return e.signer
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to sign transaction (likely missing signer): %w", err)
	}
	if len(tx.Signatures) == 0 {
		return solana.Signature{}, nil, errors.New("signed transaction appears malformed")
	}

	sig, err := e.rpc.SendTransactionWithOpts(ctx, tx, solanarpc.TransactionOpts{
		SkipPreflight:       opts.SkipPreflight,
		PreflightCommitment: e.commitment,
	})
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	e.log.Debug("--> Transaction sent", "sig", sig)

	err = e.waitForSignatureVisible(ctx, sig)
	if err != nil {
		if opts.SkipPreflight {
			return solana.Signature{}, nil, fmt.Errorf("transaction dropped or rejected before cluster saw it. make sure you have sufficient funds for the transaction: %w", err)
		}
		return solana.Signature{}, nil, fmt.Errorf("transaction dropped or rejected before cluster saw it: %w", err)
	}

	res, err := e.waitForTransaction(ctx, sig)
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return sig, res, nil
}

// waitForSignatureVisible polls the signature status until the cluster reports
// it or the visibility timeout elapses. Only the status query is repeated; the
// transaction itself is never resent.
func (e *executor) waitForSignatureVisible(ctx context.Context, sig solana.Signature) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		resp, err := e.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		if len(resp.Value) > 0 && resp.Value[0] != nil {
			return struct{}{}, nil
		}
		return struct{}{}, errors.New("signature not found after wait")
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(e.pollInterval)),
		backoff.WithMaxElapsedTime(e.waitForVisibleTimeout),
	)
	return err
}

func (e *executor) waitForTransaction(ctx context.Context, sig solana.Signature) (*solanarpc.GetTransactionResult, error) {
	e.log.Debug("--> Waiting for transaction to reach commitment", "sig", sig, "commitment", e.commitment)
	start := time.Now()
	for {
		statusResp, err := e.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return nil, err
		}
		if len(statusResp.Value) == 0 {
			return nil, errors.New("transaction not found")
		}
		status := statusResp.Value[0]
		if status != nil && status.Err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, status.Err)
		}
		if status != nil && commitmentReached(status.ConfirmationStatus, e.commitment) {
			e.log.Debug("--> Transaction landed", "sig", sig, "duration", time.Since(start))
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.pollInterval):
		}
	}

	tx, err := e.rpc.GetTransaction(ctx, sig, &solanarpc.GetTransactionOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: e.commitment,
	})
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.Meta == nil {
		return nil, errors.New("transaction not found or missing metadata after confirmation")
	}
	if tx.Meta.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, tx.Meta.Err)
	}
	return tx, nil
}

func commitmentReached(got solanarpc.ConfirmationStatusType, want solanarpc.CommitmentType) bool {
	rank := func(s solanarpc.ConfirmationStatusType) int {
		switch s {
		case solanarpc.ConfirmationStatusProcessed:
			return 1
		case solanarpc.ConfirmationStatusConfirmed:
			return 2
		case solanarpc.ConfirmationStatusFinalized:
			return 3
		}
		return 0
	}
	switch want {
	case solanarpc.CommitmentProcessed:
		return rank(got) >= 1
	case solanarpc.CommitmentConfirmed:
		return rank(got) >= 2
	default:
		return rank(got) >= 3
	}
}

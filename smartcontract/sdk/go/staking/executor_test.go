package staking_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
	"github.com/stretchr/testify/require"
)

var testBlockhash = solana.MustHashFromBase58("5NzX7jrPWeTkGsDnVnszdEa7T3Yyr3nSgyc78z3CwjWQ")

func fakeSignature() solana.Signature {
	var sig solana.Signature
	copy(sig[:], []byte("fake-sig-0000000000000000000000000000000"))
	return sig
}

func newLandingRPC(sig solana.Signature, status solanarpc.ConfirmationStatusType) *mockRPCClient {
	return &mockRPCClient{
		GetLatestBlockhashFunc: func(_ context.Context, _ solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
			return &solanarpc.GetLatestBlockhashResult{
				Value: &solanarpc.LatestBlockhashResult{Blockhash: testBlockhash},
			}, nil
		},
		SendTransactionWithOptsFunc: func(_ context.Context, _ *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
			return sig, nil
		},
		GetSignatureStatusesFunc: func(_ context.Context, _ bool, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			return &solanarpc.GetSignatureStatusesResult{
				Value: []*solanarpc.SignatureStatusesResult{{ConfirmationStatus: status}},
			}, nil
		},
		GetTransactionFunc: func(_ context.Context, _ solana.Signature, _ *solanarpc.GetTransactionOpts) (*solanarpc.GetTransactionResult, error) {
			return &solanarpc.GetTransactionResult{Meta: &solanarpc.TransactionMeta{}}, nil
		},
	}
}

func TestSDK_Staking_Executor_ExecuteTransaction(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	programID := solana.NewWallet().PublicKey()
	sig := fakeSignature()

	mockRPC := newLandingRPC(sig, solanarpc.ConfirmationStatusConfirmed)
	exec := staking.NewExecutor(log, mockRPC, &signer, programID)

	instruction := solana.NewInstruction(programID, solana.AccountMetaSlice{}, []byte{1, 2, 3})
	gotSig, res, err := exec.ExecuteTransaction(t.Context(), instruction, nil)

	require.NoError(t, err)
	require.Equal(t, sig, gotSig)
	require.NotNil(t, res)
}

func TestSDK_Staking_Executor_WaitsForFinalizedWhenConfigured(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	programID := solana.NewWallet().PublicKey()
	sig := fakeSignature()

	var polls atomic.Int32
	mockRPC := newLandingRPC(sig, solanarpc.ConfirmationStatusConfirmed)
	mockRPC.GetSignatureStatusesFunc = func(_ context.Context, _ bool, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
		status := solanarpc.ConfirmationStatusConfirmed
		if polls.Add(1) >= 3 {
			status = solanarpc.ConfirmationStatusFinalized
		}
		return &solanarpc.GetSignatureStatusesResult{
			Value: []*solanarpc.SignatureStatusesResult{{ConfirmationStatus: status}},
		}, nil
	}

	exec := staking.NewExecutor(log, mockRPC, &signer, programID,
		staking.WithCommitment(solanarpc.CommitmentFinalized),
		staking.WithPollInterval(time.Millisecond),
	)

	instruction := solana.NewInstruction(programID, solana.AccountMetaSlice{}, []byte{1})
	_, _, err := exec.ExecuteTransaction(t.Context(), instruction, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestSDK_Staking_Executor_MissingSigner(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	exec := staking.NewExecutor(log, &mockRPCClient{}, nil, programID)

	instruction := solana.NewInstruction(programID, solana.AccountMetaSlice{}, []byte{1, 2, 3})
	sig, res, err := exec.ExecuteTransaction(t.Context(), instruction, nil)

	require.ErrorIs(t, err, staking.ErrNoPrivateKey)
	require.Empty(t, sig)
	require.Nil(t, res)
}

func TestSDK_Staking_Executor_MissingProgramID(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	exec := staking.NewExecutor(log, &mockRPCClient{}, &signer, solana.PublicKey{})

	instruction := solana.NewInstruction(solana.NewWallet().PublicKey(), solana.AccountMetaSlice{}, []byte{1, 2, 3})
	sig, res, err := exec.ExecuteTransaction(t.Context(), instruction, nil)

	require.ErrorIs(t, err, staking.ErrNoProgramID)
	require.Empty(t, sig)
	require.Nil(t, res)
}

func TestSDK_Staking_Executor_GetLatestBlockhashError(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	programID := solana.NewWallet().PublicKey()

	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: func(_ context.Context, _ solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
			return nil, errors.New("rpc unavailable")
		},
	}
	exec := staking.NewExecutor(log, mockRPC, &signer, programID)

	instruction := solana.NewInstruction(programID, solana.AccountMetaSlice{}, []byte{1})
	_, _, err := exec.ExecuteTransaction(t.Context(), instruction, nil)
	require.ErrorContains(t, err, "failed to get latest blockhash")
}

func TestSDK_Staking_Executor_SignatureNeverVisible_NotResent(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	programID := solana.NewWallet().PublicKey()
	sig := fakeSignature()

	var sends, polls atomic.Int32
	mockRPC := newLandingRPC(sig, solanarpc.ConfirmationStatusConfirmed)
	mockRPC.SendTransactionWithOptsFunc = func(_ context.Context, _ *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
		sends.Add(1)
		return sig, nil
	}
	mockRPC.GetSignatureStatusesFunc = func(_ context.Context, _ bool, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
		polls.Add(1)
		return &solanarpc.GetSignatureStatusesResult{Value: []*solanarpc.SignatureStatusesResult{nil}}, nil
	}

	exec := staking.NewExecutor(log, mockRPC, &signer, programID,
		staking.WithWaitForVisibleTimeout(50*time.Millisecond),
		staking.WithPollInterval(5*time.Millisecond),
	)

	instruction := solana.NewInstruction(programID, solana.AccountMetaSlice{}, []byte{1})
	_, _, err := exec.ExecuteTransaction(t.Context(), instruction, nil)
	require.ErrorContains(t, err, "transaction dropped or rejected")
	require.Equal(t, int32(1), sends.Load())
	require.Greater(t, polls.Load(), int32(1))
}

func TestSDK_Staking_Executor_OnChainFailure(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	programID := solana.NewWallet().PublicKey()
	sig := fakeSignature()

	mockRPC := newLandingRPC(sig, solanarpc.ConfirmationStatusConfirmed)
	mockRPC.GetSignatureStatusesFunc = func(_ context.Context, _ bool, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
		return &solanarpc.GetSignatureStatusesResult{
			Value: []*solanarpc.SignatureStatusesResult{{
				ConfirmationStatus: solanarpc.ConfirmationStatusConfirmed,
				Err:                map[string]any{"InstructionError": []any{0, "Custom"}},
			}},
		}, nil
	}

	exec := staking.NewExecutor(log, mockRPC, &signer, programID)

	instruction := solana.NewInstruction(programID, solana.AccountMetaSlice{}, []byte{1})
	_, _, err := exec.ExecuteTransaction(t.Context(), instruction, nil)
	require.ErrorIs(t, err, staking.ErrTransactionFailed)
}

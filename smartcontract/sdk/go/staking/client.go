package staking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
)

var (
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidInstruction is returned when an instruction config fails
	// validation, before anything is sent.
	ErrInvalidInstruction = errors.New("invalid instruction")
)

type Client struct {
	log      *slog.Logger
	rpc      RPCClient
	executor *executor
}

func New(log *slog.Logger, rpc RPCClient, signer *solana.PrivateKey, programID solana.PublicKey, opts ...ExecutorOption) *Client {
	return &Client{
		log:      log,
		rpc:      rpc,
		executor: NewExecutor(log, rpc, signer, programID, opts...),
	}
}

func (c *Client) ProgramID() solana.PublicKey {
	if c.executor == nil {
		return solana.PublicKey{}
	}
	return c.executor.programID
}

func (c *Client) Signer() *solana.PrivateKey {
	if c.executor == nil {
		return nil
	}
	return c.executor.signer
}

func (c *Client) fetchAccountData(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	account, err := c.rpc.GetAccountInfo(ctx, addr)
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account data: %w", err)
	}
	if account == nil || account.Value == nil {
		return nil, ErrAccountNotFound
	}
	return account.Value.Data.GetBinary(), nil
}

// GetConfig fetches the singleton Config account.
func (c *Client) GetConfig(ctx context.Context) (*Config, error) {
	pda, _, err := DeriveConfigPDA(c.executor.programID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}
	data, err := c.fetchAccountData(ctx, pda)
	if err != nil {
		return nil, err
	}
	config, err := DeserializeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize config: %w", err)
	}
	return config, nil
}

// GetUserAccount fetches the user account of the given wallet.
// ErrAccountNotFound means the wallet has not called initialize_user yet.
func (c *Client) GetUserAccount(ctx context.Context, owner solana.PublicKey) (*UserAccount, error) {
	pda, _, err := DeriveUserPDA(c.executor.programID, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}
	data, err := c.fetchAccountData(ctx, pda)
	if err != nil {
		return nil, err
	}
	user, err := DeserializeUserAccount(data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize user account: %w", err)
	}
	return user, nil
}

// GetStakeAccount fetches the stake record of a mint.
func (c *Client) GetStakeAccount(ctx context.Context, mint solana.PublicKey) (*StakeAccount, error) {
	pda, _, err := DeriveStakePDA(c.executor.programID, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}
	data, err := c.fetchAccountData(ctx, pda)
	if err != nil {
		return nil, err
	}
	stake, err := DeserializeStakeAccount(data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize stake account: %w", err)
	}
	return stake, nil
}

// GetStakeAccountsByOwner lists every stake record owned by the given wallet.
func (c *Client) GetStakeAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]StakeAccount, error) {
	opts := &solanarpc.GetProgramAccountsOpts{
		Filters: []solanarpc.RPCFilter{
			{
				Memcmp: &solanarpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  solana.Base58(DiscriminatorStakeAccount[:]),
				},
			},
			{
				Memcmp: &solanarpc.RPCFilterMemcmp{
					Offset: StakeAccountOwnerOffset,
					Bytes:  solana.Base58(owner.Bytes()),
				},
			},
		},
	}

	accounts, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.executor.programID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get program accounts: %w", err)
	}

	stakes := make([]StakeAccount, 0, len(accounts))
	for _, acct := range accounts {
		stake, err := DeserializeStakeAccount(acct.Account.Data.GetBinary())
		if err != nil {
			c.log.Warn("failed to deserialize stake account", "pubkey", acct.Pubkey, "error", err)
			continue
		}
		stakes = append(stakes, *stake)
	}
	return stakes, nil
}

// TokenBalance is the balance of an SPL token account in base units.
type TokenBalance struct {
	Amount   uint64
	Decimals uint8
	UIAmount string
}

// GetTokenBalance fetches the balance of an SPL token account.
func (c *Client) GetTokenBalance(ctx context.Context, tokenAccount solana.PublicKey) (*TokenBalance, error) {
	res, err := c.rpc.GetTokenAccountBalance(ctx, tokenAccount, solanarpc.CommitmentConfirmed)
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get token account balance: %w", err)
	}
	if res == nil || res.Value == nil {
		return nil, ErrAccountNotFound
	}
	amount, err := strconv.ParseUint(res.Value.Amount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token amount %q: %w", res.Value.Amount, err)
	}
	return &TokenBalance{
		Amount:   amount,
		Decimals: res.Value.Decimals,
		UIAmount: res.Value.UiAmountString,
	}, nil
}

// GetRewardsBalance fetches the reward token balance held by the owner's
// associated token account for the program's rewards mint.
func (c *Client) GetRewardsBalance(ctx context.Context, owner solana.PublicKey) (*TokenBalance, error) {
	rewardsMint, _, err := DeriveRewardsMintPDA(c.executor.programID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}
	ata, err := DeriveAssociatedTokenAddress(rewardsMint, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to derive associated token address: %w", err)
	}
	return c.GetTokenBalance(ctx, ata)
}

// InitializeUser creates the user account of the signer.
func (c *Client) InitializeUser(ctx context.Context) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	signer := c.Signer()
	if signer == nil {
		return solana.Signature{}, nil, ErrNoPrivateKey
	}
	instruction, err := BuildInitializeUserInstruction(c.executor.programID, InitializeUserInstructionConfig{
		User: signer.PublicKey(),
	})
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return c.execute(ctx, instruction)
}

// Stake locks an NFT of the given collection into the program.
func (c *Client) Stake(ctx context.Context, mint, collectionMint solana.PublicKey) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	signer := c.Signer()
	if signer == nil {
		return solana.Signature{}, nil, ErrNoPrivateKey
	}
	instruction, err := BuildStakeInstruction(c.executor.programID, StakeInstructionConfig{
		User:           signer.PublicKey(),
		Mint:           mint,
		CollectionMint: collectionMint,
	})
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return c.execute(ctx, instruction)
}

// Unstake releases a staked NFT back to the signer.
func (c *Client) Unstake(ctx context.Context, mint solana.PublicKey) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	signer := c.Signer()
	if signer == nil {
		return solana.Signature{}, nil, ErrNoPrivateKey
	}
	instruction, err := BuildUnstakeInstruction(c.executor.programID, UnstakeInstructionConfig{
		User: signer.PublicKey(),
		Mint: mint,
	})
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return c.execute(ctx, instruction)
}

// Claim converts accrued points into reward tokens.
func (c *Client) Claim(ctx context.Context) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	signer := c.Signer()
	if signer == nil {
		return solana.Signature{}, nil, ErrNoPrivateKey
	}
	instruction, err := BuildClaimInstruction(c.executor.programID, ClaimInstructionConfig{
		User: signer.PublicKey(),
	})
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return c.execute(ctx, instruction)
}

func (c *Client) execute(ctx context.Context, instruction solana.Instruction) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	sig, res, err := c.executor.ExecuteTransaction(ctx, instruction, nil)
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to execute instruction: %w", err)
	}
	return sig, res, nil
}

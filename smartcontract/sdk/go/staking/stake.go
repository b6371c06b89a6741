package staking

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

type StakeInstructionConfig struct {
	User           solana.PublicKey
	Mint           solana.PublicKey
	CollectionMint solana.PublicKey
}

func (c *StakeInstructionConfig) Validate() error {
	if c.User.IsZero() {
		return fmt.Errorf("%w: user public key is required", ErrInvalidInstruction)
	}
	if c.Mint.IsZero() {
		return fmt.Errorf("%w: mint public key is required", ErrInvalidInstruction)
	}
	if c.CollectionMint.IsZero() {
		return fmt.Errorf("%w: collection mint public key is required", ErrInvalidInstruction)
	}
	if c.Mint.Equals(c.CollectionMint) {
		return fmt.Errorf("%w: mint and collection mint must differ", ErrInvalidInstruction)
	}
	return nil
}

func BuildStakeInstruction(
	programID solana.PublicKey,
	config StakeInstructionConfig,
) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	data, err := serializeInstructionData(InstructionStake)
	if err != nil {
		return nil, err
	}

	configPDA, _, err := DeriveConfigPDA(programID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive config PDA: %w", err)
	}
	userPDA, _, err := DeriveUserPDA(programID, config.User)
	if err != nil {
		return nil, fmt.Errorf("failed to derive user PDA: %w", err)
	}
	stakePDA, _, err := DeriveStakePDA(programID, config.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive stake PDA: %w", err)
	}
	mintATA, err := DeriveAssociatedTokenAddress(config.Mint, config.User)
	if err != nil {
		return nil, fmt.Errorf("failed to derive mint ATA: %w", err)
	}
	metadata, err := DeriveMetadataAddress(config.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive metadata address: %w", err)
	}
	edition, err := DeriveMasterEditionAddress(config.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive master edition address: %w", err)
	}

	accounts := []*solana.AccountMeta{
		{PublicKey: config.User, IsSigner: true, IsWritable: true},
		{PublicKey: config.Mint, IsSigner: false, IsWritable: false},
		{PublicKey: config.CollectionMint, IsSigner: false, IsWritable: false},
		{PublicKey: mintATA, IsSigner: false, IsWritable: true},
		{PublicKey: metadata, IsSigner: false, IsWritable: false},
		{PublicKey: edition, IsSigner: false, IsWritable: false},
		{PublicKey: configPDA, IsSigner: false, IsWritable: false},
		{PublicKey: stakePDA, IsSigner: false, IsWritable: true},
		{PublicKey: userPDA, IsSigner: false, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: TokenMetadataProgramID, IsSigner: false, IsWritable: false},
	}

	return &solana.GenericInstruction{
		ProgID:        programID,
		AccountValues: accounts,
		DataBytes:     data,
	}, nil
}

package staking

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

type UnstakeInstructionConfig struct {
	User solana.PublicKey
	Mint solana.PublicKey
}

func (c *UnstakeInstructionConfig) Validate() error {
	if c.User.IsZero() {
		return fmt.Errorf("%w: user public key is required", ErrInvalidInstruction)
	}
	if c.Mint.IsZero() {
		return fmt.Errorf("%w: mint public key is required", ErrInvalidInstruction)
	}
	return nil
}

func BuildUnstakeInstruction(
	programID solana.PublicKey,
	config UnstakeInstructionConfig,
) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	data, err := serializeInstructionData(InstructionUnstake)
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
	edition, err := DeriveMasterEditionAddress(config.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive master edition address: %w", err)
	}

	accounts := []*solana.AccountMeta{
		{PublicKey: config.User, IsSigner: true, IsWritable: true},
		{PublicKey: config.Mint, IsSigner: false, IsWritable: false},
		{PublicKey: mintATA, IsSigner: false, IsWritable: true},
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

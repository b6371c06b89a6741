package staking

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

type ClaimInstructionConfig struct {
	User solana.PublicKey
}

func (c *ClaimInstructionConfig) Validate() error {
	if c.User.IsZero() {
		return fmt.Errorf("%w: user public key is required", ErrInvalidInstruction)
	}
	return nil
}

func BuildClaimInstruction(
	programID solana.PublicKey,
	config ClaimInstructionConfig,
) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	data, err := serializeInstructionData(InstructionClaim)
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
	rewardsMint, _, err := DeriveRewardsMintPDA(programID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive rewards mint PDA: %w", err)
	}
	rewardsATA, err := DeriveAssociatedTokenAddress(rewardsMint, config.User)
	if err != nil {
		return nil, fmt.Errorf("failed to derive rewards ATA: %w", err)
	}

	accounts := []*solana.AccountMeta{
		{PublicKey: config.User, IsSigner: true, IsWritable: true},
		{PublicKey: userPDA, IsSigner: false, IsWritable: true},
		{PublicKey: rewardsMint, IsSigner: false, IsWritable: true},
		{PublicKey: configPDA, IsSigner: false, IsWritable: false},
		{PublicKey: rewardsATA, IsSigner: false, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: AssociatedTokenProgramID, IsSigner: false, IsWritable: false},
	}

	return &solana.GenericInstruction{
		ProgID:        programID,
		AccountValues: accounts,
		DataBytes:     data,
	}, nil
}

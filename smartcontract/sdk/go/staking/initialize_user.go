package staking

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

type InitializeUserInstructionConfig struct {
	User solana.PublicKey
}

func (c *InitializeUserInstructionConfig) Validate() error {
	if c.User.IsZero() {
		return fmt.Errorf("%w: user public key is required", ErrInvalidInstruction)
	}
	return nil
}

func BuildInitializeUserInstruction(
	programID solana.PublicKey,
	config InitializeUserInstructionConfig,
) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	data, err := serializeInstructionData(InstructionInitializeUser)
	if err != nil {
		return nil, err
	}

	userPDA, _, err := DeriveUserPDA(programID, config.User)
	if err != nil {
		return nil, fmt.Errorf("failed to derive user PDA: %w", err)
	}

	accounts := []*solana.AccountMeta{
		{PublicKey: config.User, IsSigner: true, IsWritable: true},
		{PublicKey: userPDA, IsSigner: false, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	}

	return &solana.GenericInstruction{
		ProgID:        programID,
		AccountValues: accounts,
		DataBytes:     data,
	}, nil
}

// serializeInstructionData encodes an argument-less Anchor instruction.
func serializeInstructionData(discriminator [8]byte) ([]byte, error) {
	data, err := borsh.Serialize(struct {
		Discriminator [8]uint8
	}{
		Discriminator: discriminator,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize args: %w", err)
	}
	return data, nil
}

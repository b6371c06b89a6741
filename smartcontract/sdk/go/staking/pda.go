package staking

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrInvalidSeeds is returned when a seed list cannot be used for derivation.
	ErrInvalidSeeds = errors.New("invalid seeds")

	// ErrDerivationFailed is returned when no bump in 255..1 yields an off-curve address.
	ErrDerivationFailed = errors.New("unable to find a viable program address bump")
)

// DeriveAddress searches bumps from 255 down to 1 and returns the first one for
// which sha256(seeds || bump || programID || "ProgramDerivedAddress") is off the
// ed25519 curve.
func DeriveAddress(programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %d seeds exceeds max %d", ErrInvalidSeeds, len(seeds), MaxSeeds-1)
	}
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return solana.PublicKey{}, 0, fmt.Errorf("%w: seed %d length %d exceeds max %d", ErrInvalidSeeds, i, len(seed), MaxSeedLength)
		}
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump > 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := solana.CreateProgramAddress(withBump, programID)
		if err != nil {
			// On-curve candidate, keep searching.
			continue
		}
		return addr, uint8(bump), nil
	}
	return solana.PublicKey{}, 0, ErrDerivationFailed
}

// DeriveConfigPDA derives the singleton config account.
// Seeds: ["config"]
func DeriveConfigPDA(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return DeriveAddress(programID, [][]byte{[]byte(ConfigSeed)})
}

// DeriveUserPDA derives the user account owned by the given wallet.
// Seeds: ["user", owner]
func DeriveUserPDA(programID solana.PublicKey, owner solana.PublicKey) (solana.PublicKey, uint8, error) {
	return DeriveAddress(programID, [][]byte{[]byte(UserSeed), owner.Bytes()})
}

// DeriveStakePDA derives the stake record for an NFT mint.
// Seeds: ["stake", mint, configPDA]
func DeriveStakePDA(programID solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	config, _, err := DeriveConfigPDA(programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive config PDA: %w", err)
	}
	return DeriveAddress(programID, [][]byte{[]byte(StakeSeed), mint.Bytes(), config.Bytes()})
}

// DeriveRewardsMintPDA derives the rewards token mint.
// Seeds: ["rewards", configPDA]
func DeriveRewardsMintPDA(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	config, _, err := DeriveConfigPDA(programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive config PDA: %w", err)
	}
	return DeriveAddress(programID, [][]byte{[]byte(RewardsSeed), config.Bytes()})
}

// DeriveAssociatedTokenAddress derives the canonical token account of owner for mint.
// Seeds: [owner, tokenProgram, mint] under the associated token program.
func DeriveAssociatedTokenAddress(mint, owner solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := DeriveAddress(AssociatedTokenProgramID, [][]byte{
		owner.Bytes(),
		TokenProgramID.Bytes(),
		mint.Bytes(),
	})
	return addr, err
}

// DeriveMetadataAddress derives the token metadata account of a mint.
// Seeds: ["metadata", metadataProgram, mint]
func DeriveMetadataAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := DeriveAddress(TokenMetadataProgramID, [][]byte{
		[]byte(MetadataSeed),
		TokenMetadataProgramID.Bytes(),
		mint.Bytes(),
	})
	return addr, err
}

// DeriveMasterEditionAddress derives the master edition account of a mint.
// Seeds: ["metadata", metadataProgram, mint, "edition"]
func DeriveMasterEditionAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := DeriveAddress(TokenMetadataProgramID, [][]byte{
		[]byte(MetadataSeed),
		TokenMetadataProgramID.Bytes(),
		mint.Bytes(),
		[]byte(EditionSeed),
	})
	return addr, err
}

package staking_test

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
	"github.com/stretchr/testify/require"
)

func TestSDK_Staking_DeriveAddress_MatchesFindProgramAddress(t *testing.T) {
	t.Parallel()

	programID := solana.MustPublicKeyFromBase58(staking.DefaultProgramID)
	owner := solana.NewWallet().PublicKey()
	seeds := [][]byte{[]byte(staking.UserSeed), owner.Bytes()}

	addr, bump, err := staking.DeriveAddress(programID, seeds)
	require.NoError(t, err)

	wantAddr, wantBump, err := solana.FindProgramAddress(seeds, programID)
	require.NoError(t, err)
	require.Equal(t, wantAddr, addr)
	require.Equal(t, wantBump, bump)
}

func TestSDK_Staking_DeriveAddress_Deterministic(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()

	addr1, bump1, err := staking.DeriveConfigPDA(programID)
	require.NoError(t, err)
	addr2, bump2, err := staking.DeriveConfigPDA(programID)
	require.NoError(t, err)

	require.Equal(t, addr1, addr2)
	require.Equal(t, bump1, bump2)
}

func TestSDK_Staking_DeriveAddress_InvalidSeeds(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()

	t.Run("seed too long", func(t *testing.T) {
		t.Parallel()
		_, _, err := staking.DeriveAddress(programID, [][]byte{bytes.Repeat([]byte{1}, staking.MaxSeedLength+1)})
		require.ErrorIs(t, err, staking.ErrInvalidSeeds)
	})

	t.Run("too many seeds", func(t *testing.T) {
		t.Parallel()
		seeds := make([][]byte, staking.MaxSeeds)
		for i := range seeds {
			seeds[i] = []byte{byte(i)}
		}
		_, _, err := staking.DeriveAddress(programID, seeds)
		require.ErrorIs(t, err, staking.ErrInvalidSeeds)
	})

	t.Run("max seeds and max length", func(t *testing.T) {
		t.Parallel()
		seeds := make([][]byte, staking.MaxSeeds-1)
		for i := range seeds {
			seeds[i] = bytes.Repeat([]byte{byte(i)}, staking.MaxSeedLength)
		}
		_, _, err := staking.DeriveAddress(programID, seeds)
		require.NoError(t, err)
	})
}

func TestSDK_Staking_DeriveStakePDA_UsesConfigSeed(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	configPDA, _, err := staking.DeriveConfigPDA(programID)
	require.NoError(t, err)

	got, gotBump, err := staking.DeriveStakePDA(programID, mint)
	require.NoError(t, err)

	want, wantBump, err := staking.DeriveAddress(programID, [][]byte{
		[]byte(staking.StakeSeed),
		mint.Bytes(),
		configPDA.Bytes(),
	})
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, wantBump, gotBump)
}

func TestSDK_Staking_DeriveStakePDA_DistinctPerMint(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()

	a, _, err := staking.DeriveStakePDA(programID, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	b, _, err := staking.DeriveStakePDA(programID, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestSDK_Staking_DeriveUserPDA_DistinctPerProgram(t *testing.T) {
	t.Parallel()

	owner := solana.NewWallet().PublicKey()

	a, _, err := staking.DeriveUserPDA(solana.NewWallet().PublicKey(), owner)
	require.NoError(t, err)
	b, _, err := staking.DeriveUserPDA(solana.NewWallet().PublicKey(), owner)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestSDK_Staking_DeriveRewardsMintPDA(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	configPDA, _, err := staking.DeriveConfigPDA(programID)
	require.NoError(t, err)

	got, _, err := staking.DeriveRewardsMintPDA(programID)
	require.NoError(t, err)

	want, _, err := solana.FindProgramAddress([][]byte{[]byte(staking.RewardsSeed), configPDA.Bytes()}, programID)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSDK_Staking_DeriveAssociatedTokenAddress(t *testing.T) {
	t.Parallel()

	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	got, err := staking.DeriveAssociatedTokenAddress(mint, owner)
	require.NoError(t, err)

	again, err := staking.DeriveAssociatedTokenAddress(mint, owner)
	require.NoError(t, err)
	require.Equal(t, got, again)

	want, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSDK_Staking_DeriveMetadataAndEdition(t *testing.T) {
	t.Parallel()

	mint := solana.NewWallet().PublicKey()

	metadata, err := staking.DeriveMetadataAddress(mint)
	require.NoError(t, err)
	edition, err := staking.DeriveMasterEditionAddress(mint)
	require.NoError(t, err)
	require.NotEqual(t, metadata, edition)

	want, _, err := solana.FindProgramAddress([][]byte{
		[]byte("metadata"),
		staking.TokenMetadataProgramID.Bytes(),
		mint.Bytes(),
	}, staking.TokenMetadataProgramID)
	require.NoError(t, err)
	require.Equal(t, want, metadata)

	wantEdition, _, err := solana.FindProgramAddress([][]byte{
		[]byte("metadata"),
		staking.TokenMetadataProgramID.Bytes(),
		mint.Bytes(),
		[]byte("edition"),
	}, staking.TokenMetadataProgramID)
	require.NoError(t, err)
	require.Equal(t, wantEdition, edition)
}

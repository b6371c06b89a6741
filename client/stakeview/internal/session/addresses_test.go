package session_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/session"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
	"github.com/stretchr/testify/require"
)

func TestStakeview_Session_AddressBook_MatchesDeriver(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	book, err := session.NewAddressBook(programID)
	require.NoError(t, err)

	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	// Twice, so the second pass may be served from the cache.
	for range 2 {
		cfg, err := book.Config()
		require.NoError(t, err)
		wantCfg, wantBump, err := staking.DeriveConfigPDA(programID)
		require.NoError(t, err)
		require.Equal(t, session.DerivedAddress{Address: wantCfg, Bump: wantBump}, cfg)

		user, err := book.User(owner)
		require.NoError(t, err)
		wantUser, wantBump, err := staking.DeriveUserPDA(programID, owner)
		require.NoError(t, err)
		require.Equal(t, session.DerivedAddress{Address: wantUser, Bump: wantBump}, user)

		stake, err := book.Stake(mint)
		require.NoError(t, err)
		wantStake, wantBump, err := staking.DeriveStakePDA(programID, mint)
		require.NoError(t, err)
		require.Equal(t, session.DerivedAddress{Address: wantStake, Bump: wantBump}, stake)

		rewards, err := book.RewardsMint()
		require.NoError(t, err)
		wantRewards, wantBump, err := staking.DeriveRewardsMintPDA(programID)
		require.NoError(t, err)
		require.Equal(t, session.DerivedAddress{Address: wantRewards, Bump: wantBump}, rewards)

		ata, err := book.AssociatedTokenAccount(mint, owner)
		require.NoError(t, err)
		wantATA, err := staking.DeriveAssociatedTokenAddress(mint, owner)
		require.NoError(t, err)
		require.Equal(t, session.DerivedAddress{Address: wantATA}, ata)

		edition, err := book.Edition(mint)
		require.NoError(t, err)
		wantEdition, err := staking.DeriveMasterEditionAddress(mint)
		require.NoError(t, err)
		require.Equal(t, wantEdition, edition.Address)
	}
}

func TestStakeview_Session_AddressBook_Lookup(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	book, err := session.NewAddressBook(programID)
	require.NoError(t, err)
	mint := solana.NewWallet().PublicKey()

	got, err := book.Lookup(session.KindMetadata, mint, solana.PublicKey{})
	require.NoError(t, err)
	want, err := staking.DeriveMetadataAddress(mint)
	require.NoError(t, err)
	require.Equal(t, want, got.Address)

	_, err = book.Lookup("vault", mint, solana.PublicKey{})
	require.Error(t, err)
}

package session_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/session"
	"github.com/malbeclabs/nftstake/config"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
	"github.com/stretchr/testify/require"
)

func writeKeypair(t *testing.T, key solana.PrivateKey) string {
	t.Helper()
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestStakeview_Session_Wallets(t *testing.T) {
	t.Parallel()

	key := solana.NewWallet().PrivateKey
	kp := session.NewKeypairWallet(key)
	require.True(t, kp.Connected())
	require.Equal(t, key.PublicKey(), kp.PublicKey())

	addr := solana.NewWallet().PublicKey()
	watch, err := session.NewWatchWallet(addr.String())
	require.NoError(t, err)
	require.True(t, watch.Connected())
	require.Equal(t, addr, watch.PublicKey())

	_, err = session.NewWatchWallet("not-a-wallet")
	require.ErrorIs(t, err, staking.ErrInvalidAddress)

	require.False(t, session.NoWallet{}.Connected())
}

func TestStakeview_Session_LoadKeypairWallet(t *testing.T) {
	t.Parallel()

	key := solana.NewWallet().PrivateKey
	w, err := session.LoadKeypairWallet(writeKeypair(t, key))
	require.NoError(t, err)
	require.Equal(t, key.PublicKey(), w.PublicKey())

	_, err = session.LoadKeypairWallet(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestStakeview_Session_RequireSigner(t *testing.T) {
	t.Parallel()

	sess, err := session.New(slog.Default(), nil, solana.NewWallet().PublicKey(), nil)
	require.NoError(t, err)

	_, err = sess.RequireSigner()
	require.ErrorIs(t, err, session.ErrWalletNotConnected)
	require.Nil(t, sess.Program().Signer())

	watch, err := session.NewWatchWallet(solana.NewWallet().PublicKey().String())
	require.NoError(t, err)
	sess.Connect(watch)
	_, err = sess.RequireSigner()
	require.ErrorIs(t, err, session.ErrReadOnlyWallet)

	key := solana.NewWallet().PrivateKey
	sess.Connect(session.NewKeypairWallet(key))
	signer, err := sess.RequireSigner()
	require.NoError(t, err)
	require.Equal(t, key.PublicKey(), signer.PublicKey())
	require.Equal(t, key.PublicKey(), sess.Program().Signer().PublicKey())
	require.Equal(t, sess.ProgramID(), sess.Program().ProgramID())
}

func TestStakeview_Session_OnWalletChange(t *testing.T) {
	t.Parallel()

	sess, err := session.New(slog.Default(), nil, solana.NewWallet().PublicKey(), session.NewKeypairWallet(solana.NewWallet().PrivateKey))
	require.NoError(t, err)

	var events []bool
	sess.OnWalletChange(func(w session.Wallet) { events = append(events, w.Connected()) })

	sess.Disconnect()
	sess.Connect(session.NewKeypairWallet(solana.NewWallet().PrivateKey))
	require.Equal(t, []bool{false, true}, events)
	require.True(t, sess.Wallet().Connected())
}

func TestStakeview_Session_New_RequiresProgramID(t *testing.T) {
	t.Parallel()

	_, err := session.New(slog.Default(), nil, solana.PublicKey{}, nil)
	require.ErrorIs(t, err, staking.ErrNoProgramID)
}

func TestStakeview_Session_NewFromSettings(t *testing.T) {
	t.Parallel()

	network, err := config.NetworkConfigForEnv(config.EnvLocalnet)
	require.NoError(t, err)

	key := solana.NewWallet().PrivateKey
	sess, err := session.NewFromSettings(slog.Default(), &config.Settings{
		Network: network,
		Keypair: writeKeypair(t, key),
		Wallet:  solana.NewWallet().PublicKey().String(),
	})
	require.NoError(t, err)
	require.Equal(t, key.PublicKey(), sess.Wallet().PublicKey(), "keypair wins over watch address")

	addr := solana.NewWallet().PublicKey()
	sess, err = session.NewFromSettings(slog.Default(), &config.Settings{Network: network, Wallet: addr.String()})
	require.NoError(t, err)
	require.Equal(t, addr, sess.Wallet().PublicKey())

	_, err = session.NewFromSettings(slog.Default(), &config.Settings{Network: network, Wallet: "bad"})
	require.Error(t, err)
}

package session

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

// Wallet is the identity the session acts for.
type Wallet interface {
	PublicKey() solana.PublicKey
	Connected() bool
}

// Signer is a wallet that can sign transactions.
type Signer interface {
	Wallet
	PrivateKey() *solana.PrivateKey
}

// KeypairWallet signs with a local keypair.
type KeypairWallet struct {
	key solana.PrivateKey
}

func NewKeypairWallet(key solana.PrivateKey) *KeypairWallet {
	return &KeypairWallet{key: key}
}

// LoadKeypairWallet reads a solana-keygen JSON keypair file.
func LoadKeypairWallet(path string) (*KeypairWallet, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load keypair from %s: %w", path, err)
	}
	return &KeypairWallet{key: key}, nil
}

func (w *KeypairWallet) PublicKey() solana.PublicKey    { return w.key.PublicKey() }
func (w *KeypairWallet) Connected() bool                { return true }
func (w *KeypairWallet) PrivateKey() *solana.PrivateKey { return &w.key }

// WatchWallet is a read-only wallet: it has an address but cannot sign.
type WatchWallet struct {
	address solana.PublicKey
}

func NewWatchWallet(address string) (*WatchWallet, error) {
	pk, err := staking.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	return &WatchWallet{address: pk}, nil
}

func (w *WatchWallet) PublicKey() solana.PublicKey { return w.address }
func (w *WatchWallet) Connected() bool             { return true }

// NoWallet is the disconnected state.
type NoWallet struct{}

func (NoWallet) PublicKey() solana.PublicKey { return solana.PublicKey{} }
func (NoWallet) Connected() bool             { return false }

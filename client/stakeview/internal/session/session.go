package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/malbeclabs/nftstake/config"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrReadOnlyWallet     = errors.New("wallet cannot sign transactions")
)

// Session is the capability object shared by the read hooks and actions. It
// owns the program client for the currently connected wallet.
type Session struct {
	log       *slog.Logger
	rpc       staking.RPCClient
	opts      []staking.ExecutorOption
	Addresses *AddressBook

	mu        sync.RWMutex
	wallet    Wallet
	program   *staking.Client
	listeners []func(Wallet)
}

func New(log *slog.Logger, rpc staking.RPCClient, programID solana.PublicKey, wallet Wallet, opts ...staking.ExecutorOption) (*Session, error) {
	if programID.IsZero() {
		return nil, staking.ErrNoProgramID
	}
	addresses, err := NewAddressBook(programID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = NoWallet{}
	}
	s := &Session{
		log:       log,
		rpc:       rpc,
		opts:      opts,
		Addresses: addresses,
	}
	s.setWallet(wallet)
	return s, nil
}

// NewFromSettings builds a session against the configured cluster.
func NewFromSettings(log *slog.Logger, settings *config.Settings, opts ...staking.ExecutorOption) (*Session, error) {
	wallet, err := WalletFromSettings(settings)
	if err != nil {
		return nil, err
	}
	rpc := solanarpc.New(settings.Network.RPCURL)
	return New(log, rpc, settings.Network.ProgramID, wallet, opts...)
}

// WalletFromSettings picks the configured wallet. A keypair takes precedence
// over a watch-only wallet address.
func WalletFromSettings(settings *config.Settings) (Wallet, error) {
	switch {
	case settings.Keypair != "":
		w, err := LoadKeypairWallet(settings.Keypair)
		if err != nil {
			return nil, err
		}
		return w, nil
	case settings.Wallet != "":
		w, err := NewWatchWallet(settings.Wallet)
		if err != nil {
			return nil, fmt.Errorf("failed to parse wallet: %w", err)
		}
		return w, nil
	}
	return NoWallet{}, nil
}

func (s *Session) ProgramID() solana.PublicKey {
	return s.Addresses.ProgramID()
}

// Program returns the client bound to the current wallet.
func (s *Session) Program() *staking.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.program
}

func (s *Session) Wallet() Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wallet
}

// RequireSigner returns the connected signing wallet or the reason there is none.
func (s *Session) RequireSigner() (Signer, error) {
	w := s.Wallet()
	if !w.Connected() {
		return nil, ErrWalletNotConnected
	}
	signer, ok := w.(Signer)
	if !ok {
		return nil, ErrReadOnlyWallet
	}
	return signer, nil
}

// Connect swaps in a new wallet and notifies listeners.
func (s *Session) Connect(wallet Wallet) {
	s.setWallet(wallet)
	s.notify(wallet)
}

// Disconnect drops the wallet and notifies listeners.
func (s *Session) Disconnect() {
	s.Connect(NoWallet{})
}

// OnWalletChange registers fn to run after every Connect or Disconnect.
func (s *Session) OnWalletChange(fn func(Wallet)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) setWallet(wallet Wallet) {
	var key *solana.PrivateKey
	if signer, ok := wallet.(Signer); ok {
		key = signer.PrivateKey()
	}
	program := staking.New(s.log, s.rpc, key, s.Addresses.ProgramID(), s.opts...)

	s.mu.Lock()
	s.wallet = wallet
	s.program = program
	s.mu.Unlock()

	s.log.Debug("session wallet changed", "wallet", wallet.PublicKey(), "connected", wallet.Connected())
}

func (s *Session) notify(wallet Wallet) {
	s.mu.RLock()
	listeners := make([]func(Wallet), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(wallet)
	}
}

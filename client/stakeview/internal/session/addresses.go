package session

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

// Address kinds understood by the address book.
const (
	KindConfig   = "config"
	KindUser     = "user"
	KindStake    = "stake"
	KindRewards  = "rewards"
	KindATA      = "ata"
	KindMetadata = "metadata"
	KindEdition  = "edition"
)

// DerivedAddress is a program derived address and its bump. Bump is zero for
// kinds whose bump is not exposed.
type DerivedAddress struct {
	Address solana.PublicKey
	Bump    uint8
}

// AddressBook memoizes derived addresses for one program. Entries are pure
// functions of their inputs so they never expire.
type AddressBook struct {
	programID solana.PublicKey
	cache     *ristretto.Cache
}

func NewAddressBook(programID solana.PublicKey) (*AddressBook, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     10_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create address cache: %w", err)
	}
	return &AddressBook{programID: programID, cache: cache}, nil
}

func (b *AddressBook) ProgramID() solana.PublicKey {
	return b.programID
}

func (b *AddressBook) Config() (DerivedAddress, error) {
	return b.memo(KindConfig, "", func() (DerivedAddress, error) {
		addr, bump, err := staking.DeriveConfigPDA(b.programID)
		return DerivedAddress{addr, bump}, err
	})
}

func (b *AddressBook) User(owner solana.PublicKey) (DerivedAddress, error) {
	return b.memo(KindUser, owner.String(), func() (DerivedAddress, error) {
		addr, bump, err := staking.DeriveUserPDA(b.programID, owner)
		return DerivedAddress{addr, bump}, err
	})
}

func (b *AddressBook) Stake(mint solana.PublicKey) (DerivedAddress, error) {
	return b.memo(KindStake, mint.String(), func() (DerivedAddress, error) {
		addr, bump, err := staking.DeriveStakePDA(b.programID, mint)
		return DerivedAddress{addr, bump}, err
	})
}

func (b *AddressBook) RewardsMint() (DerivedAddress, error) {
	return b.memo(KindRewards, "", func() (DerivedAddress, error) {
		addr, bump, err := staking.DeriveRewardsMintPDA(b.programID)
		return DerivedAddress{addr, bump}, err
	})
}

func (b *AddressBook) AssociatedTokenAccount(mint, owner solana.PublicKey) (DerivedAddress, error) {
	return b.memo(KindATA, mint.String()+":"+owner.String(), func() (DerivedAddress, error) {
		addr, err := staking.DeriveAssociatedTokenAddress(mint, owner)
		return DerivedAddress{Address: addr}, err
	})
}

func (b *AddressBook) Metadata(mint solana.PublicKey) (DerivedAddress, error) {
	return b.memo(KindMetadata, mint.String(), func() (DerivedAddress, error) {
		addr, err := staking.DeriveMetadataAddress(mint)
		return DerivedAddress{Address: addr}, err
	})
}

func (b *AddressBook) Edition(mint solana.PublicKey) (DerivedAddress, error) {
	return b.memo(KindEdition, mint.String(), func() (DerivedAddress, error) {
		addr, err := staking.DeriveMasterEditionAddress(mint)
		return DerivedAddress{Address: addr}, err
	})
}

// Lookup derives an address by kind name. key is the mint for mint-scoped
// kinds and the owner for the user kind; owner is only used by the ata kind.
func (b *AddressBook) Lookup(kind string, key, owner solana.PublicKey) (DerivedAddress, error) {
	switch kind {
	case KindConfig:
		return b.Config()
	case KindRewards:
		return b.RewardsMint()
	case KindUser:
		return b.User(key)
	case KindStake:
		return b.Stake(key)
	case KindATA:
		return b.AssociatedTokenAccount(key, owner)
	case KindMetadata:
		return b.Metadata(key)
	case KindEdition:
		return b.Edition(key)
	}
	return DerivedAddress{}, fmt.Errorf("unknown address kind %q", kind)
}

func (b *AddressBook) memo(kind, key string, derive func() (DerivedAddress, error)) (DerivedAddress, error) {
	cacheKey := kind + "/" + key
	if val, ok := b.cache.Get(cacheKey); ok {
		return val.(DerivedAddress), nil
	}
	d, err := derive()
	if err != nil {
		return DerivedAddress{}, err
	}
	b.cache.Set(cacheKey, d, 1)
	return d, nil
}

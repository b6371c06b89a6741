package staking

import (
	"fmt"
	"io"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Config is the singleton staking configuration account.
type Config struct {
	PointsPerStake uint8  // 1 byte
	MaxStake       uint8  // 1 byte
	FreezePeriod   uint32 // 4 bytes LE, seconds
	RewardsBump    uint8  // 1 byte
	Bump           uint8  // 1 byte
}

// FreezePeriodDuration returns the minimum holding time before unstake is allowed.
func (c *Config) FreezePeriodDuration() time.Duration {
	return time.Duration(c.FreezePeriod) * time.Second
}

func (c *Config) Serialize(w io.Writer) error {
	enc := bin.NewBorshEncoder(w)
	if err := enc.Encode(DiscriminatorConfig); err != nil {
		return err
	}
	if err := enc.Encode(c.PointsPerStake); err != nil {
		return err
	}
	if err := enc.Encode(c.MaxStake); err != nil {
		return err
	}
	if err := enc.Encode(c.FreezePeriod); err != nil {
		return err
	}
	if err := enc.Encode(c.RewardsBump); err != nil {
		return err
	}
	if err := enc.Encode(c.Bump); err != nil {
		return err
	}
	return nil
}

func (c *Config) Deserialize(data []byte) error {
	if len(data) < discriminatorSize {
		return fmt.Errorf("account data too short: %d bytes", len(data))
	}
	dec := bin.NewBorshDecoder(data[discriminatorSize:])
	if err := dec.Decode(&c.PointsPerStake); err != nil {
		return err
	}
	if err := dec.Decode(&c.MaxStake); err != nil {
		return err
	}
	if err := dec.Decode(&c.FreezePeriod); err != nil {
		return err
	}
	if err := dec.Decode(&c.RewardsBump); err != nil {
		return err
	}
	if err := dec.Decode(&c.Bump); err != nil {
		return err
	}
	return nil
}

// UserAccount tracks the points and stake count of one wallet.
type UserAccount struct {
	Points       uint32 // 4 bytes LE
	AmountStaked uint8  // 1 byte
	Bump         uint8  // 1 byte
}

func (u *UserAccount) Serialize(w io.Writer) error {
	enc := bin.NewBorshEncoder(w)
	if err := enc.Encode(DiscriminatorUser); err != nil {
		return err
	}
	if err := enc.Encode(u.Points); err != nil {
		return err
	}
	if err := enc.Encode(u.AmountStaked); err != nil {
		return err
	}
	if err := enc.Encode(u.Bump); err != nil {
		return err
	}
	return nil
}

func (u *UserAccount) Deserialize(data []byte) error {
	if len(data) < discriminatorSize {
		return fmt.Errorf("account data too short: %d bytes", len(data))
	}
	dec := bin.NewBorshDecoder(data[discriminatorSize:])
	if err := dec.Decode(&u.Points); err != nil {
		return err
	}
	if err := dec.Decode(&u.AmountStaked); err != nil {
		return err
	}
	if err := dec.Decode(&u.Bump); err != nil {
		return err
	}
	return nil
}

// StakeAccount records a single staked NFT.
type StakeAccount struct {
	Owner    solana.PublicKey // 32 bytes
	Mint     solana.PublicKey // 32 bytes
	StakedAt int64            // 8 bytes LE, unix seconds
	Bump     uint8            // 1 byte
}

// Offsets of the memcmp-filterable fields, discriminator included.
const (
	StakeAccountOwnerOffset = discriminatorSize
	StakeAccountMintOffset  = discriminatorSize + PublicKeySize
)

func (s *StakeAccount) StakedAtTime() time.Time {
	return time.Unix(s.StakedAt, 0).UTC()
}

func (s *StakeAccount) Serialize(w io.Writer) error {
	enc := bin.NewBorshEncoder(w)
	if err := enc.Encode(DiscriminatorStakeAccount); err != nil {
		return err
	}
	if err := enc.Encode(s.Owner); err != nil {
		return err
	}
	if err := enc.Encode(s.Mint); err != nil {
		return err
	}
	if err := enc.Encode(s.StakedAt); err != nil {
		return err
	}
	if err := enc.Encode(s.Bump); err != nil {
		return err
	}
	return nil
}

func (s *StakeAccount) Deserialize(data []byte) error {
	if len(data) < discriminatorSize {
		return fmt.Errorf("account data too short: %d bytes", len(data))
	}
	dec := bin.NewBorshDecoder(data[discriminatorSize:])
	if err := dec.Decode(&s.Owner); err != nil {
		return err
	}
	if err := dec.Decode(&s.Mint); err != nil {
		return err
	}
	if err := dec.Decode(&s.StakedAt); err != nil {
		return err
	}
	if err := dec.Decode(&s.Bump); err != nil {
		return err
	}
	return nil
}

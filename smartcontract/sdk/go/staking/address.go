package staking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ErrInvalidAddress is returned for address strings that are not 32-byte base58 keys.
var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress validates and decodes a user supplied base58 address.
func ParseAddress(s string) (solana.PublicKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return solana.PublicKey{}, fmt.Errorf("%w: address is required", ErrInvalidAddress)
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %q is not base58: %v", ErrInvalidAddress, s, err)
	}
	if len(raw) != PublicKeySize {
		return solana.PublicKey{}, fmt.Errorf("%w: %q decodes to %d bytes, want %d", ErrInvalidAddress, s, len(raw), PublicKeySize)
	}
	return solana.PublicKeyFromBytes(raw), nil
}

// ParseAddresses parses each entry with ParseAddress and fails on the first bad one.
func ParseAddresses(ss []string) ([]solana.PublicKey, error) {
	out := make([]solana.PublicKey, 0, len(ss))
	for _, s := range ss {
		pk, err := ParseAddress(s)
		if err != nil {
			return nil, err
		}
		out = append(out, pk)
	}
	return out, nil
}

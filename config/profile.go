package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"
)

// Profile is the on-disk stakeview profile. Every field is optional.
type Profile struct {
	Env       string `yaml:"env"`
	RPCURL    string `yaml:"rpc_url"`
	ProgramID string `yaml:"program_id"`
	Keypair   string `yaml:"keypair"`
	Wallet    string `yaml:"wallet"`
}

// LoadProfile reads a YAML profile. A missing file yields an empty profile.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		return &Profile{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &p, nil
}

// Settings is the resolved configuration a session is built from.
type Settings struct {
	Network *NetworkConfig
	Keypair string
	Wallet  string
}

// Resolve merges explicit overrides over the profile over the environment
// defaults. Empty override fields fall through to the next layer.
func Resolve(overrides Profile, profile *Profile) (*Settings, error) {
	if profile == nil {
		profile = &Profile{}
	}
	env := firstNonEmpty(overrides.Env, profile.Env, DefaultEnv)

	network, err := NetworkConfigForEnv(env)
	if err != nil {
		return nil, err
	}
	if rpcURL := firstNonEmpty(overrides.RPCURL, profile.RPCURL); rpcURL != "" {
		network.RPCURL = rpcURL
	}
	if programID := firstNonEmpty(overrides.ProgramID, profile.ProgramID); programID != "" {
		pk, err := solana.PublicKeyFromBase58(programID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse program ID: %w", err)
		}
		network.ProgramID = pk
	}

	return &Settings{
		Network: network,
		Keypair: firstNonEmpty(overrides.Keypair, profile.Keypair),
		Wallet:  firstNonEmpty(overrides.Wallet, profile.Wallet),
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

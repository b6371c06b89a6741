package config

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
)

const (
	EnvMainnetBeta = "mainnet-beta"
	EnvMainnet     = "mainnet"
	EnvTestnet     = "testnet"
	EnvDevnet      = "devnet"
	EnvLocalnet    = "localnet"
)

var (
	ErrInvalidEnvironment = fmt.Errorf("invalid environment")
)

type NetworkConfig struct {
	Moniker   string
	RPCURL    string
	WSRPCURL  string
	ProgramID solana.PublicKey
}

func NetworkConfigForEnv(env string) (*NetworkConfig, error) {
	programID, err := solana.PublicKeyFromBase58(StakingProgramID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse staking program ID: %w", err)
	}

	var config *NetworkConfig
	switch env {
	case EnvMainnetBeta, EnvMainnet:
		config = &NetworkConfig{
			Moniker:  EnvMainnetBeta,
			RPCURL:   MainnetSolanaRPC,
			WSRPCURL: MainnetSolanaWSRPC,
		}
	case EnvTestnet:
		config = &NetworkConfig{
			Moniker:  EnvTestnet,
			RPCURL:   TestnetSolanaRPC,
			WSRPCURL: TestnetSolanaWSRPC,
		}
	case EnvDevnet:
		config = &NetworkConfig{
			Moniker:  EnvDevnet,
			RPCURL:   DevnetSolanaRPC,
			WSRPCURL: DevnetSolanaWSRPC,
		}
	case EnvLocalnet:
		config = &NetworkConfig{
			Moniker:  EnvLocalnet,
			RPCURL:   LocalnetSolanaRPC,
			WSRPCURL: LocalnetSolanaWSRPC,
		}
	default:
		return nil, fmt.Errorf("%w %q, must be one of: %s, %s, %s, %s", ErrInvalidEnvironment, env, EnvMainnetBeta, EnvTestnet, EnvDevnet, EnvLocalnet)
	}
	config.ProgramID = programID

	rpcURL := os.Getenv(EnvVarRPCURL)
	if rpcURL != "" {
		config.RPCURL = rpcURL
	}

	programIDOverride := os.Getenv(EnvVarProgramID)
	if programIDOverride != "" {
		pk, err := solana.PublicKeyFromBase58(programIDOverride)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", EnvVarProgramID, err)
		}
		config.ProgramID = pk
	}

	return config, nil
}

package config

const (
	// Program constants. The staking program is deployed under the same ID on every cluster.
	StakingProgramID = "7dMsiW22eikw4o2hKMjPqg45ftzRM2ibc11VSdpeTdTY"

	// Mainnet constants.
	MainnetSolanaRPC   = "https://api.mainnet-beta.solana.com"
	MainnetSolanaWSRPC = "wss://api.mainnet-beta.solana.com"

	// Testnet constants.
	TestnetSolanaRPC   = "https://api.testnet.solana.com"
	TestnetSolanaWSRPC = "wss://api.testnet.solana.com"

	// Devnet constants.
	DevnetSolanaRPC   = "https://api.devnet.solana.com"
	DevnetSolanaWSRPC = "wss://api.devnet.solana.com"

	// Localnet constants.
	LocalnetSolanaRPC   = "http://127.0.0.1:8899"
	LocalnetSolanaWSRPC = "ws://127.0.0.1:8900"

	// DefaultEnv is the cluster used when no environment is configured.
	DefaultEnv = EnvDevnet

	// Environment variables that override the per-environment defaults.
	EnvVarRPCURL    = "STAKEVIEW_RPC_URL"
	EnvVarProgramID = "STAKEVIEW_PROGRAM_ID"
)

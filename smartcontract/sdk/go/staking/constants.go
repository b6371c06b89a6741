package staking

import "github.com/gagliardetto/solana-go"

// PDA seeds for the staking program.
const (
	ConfigSeed   = "config"
	UserSeed     = "user"
	StakeSeed    = "stake"
	RewardsSeed  = "rewards"
	MetadataSeed = "metadata"
	EditionSeed  = "edition"
)

// Anchor account and instruction names used to compute discriminators.
const (
	AccountNameConfig       = "Config"
	AccountNameUser         = "User"
	AccountNameStakeAccount = "StakeAccount"

	InstructionNameInitializeUser = "initialize_user"
	InstructionNameStake          = "stake"
	InstructionNameUnstake        = "unstake"
	InstructionNameClaim          = "claim"
)

// DefaultProgramID is the staking program deployed on devnet.
const DefaultProgramID = "7dMsiW22eikw4o2hKMjPqg45ftzRM2ibc11VSdpeTdTY"

var (
	TokenProgramID           = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedTokenProgramID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	TokenMetadataProgramID   = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
)

// Limits imposed by the runtime on derived addresses.
const (
	MaxSeeds      = 16
	MaxSeedLength = 32
	PublicKeySize = 32
)

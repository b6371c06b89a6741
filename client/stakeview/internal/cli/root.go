package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/malbeclabs/nftstake/config"
	"github.com/spf13/cobra"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

func Run() ExitCode {
	if err := NewRootCmd().Execute(); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stakeview",
		Short: "Stake NFTs and claim rewards with the staking program.",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "set debug logging level")
	flags.StringP("env", "e", "", "The network environment (mainnet-beta, testnet, devnet, localnet)")
	flags.String("rpc-url", "", "Override the RPC URL of the environment")
	flags.String("program-id", "", "Override the staking program ID")
	flags.StringP("keypair", "k", "", "Path to a solana-keygen keypair file used to sign")
	flags.StringP("wallet", "w", "", "Wallet address to view without signing")
	flags.String("profile", defaultProfilePath(), "Path to a YAML profile")

	rootCmd.AddCommand(
		NewStatusCmd().Command(),
		NewConfigCmd().Command(),
		NewInitCmd().Command(),
		NewStakeCmd().Command(),
		NewUnstakeCmd().Command(),
		NewCheckCmd().Command(),
		NewStakesCmd().Command(),
		NewClaimCmd().Command(),
		NewPDACmd().Command(),
	)

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func defaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stakeview", "profile.yml")
}

// loadSettings resolves the persistent flags over the profile file.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	flags := cmd.Root().PersistentFlags()
	var overrides config.Profile
	for name, dst := range map[string]*string{
		"env":        &overrides.Env,
		"rpc-url":    &overrides.RPCURL,
		"program-id": &overrides.ProgramID,
		"keypair":    &overrides.Keypair,
		"wallet":     &overrides.Wallet,
	} {
		v, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	profilePath, err := flags.GetString("profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get profile flag: %w", err)
	}

	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return nil, err
	}
	return config.Resolve(overrides, profile)
}

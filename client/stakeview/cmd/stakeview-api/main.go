package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/api"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/app"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/metrics"
	"github.com/malbeclabs/nftstake/config"
	flag "github.com/spf13/pflag"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	defaultListenAddr = ":8080"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.ShowVersion {
		fmt.Printf("version: %s, commit: %s, date: %s\n", version, commit, date)
		return nil
	}

	log := newLogger(cfg.Verbose)
	metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)

	profile, err := config.LoadProfile(cfg.Profile)
	if err != nil {
		return err
	}
	settings, err := config.Resolve(config.Profile{
		Env:       cfg.Env,
		RPCURL:    cfg.RPCURL,
		ProgramID: cfg.ProgramID,
		Keypair:   cfg.Keypair,
		Wallet:    cfg.Wallet,
	}, profile)
	if err != nil {
		return fmt.Errorf("failed to resolve settings: %w", err)
	}

	a, err := app.New(&app.Config{Logger: log, Settings: settings})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer a.Close()

	server, err := api.NewServer(&api.ServerConfig{
		Logger:         log,
		Reader:         a.Accounts,
		Submitter:      a.Actions,
		Addresses:      a.Session.Addresses,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	log.Info("stakeview api listening",
		"address", listener.Addr().String(),
		"env", settings.Network.Moniker,
		"program", settings.Network.ProgramID,
		"wallet", a.Session.Wallet().PublicKey(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.Serve(ctx, listener)
}

type Config struct {
	ShowVersion bool
	Verbose     bool
	ListenAddr  string

	Env       string
	RPCURL    string
	ProgramID string
	Keypair   string
	Wallet    string
	Profile   string

	AllowedOrigins []string
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadConfig() (Config, error) {
	var cfg Config
	var allowedOriginsCSV string

	flag.BoolVar(&cfg.ShowVersion, "version", false, "show version and exit")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "verbose mode - show debug logs")
	flag.StringVar(&cfg.ListenAddr, "listen-addr", getenv("LISTEN_ADDR", defaultListenAddr), "address to serve the API on (env: LISTEN_ADDR)")

	flag.StringVar(&cfg.Env, "env", getenv("STAKEVIEW_ENV", ""), "network environment (env: STAKEVIEW_ENV)")
	flag.StringVar(&cfg.RPCURL, "rpc-url", "", "override the RPC URL of the environment (env: "+config.EnvVarRPCURL+")")
	flag.StringVar(&cfg.ProgramID, "program-id", "", "override the staking program ID (env: "+config.EnvVarProgramID+")")
	flag.StringVar(&cfg.Keypair, "keypair", getenv("STAKEVIEW_KEYPAIR", ""), "keypair file used to sign submissions (env: STAKEVIEW_KEYPAIR)")
	flag.StringVar(&cfg.Wallet, "wallet", getenv("STAKEVIEW_WALLET", ""), "wallet address to serve read-only (env: STAKEVIEW_WALLET)")
	flag.StringVar(&cfg.Profile, "profile", getenv("STAKEVIEW_PROFILE", ""), "path to a YAML profile (env: STAKEVIEW_PROFILE)")
	flag.StringVar(&allowedOriginsCSV, "allowed-origins", getenv("ALLOWED_ORIGINS", ""), "CORS origins csv (env: ALLOWED_ORIGINS)")

	flag.Parse()

	cfg.AllowedOrigins = splitCSV(allowedOriginsCSV)

	if cfg.ListenAddr == "" {
		return Config{}, fmt.Errorf("listen address is empty (set LISTEN_ADDR or --listen-addr)")
	}

	return cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.RFC3339,
	}))
}

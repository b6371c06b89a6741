package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/actions"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/session"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reader is the read side the API serves from.
type Reader interface {
	GetConfig(ctx context.Context) (*staking.Config, error)
	GetUser(ctx context.Context, owner solana.PublicKey) (*staking.UserAccount, error)
	GetStake(ctx context.Context, mint solana.PublicKey) (*staking.StakeAccount, error)
	GetStakesByOwner(ctx context.Context, owner solana.PublicKey) ([]staking.StakeAccount, error)
}

// Submitter runs staking actions for the server's wallet.
type Submitter interface {
	InitializeUser(ctx context.Context) actions.Notice
	Stake(ctx context.Context, mintAddress, collectionMint string) actions.Notice
	Unstake(ctx context.Context, mintAddress string) actions.Notice
	Claim(ctx context.Context) actions.Notice
}

type ServerConfig struct {
	Logger    *slog.Logger
	Reader    Reader
	Submitter Submitter
	Addresses *session.AddressBook
	Clock     clockwork.Clock

	// AllowedOrigins enables CORS for a browser front-end when set.
	AllowedOrigins []string
}

func (c *ServerConfig) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Reader == nil {
		return errors.New("reader is required")
	}
	if c.Submitter == nil {
		return errors.New("submitter is required")
	}
	if c.Addresses == nil {
		return errors.New("address book is required")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return nil
}

type Server struct {
	log *slog.Logger
	cfg *ServerConfig

	Router chi.Router
}

func NewServer(cfg *ServerConfig) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	s := &Server{
		log:    cfg.Logger,
		cfg:    cfg,
		Router: r,
	}
	r.Get("/config", s.handleGetConfig)
	r.Get("/users/{wallet}", s.handleGetUser)
	r.Post("/users", s.handleInitializeUser)
	r.Get("/stakes/{mint}", s.handleGetStake)
	r.Get("/stakes", s.handleListStakes)
	r.Post("/stakes", s.handleStake)
	r.Delete("/stakes/{mint}", s.handleUnstake)
	r.Post("/claims", s.handleClaim)
	r.Get("/pda", s.handleGetPDA)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return s, nil
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("server shutdown error", "error", err)
		} else {
			s.log.Info("server shutdown via context")
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			s.log.Info("server closed")
			return nil
		}
		return err
	}
}

package accounts

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/gagliardetto/solana-go"
	"github.com/jellydator/ttlcache/v3"
	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/loadable"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/metrics"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
	"golang.org/x/sync/singleflight"
)

const (
	defaultConfigCacheTTL  = 10 * time.Minute
	defaultAccountCacheTTL = 5 * time.Second

	defaultGetStakesPoolSize = 16

	defaultFetchTimeout = 30 * time.Second
)

// ProgramClient is the read side of the staking program client.
type ProgramClient interface {
	GetConfig(ctx context.Context) (*staking.Config, error)
	GetUserAccount(ctx context.Context, owner solana.PublicKey) (*staking.UserAccount, error)
	GetStakeAccount(ctx context.Context, mint solana.PublicKey) (*staking.StakeAccount, error)
	GetStakeAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]staking.StakeAccount, error)
	GetRewardsBalance(ctx context.Context, owner solana.PublicKey) (*staking.TokenBalance, error)
}

type ProviderConfig struct {
	Logger *slog.Logger
	Client ProgramClient
	Clock  clockwork.Clock

	ConfigCacheTTL    time.Duration
	AccountCacheTTL   time.Duration
	GetStakesPoolSize int

	// FetchTimeout bounds a shared account load. It is independent of the
	// callers' contexts since several callers may be waiting on it.
	FetchTimeout time.Duration
}

func (c *ProviderConfig) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Client == nil {
		return errors.New("client is required")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.ConfigCacheTTL == 0 {
		c.ConfigCacheTTL = defaultConfigCacheTTL
	}
	if c.AccountCacheTTL == 0 {
		c.AccountCacheTTL = defaultAccountCacheTTL
	}
	if c.GetStakesPoolSize == 0 {
		c.GetStakesPoolSize = defaultGetStakesPoolSize
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	return nil
}

// Provider reads program accounts through a short-lived cache. Concurrent
// reads of the same account share one RPC call.
type Provider struct {
	log *slog.Logger
	cfg *ProviderConfig

	cache   *ttlcache.Cache[string, any]
	cacheMu sync.RWMutex
	// cacheGen is bumped by Invalidate. Loads started under an older
	// generation are neither cached nor joined by new readers.
	cacheGen uint64
	flight   singleflight.Group

	getStakesPool pond.ResultPool[StakeResult]
}

func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cache := ttlcache.New(
		ttlcache.WithTTL[string, any](cfg.AccountCacheTTL),
	)

	return &Provider{
		log:           cfg.Logger,
		cfg:           cfg,
		cache:         cache,
		getStakesPool: pond.NewResultPool[StakeResult](cfg.GetStakesPoolSize),
	}, nil
}

func (p *Provider) Clock() clockwork.Clock {
	return p.cfg.Clock
}

// Invalidate drops every cached account so the next read goes to the cluster.
func (p *Provider) Invalidate() {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	p.cacheGen++
	p.cache.DeleteAll()
	p.log.Debug("account cache invalidated", "generation", p.cacheGen)
}

// Close releases the stake lookup pool.
func (p *Provider) Close() {
	p.getStakesPool.StopAndWait()
}

func (p *Provider) GetConfig(ctx context.Context) (*staking.Config, error) {
	return fetch(ctx, p, metrics.KindConfig, configCacheKey, p.cfg.ConfigCacheTTL, func(ctx context.Context) (*staking.Config, error) {
		return p.cfg.Client.GetConfig(ctx)
	})
}

func (p *Provider) GetUser(ctx context.Context, owner solana.PublicKey) (*staking.UserAccount, error) {
	return fetch(ctx, p, metrics.KindUser, userCacheKey(owner), p.cfg.AccountCacheTTL, func(ctx context.Context) (*staking.UserAccount, error) {
		return p.cfg.Client.GetUserAccount(ctx, owner)
	})
}

func (p *Provider) GetStake(ctx context.Context, mint solana.PublicKey) (*staking.StakeAccount, error) {
	return fetch(ctx, p, metrics.KindStake, stakeCacheKey(mint), p.cfg.AccountCacheTTL, func(ctx context.Context) (*staking.StakeAccount, error) {
		return p.cfg.Client.GetStakeAccount(ctx, mint)
	})
}

// GetStakesByOwner lists the stake records of a wallet. Results are not cached.
func (p *Provider) GetStakesByOwner(ctx context.Context, owner solana.PublicKey) ([]staking.StakeAccount, error) {
	start := p.cfg.Clock.Now()
	stakes, err := p.cfg.Client.GetStakeAccountsByOwner(ctx, owner)
	observeFetch(metrics.KindStakes, err, p.cfg.Clock.Since(start))
	return stakes, err
}

// GetRewardsBalance reads the reward token balance of a wallet. Results are not cached.
func (p *Provider) GetRewardsBalance(ctx context.Context, owner solana.PublicKey) (*staking.TokenBalance, error) {
	start := p.cfg.Clock.Now()
	balance, err := p.cfg.Client.GetRewardsBalance(ctx, owner)
	observeFetch(metrics.KindRewards, err, p.cfg.Clock.Since(start))
	return balance, err
}

// StakeResult is the state of one mint in a batch lookup.
type StakeResult struct {
	Mint  solana.PublicKey
	Value loadable.Value[staking.StakeAccount]
}

// GetStakes looks up many mints concurrently. Each mint carries its own
// found, absent or failed state; one failure does not fail the batch.
func (p *Provider) GetStakes(ctx context.Context, mints []solana.PublicKey) ([]StakeResult, error) {
	group := p.getStakesPool.NewGroupContext(ctx)
	for _, mint := range mints {
		group.Submit(func() StakeResult {
			stake, err := p.GetStake(ctx, mint)
			return StakeResult{Mint: mint, Value: loadable.FromResult(stake, err)}
		})
	}
	return group.Wait()
}

// fetch serves key from cache or loads it through the flight group. Only
// found accounts are cached so a freshly created account shows up promptly.
//
// The shared load runs detached from ctx with its own timeout; each caller
// stops waiting when its own ctx is done without failing the others.
func fetch[T any](ctx context.Context, p *Provider, kind, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	v, gen := p.getCached(key)
	if v != nil {
		metrics.CacheHits.WithLabelValues(kind).Inc()
		return v.(*T), nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := p.flight.DoChan(flightKey(gen, key), func() (any, error) {
		ctx, cancel := context.WithTimeout(loadCtx, p.cfg.FetchTimeout)
		defer cancel()

		start := p.cfg.Clock.Now()
		v, err := load(ctx)
		observeFetch(kind, err, p.cfg.Clock.Since(start))
		if err != nil {
			return nil, err
		}
		if !p.setCached(gen, key, v, ttl) {
			p.log.Debug("discarding account loaded before invalidation", "key", key)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}

func observeFetch(kind string, err error, took time.Duration) {
	result := metrics.ResultFound
	switch {
	case errors.Is(err, staking.ErrAccountNotFound):
		result = metrics.ResultAbsent
	case err != nil:
		result = metrics.ResultFailed
	}
	metrics.Fetches.WithLabelValues(kind, result).Inc()
	metrics.FetchDuration.WithLabelValues(kind).Observe(took.Seconds())
}

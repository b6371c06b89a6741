package accounts

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

// StakeInfo describes how long an NFT has been staked and whether it can be
// unstaked yet.
type StakeInfo struct {
	StakedAt        time.Time
	Elapsed         time.Duration
	Days            int
	Hours           int
	Minutes         int
	FreezeRemaining time.Duration
	Unlocked        bool
}

// NewStakeInfo evaluates stake against the clock. A nil config leaves the
// freeze fields unset and reports the stake as unlocked.
func NewStakeInfo(clock clockwork.Clock, stake *staking.StakeAccount, cfg *staking.Config) StakeInfo {
	stakedAt := stake.StakedAtTime()
	elapsed := clock.Since(stakedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	info := StakeInfo{
		StakedAt: stakedAt,
		Elapsed:  elapsed,
		Days:     int(elapsed / (24 * time.Hour)),
		Hours:    int(elapsed % (24 * time.Hour) / time.Hour),
		Minutes:  int(elapsed % time.Hour / time.Minute),
		Unlocked: true,
	}
	if cfg != nil {
		if remaining := cfg.FreezePeriodDuration() - elapsed; remaining > 0 {
			info.FreezeRemaining = remaining
			info.Unlocked = false
		}
	}
	return info
}

// Duration renders the elapsed time as days, hours and minutes.
func (s StakeInfo) Duration() string {
	return fmt.Sprintf("%dd %dh %dm", s.Days, s.Hours, s.Minutes)
}

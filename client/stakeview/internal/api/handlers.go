package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/accounts"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/actions"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/loadable"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/session"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

type ConfigResponse struct {
	PointsPerStake      uint8  `json:"points_per_stake"`
	MaxStake            uint8  `json:"max_stake"`
	FreezePeriodSeconds uint32 `json:"freeze_period_seconds"`
	RewardsBump         uint8  `json:"rewards_bump"`
	Bump                uint8  `json:"bump"`
}

type UserResponse struct {
	Wallet       string `json:"wallet"`
	Points       uint32 `json:"points"`
	AmountStaked uint8  `json:"amount_staked"`
}

type StakeResponse struct {
	Mint                   string    `json:"mint"`
	Owner                  string    `json:"owner"`
	StakedAt               time.Time `json:"staked_at"`
	Duration               string    `json:"duration"`
	Unlocked               bool      `json:"unlocked"`
	FreezeRemainingSeconds int64     `json:"freeze_remaining_seconds"`
}

type PDAResponse struct {
	Kind    string `json:"kind"`
	Address string `json:"address"`
	Bump    *uint8 `json:"bump,omitempty"`
}

type NoticeResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Signature string `json:"signature,omitempty"`
	Error     string `json:"error,omitempty"`
}

type StakeRequest struct {
	Mint           string `json:"mint"`
	CollectionMint string `json:"collection_mint"`
}

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.cfg.Reader.GetConfig(r.Context())
	v := loadable.FromResult(cfg, err)
	if !s.writeNonFound(w, v.Status, v.Err) {
		return
	}
	s.writeJSON(w, http.StatusOK, ConfigResponse{
		PointsPerStake:      cfg.PointsPerStake,
		MaxStake:            cfg.MaxStake,
		FreezePeriodSeconds: cfg.FreezePeriod,
		RewardsBump:         cfg.RewardsBump,
		Bump:                cfg.Bump,
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	wallet, err := staking.ParseAddress(chi.URLParam(r, "wallet"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	user, err := s.cfg.Reader.GetUser(r.Context(), wallet)
	v := loadable.FromResult(user, err)
	if !s.writeNonFound(w, v.Status, v.Err) {
		return
	}
	s.writeJSON(w, http.StatusOK, UserResponse{
		Wallet:       wallet.String(),
		Points:       user.Points,
		AmountStaked: user.AmountStaked,
	})
}

func (s *Server) handleGetStake(w http.ResponseWriter, r *http.Request) {
	mint, err := staking.ParseAddress(chi.URLParam(r, "mint"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	stake, err := s.cfg.Reader.GetStake(r.Context(), mint)
	v := loadable.FromResult(stake, err)
	if !s.writeNonFound(w, v.Status, v.Err) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.stakeResponse(r, stake))
}

func (s *Server) handleListStakes(w http.ResponseWriter, r *http.Request) {
	owner, err := staking.ParseAddress(r.URL.Query().Get("owner"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	stakes, err := s.cfg.Reader.GetStakesByOwner(r.Context(), owner)
	if err != nil {
		s.log.Error("failed to list stakes", "owner", owner, "error", err)
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	out := make([]StakeResponse, 0, len(stakes))
	for i := range stakes {
		out = append(out, s.stakeResponse(r, &stakes[i]))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPDA(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := q.Get("kind")

	var key, owner solana.PublicKey
	var err error
	switch kind {
	case session.KindConfig, session.KindRewards:
	case session.KindUser, session.KindStake, session.KindMetadata, session.KindEdition:
		if key, err = staking.ParseAddress(q.Get("key")); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	case session.KindATA:
		if key, err = staking.ParseAddress(q.Get("key")); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		if owner, err = staking.ParseAddress(q.Get("owner")); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	default:
		s.writeJSON(w, http.StatusBadRequest, statusResponse{Status: "invalid", Error: "unknown kind " + kind})
		return
	}

	d, err := s.cfg.Addresses.Lookup(kind, key, owner)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := PDAResponse{Kind: kind, Address: d.Address.String()}
	if hasBump(kind) {
		bump := d.Bump
		resp.Bump = &bump
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInitializeUser(w http.ResponseWriter, r *http.Request) {
	s.writeNotice(w, s.cfg.Submitter.InitializeUser(r.Context()))
}

func (s *Server) handleStake(w http.ResponseWriter, r *http.Request) {
	var req StakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, statusResponse{Status: "invalid", Error: "malformed request body"})
		return
	}
	s.writeNotice(w, s.cfg.Submitter.Stake(r.Context(), req.Mint, req.CollectionMint))
}

func (s *Server) handleUnstake(w http.ResponseWriter, r *http.Request) {
	s.writeNotice(w, s.cfg.Submitter.Unstake(r.Context(), chi.URLParam(r, "mint")))
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	s.writeNotice(w, s.cfg.Submitter.Claim(r.Context()))
}

func (s *Server) stakeResponse(r *http.Request, stake *staking.StakeAccount) StakeResponse {
	cfg, err := s.cfg.Reader.GetConfig(r.Context())
	if err != nil {
		s.log.Warn("stake freeze state unavailable", "error", err)
	}
	info := accounts.NewStakeInfo(s.cfg.Clock, stake, cfg)
	return StakeResponse{
		Mint:                   stake.Mint.String(),
		Owner:                  stake.Owner.String(),
		StakedAt:               info.StakedAt,
		Duration:               info.Duration(),
		Unlocked:               info.Unlocked,
		FreezeRemainingSeconds: int64(info.FreezeRemaining.Seconds()),
	}
}

// writeNonFound writes the response for any status other than Found and
// reports whether the caller should go on to write the found value.
func (s *Server) writeNonFound(w http.ResponseWriter, status loadable.Status, err error) bool {
	switch status {
	case loadable.Found:
		return true
	case loadable.Absent:
		s.writeJSON(w, http.StatusNotFound, statusResponse{Status: loadable.Absent.String()})
	default:
		s.log.Error("account fetch failed", "error", err)
		s.writeJSON(w, http.StatusBadGateway, statusResponse{Status: loadable.Failed.String(), Error: errString(err)})
	}
	return false
}

func (s *Server) writeNotice(w http.ResponseWriter, n actions.Notice) {
	resp := NoticeResponse{
		Status:  n.Kind.String(),
		Message: n.Message,
		Error:   errString(n.Err),
	}
	if n.OK() {
		resp.Signature = n.Signature.String()
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	code := http.StatusBadGateway
	switch {
	case errors.Is(n.Err, staking.ErrInvalidAddress), errors.Is(n.Err, staking.ErrInvalidInstruction):
		code = http.StatusBadRequest
	case errors.Is(n.Err, session.ErrWalletNotConnected), errors.Is(n.Err, session.ErrReadOnlyWallet):
		code = http.StatusForbidden
	case n.Err == nil, errors.Is(n.Err, staking.ErrAccountNotFound):
		code = http.StatusConflict
	}
	s.writeJSON(w, code, resp)
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	status := loadable.Failed.String()
	if code == http.StatusBadRequest {
		status = "invalid"
	}
	s.writeJSON(w, code, statusResponse{Status: status, Error: errString(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

func hasBump(kind string) bool {
	switch kind {
	case session.KindConfig, session.KindUser, session.KindStake, session.KindRewards:
		return true
	}
	return false
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

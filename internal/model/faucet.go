package model

import "time"

type ClaimFaucetRequest struct{}

type ClaimFaucetResponse struct {
	KofiAmount float64 `json:"kofi_amount"`
	UsdtAmount float64 `json:"usdt_amount"`
	User       User    `json:"user"`
}

type GetFaucetStatusRequest struct{}

type GetFaucetStatusResponse struct {
	CanClaim    bool      `json:"can_claim"`
	NextClaimAt time.Time `json:"next_claim_at,omitempty"`
}

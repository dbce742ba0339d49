package common

import (
	"context"

	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/repository"
)

// BalanceUpdater is the only sanctioned path for changing a user balance.
// Both balances are clamped at zero, an overdraw silently floors instead of
// going negative. Callers validate sufficiency beforehand when overdrawing
// must be an error.
type BalanceUpdater struct {
	userRepo repository.UserRepository
}

func NewBalanceUpdater(userRepo repository.UserRepository) *BalanceUpdater {
	return &BalanceUpdater{userRepo: userRepo}
}

func (u *BalanceUpdater) Apply(
	ctx context.Context, userID string, deltaKofi, deltaUsdt float64,
) (*entity.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newKofi := max(0, user.KofiBalance+deltaKofi)
	newUsdt := max(0, user.UsdtBalance+deltaUsdt)
	if err := u.userRepo.UpdateBalancesByID(ctx, userID, newKofi, newUsdt); err != nil {
		return nil, err
	}

	user.KofiBalance = newKofi
	user.UsdtBalance = newUsdt
	return user, nil
}

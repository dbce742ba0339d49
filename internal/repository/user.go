package repository

import (
	"context"

	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByWalletAddress(ctx context.Context, address string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	UpdateBalancesByID(ctx context.Context, id string, kofi, usdt float64) error
	UpdateStakedByID(ctx context.Context, id string, kofi, staked float64) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByWalletAddress(ctx context.Context, address string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "wallet_address=?", address).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// UpdateByID merges the set fields of data into the stored record. It does
// not validate business invariants; balance changes must go through
// UpdateBalancesByID so the non-negative clamp stays centralized.
func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if data.ProfilePicture != "" {
		updateMap["profile_picture"] = data.ProfilePicture
	}

	if !data.LastLogin.IsZero() {
		updateMap["last_login"] = data.LastLogin
	}

	if data.WalletAddress != "" {
		updateMap["wallet_address"] = data.WalletAddress
	}

	if len(updateMap) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
}

func (r *userRepository) UpdateBalancesByID(ctx context.Context, id string, kofi, usdt float64) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).
		Updates(map[string]any{"kofi_balance": kofi, "usdt_balance": usdt}).Error
}

func (r *userRepository) UpdateStakedByID(ctx context.Context, id string, kofi, staked float64) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).
		Updates(map[string]any{"kofi_balance": kofi, "staked_kofi": staked}).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/koquifi/backend/internal/common"
	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/model"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/crypto"
	"github.com/koquifi/backend/pkg/errorx"
	"github.com/koquifi/backend/pkg/xcontext"
	"github.com/koquifi/backend/pkg/xredis"
	"gorm.io/gorm"
)

type FaucetDomain interface {
	Claim(context.Context, *model.ClaimFaucetRequest) (*model.ClaimFaucetResponse, error)
	GetStatus(context.Context, *model.GetFaucetStatusRequest) (*model.GetFaucetStatusResponse, error)
}

type faucetDomain struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	balanceUpdater  *common.BalanceUpdater
	redisClient     xredis.Client
	rand            crypto.Rand

	// now is swapped out in cooldown tests.
	now func() time.Time
}

func NewFaucetDomain(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	balanceUpdater *common.BalanceUpdater,
	redisClient xredis.Client,
	rand crypto.Rand,
) *faucetDomain {
	return &faucetDomain{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		balanceUpdater:  balanceUpdater,
		redisClient:     redisClient,
		rand:            rand,
		now:             time.Now,
	}
}

func (d *faucetDomain) Claim(
	ctx context.Context, req *model.ClaimFaucetRequest,
) (*model.ClaimFaucetResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.WalletAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Your account has no wallet address")
	}

	lastClaim, err := d.lastClaim(ctx, user.WalletAddress)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get last faucet claim: %v", err)
		return nil, errorx.Unknown
	}

	cooldown := xcontext.Configs(ctx).Faucet.Cooldown
	if !lastClaim.IsZero() && d.now().Sub(lastClaim) < cooldown {
		return nil, errorx.New(errorx.CooldownActive,
			"You can claim again at %s", lastClaim.Add(cooldown).Format(time.RFC3339))
	}

	cfg := xcontext.Configs(ctx).Faucet
	kofiAmount := float64(d.rand.Range(cfg.MinKofi, cfg.MaxKofi))
	usdtAmount := float64(d.rand.Range(cfg.MinUsdt, cfg.MaxUsdt))

	updated, err := d.balanceUpdater.Apply(ctx, userID, kofiAmount, usdtAmount)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit faucet grant: %v", err)
		return nil, errorx.Unknown
	}

	grants := []entity.Transaction{
		{
			Base:        entity.Base{ID: uuid.NewString()},
			UserID:      userID,
			Type:        entity.TxDeposit,
			Amount:      kofiAmount,
			Currency:    entity.CurrencyKofi,
			Status:      entity.TxCompleted,
			Description: "Faucet claim",
			TxHash:      randomTxHash(d.rand),
		},
		{
			Base:        entity.Base{ID: uuid.NewString()},
			UserID:      userID,
			Type:        entity.TxDeposit,
			Amount:      usdtAmount,
			Currency:    entity.CurrencyBs,
			Status:      entity.TxCompleted,
			Description: "Faucet claim",
			TxHash:      randomTxHash(d.rand),
		},
	}

	for i := range grants {
		if err := d.transactionRepo.Create(ctx, &grants[i]); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create faucet transaction: %v", err)
			return nil, errorx.Unknown
		}
	}

	// The check above and this record are two independent steps. Two racing
	// claims can both pass the cooldown check, the faucet accepts that.
	key := common.RedisKeyFaucetClaim(user.WalletAddress)
	if err := d.redisClient.Set(ctx, key, d.now().Format(time.RFC3339Nano)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record faucet claim: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ClaimFaucetResponse{
		KofiAmount: kofiAmount,
		UsdtAmount: usdtAmount,
		User:       model.ConvertUser(updated),
	}, nil
}

func (d *faucetDomain) GetStatus(
	ctx context.Context, req *model.GetFaucetStatusRequest,
) (*model.GetFaucetStatusResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	lastClaim, err := d.lastClaim(ctx, user.WalletAddress)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get last faucet claim: %v", err)
		return nil, errorx.Unknown
	}

	cooldown := xcontext.Configs(ctx).Faucet.Cooldown
	if lastClaim.IsZero() || d.now().Sub(lastClaim) >= cooldown {
		return &model.GetFaucetStatusResponse{CanClaim: true}, nil
	}

	return &model.GetFaucetStatusResponse{
		CanClaim:    false,
		NextClaimAt: lastClaim.Add(cooldown),
	}, nil
}

func (d *faucetDomain) lastClaim(ctx context.Context, address string) (time.Time, error) {
	value, err := d.redisClient.Get(ctx, common.RedisKeyFaucetClaim(address))
	if err != nil {
		if xredis.IsNil(err) {
			return time.Time{}, nil
		}

		return time.Time{}, err
	}

	return time.Parse(time.RFC3339Nano, value)
}

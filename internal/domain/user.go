package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/koquifi/backend/internal/common"
	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/model"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/crypto"
	"github.com/koquifi/backend/pkg/enum"
	"github.com/koquifi/backend/pkg/errorx"
	"github.com/koquifi/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	Deposit(context.Context, *model.DepositRequest) (*model.DepositResponse, error)
	Withdraw(context.Context, *model.WithdrawRequest) (*model.WithdrawResponse, error)
	Exchange(context.Context, *model.ExchangeRequest) (*model.ExchangeResponse, error)
	Stake(context.Context, *model.StakeRequest) (*model.StakeResponse, error)
	Unstake(context.Context, *model.UnstakeRequest) (*model.UnstakeResponse, error)
	GetTransactions(context.Context, *model.GetTransactionsRequest) (*model.GetTransactionsResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	balanceUpdater  *common.BalanceUpdater
	rand            crypto.Rand
}

func NewUserDomain(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	balanceUpdater *common.BalanceUpdater,
	rand crypto.Rand,
) *userDomain {
	return &userDomain{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		balanceUpdater:  balanceUpdater,
		rand:            rand,
	}
}

func (d *userDomain) Deposit(
	ctx context.Context, req *model.DepositRequest,
) (*model.DepositResponse, error) {
	user, err := d.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	currency, err := enum.ToEnum[entity.Currency](req.Currency)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Unsupported currency %s", req.Currency)
	}

	deltaKofi, deltaUsdt := 0.0, 0.0
	if currency == entity.CurrencyKofi {
		deltaKofi = req.Amount
	} else {
		deltaUsdt = req.Amount
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	updated, err := d.balanceUpdater.Apply(ctx, user.ID, deltaKofi, deltaUsdt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit deposit: %v", err)
		return nil, errorx.Unknown
	}

	tx, err := d.appendTransaction(ctx, user.ID, entity.TxDeposit, req.Amount, currency,
		fmt.Sprintf("Deposit of %g %s", req.Amount, currency))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DepositResponse{
		User:        model.ConvertUser(updated),
		Transaction: model.ConvertTransaction(tx),
	}, nil
}

func (d *userDomain) Withdraw(
	ctx context.Context, req *model.WithdrawRequest,
) (*model.WithdrawResponse, error) {
	user, err := d.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	currency, err := enum.ToEnum[entity.Currency](req.Currency)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Unsupported currency %s", req.Currency)
	}

	balance := user.UsdtBalance
	deltaKofi, deltaUsdt := 0.0, -req.Amount
	if currency == entity.CurrencyKofi {
		balance = user.KofiBalance
		deltaKofi, deltaUsdt = -req.Amount, 0
	}

	if balance < req.Amount {
		return nil, errorx.New(errorx.InsufficientBalance, "Not enough %s to withdraw", currency)
	}

	description := fmt.Sprintf("Withdrawal of %g %s", req.Amount, currency)
	if req.Address != "" {
		description = fmt.Sprintf("%s to %s", description, req.Address)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	updated, err := d.balanceUpdater.Apply(ctx, user.ID, deltaKofi, deltaUsdt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot debit withdrawal: %v", err)
		return nil, errorx.Unknown
	}

	tx, err := d.appendTransaction(ctx, user.ID, entity.TxWithdrawal, req.Amount, currency, description)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.WithdrawResponse{
		User:        model.ConvertUser(updated),
		Transaction: model.ConvertTransaction(tx),
	}, nil
}

func (d *userDomain) Exchange(
	ctx context.Context, req *model.ExchangeRequest,
) (*model.ExchangeResponse, error) {
	user, err := d.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	from, err := enum.ToEnum[entity.Currency](req.FromCurrency)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Unsupported currency %s", req.FromCurrency)
	}

	// Fixed demo rate, KofiPerBs KOQUICOIN for one Bs.
	rate := xcontext.Configs(ctx).Exchange.KofiPerBs
	var deltaKofi, deltaUsdt, received float64
	var to entity.Currency
	if from == entity.CurrencyKofi {
		if user.KofiBalance < req.Amount {
			return nil, errorx.New(errorx.InsufficientBalance, "Not enough %s to exchange", from)
		}

		to = entity.CurrencyBs
		received = req.Amount / rate
		deltaKofi, deltaUsdt = -req.Amount, received
	} else {
		if user.UsdtBalance < req.Amount {
			return nil, errorx.New(errorx.InsufficientBalance, "Not enough %s to exchange", from)
		}

		to = entity.CurrencyKofi
		received = req.Amount * rate
		deltaKofi, deltaUsdt = received, -req.Amount
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	updated, err := d.balanceUpdater.Apply(ctx, user.ID, deltaKofi, deltaUsdt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot apply exchange: %v", err)
		return nil, errorx.Unknown
	}

	tx, err := d.appendTransaction(ctx, user.ID, entity.TxExchange, req.Amount, from,
		fmt.Sprintf("Exchanged %g %s for %g %s", req.Amount, from, received, to))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ExchangeResponse{
		User:        model.ConvertUser(updated),
		Transaction: model.ConvertTransaction(tx),
	}, nil
}

func (d *userDomain) Stake(
	ctx context.Context, req *model.StakeRequest,
) (*model.StakeResponse, error) {
	user, err := d.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	if user.KofiBalance < req.Amount {
		return nil, errorx.New(errorx.InsufficientBalance, "Not enough KOQUICOIN to stake")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	newKofi := user.KofiBalance - req.Amount
	newStaked := user.StakedKofi + req.Amount
	if err := d.userRepo.UpdateStakedByID(ctx, user.ID, newKofi, newStaked); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot move balance into stake: %v", err)
		return nil, errorx.Unknown
	}

	user.KofiBalance = newKofi
	user.StakedKofi = newStaked

	tx, err := d.appendTransaction(ctx, user.ID, entity.TxStake, req.Amount, entity.CurrencyKofi,
		fmt.Sprintf("Staked %g %s", req.Amount, entity.CurrencyKofi))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.StakeResponse{
		User:        model.ConvertUser(user),
		Transaction: model.ConvertTransaction(tx),
	}, nil
}

func (d *userDomain) Unstake(
	ctx context.Context, req *model.UnstakeRequest,
) (*model.UnstakeResponse, error) {
	user, err := d.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	if user.StakedKofi < req.Amount {
		return nil, errorx.New(errorx.InsufficientBalance, "You have not staked that much")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	newKofi := user.KofiBalance + req.Amount
	newStaked := user.StakedKofi - req.Amount
	if err := d.userRepo.UpdateStakedByID(ctx, user.ID, newKofi, newStaked); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot move stake back to balance: %v", err)
		return nil, errorx.Unknown
	}

	user.KofiBalance = newKofi
	user.StakedKofi = newStaked

	tx, err := d.appendTransaction(ctx, user.ID, entity.TxUnstake, req.Amount, entity.CurrencyKofi,
		fmt.Sprintf("Unstaked %g %s", req.Amount, entity.CurrencyKofi))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.UnstakeResponse{
		User:        model.ConvertUser(user),
		Transaction: model.ConvertTransaction(tx),
	}, nil
}

func (d *userDomain) GetTransactions(
	ctx context.Context, req *model.GetTransactionsRequest,
) (*model.GetTransactionsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	txs, err := d.transactionRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get transactions: %v", err)
		return nil, errorx.Unknown
	}

	// Newest first for the activity feed.
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	return &model.GetTransactionsResponse{Transactions: model.ConvertTransactions(txs)}, nil
}

func (d *userDomain) requireUser(ctx context.Context) (*entity.User, error) {
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

	return user, nil
}

func (d *userDomain) appendTransaction(
	ctx context.Context,
	userID string,
	txType entity.TransactionType,
	amount float64,
	currency entity.Currency,
	description string,
) (*entity.Transaction, error) {
	tx := entity.Transaction{
		Base:        entity.Base{ID: uuid.NewString(), CreatedAt: time.Now()},
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Currency:    currency,
		Status:      entity.TxCompleted,
		Description: description,
		TxHash:      randomTxHash(d.rand),
	}

	if err := d.transactionRepo.Create(ctx, &tx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create transaction: %v", err)
		return nil, errorx.Unknown
	}

	return &tx, nil
}

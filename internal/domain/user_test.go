package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/koquifi/backend/internal/common"
	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/model"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/errorx"
	"github.com/koquifi/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestUserDomain() *userDomain {
	userRepo := repository.NewUserRepository()
	return NewUserDomain(
		userRepo,
		repository.NewTransactionRepository(),
		common.NewBalanceUpdater(userRepo),
		&testutil.MockRand{},
	)
}

func Test_userDomain_Deposit(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestUserDomain()

	resp, err := domain.Deposit(ctx, &model.DepositRequest{
		Amount:   250,
		Currency: "KOQUICOIN",
	})
	require.NoError(t, err)
	require.Equal(t, float64(1250), resp.User.KofiBalance)
	require.Equal(t, "deposit", resp.Transaction.Type)
	require.Equal(t, float64(250), resp.Transaction.Amount)

	_, err = domain.Deposit(ctx, &model.DepositRequest{Amount: -1, Currency: "KOQUICOIN"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Deposit(ctx, &model.DepositRequest{Amount: 10, Currency: "DOGE"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_userDomain_Withdraw(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestUserDomain()

	resp, err := domain.Withdraw(ctx, &model.WithdrawRequest{
		Amount:   200,
		Currency: "KOQUICOIN",
		Address:  "0xabc",
	})
	require.NoError(t, err)
	require.Equal(t, float64(800), resp.User.KofiBalance)
	require.Equal(t, "withdrawal", resp.Transaction.Type)
	require.Contains(t, resp.Transaction.Description, "to 0xabc")

	// More than the available balance.
	_, err = domain.Withdraw(ctx, &model.WithdrawRequest{
		Amount:   10000,
		Currency: "KOQUICOIN",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientBalance, errx.Code)
}

func Test_userDomain_Exchange(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestUserDomain()

	// 10 KOQUICOIN per Bs: 100 KOQUICOIN becomes 10 Bs.
	resp, err := domain.Exchange(ctx, &model.ExchangeRequest{
		FromCurrency: "KOQUICOIN",
		Amount:       100,
	})
	require.NoError(t, err)
	require.Equal(t, float64(900), resp.User.KofiBalance)
	require.Equal(t, float64(110), resp.User.UsdtBalance)
	require.Equal(t, "exchange", resp.Transaction.Type)

	// And back: 10 Bs becomes 100 KOQUICOIN.
	resp, err = domain.Exchange(ctx, &model.ExchangeRequest{
		FromCurrency: "Bs",
		Amount:       10,
	})
	require.NoError(t, err)
	require.Equal(t, float64(1000), resp.User.KofiBalance)
	require.Equal(t, float64(100), resp.User.UsdtBalance)

	// User2 has only 10 Bs.
	poorCtx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(poorCtx)
	_, err = domain.Exchange(poorCtx, &model.ExchangeRequest{
		FromCurrency: "Bs",
		Amount:       100,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientBalance, errx.Code)
}

func Test_userDomain_StakeAndUnstake(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestUserDomain()

	resp, err := domain.Stake(ctx, &model.StakeRequest{Amount: 300})
	require.NoError(t, err)
	require.Equal(t, float64(700), resp.User.KofiBalance)
	require.Equal(t, float64(300), resp.User.StakedKofi)
	require.Equal(t, "stake", resp.Transaction.Type)

	unstaked, err := domain.Unstake(ctx, &model.UnstakeRequest{Amount: 100})
	require.NoError(t, err)
	require.Equal(t, float64(800), unstaked.User.KofiBalance)
	require.Equal(t, float64(200), unstaked.User.StakedKofi)
	require.Equal(t, "unstake", unstaked.Transaction.Type)

	// Cannot unstake more than what is staked.
	_, err = domain.Unstake(ctx, &model.UnstakeRequest{Amount: 500})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientBalance, errx.Code)

	// Cannot stake more than the available balance.
	_, err = domain.Stake(ctx, &model.StakeRequest{Amount: 10000})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientBalance, errx.Code)
}

func Test_userDomain_GetTransactions_NewestFirst(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestUserDomain()

	transactionRepo := repository.NewTransactionRepository()
	base := time.Now().Add(-time.Hour)
	older := entity.Transaction{
		Base:        entity.Base{ID: uuid.NewString(), CreatedAt: base},
		UserID:      testutil.User1.ID,
		Type:        entity.TxDeposit,
		Amount:      10,
		Currency:    entity.CurrencyKofi,
		Status:      entity.TxCompleted,
		Description: "older",
	}
	newer := entity.Transaction{
		Base:        entity.Base{ID: uuid.NewString(), CreatedAt: base.Add(time.Minute)},
		UserID:      testutil.User1.ID,
		Type:        entity.TxDeposit,
		Amount:      20,
		Currency:    entity.CurrencyKofi,
		Status:      entity.TxCompleted,
		Description: "newer",
	}
	require.NoError(t, transactionRepo.Create(ctx, &older))
	require.NoError(t, transactionRepo.Create(ctx, &newer))

	resp, err := domain.GetTransactions(ctx, &model.GetTransactionsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 2)
	require.Equal(t, "newer", resp.Transactions[0].Description)
	require.Equal(t, "older", resp.Transactions[1].Description)
}

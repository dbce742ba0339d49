package domain

import (
	"testing"

	"github.com/koquifi/backend/internal/model"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/errorx"
	"github.com/koquifi/backend/pkg/ethutil"
	"github.com/koquifi/backend/pkg/testutil"
	"github.com/koquifi/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestAuthDomain() *authDomain {
	return NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewRefreshTokenRepository(),
		repository.NewTransactionRepository(),
		nil,
		&testutil.MockRand{},
	)
}

func Test_authDomain_GoogleLogin_NewUser(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestAuthDomain()

	resp, err := domain.GoogleLogin(ctx, &model.GoogleLoginRequest{
		Email:   "newbie@gmail.com",
		Name:    "Newbie",
		Picture: "https://example.com/newbie.png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	require.Equal(t, "newbie@gmail.com", resp.User.Email)
	require.Equal(t, "Newbie", resp.User.Name)
	require.Equal(t, "google", resp.User.AuthMethod)
	require.True(t, resp.User.IsVerified)
	require.True(t, ethutil.IsValidAddress(resp.User.WalletAddress))

	// The mocked randomness grants the configured minimums.
	require.Equal(t, float64(500), resp.User.KofiBalance)
	require.Equal(t, float64(50), resp.User.UsdtBalance)

	// Both initial balances come with a welcome transaction.
	txs, err := repository.NewTransactionRepository().GetByUserID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
}

func Test_authDomain_GoogleLogin_Idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestAuthDomain()

	first, err := domain.GoogleLogin(ctx, &model.GoogleLoginRequest{Email: "same@gmail.com"})
	require.NoError(t, err)

	second, err := domain.GoogleLogin(ctx, &model.GoogleLoginRequest{
		Email: "same@gmail.com",
		Name:  "Renamed",
	})
	require.NoError(t, err)
	require.Equal(t, first.User.ID, second.User.ID)
	require.Equal(t, "Renamed", second.User.Name)

	count, err := repository.NewUserRepository().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_authDomain_GoogleLogin_NoProfile(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestAuthDomain()

	_, err := domain.GoogleLogin(ctx, &model.GoogleLoginRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_authDomain_WalletConnect_GeneratedWallet(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestAuthDomain()

	resp, err := domain.WalletConnect(ctx, &model.WalletConnectRequest{})
	require.NoError(t, err)
	require.True(t, ethutil.IsValidAddress(resp.User.WalletAddress))
	require.NotEmpty(t, resp.PrivateKey)
	require.Equal(t, "wallet", resp.User.AuthMethod)
	require.False(t, resp.User.IsVerified)

	// The returned key matches the wallet bound to the user.
	wallet, err := ethutil.FromPrivateKey(resp.PrivateKey)
	require.NoError(t, err)
	require.Equal(t, resp.User.WalletAddress, wallet.Address)
}

func Test_authDomain_WalletConnect_ExistingAddress(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestAuthDomain()

	resp, err := domain.WalletConnect(ctx, &model.WalletConnectRequest{
		Address: testutil.User2.WalletAddress,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.User.ID)

	// The key of an external wallet never leaves its owner.
	require.Empty(t, resp.PrivateKey)
}

func Test_authDomain_WalletConnect_InvalidAddress(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestAuthDomain()

	_, err := domain.WalletConnect(ctx, &model.WalletConnectRequest{Address: "not-an-address"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_authDomain_Refresh_RotatesAndDetectsReplay(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestAuthDomain()

	login, err := domain.GoogleLogin(ctx, &model.GoogleLoginRequest{Email: "rotate@gmail.com"})
	require.NoError(t, err)

	refreshed, err := domain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.NotEmpty(t, refreshed.RefreshToken)

	// Replaying the already rotated token revokes the family.
	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.StolenToken, errx.Code)
}

func Test_authDomain_Me(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestAuthDomain()

	resp, err := domain.Me(xcontext.WithRequestUserID(ctx, testutil.User1.ID), &model.MeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Email, resp.User.Email)

	_, err = domain.Me(ctx, &model.MeRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	// A session pointing to a deleted user stays unauthenticated.
	_, err = domain.Me(xcontext.WithRequestUserID(ctx, "ghost"), &model.MeRequest{})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

package common

import (
	"testing"

	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_BalanceUpdater_Apply(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userRepo := repository.NewUserRepository()
	updater := NewBalanceUpdater(userRepo)

	user, err := updater.Apply(ctx, testutil.User1.ID, 100, -50)
	require.NoError(t, err)
	require.Equal(t, float64(1100), user.KofiBalance)
	require.Equal(t, float64(50), user.UsdtBalance)

	// The stored record matches the returned one.
	stored, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, user.KofiBalance, stored.KofiBalance)
	require.Equal(t, user.UsdtBalance, stored.UsdtBalance)
}

func Test_BalanceUpdater_Apply_FloorsAtZero(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	updater := NewBalanceUpdater(repository.NewUserRepository())

	// Overdraws clamp instead of going negative.
	user, err := updater.Apply(ctx, testutil.User2.ID, -1000, -1000)
	require.NoError(t, err)
	require.Equal(t, float64(0), user.KofiBalance)
	require.Equal(t, float64(0), user.UsdtBalance)
}

func Test_BalanceUpdater_Apply_UnknownUser(t *testing.T) {
	ctx := testutil.MockContext()

	updater := NewBalanceUpdater(repository.NewUserRepository())

	_, err := updater.Apply(ctx, "missing", 10, 0)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

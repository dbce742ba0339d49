package repository_test

import (
	"testing"
	"time"

	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_refreshTokenRepository_Rotate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewRefreshTokenRepository()

	err := repo.Create(ctx, &entity.RefreshToken{
		UserID:     testutil.User1.ID,
		Family:     "family1",
		Counter:    0,
		Expiration: time.Now().Add(time.Minute),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Rotate(ctx, "family1"))
	require.NoError(t, repo.Rotate(ctx, "family1"))

	token, err := repo.Get(ctx, "family1")
	require.NoError(t, err)
	require.Equal(t, uint64(2), token.Counter)

	require.ErrorIs(t, repo.Rotate(ctx, "unknown"), gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, "family1"))
	_, err = repo.Get(ctx, "family1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

package repository_test

import (
	"testing"

	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_lotteryRepository_GetDraws_SeedsDefaults(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewLotteryRepository()

	draws, err := repo.GetDraws(ctx)
	require.NoError(t, err)
	require.Len(t, draws, 3)

	current, err := repo.GetCurrentDraw(ctx)
	require.NoError(t, err)
	require.Equal(t, "draw-current", current.ID)
	require.Equal(t, float64(22500), current.PrizePoolKofi)

	// Seeding happens only once.
	again, err := repo.GetDraws(ctx)
	require.NoError(t, err)
	require.Len(t, again, 3)
}

func Test_lotteryRepository_SaveDraws_Overwrites(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewLotteryRepository()

	draws, err := repo.GetDraws(ctx)
	require.NoError(t, err)

	// Drop everything but the current draw and bump its pool.
	var kept []entity.LotteryDraw
	for i := range draws {
		if draws[i].Status == entity.DrawCurrent {
			draws[i].PrizePoolKofi = 30000
			kept = append(kept, draws[i])
		}
	}
	require.NoError(t, repo.SaveDraws(ctx, kept))

	draws, err = repo.GetDraws(ctx)
	require.NoError(t, err)
	require.Len(t, draws, 1)
	require.Equal(t, float64(30000), draws[0].PrizePoolKofi)
}

func Test_lotteryRepository_UpdateTicketResult_OnlyActive(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewLotteryRepository()

	ticket := entity.LotteryTicket{
		Base:      entity.Base{ID: "ticket1"},
		UserID:    testutil.User1.ID,
		LotteryID: "draw-current",
		Numbers:   entity.Array[int]{1, 2, 3, 4, 5, 6},
		Cost:      100,
		Status:    entity.TicketActive,
	}
	require.NoError(t, repo.CreateTicket(ctx, &ticket))

	require.NoError(t, repo.UpdateTicketResult(ctx, ticket.ID, entity.TicketWinner, 500))

	stored, err := repo.GetTicketByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketWinner, stored.Status)
	require.Equal(t, float64(500), stored.WinningAmount)

	// A settled ticket cannot be settled again.
	err = repo.UpdateTicketResult(ctx, ticket.ID, entity.TicketLoser, 0)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

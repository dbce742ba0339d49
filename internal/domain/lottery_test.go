package domain

import (
	"testing"

	"github.com/koquifi/backend/internal/common"
	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/model"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/crypto"
	"github.com/koquifi/backend/pkg/errorx"
	"github.com/koquifi/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestLotteryDomain(rand crypto.Rand) *lotteryDomain {
	userRepo := repository.NewUserRepository()
	return NewLotteryDomain(
		repository.NewLotteryRepository(),
		userRepo,
		repository.NewTransactionRepository(),
		common.NewBalanceUpdater(userRepo),
		rand,
	)
}

func Test_lotteryDomain_BuyTicket(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestLotteryDomain(&testutil.MockRand{})

	resp, err := domain.BuyTicket(ctx, &model.BuyLotteryTicketRequest{
		Numbers: []int{9, 1, 3, 5, 7, 8},
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 5, 7, 8, 9}, resp.Ticket.Numbers)
	require.Equal(t, float64(100), resp.Ticket.Cost)
	require.Equal(t, "active", resp.Ticket.Status)

	// 80% of the ticket cost feeds the prize pool.
	require.Equal(t, float64(22580), resp.Draw.PrizePoolKofi)
	require.Equal(t, 1, resp.Draw.TotalParticipants)
	require.Contains(t, resp.Draw.Tickets, resp.Ticket.ID)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, float64(900), user.KofiBalance)

	txs, err := repository.NewTransactionRepository().GetByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, entity.TxLotteryPurchase, txs[0].Type)
	require.Equal(t, float64(100), txs[0].Amount)

	tickets, err := domain.GetMyTickets(ctx, &model.GetMyLotteryTicketsRequest{})
	require.NoError(t, err)
	require.Len(t, tickets.Tickets, 1)
}

func Test_lotteryDomain_BuyTicket_CustomCost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestLotteryDomain(&testutil.MockRand{})

	resp, err := domain.BuyTicket(ctx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 6},
		Cost:    50,
	})
	require.NoError(t, err)
	require.Equal(t, float64(50), resp.Ticket.Cost)
	require.Equal(t, float64(22540), resp.Draw.PrizePoolKofi)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, float64(950), user.KofiBalance)
}

func Test_lotteryDomain_BuyTicket_Errors(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestLotteryDomain(&testutil.MockRand{})

	var errx errorx.Error

	// No authenticated user.
	_, err := domain.BuyTicket(ctx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 6},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	authedCtx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(authedCtx)

	// Wrong count.
	_, err = domain.BuyTicket(authedCtx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidSelection, errx.Code)

	// Out of range.
	_, err = domain.BuyTicket(authedCtx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 10},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidSelection, errx.Code)

	// Repeated number.
	_, err = domain.BuyTicket(authedCtx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 5},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidSelection, errx.Code)

	// Negative cost.
	_, err = domain.BuyTicket(authedCtx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 6},
		Cost:    -1,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	// User2 cannot afford the default cost.
	poorCtx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(poorCtx)
	_, err = domain.BuyTicket(poorCtx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 6},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientBalance, errx.Code)
}

func Test_lotteryDomain_BuyTicket_NoActiveDraw(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestLotteryDomain(&testutil.MockRand{})

	lotteryRepo := repository.NewLotteryRepository()
	draws, err := lotteryRepo.GetDraws(ctx)
	require.NoError(t, err)

	for i := range draws {
		draws[i].Status = entity.DrawCompleted
	}
	require.NoError(t, lotteryRepo.SaveDraws(ctx, draws))

	_, err = domain.BuyTicket(ctx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 6},
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NoActiveDraw, errx.Code)
}

func Test_lotteryDomain_RandomPick(t *testing.T) {
	ctx := testutil.MockContext()

	// The third value repeats an already picked number, the picker must retry
	// until six distinct ones are found.
	rand := &testutil.SequenceRand{Values: []int{0, 2, 2, 4, 6, 8, 1}}
	domain := newTestLotteryDomain(rand)

	resp, err := domain.RandomPick(ctx, &model.RandomPickRequest{})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 5, 7, 9}, resp.Numbers)
}

func Test_lotteryDomain_CompleteDraw_Jackpot(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestLotteryDomain(&testutil.MockRand{})

	bought, err := domain.BuyTicket(ctx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 6},
	})
	require.NoError(t, err)

	resp, err := domain.CompleteDraw(ctx, &model.CompleteLotteryDrawRequest{
		WinningNumbers: []int{1, 2, 3, 4, 5, 6},
	})
	require.NoError(t, err)
	require.Equal(t, "completed", resp.Draw.Status)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, resp.Draw.WinningNumbers)
	require.Equal(t, []string{testutil.User1.ID}, resp.Draw.JackpotWinners)

	// The single jackpot ticket takes the whole pool.
	lotteryRepo := repository.NewLotteryRepository()
	ticket, err := lotteryRepo.GetTicketByID(ctx, bought.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketWinner, ticket.Status)
	require.Equal(t, float64(22580), ticket.WinningAmount)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, float64(900+22580), user.KofiBalance)

	txs, err := repository.NewTransactionRepository().GetByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	var winTxs int
	for _, tx := range txs {
		if tx.Type == entity.TxLotteryWin {
			winTxs++
		}
	}
	require.Equal(t, 1, winTxs)

	// A fresh round opens, exactly one current draw remains.
	current, err := lotteryRepo.GetCurrentDraw(ctx)
	require.NoError(t, err)
	require.NotEqual(t, resp.Draw.ID, current.ID)
	require.Equal(t, entity.DrawCurrent, current.Status)

	draws, err := lotteryRepo.GetDraws(ctx)
	require.NoError(t, err)
	var currents int
	for i := range draws {
		if draws[i].Status == entity.DrawCurrent {
			currents++
		}
	}
	require.Equal(t, 1, currents)

	// Completing a finished draw again is rejected.
	_, err = domain.CompleteDraw(ctx, &model.CompleteLotteryDrawRequest{DrawID: resp.Draw.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_lotteryDomain_CompleteDraw_ThirdPrize(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestLotteryDomain(&testutil.MockRand{})

	bought, err := domain.BuyTicket(ctx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 6},
	})
	require.NoError(t, err)

	// Four matches put the ticket in the third tier, which pays 5% of the pool.
	resp, err := domain.CompleteDraw(ctx, &model.CompleteLotteryDrawRequest{
		WinningNumbers: []int{1, 2, 3, 4, 8, 9},
	})
	require.NoError(t, err)
	require.Empty(t, resp.Draw.JackpotWinners)
	require.Equal(t, []string{testutil.User1.ID}, resp.Draw.ThirdWinners)

	ticket, err := repository.NewLotteryRepository().GetTicketByID(ctx, bought.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketWinner, ticket.Status)
	require.Equal(t, 22580*0.05, ticket.WinningAmount)
}

func Test_lotteryDomain_CompleteDraw_MarksLosers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestLotteryDomain(&testutil.MockRand{})

	bought, err := domain.BuyTicket(ctx, &model.BuyLotteryTicketRequest{
		Numbers: []int{1, 2, 3, 4, 5, 6},
	})
	require.NoError(t, err)

	// Only three matches, below every prize tier.
	_, err = domain.CompleteDraw(ctx, &model.CompleteLotteryDrawRequest{
		WinningNumbers: []int{1, 2, 3, 7, 8, 9},
	})
	require.NoError(t, err)

	ticket, err := repository.NewLotteryRepository().GetTicketByID(ctx, bought.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketLoser, ticket.Status)
	require.Equal(t, float64(0), ticket.WinningAmount)
}

func Test_lotteryDomain_CompleteDraw_NotFound(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestLotteryDomain(&testutil.MockRand{})

	_, err := domain.CompleteDraw(ctx, &model.CompleteLotteryDrawRequest{DrawID: "missing"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_lotteryDomain_GetDraws_SeedsDefaults(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestLotteryDomain(&testutil.MockRand{})

	resp, err := domain.GetDraws(ctx, &model.GetLotteryDrawsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Draws, 3)

	current, err := domain.GetCurrentDraw(ctx, &model.GetCurrentLotteryDrawRequest{})
	require.NoError(t, err)
	require.Equal(t, "draw-current", current.Draw.ID)
	require.Equal(t, float64(22500), current.Draw.PrizePoolKofi)
}

package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/koquifi/backend/internal/common"
	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/model"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/crypto"
	"github.com/koquifi/backend/pkg/errorx"
	"github.com/koquifi/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type LotteryDomain interface {
	BuyTicket(context.Context, *model.BuyLotteryTicketRequest) (*model.BuyLotteryTicketResponse, error)
	RandomPick(context.Context, *model.RandomPickRequest) (*model.RandomPickResponse, error)
	GetDraws(context.Context, *model.GetLotteryDrawsRequest) (*model.GetLotteryDrawsResponse, error)
	GetCurrentDraw(context.Context, *model.GetCurrentLotteryDrawRequest) (*model.GetCurrentLotteryDrawResponse, error)
	GetMyTickets(context.Context, *model.GetMyLotteryTicketsRequest) (*model.GetMyLotteryTicketsResponse, error)
	CompleteDraw(context.Context, *model.CompleteLotteryDrawRequest) (*model.CompleteLotteryDrawResponse, error)
}

type lotteryDomain struct {
	lotteryRepo     repository.LotteryRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	balanceUpdater  *common.BalanceUpdater
	rand            crypto.Rand
}

func NewLotteryDomain(
	lotteryRepo repository.LotteryRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	balanceUpdater *common.BalanceUpdater,
	rand crypto.Rand,
) *lotteryDomain {
	return &lotteryDomain{
		lotteryRepo:     lotteryRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		balanceUpdater:  balanceUpdater,
		rand:            rand,
	}
}

func (d *lotteryDomain) BuyTicket(
	ctx context.Context, req *model.BuyLotteryTicketRequest,
) (*model.BuyLotteryTicketResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	cfg := xcontext.Configs(ctx).Lottery
	if err := validateNumbers(cfg.NumbersPerTicket, cfg.MinNumber, cfg.MaxNumber, req.Numbers); err != nil {
		return nil, err
	}

	if req.Cost < 0 {
		return nil, errorx.New(errorx.BadRequest, "Cost must not be negative")
	}

	cost := req.Cost
	if cost == 0 {
		cost = cfg.TicketCost
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.KofiBalance < cost {
		return nil, errorx.New(errorx.InsufficientBalance, "Not enough KOQUICOIN to buy a ticket")
	}

	draw, err := d.lotteryRepo.GetCurrentDraw(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NoActiveDraw, "There is no draw open for purchases")
		}

		xcontext.Logger(ctx).Errorf("Cannot get current draw: %v", err)
		return nil, errorx.Unknown
	}

	numbers := make([]int, len(req.Numbers))
	copy(numbers, req.Numbers)
	sort.Ints(numbers)

	ticket := entity.LotteryTicket{
		Base:      entity.Base{ID: uuid.NewString()},
		UserID:    userID,
		LotteryID: draw.ID,
		Numbers:   numbers,
		Cost:      cost,
		Status:    entity.TicketActive,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.lotteryRepo.CreateTicket(ctx, &ticket); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create ticket: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.balanceUpdater.Apply(ctx, userID, -cost, 0); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot debit ticket cost: %v", err)
		return nil, errorx.Unknown
	}

	purchase := entity.Transaction{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		Type:        entity.TxLotteryPurchase,
		Amount:      cost,
		Currency:    entity.CurrencyKofi,
		Status:      entity.TxCompleted,
		Description: fmt.Sprintf("Lottery ticket %v", []int(ticket.Numbers)),
		TxHash:      randomTxHash(d.rand),
	}

	if err := d.transactionRepo.Create(ctx, &purchase); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create purchase transaction: %v", err)
		return nil, errorx.Unknown
	}

	draws, err := d.lotteryRepo.GetDraws(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get draws: %v", err)
		return nil, errorx.Unknown
	}

	var updatedDraw *entity.LotteryDraw
	for i := range draws {
		if draws[i].ID == draw.ID {
			draws[i].TotalParticipants++
			draws[i].Tickets = append(draws[i].Tickets, ticket.ID)
			draws[i].PrizePoolKofi += cost * cfg.PrizePoolRate
			updatedDraw = &draws[i]
			break
		}
	}

	if updatedDraw == nil {
		xcontext.Logger(ctx).Errorf("Current draw %s disappeared during purchase", draw.ID)
		return nil, errorx.Unknown
	}

	if err := d.lotteryRepo.SaveDraws(ctx, draws); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save draws: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.BuyLotteryTicketResponse{
		Ticket: model.ConvertLotteryTicket(&ticket),
		Draw:   model.ConvertLotteryDraw(updatedDraw),
	}, nil
}

func (d *lotteryDomain) RandomPick(
	ctx context.Context, req *model.RandomPickRequest,
) (*model.RandomPickResponse, error) {
	cfg := xcontext.Configs(ctx).Lottery
	return &model.RandomPickResponse{
		Numbers: d.pickNumbers(cfg.NumbersPerTicket, cfg.MinNumber, cfg.MaxNumber),
	}, nil
}

func (d *lotteryDomain) GetDraws(
	ctx context.Context, req *model.GetLotteryDrawsRequest,
) (*model.GetLotteryDrawsResponse, error) {
	draws, err := d.lotteryRepo.GetDraws(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get draws: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLotteryDrawsResponse{Draws: model.ConvertLotteryDraws(draws)}, nil
}

func (d *lotteryDomain) GetCurrentDraw(
	ctx context.Context, req *model.GetCurrentLotteryDrawRequest,
) (*model.GetCurrentLotteryDrawResponse, error) {
	draw, err := d.lotteryRepo.GetCurrentDraw(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NoActiveDraw, "There is no draw open for purchases")
		}

		xcontext.Logger(ctx).Errorf("Cannot get current draw: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCurrentLotteryDrawResponse{Draw: model.ConvertLotteryDraw(draw)}, nil
}

func (d *lotteryDomain) GetMyTickets(
	ctx context.Context, req *model.GetMyLotteryTicketsRequest,
) (*model.GetMyLotteryTicketsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	tickets, err := d.lotteryRepo.GetTicketsByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyLotteryTicketsResponse{Tickets: model.ConvertLotteryTickets(tickets)}, nil
}

func (d *lotteryDomain) CompleteDraw(
	ctx context.Context, req *model.CompleteLotteryDrawRequest,
) (*model.CompleteLotteryDrawResponse, error) {
	cfg := xcontext.Configs(ctx).Lottery

	var draw *entity.LotteryDraw
	var err error
	if req.DrawID != "" {
		draw, err = d.lotteryRepo.GetDrawByID(ctx, req.DrawID)
	} else {
		draw, err = d.lotteryRepo.GetCurrentDraw(ctx)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found the draw to complete")
		}

		xcontext.Logger(ctx).Errorf("Cannot get draw: %v", err)
		return nil, errorx.Unknown
	}

	if draw.Status == entity.DrawCompleted {
		return nil, errorx.New(errorx.BadRequest, "The draw is already completed")
	}

	winningNumbers := req.WinningNumbers
	if len(winningNumbers) == 0 {
		winningNumbers = d.pickNumbers(cfg.NumbersPerTicket, cfg.MinNumber, cfg.MaxNumber)
	} else {
		err := validateNumbers(cfg.NumbersPerTicket, cfg.MinNumber, cfg.MaxNumber, winningNumbers)
		if err != nil {
			return nil, err
		}

		winningNumbers = append([]int{}, winningNumbers...)
		sort.Ints(winningNumbers)
	}

	tickets, err := d.lotteryRepo.GetTicketsByDrawID(ctx, draw.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets of draw: %v", err)
		return nil, errorx.Unknown
	}

	// Group tickets by prize tier before paying anything, the per-winner
	// share depends on how many tickets hit the tier.
	var jackpot, second, third []*entity.LotteryTicket
	for i := range tickets {
		if tickets[i].Status != entity.TicketActive {
			continue
		}

		switch countMatches(tickets[i].Numbers, winningNumbers) {
		case cfg.NumbersPerTicket:
			jackpot = append(jackpot, &tickets[i])
		case cfg.NumbersPerTicket - 1:
			second = append(second, &tickets[i])
		case cfg.NumbersPerTicket - 2:
			third = append(third, &tickets[i])
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	prizes := []struct {
		tickets []*entity.LotteryTicket
		pool    float64
	}{
		{jackpot, draw.PrizePoolKofi},
		{second, draw.PrizePoolKofi * cfg.SecondPrizeRate},
		{third, draw.PrizePoolKofi * cfg.ThirdPrizeRate},
	}

	winners := make([]entity.Array[string], len(prizes))
	for tier, prize := range prizes {
		if len(prize.tickets) == 0 {
			winners[tier] = entity.Array[string]{}
			continue
		}

		share := prize.pool / float64(len(prize.tickets))
		for _, ticket := range prize.tickets {
			if err := d.payTicket(ctx, ticket, share); err != nil {
				return nil, err
			}

			winners[tier] = append(winners[tier], ticket.UserID)
		}
	}

	for i := range tickets {
		if tickets[i].Status != entity.TicketActive {
			continue
		}

		err := d.lotteryRepo.UpdateTicketResult(ctx, tickets[i].ID, entity.TicketLoser, 0)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot mark losing ticket: %v", err)
			return nil, errorx.Unknown
		}
	}

	draws, err := d.lotteryRepo.GetDraws(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get draws: %v", err)
		return nil, errorx.Unknown
	}

	completedIdx := -1
	for i := range draws {
		if draws[i].ID == draw.ID {
			draws[i].WinningNumbers = winningNumbers
			draws[i].JackpotWinners = winners[0]
			draws[i].SecondWinners = winners[1]
			draws[i].ThirdWinners = winners[2]
			draws[i].Status = entity.DrawCompleted
			completedIdx = i
			break
		}
	}

	if completedIdx == -1 {
		xcontext.Logger(ctx).Errorf("Draw %s disappeared during completion", draw.ID)
		return nil, errorx.Unknown
	}

	// Keep exactly one current draw: promote the earliest upcoming one, or
	// open a fresh round.
	var next *entity.LotteryDraw
	for i := range draws {
		if draws[i].Status != entity.DrawUpcoming {
			continue
		}

		if next == nil || draws[i].DrawDate.Before(next.DrawDate) {
			next = &draws[i]
		}
	}

	if next != nil {
		next.Status = entity.DrawCurrent
	} else {
		completed := draws[completedIdx]
		draws = append(draws, entity.LotteryDraw{
			Base:           entity.Base{ID: uuid.NewString()},
			Date:           completed.Date.Add(cfg.DrawInterval),
			DrawDate:       completed.DrawDate.Add(cfg.DrawInterval),
			WinningNumbers: entity.Array[int]{},
			JackpotWinners: entity.Array[string]{},
			SecondWinners:  entity.Array[string]{},
			ThirdWinners:   entity.Array[string]{},
			Status:         entity.DrawCurrent,
			Tickets:        entity.Array[string]{},
		})
	}

	if err := d.lotteryRepo.SaveDraws(ctx, draws); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save draws: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CompleteLotteryDrawResponse{Draw: model.ConvertLotteryDraw(&draws[completedIdx])}, nil
}

func (d *lotteryDomain) payTicket(
	ctx context.Context, ticket *entity.LotteryTicket, amount float64,
) error {
	err := d.lotteryRepo.UpdateTicketResult(ctx, ticket.ID, entity.TicketWinner, amount)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark winning ticket: %v", err)
		return errorx.Unknown
	}

	ticket.Status = entity.TicketWinner
	ticket.WinningAmount = amount

	if _, err := d.balanceUpdater.Apply(ctx, ticket.UserID, amount, 0); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit winnings: %v", err)
		return errorx.Unknown
	}

	win := entity.Transaction{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      ticket.UserID,
		Type:        entity.TxLotteryWin,
		Amount:      amount,
		Currency:    entity.CurrencyKofi,
		Status:      entity.TxCompleted,
		Description: fmt.Sprintf("Lottery prize for ticket %s", ticket.ID),
		TxHash:      randomTxHash(d.rand),
	}

	if err := d.transactionRepo.Create(ctx, &win); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create winning transaction: %v", err)
		return errorx.Unknown
	}

	return nil
}

// pickNumbers draws count unique values in [min, max], ascending.
func (d *lotteryDomain) pickNumbers(count, min, max int) []int {
	picked := map[int]bool{}
	for len(picked) < count {
		picked[d.rand.Range(min, max+1)] = true
	}

	numbers := make([]int, 0, count)
	for n := range picked {
		numbers = append(numbers, n)
	}

	sort.Ints(numbers)
	return numbers
}

func validateNumbers(count, min, max int, numbers []int) error {
	if len(numbers) != count {
		return errorx.New(errorx.InvalidSelection, "Please select exactly %d numbers", count)
	}

	seen := map[int]bool{}
	for _, n := range numbers {
		if n < min || n > max {
			return errorx.New(errorx.InvalidSelection,
				"Numbers must be between %d and %d", min, max)
		}

		if seen[n] {
			return errorx.New(errorx.InvalidSelection, "Numbers must not repeat")
		}

		seen[n] = true
	}

	return nil
}

func countMatches(a, b []int) int {
	inB := map[int]bool{}
	for _, n := range b {
		inB[n] = true
	}

	count := 0
	for _, n := range a {
		if inB[n] {
			count++
		}
	}

	return count
}

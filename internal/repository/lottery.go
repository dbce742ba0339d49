package repository

import (
	"context"
	"time"

	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type LotteryRepository interface {
	// Draw
	CreateDraw(ctx context.Context, draw *entity.LotteryDraw) error
	GetDraws(ctx context.Context) ([]entity.LotteryDraw, error)
	GetDrawByID(ctx context.Context, drawID string) (*entity.LotteryDraw, error)
	GetCurrentDraw(ctx context.Context) (*entity.LotteryDraw, error)
	SaveDraws(ctx context.Context, draws []entity.LotteryDraw) error

	// Ticket
	CreateTicket(ctx context.Context, ticket *entity.LotteryTicket) error
	GetTicketByID(ctx context.Context, ticketID string) (*entity.LotteryTicket, error)
	GetTicketsByUserID(ctx context.Context, userID string) ([]entity.LotteryTicket, error)
	GetTicketsByDrawID(ctx context.Context, drawID string) ([]entity.LotteryTicket, error)
	UpdateTicketResult(ctx context.Context, ticketID string, status entity.TicketStatus, winningAmount float64) error
}

type lotteryRepository struct{}

func NewLotteryRepository() *lotteryRepository {
	return &lotteryRepository{}
}

func (r *lotteryRepository) CreateDraw(ctx context.Context, draw *entity.LotteryDraw) error {
	return xcontext.DB(ctx).Create(draw).Error
}

// GetDraws returns every draw, seeding the default rounds on first access so
// a fresh store always exposes a current draw.
func (r *lotteryRepository) GetDraws(ctx context.Context) ([]entity.LotteryDraw, error) {
	var result []entity.LotteryDraw
	if err := xcontext.DB(ctx).Order("draw_date").Find(&result).Error; err != nil {
		return nil, err
	}

	if len(result) > 0 {
		return result, nil
	}

	result = defaultDraws()
	if err := xcontext.DB(ctx).Create(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lotteryRepository) GetDrawByID(ctx context.Context, drawID string) (*entity.LotteryDraw, error) {
	var result entity.LotteryDraw
	if err := xcontext.DB(ctx).Take(&result, "id=?", drawID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *lotteryRepository) GetCurrentDraw(ctx context.Context) (*entity.LotteryDraw, error) {
	draws, err := r.GetDraws(ctx)
	if err != nil {
		return nil, err
	}

	for i := range draws {
		if draws[i].Status == entity.DrawCurrent {
			return &draws[i], nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

// SaveDraws overwrites the whole draws collection. This keeps the original
// read-modify-write contract: the last writer wins, there is no merge.
// Callers needing atomicity against writers in the same process wrap the
// read-modify-write in xcontext.WithDBTransaction.
func (r *lotteryRepository) SaveDraws(ctx context.Context, draws []entity.LotteryDraw) error {
	err := xcontext.DB(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&entity.LotteryDraw{}).Error
	if err != nil {
		return err
	}

	if len(draws) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(&draws).Error
}

func (r *lotteryRepository) CreateTicket(ctx context.Context, ticket *entity.LotteryTicket) error {
	return xcontext.DB(ctx).Create(ticket).Error
}

func (r *lotteryRepository) GetTicketByID(ctx context.Context, ticketID string) (*entity.LotteryTicket, error) {
	var result entity.LotteryTicket
	if err := xcontext.DB(ctx).Take(&result, "id=?", ticketID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *lotteryRepository) GetTicketsByUserID(ctx context.Context, userID string) ([]entity.LotteryTicket, error) {
	var result []entity.LotteryTicket
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lotteryRepository) GetTicketsByDrawID(ctx context.Context, drawID string) ([]entity.LotteryTicket, error) {
	var result []entity.LotteryTicket
	if err := xcontext.DB(ctx).Find(&result, "lottery_id=?", drawID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lotteryRepository) UpdateTicketResult(
	ctx context.Context, ticketID string, status entity.TicketStatus, winningAmount float64,
) error {
	tx := xcontext.DB(ctx).Model(&entity.LotteryTicket{}).
		Where("id=? AND status=?", ticketID, entity.TicketActive).
		Updates(map[string]any{"status": status, "winning_amount": winningAmount})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// defaultDraws mirrors the demo rounds the store is seeded with: two finished
// rounds and the one currently open for purchases.
func defaultDraws() []entity.LotteryDraw {
	return []entity.LotteryDraw{
		{
			Base:              entity.Base{ID: "draw-1"},
			Date:              time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC),
			DrawDate:          time.Date(2025, 7, 28, 20, 0, 0, 0, time.UTC),
			WinningNumbers:    entity.Array[int]{1, 3, 5, 7, 8, 9},
			PrizePoolKofi:     15000,
			PrizePoolUsdt:     2200,
			JackpotWinners:    entity.Array[string]{"user-1"},
			SecondWinners:     entity.Array[string]{"user-2", "user-3"},
			ThirdWinners:      entity.Array[string]{"user-4"},
			TotalParticipants: 847,
			Status:            entity.DrawCompleted,
			Tickets:           entity.Array[string]{},
		},
		{
			Base:              entity.Base{ID: "draw-2"},
			Date:              time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC),
			DrawDate:          time.Date(2025, 8, 4, 20, 0, 0, 0, time.UTC),
			WinningNumbers:    entity.Array[int]{2, 4, 6, 7, 8, 9},
			PrizePoolKofi:     12500,
			PrizePoolUsdt:     1800,
			JackpotWinners:    entity.Array[string]{"user-5"},
			SecondWinners:     entity.Array[string]{"user-6"},
			ThirdWinners:      entity.Array[string]{},
			TotalParticipants: 723,
			Status:            entity.DrawCompleted,
			Tickets:           entity.Array[string]{},
		},
		{
			Base:              entity.Base{ID: "draw-current"},
			Date:              time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
			DrawDate:          time.Date(2025, 8, 11, 20, 0, 0, 0, time.UTC),
			WinningNumbers:    entity.Array[int]{},
			PrizePoolKofi:     22500,
			PrizePoolUsdt:     3200,
			JackpotWinners:    entity.Array[string]{},
			SecondWinners:     entity.Array[string]{},
			ThirdWinners:      entity.Array[string]{},
			TotalParticipants: 0,
			Status:            entity.DrawCurrent,
			Tickets:           entity.Array[string]{},
		},
	}
}

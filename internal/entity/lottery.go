package entity

import (
	"time"

	"github.com/koquifi/backend/pkg/enum"
)

type TicketStatus string

var (
	TicketActive = enum.New(TicketStatus("active"))
	TicketWinner = enum.New(TicketStatus("winner"))
	TicketLoser  = enum.New(TicketStatus("loser"))
)

type DrawStatus string

var (
	DrawUpcoming  = enum.New(DrawStatus("upcoming"))
	DrawCurrent   = enum.New(DrawStatus("current"))
	DrawCompleted = enum.New(DrawStatus("completed"))
)

type LotteryDraw struct {
	Base

	Date     time.Time
	DrawDate time.Time

	// WinningNumbers stays empty until the draw completes.
	WinningNumbers Array[int]

	PrizePoolKofi float64
	PrizePoolUsdt float64

	JackpotWinners Array[string]
	SecondWinners  Array[string]
	ThirdWinners   Array[string]

	TotalParticipants int
	Status            DrawStatus
	Tickets           Array[string]
}

type LotteryTicket struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	LotteryID string
	Lottery   LotteryDraw `gorm:"foreignKey:LotteryID"`

	Numbers Array[int]
	Cost    float64
	Status  TicketStatus

	WinningAmount float64
}

package entity

import "github.com/koquifi/backend/pkg/enum"

type TransactionType string

var (
	TxDeposit         = enum.New(TransactionType("deposit"))
	TxWithdrawal      = enum.New(TransactionType("withdrawal"))
	TxLotteryPurchase = enum.New(TransactionType("lottery_purchase"))
	TxLotteryWin      = enum.New(TransactionType("lottery_win"))
	TxExchange        = enum.New(TransactionType("exchange"))
	TxStake           = enum.New(TransactionType("stake"))
	TxUnstake         = enum.New(TransactionType("unstake"))
)

type TransactionStatus string

var (
	TxPending   = enum.New(TransactionStatus("pending"))
	TxCompleted = enum.New(TransactionStatus("completed"))
	TxFailed    = enum.New(TransactionStatus("failed"))
)

type Currency string

var (
	CurrencyKofi = enum.New(Currency("KOQUICOIN"))
	CurrencyBs   = enum.New(Currency("Bs"))
)

// Transaction records are append-only. No repository method updates or
// deletes them.
type Transaction struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Type        TransactionType
	Amount      float64
	Currency    Currency
	Status      TransactionStatus
	Description string
	TxHash      string
}

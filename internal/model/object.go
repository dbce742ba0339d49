package model

import "time"

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	WalletAddress  string    `json:"wallet_address"`
	KofiBalance    float64   `json:"kofi_balance"`
	UsdtBalance    float64   `json:"usdt_balance"`
	StakedKofi     float64   `json:"staked_kofi"`
	AuthMethod     string    `json:"auth_method"`
	LastLogin      time.Time `json:"last_login"`
	IsVerified     bool      `json:"is_verified"`
}

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	TxHash      string    `json:"tx_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type LotteryTicket struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	DrawID        string    `json:"draw_id"`
	Numbers       []int     `json:"numbers"`
	Cost          float64   `json:"cost"`
	Status        string    `json:"status"`
	WinningAmount float64   `json:"winning_amount"`
	PurchaseDate  time.Time `json:"purchase_date"`
}

type LotteryDraw struct {
	ID                string    `json:"id"`
	Date              time.Time `json:"date"`
	DrawDate          time.Time `json:"draw_date"`
	WinningNumbers    []int     `json:"winning_numbers"`
	PrizePoolKofi     float64   `json:"prize_pool_kofi"`
	PrizePoolUsdt     float64   `json:"prize_pool_usdt"`
	JackpotWinners    []string  `json:"jackpot_winners"`
	SecondWinners     []string  `json:"second_winners"`
	ThirdWinners      []string  `json:"third_winners"`
	TotalParticipants int       `json:"total_participants"`
	Status            string    `json:"status"`
	Tickets           []string  `json:"tickets"`
}

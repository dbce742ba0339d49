package model

type DepositRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type DepositResponse struct {
	User        User        `json:"user"`
	Transaction Transaction `json:"transaction"`
}

type WithdrawRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Address  string  `json:"address"`
}

type WithdrawResponse struct {
	User        User        `json:"user"`
	Transaction Transaction `json:"transaction"`
}

type ExchangeRequest struct {
	FromCurrency string  `json:"from_currency"`
	Amount       float64 `json:"amount"`
}

type ExchangeResponse struct {
	User        User        `json:"user"`
	Transaction Transaction `json:"transaction"`
}

type StakeRequest struct {
	Amount float64 `json:"amount"`
}

type StakeResponse struct {
	User        User        `json:"user"`
	Transaction Transaction `json:"transaction"`
}

type UnstakeRequest struct {
	Amount float64 `json:"amount"`
}

type UnstakeResponse struct {
	User        User        `json:"user"`
	Transaction Transaction `json:"transaction"`
}

type GetTransactionsRequest struct{}

type GetTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

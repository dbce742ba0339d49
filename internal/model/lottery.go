package model

type BuyLotteryTicketRequest struct {
	Numbers []int `json:"numbers"`

	// Cost is optional and falls back to the configured ticket cost.
	Cost float64 `json:"cost"`
}

type BuyLotteryTicketResponse struct {
	Ticket LotteryTicket `json:"ticket"`
	Draw   LotteryDraw   `json:"draw"`
}

type RandomPickRequest struct{}

type RandomPickResponse struct {
	Numbers []int `json:"numbers"`
}

type GetLotteryDrawsRequest struct{}

type GetLotteryDrawsResponse struct {
	Draws []LotteryDraw `json:"draws"`
}

type GetCurrentLotteryDrawRequest struct{}

type GetCurrentLotteryDrawResponse struct {
	Draw LotteryDraw `json:"draw"`
}

type GetMyLotteryTicketsRequest struct{}

type GetMyLotteryTicketsResponse struct {
	Tickets []LotteryTicket `json:"tickets"`
}

type CompleteLotteryDrawRequest struct {
	// DrawID is optional, the current draw is completed when empty.
	DrawID string `json:"draw_id"`

	// WinningNumbers is optional, the engine picks random ones when empty.
	WinningNumbers []int `json:"winning_numbers"`
}

type CompleteLotteryDrawResponse struct {
	Draw LotteryDraw `json:"draw"`
}

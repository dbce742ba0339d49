package model

import "github.com/koquifi/backend/internal/entity"

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		ProfilePicture: user.ProfilePicture,
		WalletAddress:  user.WalletAddress,
		KofiBalance:    user.KofiBalance,
		UsdtBalance:    user.UsdtBalance,
		StakedKofi:     user.StakedKofi,
		AuthMethod:     string(user.AuthMethod),
		LastLogin:      user.LastLogin,
		IsVerified:     user.IsVerified,
	}
}

func ConvertTransaction(tx *entity.Transaction) Transaction {
	if tx == nil {
		return Transaction{}
	}

	return Transaction{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Currency:    string(tx.Currency),
		Status:      string(tx.Status),
		Description: tx.Description,
		TxHash:      tx.TxHash,
		CreatedAt:   tx.CreatedAt,
	}
}

func ConvertLotteryTicket(ticket *entity.LotteryTicket) LotteryTicket {
	if ticket == nil {
		return LotteryTicket{}
	}

	return LotteryTicket{
		ID:            ticket.ID,
		UserID:        ticket.UserID,
		DrawID:        ticket.LotteryID,
		Numbers:       ticket.Numbers,
		Cost:          ticket.Cost,
		Status:        string(ticket.Status),
		WinningAmount: ticket.WinningAmount,
		PurchaseDate:  ticket.CreatedAt,
	}
}

func ConvertLotteryDraw(draw *entity.LotteryDraw) LotteryDraw {
	if draw == nil {
		return LotteryDraw{}
	}

	return LotteryDraw{
		ID:                draw.ID,
		Date:              draw.Date,
		DrawDate:          draw.DrawDate,
		WinningNumbers:    draw.WinningNumbers,
		PrizePoolKofi:     draw.PrizePoolKofi,
		PrizePoolUsdt:     draw.PrizePoolUsdt,
		JackpotWinners:    draw.JackpotWinners,
		SecondWinners:     draw.SecondWinners,
		ThirdWinners:      draw.ThirdWinners,
		TotalParticipants: draw.TotalParticipants,
		Status:            string(draw.Status),
		Tickets:           draw.Tickets,
	}
}

func ConvertLotteryDraws(draws []entity.LotteryDraw) []LotteryDraw {
	result := []LotteryDraw{}
	for i := range draws {
		result = append(result, ConvertLotteryDraw(&draws[i]))
	}

	return result
}

func ConvertLotteryTickets(tickets []entity.LotteryTicket) []LotteryTicket {
	result := []LotteryTicket{}
	for i := range tickets {
		result = append(result, ConvertLotteryTicket(&tickets[i]))
	}

	return result
}

func ConvertTransactions(txs []entity.Transaction) []Transaction {
	result := []Transaction{}
	for i := range txs {
		result = append(result, ConvertTransaction(&txs[i]))
	}

	return result
}

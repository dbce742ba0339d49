package testutil

import (
	"context"
	"time"

	"github.com/gorilla/sessions"
	"github.com/koquifi/backend/config"
	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/pkg/authenticator"
	"github.com/koquifi/backend/pkg/logger"
	"github.com/koquifi/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "koquifi_session",
		},
		Lottery: config.LotteryConfigs{
			TicketCost:       100,
			PrizePoolRate:    0.8,
			NumbersPerTicket: 6,
			MinNumber:        1,
			MaxNumber:        9,
			SecondPrizeRate:  0.1,
			ThirdPrizeRate:   0.05,
			DrawInterval:     7 * 24 * time.Hour,
		},
		Faucet: config.FaucetConfigs{
			Cooldown: 24 * time.Hour,
			MinKofi:  100,
			MaxKofi:  300,
			MinUsdt:  25,
			MaxUsdt:  75,
		},
		Balance: config.BalanceConfigs{
			MinKofi: 500,
			MaxKofi: 1500,
			MinUsdt: 50,
			MaxUsdt: 150,
		},
		Exchange: config.ExchangeConfigs{
			KofiPerBs: 10,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

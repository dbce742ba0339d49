package main

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/koquifi/backend/config"
	"github.com/koquifi/backend/pkg/xcontext"
)

// loadConfig starts from the defaults, applies an optional TOML file pointed
// to by CONFIG_FILE, then environment overrides for the secrets.
func (s *srv) loadConfig() {
	configs := defaultConfigs()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &configs); err != nil {
			panic(err)
		}
	}

	if v := os.Getenv("ENV"); v != "" {
		configs.Env = v
	}

	if v := os.Getenv("PORT"); v != "" {
		configs.ApiServer.Port = v
	}

	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		configs.Database.Driver = v
	}

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		configs.Database.Path = v
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		configs.Redis.Addr = v
	}

	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		configs.Auth.TokenSecret = v
	}

	if v := os.Getenv("SESSION_SECRET"); v != "" {
		configs.Session.Secret = v
	}

	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		configs.Auth.Google.ClientID = v
	}

	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		configs.Auth.Google.ClientSecret = v
	}

	s.configs = &configs
	s.ctx = xcontext.WithConfigs(s.ctx, configs)
}

func defaultConfigs() config.Configs {
	return config.Configs{
		Env: "local",
		Database: config.DatabaseConfigs{
			Driver: "sqlite",
			Path:   "koquifi.db",
		},
		ApiServer: config.ServerConfigs{
			Host: "localhost",
			Port: "8080",
		},
		Auth: config.AuthConfigs{
			TokenSecret: "token-secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Hour,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: 24 * time.Hour,
			},
			Google: config.OAuth2Config{
				Name:    "google",
				Issuer:  "https://accounts.google.com",
				IDField: "sub",
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "koquifi_session",
		},
		Redis: config.RedisConfigs{
			Addr: "localhost:6379",
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
}

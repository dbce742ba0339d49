package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Redis     RedisConfigs
	Lottery   LotteryConfigs
	Faucet    FaucetConfigs
	Balance   BalanceConfigs
	Exchange  ExchangeConfigs
}

type DatabaseConfigs struct {
	Driver   string // "sqlite" or "mysql"
	Path     string // sqlite file path, ":memory:" for tests
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type AuthConfigs struct {
	TokenSecret  string
	AccessToken  TokenConfigs
	RefreshToken TokenConfigs

	Google OAuth2Config
}

type OAuth2Config struct {
	Name         string
	Issuer       string
	ClientID     string
	ClientSecret string
	IDField      string
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type LotteryConfigs struct {
	// TicketCost is the default price of one ticket in KOQUICOIN. A buy
	// request may override it.
	TicketCost float64

	// PrizePoolRate is the fraction of every ticket cost added to the
	// current draw's KOQUICOIN prize pool.
	PrizePoolRate float64

	NumbersPerTicket int
	MinNumber        int
	MaxNumber        int

	// Payout split of the KOQUICOIN pool at draw completion.
	SecondPrizeRate float64
	ThirdPrizeRate  float64

	// DrawInterval separates the draw dates of consecutive rounds.
	DrawInterval time.Duration
}

type FaucetConfigs struct {
	Cooldown time.Duration

	MinKofi int
	MaxKofi int
	MinUsdt int
	MaxUsdt int
}

type BalanceConfigs struct {
	// Initial balance ranges granted to a newly registered user.
	MinKofi int
	MaxKofi int
	MinUsdt int
	MaxUsdt int
}

type ExchangeConfigs struct {
	// KofiPerBs is the fixed demo rate used by the exchange flow.
	KofiPerBs float64
}

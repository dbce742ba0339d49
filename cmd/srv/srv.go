package main

import (
	"context"
	"net/http"

	"github.com/koquifi/backend/config"
	"github.com/koquifi/backend/internal/common"
	"github.com/koquifi/backend/internal/domain"
	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/authenticator"
	"github.com/koquifi/backend/pkg/crypto"
	"github.com/koquifi/backend/pkg/logger"
	"github.com/koquifi/backend/pkg/router"
	"github.com/koquifi/backend/pkg/xcontext"
	"github.com/koquifi/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo         repository.UserRepository
	transactionRepo  repository.TransactionRepository
	lotteryRepo      repository.LotteryRepository
	refreshTokenRepo repository.RefreshTokenRepository

	balanceUpdater *common.BalanceUpdater

	authDomain    domain.AuthDomain
	userDomain    domain.UserDomain
	lotteryDomain domain.LotteryDomain
	faucetDomain  domain.FaucetDomain

	googleService authenticator.IOAuth2Service
	redisClient   xredis.Client

	router  *router.Router
	db      *gorm.DB
	logger  logger.Logger
	configs *config.Configs
	server  *http.Server
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	switch s.configs.Database.Driver {
	case "mysql":
		s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	default:
		s.db, err = gorm.Open(sqlite.Open(s.configs.Database.Path), &gorm.Config{})
	}
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadAuthenticator() {
	googleService, err := authenticator.NewOAuth2Service(s.ctx, s.configs.Auth.Google)
	if err != nil {
		// The faucet demo still works without Google, only id token logins
		// are rejected.
		s.logger.Warnf("Cannot setup google oauth2 service: %v", err)
		return
	}

	s.googleService = googleService
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.lotteryRepo = repository.NewLotteryRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.balanceUpdater = common.NewBalanceUpdater(s.userRepo)
}

func (s *srv) loadDomains() {
	rand := crypto.NewRand()
	s.authDomain = domain.NewAuthDomain(
		s.userRepo, s.refreshTokenRepo, s.transactionRepo, s.googleService, rand)
	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.transactionRepo, s.balanceUpdater, rand)
	s.lotteryDomain = domain.NewLotteryDomain(
		s.lotteryRepo, s.userRepo, s.transactionRepo, s.balanceUpdater, rand)
	s.faucetDomain = domain.NewFaucetDomain(
		s.userRepo, s.transactionRepo, s.balanceUpdater, s.redisClient, rand)
}

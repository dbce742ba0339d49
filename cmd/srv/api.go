package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/koquifi/backend/internal/middleware"
	"github.com/koquifi/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.ctx = context.Background()
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRedis()
	s.loadAuthenticator()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on port: %s\n", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSaveSession())
	{
		router.POST(authRouter, "/loginGoogle", s.authDomain.GoogleLogin)
		router.POST(authRouter, "/connectWallet", s.authDomain.WalletConnect)
		router.POST(authRouter, "/logout", s.authDomain.Logout)
		router.POST(authRouter, "/refresh", s.authDomain.Refresh)
	}

	// These following APIs need authentication with either an access token
	// or a session cookie.
	authVerifier := middleware.NewAuthVerifier().WithAccessToken().WithSession()
	authedRouter := s.router.Branch()
	authedRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.GET(authedRouter, "/getMe", s.authDomain.Me)
		router.GET(authedRouter, "/getTransactions", s.userDomain.GetTransactions)
		router.POST(authedRouter, "/deposit", s.userDomain.Deposit)
		router.POST(authedRouter, "/withdraw", s.userDomain.Withdraw)
		router.POST(authedRouter, "/exchange", s.userDomain.Exchange)
		router.POST(authedRouter, "/stake", s.userDomain.Stake)
		router.POST(authedRouter, "/unstake", s.userDomain.Unstake)

		// Lottery API
		router.GET(authedRouter, "/getMyTickets", s.lotteryDomain.GetMyTickets)
		router.POST(authedRouter, "/buyTicket", s.lotteryDomain.BuyTicket)
		router.POST(authedRouter, "/completeDraw", s.lotteryDomain.CompleteDraw)

		// Faucet API
		router.GET(authedRouter, "/getFaucetStatus", s.faucetDomain.GetStatus)
		router.POST(authedRouter, "/claimFaucet", s.faucetDomain.Claim)
	}

	// Public lottery API
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/getDraws", s.lotteryDomain.GetDraws)
		router.GET(publicRouter, "/getCurrentDraw", s.lotteryDomain.GetCurrentDraw)
		router.GET(publicRouter, "/randomPick", s.lotteryDomain.RandomPick)
	}
}

package testutil

import (
	"context"

	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/repository"
)

var User1 = &entity.User{
	Base:          entity.Base{ID: "user1"},
	Email:         "user1@gmail.com",
	Name:          "User One",
	WalletAddress: "0x1111111111111111111111111111111111111111",
	PrivateKeyRef: "0x0101010101010101010101010101010101010101010101010101010101010101",
	KofiBalance:   1000,
	UsdtBalance:   100,
	AuthMethod:    entity.AuthMethodGoogle,
	IsVerified:    true,
}

var User2 = &entity.User{
	Base:          entity.Base{ID: "user2"},
	Email:         "22222222@wallet.koquifi",
	Name:          "User 222222",
	WalletAddress: "0x2222222222222222222222222222222222222222",
	PrivateKeyRef: entity.ExternalWalletKeyRef,
	KofiBalance:   50,
	UsdtBalance:   10,
	AuthMethod:    entity.AuthMethodWallet,
	IsVerified:    false,
}

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []*entity.User{User1, User2} {
		record := *user
		if err := userRepo.Create(ctx, &record); err != nil {
			panic(err)
		}
	}
}

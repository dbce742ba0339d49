package entity

import (
	"time"

	"github.com/koquifi/backend/pkg/enum"
)

type UserAuthMethod string

var (
	AuthMethodGoogle = enum.New(UserAuthMethod("google"))
	AuthMethodWallet = enum.New(UserAuthMethod("wallet"))
)

type User struct {
	Base

	Email          string `gorm:"unique"`
	Name           string
	ProfilePicture string

	WalletAddress string `gorm:"unique"`
	// PrivateKeyRef refers to the key material of a generated wallet.
	// External wallets carry a placeholder since their key never leaves the
	// owner.
	PrivateKeyRef string

	KofiBalance float64
	UsdtBalance float64
	StakedKofi  float64

	AuthMethod UserAuthMethod
	LastLogin  time.Time
	IsVerified bool
}

const ExternalWalletKeyRef = "external_wallet"

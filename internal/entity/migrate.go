package entity

import (
	"context"

	"github.com/koquifi/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&RefreshToken{},
		&Transaction{},
		&LotteryTicket{},
		&LotteryDraw{},
	)
}

package repository

import (
	"context"

	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/pkg/xcontext"
)

// TransactionRepository is append-only. There is intentionally no update or
// delete method.
type TransactionRepository interface {
	Create(ctx context.Context, data *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Transaction, error)
}

type transactionRepository struct{}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, data *entity.Transaction) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var record entity.Transaction
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *transactionRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Transaction, error) {
	var result []entity.Transaction
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

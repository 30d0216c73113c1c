package repository

import (
	"context"
	"fmt"

	"fintrack/internal/models"

	"go.uber.org/zap"
)

type TransactionRepository struct {
	coll   Collection
	logger *zap.Logger
}

func NewTransactionRepository(store DocumentStore, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		coll:   store.Collection(TransactionsCollection),
		logger: logger,
	}
}

// Create inserts tx and records the store-assigned identifier on it.
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	id, err := r.coll.InsertOne(ctx, tx)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	tx.StoreID = id
	return nil
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	for _, tx := range transactions {
		if err := r.Create(ctx, tx); err != nil {
			return err
		}
	}
	r.logger.Debug("Transactions batch created", zap.Int("count", len(transactions)))
	return nil
}

func (r *TransactionRepository) List(ctx context.Context, p Predicate, o Order) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := r.coll.Find(ctx, p, o, &transactions); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// FindOne returns nil without an error when nothing matches.
func (r *TransactionRepository) FindOne(ctx context.Context, p Predicate) (*models.Transaction, error) {
	var tx models.Transaction
	found, err := r.coll.FindOne(ctx, p, &tx)
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &tx, nil
}

func (r *TransactionRepository) Update(ctx context.Context, p Predicate, fields Fields) (int64, error) {
	n, err := r.coll.UpdateOne(ctx, p, fields)
	if err != nil {
		return 0, fmt.Errorf("update transaction: %w", err)
	}
	return n, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, p Predicate) (int64, error) {
	n, err := r.coll.DeleteOne(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("delete transaction: %w", err)
	}
	return n, nil
}

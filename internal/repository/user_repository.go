package repository

import (
	"context"
	"fmt"

	"fintrack/internal/models"

	"go.uber.org/zap"
)

type UserRepository struct {
	coll   Collection
	logger *zap.Logger
}

func NewUserRepository(store DocumentStore, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		coll:   store.Collection(UsersCollection),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	id, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.StoreID = id
	return nil
}

func (r *UserRepository) List(ctx context.Context, p Predicate) ([]models.User, error) {
	users := []models.User{}
	if err := r.coll.Find(ctx, p, Order{Field: "createdAt", Direction: Ascending}, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindOne(ctx context.Context, p Predicate) (*models.User, error) {
	var user models.User
	found, err := r.coll.FindOne(ctx, p, &user)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// GetByEmail links an identity-provider email to the stored profile.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindOne(ctx, MatchAll().Where("email", email))
}

func (r *UserRepository) Update(ctx context.Context, p Predicate, fields Fields) (int64, error) {
	n, err := r.coll.UpdateOne(ctx, p, fields)
	if err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	return n, nil
}

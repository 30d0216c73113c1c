package repository

import (
	"context"
	"fmt"

	"fintrack/internal/models"

	"go.uber.org/zap"
)

type CategoryRepository struct {
	coll   Collection
	logger *zap.Logger
}

func NewCategoryRepository(store DocumentStore, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		coll:   store.Collection(CategoriesCollection),
		logger: logger,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	id, err := r.coll.InsertOne(ctx, category)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	category.StoreID = id
	return nil
}

func (r *CategoryRepository) List(ctx context.Context, p Predicate) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.coll.Find(ctx, p, Order{Field: "name", Direction: Ascending}, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindOne(ctx context.Context, p Predicate) (*models.Category, error) {
	var category models.Category
	found, err := r.coll.FindOne(ctx, p, &category)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, p Predicate, fields Fields) (int64, error) {
	n, err := r.coll.UpdateOne(ctx, p, fields)
	if err != nil {
		return 0, fmt.Errorf("update category: %w", err)
	}
	return n, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, p Predicate) (int64, error) {
	n, err := r.coll.DeleteOne(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	return n, nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryName     = errors.New("category name is required")
	ErrCategoryExists   = errors.New("category with this id already exists")
)

type CategoryService struct {
	repo     *repository.CategoryRepository
	resolver *IDResolver
	logger   *zap.Logger
}

func NewCategoryService(repo *repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		repo:     repo,
		resolver: NewIDResolver(logger),
		logger:   logger,
	}
}

// List returns every category, or only those of txType when it is set.
func (s *CategoryService) List(ctx context.Context, txType string) ([]models.Category, error) {
	p := repository.MatchAll()
	if txType != "" {
		p = p.Where("type", txType)
	}
	return s.repo.List(ctx, p)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := resolveFirst(ctx, s.resolver.Candidates(id), findPhase(s.repo.FindOne))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrCategoryName
	}
	txType := models.TransactionType(req.Type)
	if !txType.IsValid() {
		return nil, ErrInvalidTransactionType
	}

	category := &models.Category{
		ID:   req.ID,
		Type: txType,
		Name: cleanText(req.Name),
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	s.logger.Info("Category created", zap.String("id", category.ID), zap.String("name", category.Name))
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (int64, error) {
	fields := repository.Fields{}
	if req.Type != nil {
		if !models.TransactionType(*req.Type).IsValid() {
			return 0, ErrInvalidTransactionType
		}
		fields["type"] = *req.Type
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return 0, ErrCategoryName
		}
		fields["name"] = cleanText(*req.Name)
	}

	return resolveFirst(ctx, s.resolver.Candidates(id), countPhase(func(ctx context.Context, p repository.Predicate) (int64, error) {
		return s.repo.Update(ctx, p, fields)
	}))
}

// Delete leaves transactions that reference the category untouched.
func (s *CategoryService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := resolveFirst(ctx, s.resolver.Candidates(id), countPhase(s.repo.Delete))
	if err != nil {
		return 0, err
	}
	s.logger.Info("Category deleted", zap.String("id", id), zap.Int64("deleted", n))
	return n, nil
}

package service

import (
	"errors"
	"strings"

	"fintrack/internal/models"
	"fintrack/internal/repository"

	"go.uber.org/zap"
)

var ErrInvalidSortDirection = errors.New("sort direction must be 1 or -1")

const DefaultSortField = models.FieldCreatedAt

var sortableFields = map[string]struct{}{
	models.FieldStoreID:     {},
	models.FieldID:          {},
	models.FieldType:        {},
	models.FieldCategoryID:  {},
	models.FieldUserID:      {},
	models.FieldUserEmail:   {},
	models.FieldUserName:    {},
	models.FieldAmount:      {},
	models.FieldDescription: {},
	models.FieldDate:        {},
	models.FieldMonth:       {},
	models.FieldCreatedAt:   {},
}

type SortResolver struct {
	logger *zap.Logger
}

func NewSortResolver(logger *zap.Logger) *SortResolver {
	return &SortResolver{logger: logger}
}

// Resolve turns the raw sortBy/sortOrder pair into an Order. An empty key
// always yields createdAt descending and the direction is not consulted; a
// key outside the document fields is replaced by createdAt with the requested
// direction kept.
func (r *SortResolver) Resolve(key, direction string) (repository.Order, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return repository.Order{Field: DefaultSortField, Direction: repository.Descending}, nil
	}

	dir, err := parseDirection(direction)
	if err != nil {
		return repository.Order{}, err
	}
	if _, ok := sortableFields[key]; !ok {
		r.logger.Warn("Unknown sort field, using default",
			zap.String("sort_by", key),
			zap.String("default", DefaultSortField),
		)
		return repository.Order{Field: DefaultSortField, Direction: dir}, nil
	}
	return repository.Order{Field: key, Direction: dir}, nil
}

func parseDirection(s string) (repository.Direction, error) {
	switch strings.TrimSpace(s) {
	case "", "-1":
		return repository.Descending, nil
	case "1":
		return repository.Ascending, nil
	default:
		return 0, ErrInvalidSortDirection
	}
}

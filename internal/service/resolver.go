package service

import (
	"context"

	"fintrack/internal/models"
	"fintrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// IDResolver maps a client-supplied identifier onto the predicates that can
// address a record: the application id first, then the store id.
type IDResolver struct {
	logger *zap.Logger
}

func NewIDResolver(logger *zap.Logger) *IDResolver {
	return &IDResolver{logger: logger}
}

// Candidates returns the lookup predicates in the order they must be tried.
// Strings that are not valid ObjectIDs yield only the application id phase.
func (r *IDResolver) Candidates(id string) []repository.Predicate {
	if id == "" {
		return nil
	}

	candidates := []repository.Predicate{repository.MatchAll().Where(models.FieldID, id)}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		r.logger.Debug("Identifier is not a store id, skipping fallback",
			zap.String("id", id),
			zap.Error(err),
		)
		return candidates
	}
	return append(candidates, repository.ByStoreID(oid))
}

// resolveFirst runs op against each candidate until one reports a match.
// Exhausting the candidates yields the zero value and no error.
func resolveFirst[T any](
	ctx context.Context,
	candidates []repository.Predicate,
	op func(context.Context, repository.Predicate) (T, bool, error),
) (T, error) {
	var zero T
	for _, p := range candidates {
		v, ok, err := op(ctx, p)
		if err != nil {
			return zero, err
		}
		if ok {
			return v, nil
		}
	}
	return zero, nil
}

// findPhase adapts a repository lookup returning nil-when-absent.
func findPhase[T any](find func(context.Context, repository.Predicate) (*T, error)) func(context.Context, repository.Predicate) (*T, bool, error) {
	return func(ctx context.Context, p repository.Predicate) (*T, bool, error) {
		v, err := find(ctx, p)
		return v, v != nil, err
	}
}

// countPhase adapts an update or delete returning an affected count.
func countPhase(op func(context.Context, repository.Predicate) (int64, error)) func(context.Context, repository.Predicate) (int64, bool, error) {
	return func(ctx context.Context, p repository.Predicate) (int64, bool, error) {
		n, err := op(ctx, p)
		return n, n > 0, err
	}
}

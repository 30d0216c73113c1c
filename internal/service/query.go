package service

import (
	"fintrack/internal/models"
	"fintrack/internal/repository"
)

// TransactionCriteria holds optional list filters. Empty strings impose no
// constraint.
type TransactionCriteria struct {
	OwnerID    string
	OwnerEmail string
	Type       string
	CategoryID string
	Month      string
}

// BuildTransactionPredicate ANDs an equality for every non-empty criterion.
// Values are matched verbatim.
func BuildTransactionPredicate(c TransactionCriteria) repository.Predicate {
	p := repository.MatchAll()
	for _, f := range []repository.FieldMatch{
		{Field: models.FieldUserID, Value: c.OwnerID},
		{Field: models.FieldUserEmail, Value: c.OwnerEmail},
		{Field: models.FieldType, Value: c.Type},
		{Field: models.FieldCategoryID, Value: c.CategoryID},
		{Field: models.FieldMonth, Value: c.Month},
	} {
		if f.Value != "" {
			p = p.Where(f.Field, f.Value)
		}
	}
	return p
}

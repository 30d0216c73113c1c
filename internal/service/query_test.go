package service

import (
	"testing"

	"fintrack/internal/repository"
)

func TestBuildTransactionPredicate(t *testing.T) {
	tests := []struct {
		name     string
		criteria TransactionCriteria
		want     []repository.FieldMatch
	}{
		{name: "no criteria matches all", criteria: TransactionCriteria{}},
		{
			name:     "single criterion",
			criteria: TransactionCriteria{Type: "Expense"},
			want:     []repository.FieldMatch{{Field: "type", Value: "Expense"}},
		},
		{
			name: "all criteria",
			criteria: TransactionCriteria{
				OwnerID:    "u1",
				OwnerEmail: "a@example.com",
				Type:       "Income",
				CategoryID: "c1",
				Month:      "2024-03",
			},
			want: []repository.FieldMatch{
				{Field: "userId", Value: "u1"},
				{Field: "userEmail", Value: "a@example.com"},
				{Field: "type", Value: "Income"},
				{Field: "categoryId", Value: "c1"},
				{Field: "month", Value: "2024-03"},
			},
		},
		{
			name:     "values are not coerced",
			criteria: TransactionCriteria{Month: " 2024-3 "},
			want:     []repository.FieldMatch{{Field: "month", Value: " 2024-3 "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildTransactionPredicate(tt.criteria)
			if p.StoreID != nil {
				t.Fatal("StoreID should not be set")
			}
			if len(p.Fields) != len(tt.want) {
				t.Fatalf("Fields = %v, want %v", p.Fields, tt.want)
			}
			for i := range tt.want {
				if p.Fields[i] != tt.want[i] {
					t.Errorf("Fields[%d] = %v, want %v", i, p.Fields[i], tt.want[i])
				}
			}
		})
	}
}

package dto

import (
	"testing"
	"time"

	"fintrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewTransactionResponse(t *testing.T) {
	oid := primitive.NewObjectID()
	at := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tx        models.Transaction
		wantID    string
		wantStamp string
	}{
		{
			name:      "application id",
			tx:        models.Transaction{StoreID: oid, ID: "t1", CreatedAt: models.NewTimestamp(at)},
			wantID:    "t1",
			wantStamp: "2024-03-15T08:00:00Z",
		},
		{
			name:   "record without id is addressed by store id",
			tx:     models.Transaction{StoreID: oid},
			wantID: oid.Hex(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewTransactionResponse(&tt.tx)
			if resp.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", resp.ID, tt.wantID)
			}
			if resp.StoreID != oid.Hex() {
				t.Errorf("StoreID = %q, want %q", resp.StoreID, oid.Hex())
			}
			if resp.CreatedAt != tt.wantStamp {
				t.Errorf("CreatedAt = %q, want %q", resp.CreatedAt, tt.wantStamp)
			}
		})
	}
}

package dto

import (
	"time"

	"fintrack/internal/models"
)

type TransactionResponse struct {
	StoreID     string  `json:"_id"`
	ID          string  `json:"id,omitempty"`
	Type        string  `json:"type"`
	CategoryID  string  `json:"categoryId"`
	UserID      string  `json:"userId"`
	UserEmail   string  `json:"userEmail"`
	UserName    string  `json:"userName,omitempty"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Month       string  `json:"month,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// CreateTransactionRequest accepts amount as a JSON number or numeric string.
type CreateTransactionRequest struct {
	ID          string        `json:"id"`
	Type        string        `json:"type" example:"Expense"`
	CategoryID  string        `json:"categoryId"`
	UserID      string        `json:"userId"`
	UserEmail   string        `json:"userEmail"`
	UserName    string        `json:"userName"`
	Amount      models.Amount `json:"amount" swaggertype:"number"`
	Description string        `json:"description"`
	Date        string        `json:"date" example:"2024-03-15"`
	Month       string        `json:"month" example:"2024-03"`
}

// UpdateTransactionRequest only sets the fields that are present.
type UpdateTransactionRequest struct {
	Type        *string        `json:"type,omitempty"`
	CategoryID  *string        `json:"categoryId,omitempty"`
	UserName    *string        `json:"userName,omitempty"`
	Amount      *models.Amount `json:"amount,omitempty" swaggertype:"number"`
	Description *string        `json:"description,omitempty"`
	Date        *string        `json:"date,omitempty"`
	Month       *string        `json:"month,omitempty"`
}

type MatchedResponse struct {
	MatchedCount int64 `json:"matchedCount"`
}

type DeletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		StoreID:     tx.StoreID.Hex(),
		ID:          tx.ExternalID(),
		Type:        string(tx.Type),
		CategoryID:  tx.CategoryID,
		UserID:      tx.UserID,
		UserEmail:   tx.UserEmail,
		UserName:    tx.UserName,
		Amount:      tx.Amount.InexactFloat64(),
		Description: tx.Description,
		Date:        tx.Date,
		Month:       tx.Month,
	}
	if !tx.CreatedAt.IsZero() {
		resp.CreatedAt = tx.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return resp
}

func NewTransactionResponses(transactions []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, NewTransactionResponse(&transactions[i]))
	}
	return out
}

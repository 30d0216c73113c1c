package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
	TransactionTypeSavings TransactionType = "Savings"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeSavings:
		return true
	default:
		return false
	}
}

// Transaction document field names.
const (
	FieldStoreID     = "_id"
	FieldID          = "id"
	FieldType        = "type"
	FieldCategoryID  = "categoryId"
	FieldUserID      = "userId"
	FieldUserEmail   = "userEmail"
	FieldUserName    = "userName"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldMonth       = "month"
	FieldCreatedAt   = "createdAt"
)

// Transaction is one money movement. StoreID is assigned by the store on
// insert; ID is the application identifier and is absent on records that
// were written without one.
type Transaction struct {
	StoreID     primitive.ObjectID `bson:"_id,omitempty"`
	ID          string             `bson:"id,omitempty"`
	Type        TransactionType    `bson:"type"`
	CategoryID  string             `bson:"categoryId"`
	UserID      string             `bson:"userId"`
	UserEmail   string             `bson:"userEmail"`
	UserName    string             `bson:"userName,omitempty"`
	Amount      Amount             `bson:"amount"`
	Description string             `bson:"description"`
	Date        string             `bson:"date"`
	Month       string             `bson:"month,omitempty"`
	CreatedAt   Timestamp          `bson:"createdAt"`
}

// ExternalID is the identifier clients should use to address the record.
func (t *Transaction) ExternalID() string {
	if t.ID != "" {
		return t.ID
	}
	return t.StoreID.Hex()
}

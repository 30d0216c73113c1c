package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TransactionsCollection = "transactions"
	CategoriesCollection   = "categories"
	UsersCollection        = "users"
)

const (
	storeIDField = "_id"
	// idField is unique per collection when present and non-empty.
	idField = "id"
)

var (
	ErrInvalidOutput = errors.New("output must be a non-nil pointer to a slice")
	ErrDuplicateKey  = errors.New("duplicate key")
)

type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

func (d Direction) String() string {
	if d == Ascending {
		return "ASC"
	}
	return "DESC"
}

// FieldMatch is a single equality constraint on a top-level document field.
type FieldMatch struct {
	Field string
	Value string
}

// Predicate is a conjunction of equality constraints. The zero value matches
// every document.
type Predicate struct {
	Fields  []FieldMatch
	StoreID *primitive.ObjectID
}

func MatchAll() Predicate {
	return Predicate{}
}

func ByStoreID(id primitive.ObjectID) Predicate {
	return Predicate{StoreID: &id}
}

// Where returns a copy of p with an additional equality constraint.
func (p Predicate) Where(field, value string) Predicate {
	fields := make([]FieldMatch, len(p.Fields), len(p.Fields)+1)
	copy(fields, p.Fields)
	return Predicate{
		Fields:  append(fields, FieldMatch{Field: field, Value: value}),
		StoreID: p.StoreID,
	}
}

// Order sorts on one field. The zero value keeps the store's natural order.
type Order struct {
	Field     string
	Direction Direction
}

// Fields is a partial document applied with $set semantics.
type Fields map[string]any

// Collection is the set of primitives every document store backend offers.
type Collection interface {
	// Find decodes all matching documents into out, which must point to a slice.
	Find(ctx context.Context, p Predicate, o Order, out any) error
	// FindOne decodes the first match into out and reports whether one existed.
	FindOne(ctx context.Context, p Predicate, out any) (bool, error)
	// InsertOne stores doc and returns its _id. A clash on _id or id yields
	// ErrDuplicateKey.
	InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error)
	// UpdateOne sets fields on the first match and returns the matched count.
	UpdateOne(ctx context.Context, p Predicate, fields Fields) (int64, error)
	DeleteOne(ctx context.Context, p Predicate) (int64, error)
}

type DocumentStore interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Category struct {
	StoreID primitive.ObjectID `bson:"_id,omitempty"`
	ID      string             `bson:"id"`
	Type    TransactionType    `bson:"type"`
	Name    string             `bson:"name"`
}

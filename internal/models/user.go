package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	StoreID   primitive.ObjectID `bson:"_id,omitempty"`
	ID        string             `bson:"id"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name,omitempty"`
	PhotoURL  string             `bson:"photoUrl,omitempty"`
	CreatedAt Timestamp          `bson:"createdAt"`
}

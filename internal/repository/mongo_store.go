package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoStore(client *mongo.Client, database string, logger *zap.Logger) *MongoStore {
	return &MongoStore{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{
		coll:   s.db.Collection(name),
		logger: s.logger.With(zap.String("collection", name)),
	}
}

// EnsureIndexes creates the unique index on id for every application
// collection. Documents without a string id are not indexed.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	for _, name := range []string{TransactionsCollection, CategoriesCollection, UsersCollection} {
		index, err := s.db.Collection(name).Indexes().CreateOne(ctx, uniqueIDIndex())
		if err != nil {
			return fmt.Errorf("create %s index on %s: %w", idField, name, err)
		}
		s.logger.Debug("Index ensured", zap.String("collection", name), zap.String("index", index))
	}
	return nil
}

func uniqueIDIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: idField, Value: 1}},
		Options: options.Index().
			SetName("uniq_id").
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: idField, Value: bson.D{{Key: "$type", Value: "string"}}}}),
	}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func (c *mongoCollection) Find(ctx context.Context, p Predicate, o Order, out any) error {
	opts := options.Find()
	if sort := mongoSort(o); sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := c.coll.Find(ctx, mongoFilter(p), opts)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode documents: %w", err)
	}
	return nil
}

func (c *mongoCollection) FindOne(ctx context.Context, p Predicate, out any) (bool, error) {
	err := c.coll.FindOne(ctx, mongoFilter(p)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find one: %w", err)
	}
	return true, nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, fmt.Errorf("insert: %w", ErrDuplicateKey)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	c.logger.Debug("Document inserted", zap.String("store_id", id.Hex()))
	return id, nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, p Predicate, fields Fields) (int64, error) {
	if len(fields) == 0 {
		// $set with an empty document is rejected by the server; count matches instead.
		n, err := c.coll.CountDocuments(ctx, mongoFilter(p), options.Count().SetLimit(1))
		if err != nil {
			return 0, fmt.Errorf("count: %w", err)
		}
		return n, nil
	}

	res, err := c.coll.UpdateOne(ctx, mongoFilter(p), bson.D{{Key: "$set", Value: bson.M(fields)}})
	if err != nil {
		return 0, fmt.Errorf("update: %w", err)
	}
	return res.MatchedCount, nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, p Predicate) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, mongoFilter(p))
	if err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}
	return res.DeletedCount, nil
}

func mongoFilter(p Predicate) bson.D {
	filter := bson.D{}
	if p.StoreID != nil {
		filter = append(filter, bson.E{Key: storeIDField, Value: *p.StoreID})
	}
	for _, f := range p.Fields {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}
	return filter
}

func mongoSort(o Order) bson.D {
	if o.Field == "" {
		return nil
	}
	return bson.D{{Key: o.Field, Value: int(o.Direction)}}
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const documentsTable = "documents"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresStore keeps every collection in a single JSONB table. Documents are
// written as relaxed extended JSON so ObjectIDs and datetimes survive the
// round trip.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		logger: logger,
	}
}

func (s *PostgresStore) Collection(name string) Collection {
	return &postgresCollection{
		pool:   s.pool,
		name:   name,
		logger: s.logger.With(zap.String("collection", name)),
	}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}

type postgresCollection struct {
	pool   *pgxpool.Pool
	name   string
	logger *zap.Logger
}

func (c *postgresCollection) Find(ctx context.Context, p Predicate, o Order, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return ErrInvalidOutput
	}

	sql, args, err := c.selectQuery(p, o).ToSql()
	if err != nil {
		return fmt.Errorf("build find query: %w", err)
	}

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	defer rows.Close()

	slice := reflect.MakeSlice(rv.Elem().Type(), 0, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("scan document: %w", err)
		}
		elem := reflect.New(slice.Type().Elem())
		if err := bson.UnmarshalExtJSON(data, false, elem.Interface()); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate documents: %w", err)
	}

	rv.Elem().Set(slice)
	return nil
}

func (c *postgresCollection) FindOne(ctx context.Context, p Predicate, out any) (bool, error) {
	sql, args, err := c.selectQuery(p, Order{}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build find one query: %w", err)
	}

	var data []byte
	err = c.pool.QueryRow(ctx, sql, args...).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find one: %w", err)
	}

	if err := bson.UnmarshalExtJSON(data, false, out); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}
	return true, nil
}

func (c *postgresCollection) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	m, err := toDocument(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := m[storeIDField].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		m[storeIDField] = id
	}

	data, err := bson.MarshalExtJSON(m, false, false)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("encode document: %w", err)
	}

	sql, args, err := c.insertQuery(id, data).ToSql()
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("build insert query: %w", err)
	}

	if _, err := c.pool.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return primitive.NilObjectID, fmt.Errorf("insert: %w", ErrDuplicateKey)
		}
		return primitive.NilObjectID, fmt.Errorf("insert: %w", err)
	}

	c.logger.Debug("Document inserted", zap.String("store_id", id.Hex()))
	return id, nil
}

func (c *postgresCollection) UpdateOne(ctx context.Context, p Predicate, fields Fields) (int64, error) {
	patch, err := toDocument(map[string]any(fields))
	if err != nil {
		return 0, err
	}
	delete(patch, storeIDField)

	data, err := bson.MarshalExtJSON(patch, false, false)
	if err != nil {
		return 0, fmt.Errorf("encode patch: %w", err)
	}

	sql, args, err := c.updateQuery(p, data).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update query: %w", err)
	}

	tag, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("update: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (c *postgresCollection) DeleteOne(ctx context.Context, p Predicate) (int64, error) {
	sql, args, err := c.deleteQuery(p).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete query: %w", err)
	}

	tag, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (c *postgresCollection) where(p Predicate) squirrel.And {
	and := squirrel.And{squirrel.Eq{"collection": c.name}}
	if p.StoreID != nil {
		and = append(and, squirrel.Eq{"store_id": p.StoreID.Hex()})
	}
	for _, f := range p.Fields {
		and = append(and, squirrel.Expr("doc->>?::text = ?", f.Field, f.Value))
	}
	return and
}

func (c *postgresCollection) selectQuery(p Predicate, o Order) squirrel.SelectBuilder {
	query := psql.Select("doc").From(documentsTable).Where(c.where(p))
	if o.Field != "" {
		// Missing fields are NULL and sort below present values, as in MongoDB.
		nulls := "NULLS LAST"
		if o.Direction == Ascending {
			nulls = "NULLS FIRST"
		}
		query = query.
			OrderByClause(fmt.Sprintf("%s %s", typeRankExpr, o.Direction), o.Field, o.Field, o.Field).
			OrderByClause(fmt.Sprintf("doc->?::text %s %s", o.Direction, nulls), o.Field)
	}
	return query.OrderBy("seq")
}

// typeRankExpr ranks a field's JSON type in MongoDB's BSON comparison order
// (null, number, string, object, array, ObjectID, boolean, date).
const typeRankExpr = "CASE COALESCE(jsonb_typeof(doc->?::text), 'null')" +
	" WHEN 'null' THEN 1 WHEN 'number' THEN 2 WHEN 'string' THEN 3" +
	" WHEN 'array' THEN 5 WHEN 'boolean' THEN 8" +
	" ELSE CASE WHEN (doc->?::text)->>'$oid' IS NOT NULL THEN 7" +
	" WHEN (doc->?::text)->>'$date' IS NOT NULL THEN 9 ELSE 4 END END"

func (c *postgresCollection) insertQuery(id primitive.ObjectID, doc []byte) squirrel.InsertBuilder {
	return psql.Insert(documentsTable).
		Columns("collection", "store_id", "doc").
		Values(c.name, id.Hex(), squirrel.Expr("?::jsonb", string(doc)))
}

// firstMatch selects the seq of the first matching row so updates and deletes
// touch at most one document.
func (c *postgresCollection) firstMatch(p Predicate) squirrel.SelectBuilder {
	return squirrel.Select("seq").
		From(documentsTable).
		Where(c.where(p)).
		OrderBy("seq").
		Limit(1)
}

func (c *postgresCollection) updateQuery(p Predicate, patch []byte) squirrel.UpdateBuilder {
	return psql.Update(documentsTable).
		Set("doc", squirrel.Expr("doc || ?::jsonb", string(patch))).
		Where(squirrel.Expr("seq = (?)", c.firstMatch(p)))
}

func (c *postgresCollection) deleteQuery(p Predicate) squirrel.DeleteBuilder {
	return psql.Delete(documentsTable).
		Where(squirrel.Expr("seq = (?)", c.firstMatch(p)))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

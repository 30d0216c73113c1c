package repository

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps documents in process. Sorting follows MongoDB's
// cross-type ordering so results match the mongo backend.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]*memoryCollection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}

type memoryCollection struct {
	mu   sync.RWMutex
	docs []bson.M
}

func (c *memoryCollection) Find(_ context.Context, p Predicate, o Order, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return ErrInvalidOutput
	}

	c.mu.RLock()
	var matched []bson.M
	for _, doc := range c.docs {
		if matches(doc, p) {
			matched = append(matched, doc)
		}
	}
	c.mu.RUnlock()

	if o.Field != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			diff := compareValues(matched[i][o.Field], matched[j][o.Field])
			if o.Direction == Ascending {
				return diff < 0
			}
			return diff > 0
		})
	}

	slice := reflect.MakeSlice(rv.Elem().Type(), 0, len(matched))
	for _, doc := range matched {
		elem := reflect.New(slice.Type().Elem())
		if err := decodeDocument(doc, elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	rv.Elem().Set(slice)
	return nil
}

func (c *memoryCollection) FindOne(_ context.Context, p Predicate, out any) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.docs {
		if matches(doc, p) {
			return true, decodeDocument(doc, out)
		}
	}
	return false, nil
}

func (c *memoryCollection) InsertOne(_ context.Context, doc any) (primitive.ObjectID, error) {
	m, err := toDocument(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := m[storeIDField].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		m[storeIDField] = id
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	appID, _ := m[idField].(string)
	for _, existing := range c.docs {
		if existing[storeIDField] == id {
			return primitive.NilObjectID, fmt.Errorf("insert %s %s: %w", storeIDField, id.Hex(), ErrDuplicateKey)
		}
		if appID != "" && existing[idField] == appID {
			return primitive.NilObjectID, fmt.Errorf("insert %s %s: %w", idField, appID, ErrDuplicateKey)
		}
	}
	c.docs = append(c.docs, m)
	return id, nil
}

func (c *memoryCollection) UpdateOne(_ context.Context, p Predicate, fields Fields) (int64, error) {
	patch, err := toDocument(map[string]any(fields))
	if err != nil {
		return 0, err
	}
	delete(patch, storeIDField)

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, doc := range c.docs {
		if !matches(doc, p) {
			continue
		}
		updated := make(bson.M, len(doc)+len(patch))
		for k, v := range doc {
			updated[k] = v
		}
		for k, v := range patch {
			updated[k] = v
		}
		c.docs[i] = updated
		return 1, nil
	}
	return 0, nil
}

func (c *memoryCollection) DeleteOne(_ context.Context, p Predicate) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if matches(doc, p) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func matches(doc bson.M, p Predicate) bool {
	if p.StoreID != nil {
		id, ok := doc[storeIDField].(primitive.ObjectID)
		if !ok || id != *p.StoreID {
			return false
		}
	}
	for _, f := range p.Fields {
		v, ok := doc[f.Field].(string)
		if !ok || v != f.Value {
			return false
		}
	}
	return true
}

// toDocument normalises any marshalable value into BSON types.
func toDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return m, nil
}

func decodeDocument(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// typeRank mirrors MongoDB's BSON comparison order. Missing fields rank as null.
func typeRank(v any) int {
	switch v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return 1
	case int32, int64, float64, primitive.Decimal128:
		return 2
	case string, primitive.Symbol:
		return 3
	case bson.M, bson.D:
		return 4
	case bson.A:
		return 5
	case primitive.Binary:
		return 6
	case primitive.ObjectID:
		return 7
	case bool:
		return 8
	case primitive.DateTime:
		return 9
	case primitive.Timestamp:
		return 10
	default:
		return 11
	}
}

func compareValues(a, b any) int {
	if ra, rb := typeRank(a), typeRank(b); ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch av := a.(type) {
	case string:
		return strings.Compare(av, b.(string))
	case primitive.Symbol:
		return strings.Compare(string(av), string(b.(primitive.Symbol)))
	case primitive.ObjectID:
		bv := b.(primitive.ObjectID)
		return bytes.Compare(av[:], bv[:])
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case primitive.DateTime:
		return cmp.Compare(av, b.(primitive.DateTime))
	case primitive.Timestamp:
		bv := b.(primitive.Timestamp)
		return cmp.Compare(uint64(av.T)<<32|uint64(av.I), uint64(bv.T)<<32|uint64(bv.I))
	}

	if fa, ok := numeric(a); ok {
		if fb, ok := numeric(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	return 0
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case primitive.Decimal128:
		f, err := decimal128ToFloat(n)
		return f, err == nil
	default:
		return 0, false
	}
}

func decimal128ToFloat(d primitive.Decimal128) (float64, error) {
	var f float64
	_, err := fmt.Sscan(d.String(), &f)
	return f, err
}

package service

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestIDResolverCandidates(t *testing.T) {
	r := NewIDResolver(zap.NewNop())
	oid := primitive.NewObjectID()

	if got := r.Candidates(""); len(got) != 0 {
		t.Errorf("Candidates(\"\") = %v, want none", got)
	}

	plain := r.Candidates("txn-42")
	if len(plain) != 1 {
		t.Fatalf("Candidates(non-hex) = %d phases, want 1", len(plain))
	}
	if plain[0].Fields[0] != (repository.FieldMatch{Field: "id", Value: "txn-42"}) {
		t.Errorf("first phase = %+v, want id match", plain[0])
	}

	both := r.Candidates(oid.Hex())
	if len(both) != 2 {
		t.Fatalf("Candidates(hex) = %d phases, want 2", len(both))
	}
	if both[0].StoreID != nil || both[0].Fields[0].Value != oid.Hex() {
		t.Errorf("first phase should match the id field: %+v", both[0])
	}
	if both[1].StoreID == nil || *both[1].StoreID != oid || len(both[1].Fields) != 0 {
		t.Errorf("second phase should match the store id only: %+v", both[1])
	}
}

func TestResolveFirst(t *testing.T) {
	candidates := []repository.Predicate{
		repository.MatchAll().Where("id", "x"),
		repository.ByStoreID(primitive.NewObjectID()),
	}

	t.Run("first phase wins", func(t *testing.T) {
		calls := 0
		n, err := resolveFirst(context.Background(), candidates, countPhase(func(context.Context, repository.Predicate) (int64, error) {
			calls++
			return 1, nil
		}))
		if err != nil || n != 1 || calls != 1 {
			t.Errorf("n=%d err=%v calls=%d, want 1 nil 1", n, err, calls)
		}
	})

	t.Run("falls back on zero matches", func(t *testing.T) {
		calls := 0
		n, err := resolveFirst(context.Background(), candidates, countPhase(func(_ context.Context, p repository.Predicate) (int64, error) {
			calls++
			if p.StoreID != nil {
				return 1, nil
			}
			return 0, nil
		}))
		if err != nil || n != 1 || calls != 2 {
			t.Errorf("n=%d err=%v calls=%d, want 1 nil 2", n, err, calls)
		}
	})

	t.Run("no match is not an error", func(t *testing.T) {
		n, err := resolveFirst(context.Background(), candidates, countPhase(func(context.Context, repository.Predicate) (int64, error) {
			return 0, nil
		}))
		if err != nil || n != 0 {
			t.Errorf("n=%d err=%v, want 0 nil", n, err)
		}
	})

	t.Run("store errors stop resolution", func(t *testing.T) {
		boom := errors.New("store down")
		calls := 0
		_, err := resolveFirst(context.Background(), candidates, countPhase(func(context.Context, repository.Predicate) (int64, error) {
			calls++
			return 0, boom
		}))
		if !errors.Is(err, boom) || calls != 1 {
			t.Errorf("err=%v calls=%d, want store error after 1 call", err, calls)
		}
	})
}

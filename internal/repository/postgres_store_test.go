package repository

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func testPostgresCollection() *postgresCollection {
	return &postgresCollection{name: TransactionsCollection, logger: zap.NewNop()}
}

func TestPostgresSelectQuery(t *testing.T) {
	c := testPostgresCollection()
	p := MatchAll().Where("userId", "u1").Where("month", "2024-03")

	sql, args, err := c.selectQuery(p, Order{Field: "createdAt", Direction: Descending}).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}

	for _, part := range []string{
		"SELECT doc FROM documents",
		"collection = $1",
		"doc->>$2::text = $3",
		"doc->>$4::text = $5",
		"ORDER BY CASE COALESCE(jsonb_typeof(doc->$6::text), 'null')",
		"(doc->$8::text)->>'$date' IS NOT NULL THEN 9 ELSE 4 END END DESC",
		"doc->$9::text DESC NULLS LAST, seq",
	} {
		if !strings.Contains(sql, part) {
			t.Errorf("sql = %q, missing %q", sql, part)
		}
	}

	want := []any{TransactionsCollection, "userId", "u1", "month", "2024-03", "createdAt", "createdAt", "createdAt", "createdAt"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestPostgresSelectQueryAscendingNullsFirst(t *testing.T) {
	sql, _, err := testPostgresCollection().selectQuery(MatchAll(), Order{Field: "amount", Direction: Ascending}).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}
	if !strings.Contains(sql, "ASC NULLS FIRST") {
		t.Errorf("sql = %q, want ASC NULLS FIRST", sql)
	}
}

func TestPostgresSortRanksNumbersBeforeStrings(t *testing.T) {
	sql, _, err := testPostgresCollection().selectQuery(MatchAll(), Order{Field: "amount", Direction: Ascending}).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}

	number := strings.Index(sql, "WHEN 'number' THEN 2")
	str := strings.Index(sql, "WHEN 'string' THEN 3")
	if number < 0 || str < 0 {
		t.Fatalf("sql = %q, missing type ranking", sql)
	}
	rank := strings.Index(sql, "END END ASC")
	value := strings.Index(sql, "doc->$5::text ASC NULLS FIRST")
	if rank < 0 || value < 0 || rank > value {
		t.Errorf("sql = %q, type rank must order before the value", sql)
	}
}

func TestPostgresSelectQueryByStoreID(t *testing.T) {
	id := primitive.NewObjectID()
	_, args, err := testPostgresCollection().selectQuery(ByStoreID(id), Order{}).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}
	if len(args) != 2 || args[1] != id.Hex() {
		t.Errorf("args = %v, want store id hex", args)
	}
}

func TestPostgresMutationsTouchFirstMatch(t *testing.T) {
	c := testPostgresCollection()
	p := MatchAll().Where("id", "t1")

	update, args, err := c.updateQuery(p, []byte(`{"amount":5}`)).ToSql()
	if err != nil {
		t.Fatalf("update ToSql() error = %v", err)
	}
	for _, part := range []string{"UPDATE documents SET doc = doc || $1::jsonb", "WHERE seq = (SELECT seq FROM documents", "LIMIT 1"} {
		if !strings.Contains(update, part) {
			t.Errorf("update sql = %q, missing %q", update, part)
		}
	}
	if strings.Contains(update, "?") {
		t.Errorf("update sql = %q, has unreplaced placeholders", update)
	}
	if args[0] != `{"amount":5}` {
		t.Errorf("patch arg = %v", args[0])
	}

	del, _, err := c.deleteQuery(p).ToSql()
	if err != nil {
		t.Fatalf("delete ToSql() error = %v", err)
	}
	if !strings.HasPrefix(del, "DELETE FROM documents WHERE seq = (SELECT seq") {
		t.Errorf("delete sql = %q", del)
	}
}

func TestPostgresInsertQuery(t *testing.T) {
	id := primitive.NewObjectID()
	sql, args, err := testPostgresCollection().insertQuery(id, []byte(`{}`)).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}
	if !strings.Contains(sql, "INSERT INTO documents (collection,store_id,doc) VALUES ($1,$2,$3::jsonb)") {
		t.Errorf("sql = %q", sql)
	}
	if args[1] != id.Hex() {
		t.Errorf("store id arg = %v, want %s", args[1], id.Hex())
	}
}

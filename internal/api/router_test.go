package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/api/handlers"
	"fintrack/internal/dto"
	"fintrack/internal/repository"
	"fintrack/internal/service"
	"fintrack/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, opts Options) (*fiber.App, *auth.JWTManager) {
	t.Helper()
	log := zap.NewNop()
	store := repository.NewMemoryStore()

	txService := service.NewTransactionService(repository.NewTransactionRepository(store, log), log)
	categoryService := service.NewCategoryService(repository.NewCategoryRepository(store, log), log)
	userService := service.NewUserService(repository.NewUserRepository(store, log), log)

	jwtManager := auth.NewJWTManager("test-secret", "")
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	app := SetupRouter(Handlers{
		Transaction: handlers.NewTransactionHandler(txService, log),
		Summary:     handlers.NewSummaryHandler(txService, log),
		Category:    handlers.NewCategoryHandler(categoryService, log),
		User:        handlers.NewUserHandler(userService, log),
		Health:      handlers.NewHealthHandler(store, log),
	}, jwtManager, opts, log)
	return app, jwtManager
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestTransactionLifecycle(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	status, body := do(t, app, http.MethodPost, "/api/v1/transactions",
		`{"id":"t1","type":"Expense","userId":"u1","categoryId":"food","amount":"12.5","date":"2024-03-15"}`)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", status, body)
	}
	created := decode[dto.TransactionResponse](t, body)
	if created.Amount != 12.5 || created.Month != "2024-03" || created.StoreID == "" {
		t.Errorf("created = %+v", created)
	}

	for _, id := range []string{"t1", created.StoreID} {
		status, body = do(t, app, http.MethodGet, "/api/v1/transactions/"+id, "")
		if status != http.StatusOK {
			t.Fatalf("get %s status = %d", id, status)
		}
		if got := decode[dto.TransactionResponse](t, body); got.ID != "t1" {
			t.Errorf("get %s returned id %q", id, got.ID)
		}
	}

	status, body = do(t, app, http.MethodPut, "/api/v1/transactions/t1", `{"amount":20}`)
	if status != http.StatusOK || decode[dto.MatchedResponse](t, body).MatchedCount != 1 {
		t.Fatalf("update status = %d, body %s", status, body)
	}

	status, body = do(t, app, http.MethodDelete, "/api/v1/transactions/"+created.StoreID, "")
	if status != http.StatusOK || decode[dto.DeletedResponse](t, body).DeletedCount != 1 {
		t.Fatalf("delete status = %d, body %s", status, body)
	}

	status, _ = do(t, app, http.MethodGet, "/api/v1/transactions/t1", "")
	if status != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", status)
	}

	status, body = do(t, app, http.MethodDelete, "/api/v1/transactions/t1", "")
	if status != http.StatusOK || decode[dto.DeletedResponse](t, body).DeletedCount != 0 {
		t.Errorf("delete missing status = %d, body %s", status, body)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	tests := []struct {
		name, body string
	}{
		{"bad type", `{"type":"Gift","amount":1}`},
		{"non numeric amount", `{"type":"Income","amount":"lots"}`},
		{"negative amount", `{"type":"Income","amount":-4}`},
		{"malformed json", `{"type":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, "/api/v1/transactions", tt.body)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", status, body)
			}
		})
	}
}

func TestSummaryEndpoints(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	for _, body := range []string{
		`{"type":"Income","userId":"U","categoryId":"salary","amount":100,"date":"2024-03-01"}`,
		`{"type":"Expense","userId":"U","categoryId":"food","amount":30,"date":"2024-03-02"}`,
		`{"type":"Savings","userId":"U","categoryId":"fund","amount":20,"date":"2024-04-01"}`,
		`{"type":"Expense","userId":"V","categoryId":"food","amount":99}`,
	} {
		if status, resp := do(t, app, http.MethodPost, "/api/v1/transactions", body); status != http.StatusCreated {
			t.Fatalf("seed status = %d, body %s", status, resp)
		}
	}

	status, body := do(t, app, http.MethodGet, "/api/v1/summary/U", "")
	if status != http.StatusOK {
		t.Fatalf("summary status = %d", status)
	}
	want := dto.BalanceSummaryResponse{TotalBalance: 50, Income: 100, Expense: 30, Savings: 20}
	if got := decode[dto.BalanceSummaryResponse](t, body); got != want {
		t.Errorf("summary = %+v, want %+v", got, want)
	}

	_, body = do(t, app, http.MethodGet, "/api/v1/summary/nobody", "")
	if got := decode[dto.BalanceSummaryResponse](t, body); got != (dto.BalanceSummaryResponse{}) {
		t.Errorf("empty summary = %+v", got)
	}

	_, body = do(t, app, http.MethodGet, "/api/v1/category-total/food/U", "")
	if got := decode[dto.CategoryTotalResponse](t, body); got.Total != 30 {
		t.Errorf("category total = %v, want 30", got.Total)
	}

	_, body = do(t, app, http.MethodGet, "/api/v1/reports/U", "")
	report := decode[dto.ReportResponse](t, body)
	if len(report.ByMonth) != 2 || len(report.ByCategory) != 3 {
		t.Errorf("report = %+v", report)
	}
}

func TestListTransactionsQuery(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	for _, body := range []string{
		`{"type":"Expense","userId":"u1","categoryId":"c1","amount":5}`,
		`{"type":"Expense","userId":"u1","categoryId":"c2","amount":1}`,
		`{"type":"Income","userId":"u1","categoryId":"c1","amount":3}`,
	} {
		do(t, app, http.MethodPost, "/api/v1/transactions", body)
	}

	_, body := do(t, app, http.MethodGet, "/api/v1/transactions?type=Expense&sortBy=amount&sortOrder=1", "")
	list := decode[[]dto.TransactionResponse](t, body)
	if len(list) != 2 || list[0].Amount != 1 || list[1].Amount != 5 {
		t.Errorf("list = %+v", list)
	}

	status, _ := do(t, app, http.MethodGet, "/api/v1/transactions?sortBy=amount&sortOrder=2", "")
	if status != http.StatusBadRequest {
		t.Errorf("bad sortOrder status = %d, want 400", status)
	}
}

func TestCategoryAndUserRoutes(t *testing.T) {
	app, jwtManager := newTestApp(t, Options{})

	status, body := do(t, app, http.MethodPost, "/api/v1/categories", `{"id":"food","type":"Expense","name":"Food"}`)
	if status != http.StatusCreated {
		t.Fatalf("create category status = %d, body %s", status, body)
	}
	_, body = do(t, app, http.MethodGet, "/api/v1/categories?type=Expense", "")
	if got := decode[[]dto.CategoryResponse](t, body); len(got) != 1 || got[0].Name != "Food" {
		t.Errorf("categories = %+v", got)
	}
	status, _ = do(t, app, http.MethodGet, "/api/v1/categories/nope", "")
	if status != http.StatusNotFound {
		t.Errorf("missing category status = %d", status)
	}

	status, _ = do(t, app, http.MethodPost, "/api/v1/users", `{"id":"u1","email":"a@example.com","name":"Ann"}`)
	if status != http.StatusCreated {
		t.Fatalf("create user status = %d", status)
	}
	status, _ = do(t, app, http.MethodPost, "/api/v1/users", `{"email":"a@example.com"}`)
	if status != http.StatusConflict {
		t.Errorf("duplicate user status = %d, want 409", status)
	}

	status, _ = do(t, app, http.MethodGet, "/api/v1/me", "")
	if status != http.StatusUnauthorized {
		t.Errorf("anonymous /me status = %d, want 401", status)
	}

	token, err := jwtManager.GenerateToken("provider-uid", "a@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	status, body = do(t, app, http.MethodGet, "/api/v1/me", "", "Authorization", "Bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("/me status = %d, body %s", status, body)
	}
	if me := decode[dto.UserResponse](t, body); me.ID != "u1" {
		t.Errorf("/me = %+v", me)
	}
}

func TestAuthRequired(t *testing.T) {
	app, jwtManager := newTestApp(t, Options{AuthRequired: true})

	status, _ := do(t, app, http.MethodGet, "/api/v1/transactions", "")
	if status != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", status)
	}

	token, _ := jwtManager.GenerateToken("u1", "a@example.com", time.Hour)
	status, _ = do(t, app, http.MethodGet, "/api/v1/transactions", "", "Authorization", "Bearer "+token)
	if status != http.StatusOK {
		t.Errorf("status with token = %d, want 200", status)
	}

	status, _ = do(t, app, http.MethodGet, "/healthz", "")
	if status != http.StatusOK {
		t.Errorf("healthz should stay public, got %d", status)
	}
}

func TestReadiness(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	status, body := do(t, app, http.MethodGet, "/readyz", "")
	if status != http.StatusOK || !strings.Contains(string(body), "ok") {
		t.Errorf("readyz = %d %s", status, body)
	}
}

func TestCreateTransactionDuplicateID(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	body := `{"id":"t1","type":"Income","userId":"u1","amount":5}`

	if status, _ := do(t, app, http.MethodPost, "/api/v1/transactions", body); status != http.StatusCreated {
		t.Fatalf("first create status = %d", status)
	}
	status, resp := do(t, app, http.MethodPost, "/api/v1/transactions", body)
	if status != http.StatusConflict {
		t.Errorf("duplicate create status = %d, body %s, want 409", status, resp)
	}

	_, resp = do(t, app, http.MethodGet, "/api/v1/transactions?userId=u1", "")
	if got := decode[[]dto.TransactionResponse](t, resp); len(got) != 1 {
		t.Errorf("transactions after duplicate = %d, want 1", len(got))
	}
}

func TestCurrentUserByTokenSubject(t *testing.T) {
	app, jwtManager := newTestApp(t, Options{})

	if status, _ := do(t, app, http.MethodPost, "/api/v1/users", `{"id":"u7","email":"b@example.com"}`); status != http.StatusCreated {
		t.Fatalf("create user status = %d", status)
	}

	token, err := jwtManager.GenerateToken("u7", "", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	status, body := do(t, app, http.MethodGet, "/api/v1/me", "", "Authorization", "Bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("/me status = %d, body %s", status, body)
	}
	if me := decode[dto.UserResponse](t, body); me.Email != "b@example.com" {
		t.Errorf("/me = %+v", me)
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/dto"
	"fintrack/internal/repository"

	"go.uber.org/zap"
)

func newTestCategoryService() *CategoryService {
	store := repository.NewMemoryStore()
	return NewCategoryService(repository.NewCategoryRepository(store, zap.NewNop()), zap.NewNop())
}

func TestCategoryServiceCRUD(t *testing.T) {
	svc := newTestCategoryService()
	ctx := context.Background()

	food, err := svc.Create(ctx, &dto.CreateCategoryRequest{Type: "Expense", Name: "Food"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if food.ID == "" {
		t.Error("ID should be assigned")
	}
	if _, err := svc.Create(ctx, &dto.CreateCategoryRequest{ID: "salary", Type: "Income", Name: "Salary"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateCategoryRequest{ID: "salary", Type: "Income", Name: "Bonus"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("Create(duplicate id) error = %v, want ErrCategoryExists", err)
	}

	all, err := svc.List(ctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("List() = %d, %v, want 2", len(all), err)
	}
	if all[0].Name != "Food" {
		t.Errorf("List() should be ordered by name, got %q first", all[0].Name)
	}
	income, _ := svc.List(ctx, "Income")
	if len(income) != 1 || income[0].ID != "salary" {
		t.Errorf("List(Income) = %+v", income)
	}

	got, err := svc.Get(ctx, food.StoreID.Hex())
	if err != nil || got.ID != food.ID {
		t.Fatalf("Get(store id) = %+v, %v", got, err)
	}

	name := "Groceries"
	n, err := svc.Update(ctx, food.ID, &dto.UpdateCategoryRequest{Name: &name})
	if err != nil || n != 1 {
		t.Fatalf("Update() = %d, %v", n, err)
	}
	got, _ = svc.Get(ctx, food.ID)
	if got.Name != "Groceries" {
		t.Errorf("Name = %q, want Groceries", got.Name)
	}

	n, err = svc.Delete(ctx, "salary")
	if err != nil || n != 1 {
		t.Fatalf("Delete() = %d, %v", n, err)
	}
	if _, err := svc.Get(ctx, "salary"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategoryServiceValidation(t *testing.T) {
	svc := newTestCategoryService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateCategoryRequest{Type: "Expense"}); !errors.Is(err, ErrCategoryName) {
		t.Errorf("Create(no name) error = %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateCategoryRequest{Type: "Loan", Name: "x"}); !errors.Is(err, ErrInvalidTransactionType) {
		t.Errorf("Create(bad type) error = %v", err)
	}
	blank := " "
	if _, err := svc.Update(ctx, "any", &dto.UpdateCategoryRequest{Name: &blank}); !errors.Is(err, ErrCategoryName) {
		t.Errorf("Update(blank name) error = %v", err)
	}
}

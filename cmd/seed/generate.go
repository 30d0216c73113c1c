package main

import (
	"math"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var demoCategories = []dto.CreateCategoryRequest{
	{ID: "salary", Type: string(models.TransactionTypeIncome), Name: "Salary"},
	{ID: "freelance", Type: string(models.TransactionTypeIncome), Name: "Freelance"},
	{ID: "groceries", Type: string(models.TransactionTypeExpense), Name: "Groceries"},
	{ID: "rent", Type: string(models.TransactionTypeExpense), Name: "Rent"},
	{ID: "transport", Type: string(models.TransactionTypeExpense), Name: "Transport"},
	{ID: "emergency-fund", Type: string(models.TransactionTypeSavings), Name: "Emergency fund"},
}

func fakeUser(f *gofakeit.Faker) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		ID:       f.UUID(),
		Email:    f.Email(),
		Name:     f.Name(),
		PhotoURL: f.URL(),
	}
}

// fakeTransactions spreads n transactions over the months before now,
// picking categories so that every type is represented.
func fakeTransactions(f *gofakeit.Faker, user dto.CreateUserRequest, n int, now time.Time) []dto.CreateTransactionRequest {
	out := make([]dto.CreateTransactionRequest, 0, n)
	start := now.AddDate(0, -6, 0)
	for i := 0; i < n; i++ {
		category := demoCategories[i%len(demoCategories)]
		date := f.DateRange(start, now)

		var ceiling float64
		switch models.TransactionType(category.Type) {
		case models.TransactionTypeIncome:
			ceiling = 5000
		case models.TransactionTypeSavings:
			ceiling = 500
		default:
			ceiling = 300
		}

		out = append(out, dto.CreateTransactionRequest{
			Type:        category.Type,
			CategoryID:  category.ID,
			UserID:      user.ID,
			UserEmail:   user.Email,
			UserName:    user.Name,
			Amount:      models.AmountFromFloat(math.Round(f.Price(1, ceiling)*100) / 100),
			Description: f.Sentence(4),
			Date:        date.UTC().Format("2006-01-02"),
		})
	}
	return out
}

package service

import (
	"testing"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

func txn(t models.TransactionType, amount any) models.Transaction {
	return models.Transaction{Type: t, Amount: models.CoerceAmount(amount)}
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestSummarizeBalanceScenario(t *testing.T) {
	s := SummarizeBalance([]models.Transaction{
		txn(models.TransactionTypeIncome, 100),
		txn(models.TransactionTypeExpense, 30),
		txn(models.TransactionTypeSavings, 20),
	})

	assertDecimal(t, "TotalBalance", s.TotalBalance, "50")
	assertDecimal(t, "Income", s.Income, "100")
	assertDecimal(t, "Expense", s.Expense, "30")
	assertDecimal(t, "Savings", s.Savings, "20")
}

func TestSummarizeBalanceEmpty(t *testing.T) {
	s := SummarizeBalance(nil)
	for name, v := range map[string]decimal.Decimal{
		"TotalBalance": s.TotalBalance,
		"Income":       s.Income,
		"Expense":      s.Expense,
		"Savings":      s.Savings,
	} {
		assertDecimal(t, name, v, "0")
	}
}

// Savings reduce the total balance exactly like expenses do, even though
// saved money is arguably still available. This pins the current formula.
func TestSummarizeBalanceSavingsReduceTotal(t *testing.T) {
	s := SummarizeBalance([]models.Transaction{
		txn(models.TransactionTypeIncome, 100),
		txn(models.TransactionTypeSavings, 100),
	})
	assertDecimal(t, "TotalBalance", s.TotalBalance, "0")
	assertDecimal(t, "Savings", s.Savings, "100")
}

func TestSummarizeBalanceDelta(t *testing.T) {
	base := []models.Transaction{
		txn(models.TransactionTypeIncome, 100),
		txn(models.TransactionTypeExpense, 30),
		txn(models.TransactionTypeSavings, 20),
	}
	before := SummarizeBalance(base)

	tests := []struct {
		index     int
		wantTotal string
		bucket    func(BalanceSummary) decimal.Decimal
	}{
		{0, "5", func(s BalanceSummary) decimal.Decimal { return s.Income }},
		{1, "-5", func(s BalanceSummary) decimal.Decimal { return s.Expense }},
		{2, "-5", func(s BalanceSummary) decimal.Decimal { return s.Savings }},
	}

	for _, tt := range tests {
		t.Run(string(base[tt.index].Type), func(t *testing.T) {
			changed := append([]models.Transaction(nil), base...)
			changed[tt.index].Amount = models.NewAmount(changed[tt.index].Amount.Add(decimal.NewFromInt(5)))
			after := SummarizeBalance(changed)

			assertDecimal(t, "total delta", after.TotalBalance.Sub(before.TotalBalance), tt.wantTotal)
			assertDecimal(t, "bucket delta", tt.bucket(after).Sub(tt.bucket(before)), "5")
		})
	}
}

func TestSummarizeBalanceCoercion(t *testing.T) {
	s := SummarizeBalance([]models.Transaction{
		txn(models.TransactionTypeIncome, "100.50"),
		txn(models.TransactionTypeIncome, "abc"),
		txn(models.TransactionTypeIncome, nil),
		txn(models.TransactionTypeExpense, 0.25),
		txn("Transfer", 1000),
	})
	assertDecimal(t, "Income", s.Income, "100.5")
	assertDecimal(t, "Expense", s.Expense, "0.25")
	assertDecimal(t, "TotalBalance", s.TotalBalance, "100.25")
}

func TestSumAmounts(t *testing.T) {
	assertDecimal(t, "empty", SumAmounts(nil), "0")
	assertDecimal(t, "mixed", SumAmounts([]models.Transaction{
		txn(models.TransactionTypeExpense, 10),
		txn(models.TransactionTypeIncome, "2.5"),
		txn(models.TransactionTypeSavings, "n/a"),
	}), "12.5")
}

func TestBuildReport(t *testing.T) {
	txs := []models.Transaction{
		{Type: models.TransactionTypeIncome, CategoryID: "salary", Date: "2024-02-01", Amount: models.CoerceAmount(1000)},
		{Type: models.TransactionTypeExpense, CategoryID: "food", Date: "2024-02-10", Amount: models.CoerceAmount(40)},
		{Type: models.TransactionTypeExpense, CategoryID: "food", Date: "2024-03-02", Amount: models.CoerceAmount(60)},
		{Type: models.TransactionTypeSavings, CategoryID: "fund", Month: "2024-03", Amount: models.CoerceAmount(100)},
	}

	r := BuildReport(txs)
	assertDecimal(t, "Summary.TotalBalance", r.Summary.TotalBalance, "800")

	if len(r.ByCategory) != 3 {
		t.Fatalf("ByCategory = %d lines, want 3", len(r.ByCategory))
	}
	wantKeys := []string{"food", "fund", "salary"}
	for i, k := range wantKeys {
		if r.ByCategory[i].Key != k {
			t.Errorf("ByCategory[%d].Key = %q, want %q", i, r.ByCategory[i].Key, k)
		}
	}
	food := r.ByCategory[0]
	if food.Count != 2 {
		t.Errorf("food count = %d, want 2", food.Count)
	}
	assertDecimal(t, "food expense", food.Expense, "100")
	assertDecimal(t, "food net", food.Net(), "-100")

	if len(r.ByMonth) != 2 || r.ByMonth[0].Key != "2024-02" || r.ByMonth[1].Key != "2024-03" {
		t.Fatalf("ByMonth = %+v", r.ByMonth)
	}
	assertDecimal(t, "2024-03 net", r.ByMonth[1].Net(), "-160")
}

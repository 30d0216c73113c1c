package service

import (
	"sort"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

type BalanceSummary struct {
	TotalBalance decimal.Decimal
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Savings      decimal.Decimal
}

// SummarizeBalance buckets amounts by type. Savings are subtracted from the
// balance alongside expenses. Unknown types contribute nothing.
func SummarizeBalance(transactions []models.Transaction) BalanceSummary {
	var s BalanceSummary
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			s.Income = s.Income.Add(tx.Amount.Decimal)
		case models.TransactionTypeExpense:
			s.Expense = s.Expense.Add(tx.Amount.Decimal)
		case models.TransactionTypeSavings:
			s.Savings = s.Savings.Add(tx.Amount.Decimal)
		}
	}
	s.TotalBalance = s.Income.Sub(s.Expense).Sub(s.Savings)
	return s
}

type BalanceTotal struct {
	Total decimal.Decimal
	Count int
}

// SumAmounts adds every amount regardless of type.
func SumAmounts(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount.Decimal)
	}
	return total
}

type ReportLine struct {
	Key     string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Savings decimal.Decimal
	Count   int
}

// Net follows the balance rule: income minus expense minus savings.
func (l ReportLine) Net() decimal.Decimal {
	return l.Income.Sub(l.Expense).Sub(l.Savings)
}

type Report struct {
	Summary    BalanceSummary
	ByCategory []ReportLine
	ByMonth    []ReportLine
}

// BuildReport groups transactions by category and by calendar month of
// their date. Lines are ordered by key.
func BuildReport(transactions []models.Transaction) Report {
	return Report{
		Summary:    SummarizeBalance(transactions),
		ByCategory: groupBy(transactions, func(tx models.Transaction) string { return tx.CategoryID }),
		ByMonth:    groupBy(transactions, monthOf),
	}
}

func monthOf(tx models.Transaction) string {
	if len(tx.Date) >= 7 {
		return tx.Date[:7]
	}
	return tx.Month
}

func groupBy(transactions []models.Transaction, key func(models.Transaction) string) []ReportLine {
	index := make(map[string]int)
	lines := []ReportLine{}
	for _, tx := range transactions {
		k := key(tx)
		i, ok := index[k]
		if !ok {
			i = len(lines)
			index[k] = i
			lines = append(lines, ReportLine{Key: k})
		}
		line := &lines[i]
		line.Count++
		switch tx.Type {
		case models.TransactionTypeIncome:
			line.Income = line.Income.Add(tx.Amount.Decimal)
		case models.TransactionTypeExpense:
			line.Expense = line.Expense.Add(tx.Amount.Decimal)
		case models.TransactionTypeSavings:
			line.Savings = line.Savings.Add(tx.Amount.Decimal)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Key < lines[j].Key })
	return lines
}

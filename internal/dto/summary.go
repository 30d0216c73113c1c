package dto

type BalanceSummaryResponse struct {
	TotalBalance float64 `json:"totalBalance"`
	Income       float64 `json:"income"`
	Expense      float64 `json:"expense"`
	Savings      float64 `json:"savings"`
}

type CategoryTotalResponse struct {
	Total float64 `json:"total"`
}

type ReportLineResponse struct {
	Key     string  `json:"key"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
	Net     float64 `json:"net"`
	Count   int     `json:"count"`
}

type ReportResponse struct {
	Summary    BalanceSummaryResponse `json:"summary"`
	ByCategory []ReportLineResponse   `json:"byCategory"`
	ByMonth    []ReportLineResponse   `json:"byMonth"`
}

package handlers

import (
	"fintrack/internal/dto"
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SummaryHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewSummaryHandler(txService *service.TransactionService, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		txService: txService,
		logger:    logger,
	}
}

// GetBalanceSummary godoc
// @Summary Balance summary
// @Description totalBalance is income minus expense minus savings.
// @Tags summary
// @Produce json
// @Param userId path string true "Owner id"
// @Security Bearer
// @Success 200 {object} dto.BalanceSummaryResponse
// @Router /summary/{userId} [get]
func (h *SummaryHandler) GetBalanceSummary(c *fiber.Ctx) error {
	summary, err := h.txService.BalanceSummary(c.Context(), c.Params("userId"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to compute summary")
	}

	return c.JSON(balanceSummaryResponse(summary))
}

// GetCategoryTotal godoc
// @Summary Category total
// @Tags summary
// @Produce json
// @Param categoryId path string true "Category id"
// @Param userId path string true "Owner id"
// @Security Bearer
// @Success 200 {object} dto.CategoryTotalResponse
// @Router /category-total/{categoryId}/{userId} [get]
func (h *SummaryHandler) GetCategoryTotal(c *fiber.Ctx) error {
	total, err := h.txService.CategoryTotal(c.Context(), c.Params("categoryId"), c.Params("userId"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to compute category total")
	}

	return c.JSON(dto.CategoryTotalResponse{Total: total.Total.InexactFloat64()})
}

// GetReport godoc
// @Summary Spending report
// @Description Totals per category and per calendar month of the transaction date.
// @Tags summary
// @Produce json
// @Param userId path string true "Owner id"
// @Param month query string false "Month (YYYY-MM)"
// @Param categoryId query string false "Category id"
// @Security Bearer
// @Success 200 {object} dto.ReportResponse
// @Router /reports/{userId} [get]
func (h *SummaryHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.txService.Report(c.Context(), c.Params("userId"), c.Query("month"), c.Query("categoryId"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to build report")
	}

	return c.JSON(dto.ReportResponse{
		Summary:    balanceSummaryResponse(report.Summary),
		ByCategory: reportLines(report.ByCategory),
		ByMonth:    reportLines(report.ByMonth),
	})
}

func balanceSummaryResponse(s service.BalanceSummary) dto.BalanceSummaryResponse {
	return dto.BalanceSummaryResponse{
		TotalBalance: s.TotalBalance.InexactFloat64(),
		Income:       s.Income.InexactFloat64(),
		Expense:      s.Expense.InexactFloat64(),
		Savings:      s.Savings.InexactFloat64(),
	}
}

func reportLines(lines []service.ReportLine) []dto.ReportLineResponse {
	out := make([]dto.ReportLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ReportLineResponse{
			Key:     l.Key,
			Income:  l.Income.InexactFloat64(),
			Expense: l.Expense.InexactFloat64(),
			Savings: l.Savings.InexactFloat64(),
			Net:     l.Net().InexactFloat64(),
			Count:   l.Count,
		})
	}
	return out
}

package handlers

import (
	"fintrack/internal/dto"
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// ListTransactions godoc
// @Summary List transactions
// @Description Filter by owner, email, type, category and month. Sorted by createdAt descending unless sortBy is given.
// @Tags transactions
// @Produce json
// @Param userId query string false "Owner id"
// @Param email query string false "Owner email"
// @Param type query string false "Income, Expense or Savings"
// @Param categoryId query string false "Category id"
// @Param month query string false "Month (YYYY-MM)"
// @Param sortBy query string false "Document field to sort on"
// @Param sortOrder query string false "1 ascending, -1 descending"
// @Security Bearer
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	criteria := service.TransactionCriteria{
		OwnerID:    c.Query("userId"),
		OwnerEmail: c.Query("email"),
		Type:       c.Query("type"),
		CategoryID: c.Query("categoryId"),
		Month:      c.Query("month"),
	}

	txs, err := h.txService.List(c.Context(), criteria, c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list transactions")
	}

	return c.JSON(dto.NewTransactionResponses(txs))
}

// GetTransaction godoc
// @Summary Get a transaction
// @Description Looks the id up as an application id first, then as a store id.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id or store id"
// @Security Bearer
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.txService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get transaction")
	}

	return c.JSON(dto.NewTransactionResponse(tx))
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction"
// @Security Bearer
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, err := h.txService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create transaction")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(tx))
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Sets the supplied fields. matchedCount is 0 when the id resolves to nothing.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction id or store id"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to set"
// @Security Bearer
// @Success 200 {object} dto.MatchedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	n, err := h.txService.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update transaction")
	}

	return c.JSON(dto.MatchedResponse{MatchedCount: n})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id or store id"
// @Security Bearer
// @Success 200 {object} dto.DeletedResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	n, err := h.txService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to delete transaction")
	}

	return c.JSON(dto.DeletedResponse{DeletedCount: n})
}

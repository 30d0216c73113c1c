package service

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrTransactionExists      = errors.New("transaction with this id already exists")
	ErrInvalidTransactionType = errors.New("type must be Income, Expense or Savings")
	ErrInvalidAmount          = errors.New("amount must be a non-negative number")
	ErrInvalidDate            = errors.New("date must be formatted as YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

type TransactionService struct {
	repo     *repository.TransactionRepository
	resolver *IDResolver
	sorter   *SortResolver
	logger   *zap.Logger
	now      func() time.Time
}

func NewTransactionService(repo *repository.TransactionRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		repo:     repo,
		resolver: NewIDResolver(logger),
		sorter:   NewSortResolver(logger),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *TransactionService) List(ctx context.Context, criteria TransactionCriteria, sortBy, sortOrder string) ([]models.Transaction, error) {
	order, err := s.sorter.Resolve(sortBy, sortOrder)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, BuildTransactionPredicate(criteria), order)
}

func (s *TransactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := resolveFirst(ctx, s.resolver.Candidates(id), findPhase(s.repo.FindOne))
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

// Create stores a new transaction. A missing id gets a UUID, createdAt is
// stamped with the current time and month is derived from date when absent.
func (s *TransactionService) Create(ctx context.Context, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	tx, err := s.newTransaction(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueID(ctx, tx.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrTransactionExists
		}
		return nil, err
	}

	s.logger.Info("Transaction created",
		zap.String("id", tx.ID),
		zap.String("store_id", tx.StoreID.Hex()),
		zap.String("user_id", tx.UserID),
	)
	return tx, nil
}

// CreateBatch validates every request before storing any of them. Ids must
// be unique within the batch and against stored transactions.
func (s *TransactionService) CreateBatch(ctx context.Context, reqs []dto.CreateTransactionRequest) ([]*models.Transaction, error) {
	transactions := make([]*models.Transaction, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for i := range reqs {
		tx, err := s.newTransaction(&reqs[i])
		if err != nil {
			return nil, err
		}
		if _, ok := seen[tx.ID]; ok {
			return nil, ErrTransactionExists
		}
		seen[tx.ID] = struct{}{}
		if err := s.ensureUniqueID(ctx, tx.ID); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err := s.repo.CreateBatch(ctx, transactions); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrTransactionExists
		}
		return nil, err
	}

	s.logger.Info("Transactions created", zap.Int("count", len(transactions)))
	return transactions, nil
}

func (s *TransactionService) newTransaction(req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	txType := models.TransactionType(req.Type)
	if !txType.IsValid() {
		return nil, ErrInvalidTransactionType
	}
	if req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:          req.ID,
		Type:        txType,
		CategoryID:  req.CategoryID,
		UserID:      req.UserID,
		UserEmail:   req.UserEmail,
		UserName:    cleanText(req.UserName),
		Amount:      req.Amount,
		Description: cleanText(req.Description),
		Date:        req.Date,
		Month:       req.Month,
		CreatedAt:   models.NewTimestamp(s.now()),
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Month == "" && len(tx.Date) >= 7 {
		tx.Month = tx.Date[:7]
	}
	return tx, nil
}

func (s *TransactionService) ensureUniqueID(ctx context.Context, id string) error {
	existing, err := s.repo.FindOne(ctx, repository.MatchAll().Where(models.FieldID, id))
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrTransactionExists
	}
	return nil
}

// Update sets the supplied fields on the addressed transaction and returns
// the matched count, zero when the id resolves to nothing.
func (s *TransactionService) Update(ctx context.Context, id string, req *dto.UpdateTransactionRequest) (int64, error) {
	fields, err := transactionUpdateFields(req)
	if err != nil {
		return 0, err
	}

	n, err := resolveFirst(ctx, s.resolver.Candidates(id), countPhase(func(ctx context.Context, p repository.Predicate) (int64, error) {
		return s.repo.Update(ctx, p, fields)
	}))
	if err != nil {
		return 0, err
	}

	s.logger.Info("Transaction updated", zap.String("id", id), zap.Int64("matched", n))
	return n, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := resolveFirst(ctx, s.resolver.Candidates(id), countPhase(s.repo.Delete))
	if err != nil {
		return 0, err
	}

	s.logger.Info("Transaction deleted", zap.String("id", id), zap.Int64("deleted", n))
	return n, nil
}

func (s *TransactionService) BalanceSummary(ctx context.Context, ownerID string) (BalanceSummary, error) {
	txs, err := s.repo.List(ctx, BuildTransactionPredicate(TransactionCriteria{OwnerID: ownerID}), repository.Order{})
	if err != nil {
		return BalanceSummary{}, err
	}
	return SummarizeBalance(txs), nil
}

func (s *TransactionService) CategoryTotal(ctx context.Context, categoryID, ownerID string) (BalanceTotal, error) {
	txs, err := s.repo.List(ctx, BuildTransactionPredicate(TransactionCriteria{
		OwnerID:    ownerID,
		CategoryID: categoryID,
	}), repository.Order{})
	if err != nil {
		return BalanceTotal{}, err
	}
	return BalanceTotal{Total: SumAmounts(txs), Count: len(txs)}, nil
}

// Report scans the owner's transactions, optionally narrowed by month and
// category, and groups them.
func (s *TransactionService) Report(ctx context.Context, ownerID, month, categoryID string) (Report, error) {
	txs, err := s.repo.List(ctx, BuildTransactionPredicate(TransactionCriteria{
		OwnerID:    ownerID,
		Month:      month,
		CategoryID: categoryID,
	}), repository.Order{Field: models.FieldDate, Direction: repository.Ascending})
	if err != nil {
		return Report{}, err
	}
	return BuildReport(txs), nil
}

func transactionUpdateFields(req *dto.UpdateTransactionRequest) (repository.Fields, error) {
	fields := repository.Fields{}
	if req.Type != nil {
		if !models.TransactionType(*req.Type).IsValid() {
			return nil, ErrInvalidTransactionType
		}
		fields[models.FieldType] = *req.Type
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		fields[models.FieldAmount] = *req.Amount
	}
	if req.Date != nil {
		if err := validateDate(*req.Date); err != nil {
			return nil, err
		}
		fields[models.FieldDate] = *req.Date
	}
	if req.CategoryID != nil {
		fields[models.FieldCategoryID] = *req.CategoryID
	}
	if req.UserName != nil {
		fields[models.FieldUserName] = cleanText(*req.UserName)
	}
	if req.Description != nil {
		fields[models.FieldDescription] = cleanText(*req.Description)
	}
	if req.Month != nil {
		fields[models.FieldMonth] = *req.Month
	}
	return fields, nil
}

func validateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

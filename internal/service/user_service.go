package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserEmail    = errors.New("email is required")
	ErrUserExists   = errors.New("user already exists")
)

type UserService struct {
	repo     *repository.UserRepository
	resolver *IDResolver
	logger   *zap.Logger
	now      func() time.Time
}

func NewUserService(repo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		repo:     repo,
		resolver: NewIDResolver(logger),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UserService) List(ctx context.Context, email string) ([]models.User, error) {
	p := repository.MatchAll()
	if email != "" {
		p = p.Where("email", email)
	}
	return s.repo.List(ctx, p)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := resolveFirst(ctx, s.resolver.Candidates(id), findPhase(s.repo.FindOne))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByEmail resolves the identity provider's email to the stored profile.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, ErrUserEmail
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	user := &models.User{
		ID:        req.ID,
		Email:     email,
		Name:      cleanText(req.Name),
		PhotoURL:  req.PhotoURL,
		CreatedAt: models.NewTimestamp(s.now()),
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.logger.Info("User created", zap.String("id", user.ID), zap.String("email", user.Email))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (int64, error) {
	fields := repository.Fields{}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return 0, ErrUserEmail
		}
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Name != nil {
		fields["name"] = cleanText(*req.Name)
	}
	if req.PhotoURL != nil {
		fields["photoUrl"] = *req.PhotoURL
	}

	return resolveFirst(ctx, s.resolver.Candidates(id), countPhase(func(ctx context.Context, p repository.Predicate) (int64, error) {
		return s.repo.Update(ctx, p, fields)
	}))
}

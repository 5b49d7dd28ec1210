package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/pkg/jwt"
)

// TokenService issues and checks admin tokens.
type TokenService interface {
	GenerateToken(adminID string) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

type Service struct {
	repo     domain.AdminRepository
	tokens   TokenService
	validate *validator.Validate
}

var _ domain.AdminUsecase = (*Service)(nil)

func NewService(r domain.AdminRepository, t TokenService) *Service {
	return &Service{repo: r, tokens: t, validate: validator.New()}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (domain.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.Admin{}, domain.NewValidationError("email and password are required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return domain.Admin{}, domain.NewValidationError("email is not valid")
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return domain.Admin{}, domain.NewConflictError("email already registered")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Admin{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Admin{}, err
	}

	a := domain.Admin{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Insert(ctx, &a); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Admin{}, domain.NewConflictError("email already registered")
		}
		return domain.Admin{}, err
	}
	return a, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, domain.Admin, error) {
	a, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.Admin{}, domain.NewUnauthorizedError("incorrect email or password")
	}
	if err != nil {
		return "", domain.Admin{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", domain.Admin{}, domain.NewUnauthorizedError("incorrect email or password")
	}

	token, err := s.tokens.GenerateToken(a.ID)
	if err != nil {
		return "", domain.Admin{}, err
	}
	return token, a, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (domain.Admin, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return domain.Admin{}, domain.NewUnauthorizedError("invalid or expired token")
	}

	a, err := s.repo.GetByID(ctx, claims.AdminID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Admin{}, domain.NewForbiddenError("access denied: admin not found")
	}
	if err != nil {
		return domain.Admin{}, err
	}
	return a, nil
}

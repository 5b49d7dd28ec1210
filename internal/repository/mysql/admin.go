package mysql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/repository"
	"github.com/artcontest/contest-backend/internal/repository/mysql/model"
)

type adminRepository struct {
	DB *gorm.DB
}

var _ domain.AdminRepository = (*adminRepository)(nil)

// NewAdminRepository will create an implementation of domain.AdminRepository
func NewAdminRepository(db *gorm.DB) *adminRepository {
	return &adminRepository{
		DB: db,
	}
}

func (m *adminRepository) GetByID(ctx context.Context, id string) (domain.Admin, error) {
	return m.first(ctx, "id = ?", id)
}

func (m *adminRepository) GetByEmail(ctx context.Context, email string) (domain.Admin, error) {
	return m.first(ctx, "email = ?", email)
}

func (m *adminRepository) first(ctx context.Context, query string, arg any) (domain.Admin, error) {
	var admin model.Admin
	err := m.DB.WithContext(ctx).Where(query, arg).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Admin{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Admin{}, err
	}
	return admin.ToDomain(), nil
}

func (m *adminRepository) Insert(ctx context.Context, a *domain.Admin) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	adminModel := model.NewAdminFromDomain(a)

	if err := m.DB.WithContext(ctx).Create(adminModel).Error; err != nil {
		if repository.IsDuplicateKey(err) {
			return domain.ErrConflict
		}
		return err
	}

	a.CreatedAt = adminModel.CreatedAt
	return nil
}

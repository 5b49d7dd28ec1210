package model

import (
	"time"

	"github.com/artcontest/contest-backend/domain"
)

type Admin struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	Name         string    `gorm:"type:varchar(120)"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	CreatedAt    time.Time
}

func (Admin) TableName() string {
	return "admins"
}

func (m *Admin) ToDomain() domain.Admin {
	return domain.Admin{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func NewAdminFromDomain(a *domain.Admin) *Admin {
	return &Admin{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&Submission{}, &Like{}, &Admin{}}
}

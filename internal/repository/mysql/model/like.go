package model

import (
	"time"

	"github.com/artcontest/contest-backend/domain"
)

// Like has a unique (upload_id, user_id) pair so concurrent duplicate likes lose at insert time.
// The (user_id, category) pair is unique too; category is set to NULL when the submission is
// deleted, which releases the category without dropping the row.
type Like struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UploadID  string    `gorm:"column:upload_id;type:varchar(36);not null;uniqueIndex:uk_like_upload_user,priority:1"`
	UserID    string    `gorm:"column:user_id;type:varchar(255);not null;uniqueIndex:uk_like_upload_user,priority:2;uniqueIndex:uk_like_user_category,priority:1"`
	Category  *string   `gorm:"column:category;type:varchar(64);uniqueIndex:uk_like_user_category,priority:2"`
	CreatedAt time.Time `gorm:"index"`
}

func (Like) TableName() string {
	return "likes"
}

func NewLikeFromDomain(l *domain.Like) Like {
	m := Like{
		ID:        l.ID,
		UploadID:  l.UploadID,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
	}
	if l.Category != "" {
		category := l.Category
		m.Category = &category
	}
	return m
}

func (m *Like) ToDomain() domain.Like {
	l := domain.Like{
		ID:        m.ID,
		UploadID:  m.UploadID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
	if m.Category != nil {
		l.Category = *m.Category
	}
	return l
}

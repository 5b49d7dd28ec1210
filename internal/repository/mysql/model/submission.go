package model

import (
	"time"

	"github.com/artcontest/contest-backend/domain"
)

type Submission struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Nickname    string    `gorm:"type:varchar(120);not null"`
	Email       string    `gorm:"type:varchar(255);not null;index:idx_submission_email_category,priority:1"`
	Category    string    `gorm:"type:varchar(64);not null;index:idx_submission_email_category,priority:2"`
	Description string    `gorm:"type:text"`
	FileURL     string    `gorm:"column:file_url;type:varchar(512);not null"`
	Storage     string    `gorm:"type:varchar(16);not null"`
	MimeType    string    `gorm:"column:mime_type;type:varchar(127)"`
	Size        int64     `gorm:"default:0"`
	IsVerified  bool      `gorm:"column:is_verified;default:false;index"`
	LikesCount  int64     `gorm:"column:likes_count;default:0"`
	CreatedAt   time.Time `gorm:"index"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (m *Submission) ToDomain() domain.Submission {
	return domain.Submission{
		ID:          m.ID,
		Nickname:    m.Nickname,
		Email:       m.Email,
		Category:    m.Category,
		Description: m.Description,
		FileURL:     m.FileURL,
		Storage:     m.Storage,
		MimeType:    m.MimeType,
		Size:        m.Size,
		IsVerified:  m.IsVerified,
		LikesCount:  m.LikesCount,
		CreatedAt:   m.CreatedAt,
	}
}

func NewSubmissionFromDomain(s *domain.Submission) *Submission {
	return &Submission{
		ID:          s.ID,
		Nickname:    s.Nickname,
		Email:       s.Email,
		Category:    s.Category,
		Description: s.Description,
		FileURL:     s.FileURL,
		Storage:     s.Storage,
		MimeType:    s.MimeType,
		Size:        s.Size,
		IsVerified:  s.IsVerified,
		LikesCount:  s.LikesCount,
		CreatedAt:   s.CreatedAt,
	}
}

package mysql

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/repository"
	"github.com/artcontest/contest-backend/internal/repository/mysql/model"
)

type submissionRepository struct {
	DB *gorm.DB
}

var _ domain.SubmissionRepository = (*submissionRepository)(nil)

// NewSubmissionRepository will create the gorm backed submission repository
func NewSubmissionRepository(db *gorm.DB) *submissionRepository {
	return &submissionRepository{db}
}

func (m *submissionRepository) Store(ctx context.Context, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	submissionModel := model.NewSubmissionFromDomain(s)
	if err := m.DB.WithContext(ctx).Create(submissionModel).Error; err != nil {
		return err
	}
	s.CreatedAt = submissionModel.CreatedAt
	return nil
}

func (m *submissionRepository) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	var submission model.Submission
	err := m.DB.WithContext(ctx).First(&submission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Submission{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Submission{}, err
	}
	return submission.ToDomain(), nil
}

func (m *submissionRepository) CountByEmailCategory(ctx context.Context, email, category string) (int64, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.Submission{}).
		Where("email = ? AND category = ?", email, category).
		Count(&count).Error
	return count, err
}

func (m *submissionRepository) Count(ctx context.Context, q domain.SubmissionQuery) (int64, error) {
	var total int64
	err := m.filtered(ctx, q).Count(&total).Error
	return total, err
}

func (m *submissionRepository) Find(ctx context.Context, q domain.SubmissionQuery) ([]domain.Submission, error) {
	var rows []model.Submission
	err := m.filtered(ctx, q).
		Order(clause.OrderByColumn{
			Column: clause.Column{Name: repository.SortColumn(q.SortField)},
			Desc:   q.SortDesc,
		}).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Submission, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
	}
	return res, nil
}

// likeEscaper makes search text match literally under LIKE ... ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (m *submissionRepository) filtered(ctx context.Context, q domain.SubmissionQuery) *gorm.DB {
	db := m.DB.WithContext(ctx).Model(&model.Submission{})

	switch q.Filter {
	case domain.FilterPending:
		db = db.Where("is_verified = ?", false)
	case domain.FilterVerified:
		db = db.Where("is_verified = ?", true)
	}
	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Search)) + "%"
		db = db.Where("(LOWER(nickname) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	return db
}

func (m *submissionRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	result := m.DB.WithContext(ctx).
		Model(&model.Submission{}).
		Where("id = ?", id).
		Update("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}

	// An already-approved row reports 0 affected rows on MySQL, so check existence separately.
	if result.RowsAffected == 0 {
		if _, err := m.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the submission and clears the category of its likes so the likers
// may like another image of that category. The like rows themselves are kept.
func (m *submissionRepository) Delete(ctx context.Context, id string) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Submission{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		return tx.Model(&model.Like{}).
			Where("upload_id = ?", id).
			Update("category", nil).Error
	})
}

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

type likeRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRepository = (*likeRepository)(nil)

// NewLikeRepository will create the gorm backed like repository
func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{db}
}

func (m *likeRepository) Exists(ctx context.Context, uploadID, userID string) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.Like{}).
		Where("upload_id = ? AND user_id = ?", uploadID, userID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (m *likeRepository) LikedCategories(ctx context.Context, userID string) ([]string, error) {
	var categories []string
	err := m.DB.WithContext(ctx).
		Model(&model.Like{}).
		Joins("JOIN submissions ON submissions.id = likes.upload_id").
		Where("likes.user_id = ?", userID).
		Pluck("submissions.category", &categories).Error
	return categories, err
}

// Add records the like with the category of its submission. A duplicate pair yields
// domain.ErrConflict, a second like in the same category yields domain.ErrCategoryTaken.
func (m *likeRepository) Add(ctx context.Context, l *domain.Like) (int64, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	var likesCount int64
	var likeModel model.Like
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub model.Submission
		if err := tx.Select("id", "category").Where("id = ?", l.UploadID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		l.Category = sub.Category

		likeModel = model.NewLikeFromDomain(l)
		if err := tx.Create(&likeModel).Error; err != nil {
			if repository.IsDuplicateKey(err) {
				return errDuplicateLike
			}
			return err
		}

		count, err := addLikes(tx, l.UploadID, 1)
		likesCount = count
		return err
	})
	if errors.Is(err, errDuplicateLike) {
		return 0, m.duplicateCause(ctx, l.UploadID, l.UserID)
	}
	if err != nil {
		return 0, err
	}

	l.CreatedAt = likeModel.CreatedAt
	return likesCount, nil
}

var errDuplicateLike = errors.New("duplicate like")

// duplicateCause tells which unique index rejected the insert. It runs after the
// transaction because postgres refuses further statements in an aborted one.
func (m *likeRepository) duplicateCause(ctx context.Context, uploadID, userID string) error {
	exists, err := m.Exists(ctx, uploadID, userID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrConflict
	}
	return domain.ErrCategoryTaken
}

func (m *likeRepository) Remove(ctx context.Context, uploadID, userID string) (int64, error) {
	var likesCount int64
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("upload_id = ? AND user_id = ?", uploadID, userID).Delete(&model.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		count, err := addLikes(tx, uploadID, -1)
		likesCount = count
		return err
	})
	return likesCount, err
}

// addLikes moves the counter with a single UPDATE ... SET likes_count = likes_count + ?
// and reads back the value inside the same transaction.
func addLikes(tx *gorm.DB, uploadID string, delta int64) (int64, error) {
	result := tx.Model(&model.Submission{}).
		Where("id = ?", uploadID).
		Update("likes_count", gorm.Expr("likes_count + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, domain.ErrNotFound
	}

	var likesCount int64
	err := tx.Model(&model.Submission{}).
		Select("likes_count").
		Where("id = ?", uploadID).
		Scan(&likesCount).Error
	return likesCount, err
}

func (m *likeRepository) Recent(ctx context.Context, uploadID string, limit int) ([]domain.Like, error) {
	var rows []model.Like
	err := m.DB.WithContext(ctx).
		Where("upload_id = ?", uploadID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Like, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
	}
	return res, nil
}

package gallery

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/repository"
)

const detailLoadTimeout = 5 * time.Second

type Service struct {
	repo  domain.SubmissionRepository
	likes domain.LikeUsecase
	group singleflight.Group
}

var _ domain.GalleryUsecase = (*Service)(nil)

func NewService(r domain.SubmissionRepository, l domain.LikeUsecase) *Service {
	return &Service{repo: r, likes: l}
}

// FetchVerified returns approved submissions only, newest first.
func (s *Service) FetchVerified(ctx context.Context, category string, page, limit int) ([]domain.Submission, int64, error) {
	repository.PageVerify(&page, &limit)
	q := domain.SubmissionQuery{
		Filter:    domain.FilterVerified,
		Category:  category,
		Page:      page,
		Limit:     limit,
		SortField: "createdAt",
		SortDesc:  true,
	}

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Submission{}, 0, nil
	}

	items, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetDetail loads a submission and whether userID liked it. Concurrent loads of one id share a query.
func (s *Service) GetDetail(ctx context.Context, id, userID string) (domain.Submission, bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Submission{}, false, domain.NewNotFoundError("image not found")
	}

	v, err, _ := s.group.Do(id, func() (any, error) {
		// shared by every waiter, so one caller going away must not fail the rest
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), detailLoadTimeout)
		defer cancel()
		return s.repo.GetByID(loadCtx, id)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Submission{}, false, domain.NewNotFoundError("image not found")
	}
	if err != nil {
		return domain.Submission{}, false, err
	}
	sub := v.(domain.Submission)

	if userID == "" || s.likes == nil {
		return sub, false, nil
	}
	liked, err := s.likes.HasLiked(ctx, id, userID)
	if err != nil {
		return domain.Submission{}, false, err
	}
	return sub, liked, nil
}

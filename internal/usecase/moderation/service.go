package moderation

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/repository"
)

// DefaultListLimit is the page size of the moderation queue
const DefaultListLimit = 9

type Service struct {
	repo domain.SubmissionRepository
}

var _ domain.ModerationUsecase = (*Service)(nil)

func NewService(r domain.SubmissionRepository) *Service {
	return &Service{repo: r}
}

// List counts and pages in parallel over the same filter.
func (s *Service) List(ctx context.Context, q domain.SubmissionQuery) ([]domain.Submission, int64, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	repository.PageVerify(&q.Page, &q.Limit)
	if q.SortField == "" {
		q.SortField, q.SortDesc = "createdAt", true
	}

	var (
		items []domain.Submission
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.repo.Find(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) Approve(ctx context.Context, id string) error {
	return notFound(s.repo.SetVerified(ctx, id, true))
}

// Delete removes the submission only. Likes that point at it stay behind.
func (s *Service) Delete(ctx context.Context, id string) error {
	return notFound(s.repo.Delete(ctx, id))
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError("image not found")
	}
	return err
}

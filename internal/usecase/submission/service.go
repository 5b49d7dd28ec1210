package submission

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/storage"
)

const sniffOctetStream = "application/octet-stream"

// Limits bounds what one identity may send.
type Limits struct {
	Quota    int   // submissions per (email, category)
	MaxBytes int64 // zero means unlimited
}

type Service struct {
	repo     domain.SubmissionRepository
	primary  domain.FileStore
	fallback domain.FileStore
	guard    domain.QuotaGuard
	worker   domain.NotificationWorker
	limits   Limits
	validate *validator.Validate
	now      func() time.Time
}

var _ domain.SubmissionUsecase = (*Service)(nil)

// NewService wires the admission controller. primary, guard and worker may be nil.
func NewService(r domain.SubmissionRepository, primary, fallback domain.FileStore, g domain.QuotaGuard, w domain.NotificationWorker, l Limits) *Service {
	if l.Quota <= 0 {
		l.Quota = domain.DefaultSubmissionQuota
	}
	return &Service{
		repo:     r,
		primary:  primary,
		fallback: fallback,
		guard:    g,
		worker:   w,
		limits:   l,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *Service) Submit(ctx context.Context, in domain.NewSubmission) (domain.Submission, error) {
	in.Nickname = strings.TrimSpace(in.Nickname)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Description = strings.TrimSpace(in.Description)

	if err := s.check(in); err != nil {
		return domain.Submission{}, err
	}
	if in.MimeType == "" || in.MimeType == sniffOctetStream {
		in.MimeType = http.DetectContentType(in.FileBytes)
	}

	release := s.lock(ctx, in.Email, in.Category)
	defer release()

	count, err := s.repo.CountByEmailCategory(ctx, in.Email, in.Category)
	if err != nil {
		return domain.Submission{}, err
	}
	if count >= int64(s.limits.Quota) {
		return domain.Submission{}, domain.NewQuotaExceededError(domain.CategoryLabel(in.Category), s.limits.Quota)
	}

	key := storage.NewKey(s.now(), in.Nickname, in.FileName, in.MimeType)
	file, err := s.put(ctx, key, in)
	if err != nil {
		return domain.Submission{}, err
	}

	sub := domain.Submission{
		Nickname:    in.Nickname,
		Email:       in.Email,
		Category:    in.Category,
		Description: in.Description,
		FileURL:     file.URL,
		Storage:     file.Storage,
		MimeType:    in.MimeType,
		Size:        int64(len(in.FileBytes)),
	}
	if err := s.repo.Store(ctx, &sub); err != nil {
		logrus.WithError(err).WithField("file", file.URL).Error("failed to persist submission, stored file is orphaned")
		return domain.Submission{}, err
	}

	if s.worker != nil {
		s.worker.Send(domain.SubmissionNotice{
			SubmissionID: sub.ID,
			Nickname:     sub.Nickname,
			Email:        sub.Email,
			Category:     sub.Category,
			Description:  sub.Description,
			FileURL:      sub.FileURL,
			Storage:      sub.Storage,
			LocalPath:    file.LocalPath,
		})
	}

	return sub, nil
}

func (s *Service) check(in domain.NewSubmission) error {
	switch {
	case in.Nickname == "":
		return domain.NewValidationError("nickname is required")
	case in.Email == "":
		return domain.NewValidationError("email is required")
	case in.Category == "":
		return domain.NewValidationError("category is required")
	case len(in.FileBytes) == 0:
		return domain.NewValidationError("file is required")
	}
	if err := s.validate.Var(in.Email, "email"); err != nil {
		return domain.NewValidationError("email is not valid")
	}
	if s.limits.MaxBytes > 0 && int64(len(in.FileBytes)) > s.limits.MaxBytes {
		return domain.NewValidationError(fmt.Sprintf("file is larger than %d MB", s.limits.MaxBytes>>20))
	}
	return nil
}

// lock serialises the quota check for one identity. Redis trouble degrades to unguarded admission.
func (s *Service) lock(ctx context.Context, email, category string) func() {
	if s.guard == nil {
		return func() {}
	}
	release, err := s.guard.Acquire(ctx, email, category)
	if err != nil {
		fields := logrus.Fields{"email": email, "category": category}
		if errors.Is(err, domain.ErrLockBusy) {
			logrus.WithFields(fields).Warn("quota lock busy, admitting without guard")
		} else {
			logrus.WithFields(fields).WithError(err).Warn("quota guard unavailable, admitting without guard")
		}
		return func() {}
	}
	return release
}

// put writes to the primary store and falls back to the local one exactly once.
func (s *Service) put(ctx context.Context, key string, in domain.NewSubmission) (domain.StoredFile, error) {
	var primaryErr error
	if s.primary != nil {
		file, err := s.primary.Put(ctx, key, in.FileBytes, in.MimeType)
		if err == nil {
			return file, nil
		}
		primaryErr = err
		logrus.WithError(err).WithField("key", key).Warn("primary store failed, falling back to local disk")
	}

	file, err := s.fallback.Put(ctx, key, in.FileBytes, in.MimeType)
	if err != nil {
		return domain.StoredFile{}, domain.NewStorageError(errors.Join(primaryErr, err))
	}
	return file, nil
}

package like

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/artcontest/contest-backend/domain"
)

type Service struct {
	likeRepo       domain.LikeRepository
	submissionRepo domain.SubmissionRepository
	verified       domain.VerifiedEmailStore
	requireOTP     bool
	validate       *validator.Validate
	now            func() time.Time
}

var _ domain.LikeUsecase = (*Service)(nil)

// NewService will create the like ledger. verified may be nil unless requireOTP is set.
func NewService(l domain.LikeRepository, s domain.SubmissionRepository, v domain.VerifiedEmailStore, requireOTP bool) *Service {
	return &Service{
		likeRepo:       l,
		submissionRepo: s,
		verified:       v,
		requireOTP:     requireOTP && v != nil,
		validate:       validator.New(),
		now:            time.Now,
	}
}

func (s *Service) Like(ctx context.Context, uploadID, userID string) (domain.LikeResult, error) {
	uploadID, userID = normalize(uploadID, userID)
	target, err := s.resolve(ctx, uploadID, userID)
	if err != nil {
		return domain.LikeResult{}, err
	}

	if s.requireOTP {
		ok, err := s.verified.IsVerified(ctx, userID)
		if err != nil {
			return domain.LikeResult{}, err
		}
		if !ok {
			return domain.LikeResult{}, domain.NewEmailNotVerifiedError()
		}
	}

	exists, err := s.likeRepo.Exists(ctx, uploadID, userID)
	if err != nil {
		return domain.LikeResult{}, err
	}
	if exists {
		return domain.LikeResult{}, domain.NewDuplicateLikeError()
	}

	categories, err := s.likeRepo.LikedCategories(ctx, userID)
	if err != nil {
		return domain.LikeResult{}, err
	}
	for _, c := range categories {
		if c == target.Category {
			return domain.LikeResult{}, domain.NewCategoryConflictError(domain.CategoryLabel(c))
		}
	}

	like := &domain.Like{UploadID: uploadID, UserID: userID, Category: target.Category, CreatedAt: s.now()}
	count, err := s.likeRepo.Add(ctx, like)
	if errors.Is(err, domain.ErrConflict) {
		// lost the race against an identical request
		return domain.LikeResult{}, domain.NewDuplicateLikeError()
	}
	if errors.Is(err, domain.ErrCategoryTaken) {
		// lost the race against a like on another image of the category
		return domain.LikeResult{}, domain.NewCategoryConflictError(domain.CategoryLabel(target.Category))
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.LikeResult{}, domain.NewNotFoundError("image not found")
	}
	if err != nil {
		return domain.LikeResult{}, err
	}

	return s.result(ctx, uploadID, count)
}

func (s *Service) Unlike(ctx context.Context, uploadID, userID string) (domain.LikeResult, error) {
	uploadID, userID = normalize(uploadID, userID)
	if _, err := s.resolve(ctx, uploadID, userID); err != nil {
		return domain.LikeResult{}, err
	}

	count, err := s.likeRepo.Remove(ctx, uploadID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.LikeResult{}, domain.NewNotFoundError("like not found")
	}
	if err != nil {
		return domain.LikeResult{}, err
	}

	return s.result(ctx, uploadID, count)
}

func (s *Service) HasLiked(ctx context.Context, uploadID, userID string) (bool, error) {
	uploadID, userID = normalize(uploadID, userID)
	if userID == "" {
		return false, nil
	}
	return s.likeRepo.Exists(ctx, uploadID, userID)
}

func normalize(uploadID, userID string) (string, string) {
	return strings.TrimSpace(uploadID), strings.ToLower(strings.TrimSpace(userID))
}

// resolve applies the validation order: id syntax, email shape, then existence.
func (s *Service) resolve(ctx context.Context, uploadID, userID string) (domain.Submission, error) {
	if _, err := uuid.Parse(uploadID); err != nil {
		return domain.Submission{}, domain.NewValidationError("uploadId is not valid")
	}
	if userID == "" || s.validate.Var(userID, "email") != nil {
		return domain.Submission{}, domain.NewValidationError("userId must be a valid email")
	}

	sub, err := s.submissionRepo.GetByID(ctx, uploadID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Submission{}, domain.NewNotFoundError("image not found")
	}
	if err != nil {
		return domain.Submission{}, err
	}
	return sub, nil
}

func (s *Service) result(ctx context.Context, uploadID string, count int64) (domain.LikeResult, error) {
	recent, err := s.likeRepo.Recent(ctx, uploadID, domain.LastLikedUsersLimit)
	if err != nil {
		return domain.LikeResult{}, err
	}

	users := make([]string, 0, len(recent))
	for _, l := range recent {
		users = append(users, LikerToken(l.UserID))
	}
	return domain.LikeResult{LikesCount: count, LastLikedUsers: users}, nil
}

// LikerToken reduces an email to the lower-cased first character of its local part.
func LikerToken(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	r, size := utf8.DecodeRuneInString(local)
	if size == 0 || r == utf8.RuneError {
		return domain.UnknownLikerToken
	}
	return strings.ToLower(string(r))
}

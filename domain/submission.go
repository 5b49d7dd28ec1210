package domain

import (
	"context"
	"time"
)

// DefaultSubmissionQuota is how many submissions one email may send per category
const DefaultSubmissionQuota = 5

// Storage backends a Submission file may live in
const (
	StorageMinio = "minio"
	StorageLocal = "local"
)

// Submission is an artwork entry sent to the contest
type Submission struct {
	ID          string    `json:"_id"`
	Nickname    string    `json:"nickname"`
	Email       string    `json:"email"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	FileURL     string    `json:"fileUrl"`
	Storage     string    `json:"storage"`
	MimeType    string    `json:"mimeType"`
	Size        int64     `json:"size"`
	IsVerified  bool      `json:"isVerified"`
	LikesCount  int64     `json:"likesCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewSubmission carries everything a client sends to enter the contest
type NewSubmission struct {
	Nickname    string
	Email       string
	Category    string
	Description string
	FileName    string
	FileBytes   []byte
	MimeType    string
}

// Verification filters for listing
const (
	FilterAll      = ""
	FilterPending  = "pending"
	FilterVerified = "verified"
)

// SubmissionQuery describes a filtered, sorted and paginated listing.
type SubmissionQuery struct {
	Filter    string // FilterAll, FilterPending or FilterVerified
	Search    string // case-insensitive substring over nickname and description
	Category  string
	Page      int
	Limit     int
	SortField string
	SortDesc  bool
}

// Offset returns the row offset for the page. Page is 1-based.
func (q SubmissionQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// SubmissionRepository defines the contract for submission persistence
type SubmissionRepository interface {
	// Store creates a new submission and backfills ID and CreatedAt.
	Store(ctx context.Context, s *Submission) error

	// GetByID returns ErrNotFound if the submission does not exist.
	GetByID(ctx context.Context, id string) (Submission, error)

	// CountByEmailCategory counts submissions matching email and category exactly.
	CountByEmailCategory(ctx context.Context, email, category string) (int64, error)

	// Count returns the number of matches for q, ignoring pagination.
	Count(ctx context.Context, q SubmissionQuery) (int64, error)

	// Find returns the page selected by q.
	Find(ctx context.Context, q SubmissionQuery) ([]Submission, error)

	// SetVerified returns ErrNotFound if the submission does not exist.
	SetVerified(ctx context.Context, id string, verified bool) error

	// Delete returns ErrNotFound if the submission does not exist.
	Delete(ctx context.Context, id string) error
}

// SubmissionUsecase is the admission controller for new entries
type SubmissionUsecase interface {
	Submit(ctx context.Context, in NewSubmission) (Submission, error)
}

// GalleryUsecase serves the public, verified-only view of the contest
type GalleryUsecase interface {
	FetchVerified(ctx context.Context, category string, page, limit int) ([]Submission, int64, error)
	GetDetail(ctx context.Context, id, userID string) (Submission, bool, error)
}

// ModerationUsecase is the admin-only gate over submissions
type ModerationUsecase interface {
	List(ctx context.Context, q SubmissionQuery) ([]Submission, int64, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// QuotaGuard serialises the quota check and insert for one email/category pair.
type QuotaGuard interface {
	// Acquire returns a release func. ErrLockBusy means the wait budget ran out.
	Acquire(ctx context.Context, email, category string) (release func(), err error)
}

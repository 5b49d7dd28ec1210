package domain

import (
	"context"
	"time"
)

const (
	// LastLikedUsersLimit is how many recent likers are projected back to clients
	LastLikedUsersLimit = 3
	// UnknownLikerToken replaces a liker whose email yields no display hint
	UnknownLikerToken = "?"
)

// Like is representing a like record
type Like struct {
	ID        string
	UploadID  string
	UserID    string // email of the liker
	Category  string // empty once the liked submission is deleted
	CreatedAt time.Time
}

// LikeResult is returned by every ledger mutation
type LikeResult struct {
	LikesCount     int64    `json:"likesCount"`
	LastLikedUsers []string `json:"lastLikedUsers"`
}

// LikeRepository defines the contract for like persistence
type LikeRepository interface {
	// Exists reports whether userID already liked uploadID.
	Exists(ctx context.Context, uploadID, userID string) (bool, error)

	// LikedCategories returns the categories of the submissions userID has liked.
	// Likes pointing at deleted submissions contribute nothing.
	LikedCategories(ctx context.Context, userID string) ([]string, error)

	// Add inserts the like and increments the submission counter in one transaction.
	// Returns ErrConflict if the (upload, user) pair already exists.
	Add(ctx context.Context, l *Like) (likesCount int64, err error)

	// Remove deletes the like and decrements the submission counter in one transaction.
	// Returns ErrNotFound if no like existed.
	Remove(ctx context.Context, uploadID, userID string) (likesCount int64, err error)

	// Recent returns the newest likes of a submission, newest first.
	Recent(ctx context.Context, uploadID string, limit int) ([]Like, error)
}

// LikeUsecase is the like ledger
type LikeUsecase interface {
	Like(ctx context.Context, uploadID, userID string) (LikeResult, error)
	Unlike(ctx context.Context, uploadID, userID string) (LikeResult, error)
	HasLiked(ctx context.Context, uploadID, userID string) (bool, error)
}

package response

import (
	"time"

	"github.com/artcontest/contest-backend/domain"
)

type Submission struct {
	ID          string    `json:"_id"`
	Nickname    string    `json:"nickname"`
	Email       string    `json:"email"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	FileURL     string    `json:"fileUrl"`
	Storage     string    `json:"storage"`
	IsVerified  bool      `json:"isVerified"`
	LikesCount  int64     `json:"likesCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SubmissionDetail adds the caller's like state
type SubmissionDetail struct {
	Submission
	HasLiked bool `json:"hasLiked"`
}

func NewSubmissionFromDomain(s *domain.Submission) Submission {
	return Submission{
		ID:          s.ID,
		Nickname:    s.Nickname,
		Email:       s.Email,
		Category:    s.Category,
		Description: s.Description,
		FileURL:     s.FileURL,
		Storage:     s.Storage,
		IsVerified:  s.IsVerified,
		LikesCount:  s.LikesCount,
		CreatedAt:   s.CreatedAt,
	}
}

func NewSubmissionList(items []domain.Submission) []Submission {
	res := make([]Submission, len(items))
	for i := range items {
		res[i] = NewSubmissionFromDomain(&items[i])
	}
	return res
}

package response

import "github.com/artcontest/contest-backend/domain"

type Like struct {
	Message        string   `json:"message"`
	LikesCount     int64    `json:"likesCount"`
	LastLikedUsers []string `json:"lastLikedUsers"`
}

func NewLike(message string, r domain.LikeResult) Like {
	users := r.LastLikedUsers
	if users == nil {
		users = []string{}
	}
	return Like{Message: message, LikesCount: r.LikesCount, LastLikedUsers: users}
}

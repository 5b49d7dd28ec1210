package response

import "github.com/artcontest/contest-backend/domain"

type Admin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Login struct {
	Token string `json:"token"`
	User  Admin  `json:"user"`
}

func NewLogin(token string, a domain.Admin) Login {
	return Login{
		Token: token,
		User:  Admin{ID: a.ID, Name: a.Name, Email: a.Email},
	}
}

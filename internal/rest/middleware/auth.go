package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/artcontest/contest-backend/domain"
)

const (
	// ContextAdminID is the gin key holding the authenticated admin id
	ContextAdminID = "admin_id"
	// ContextAdminEmail is the gin key holding the authenticated admin email
	ContextAdminEmail = "admin_email"
)

// AdminAuth requires a bearer token that resolves to an existing admin.
func AdminAuth(auth domain.AdminUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Missing or invalid token.",
				"code":    domain.CodeUnauthorized,
			})
			return
		}

		admin, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			status, code := http.StatusInternalServerError, ""
			switch domain.KindOf(err) {
			case domain.KindUnauthorized:
				status, code = http.StatusUnauthorized, domain.CodeUnauthorized
			case domain.KindForbidden:
				status, code = http.StatusForbidden, domain.CodeForbidden
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(status, gin.H{
				"success": false,
				"message": message(err),
				"code":    code,
			})
			return
		}

		c.Set(ContextAdminID, admin.ID)
		c.Set(ContextAdminEmail, admin.Email)
		c.Next()
	}
}

func message(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return domain.ErrInternalServerError.Error()
}

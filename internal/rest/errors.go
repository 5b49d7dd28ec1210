package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artcontest/contest-backend/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// getStatusCode maps a usecase error to its HTTP status
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindDuplicateLike, domain.KindCategoryConflict, domain.KindQuotaExceeded:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindStorage, domain.KindUpstream:
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func newResponseError(err error) ResponseError {
	var de *domain.Error
	if errors.As(err, &de) {
		return ResponseError{Message: de.Message, Code: de.Code}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrForbidden):
		return ResponseError{Message: err.Error()}
	}
	return ResponseError{Message: domain.ErrInternalServerError.Error()}
}

// abortWithError renders err and records it on the context for the request logger.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(getStatusCode(err), newResponseError(err))
}

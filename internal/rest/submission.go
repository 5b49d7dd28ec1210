package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/rest/response"
)

// SubmissionHandler represent the httphandler for contest entries
type SubmissionHandler struct {
	Service  domain.SubmissionUsecase
	MaxBytes int64
}

func NewSubmissionHandler(svc domain.SubmissionUsecase, maxBytes int64) *SubmissionHandler {
	return &SubmissionHandler{Service: svc, MaxBytes: maxBytes}
}

// Upload accepts a multipart entry: nickname, email, category, description and file.
func (h *SubmissionHandler) Upload(c *gin.Context) {
	in := domain.NewSubmission{
		Nickname:    c.PostForm("nickname"),
		Email:       c.PostForm("email"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
	}

	fh, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		abortWithError(c, domain.NewValidationError("invalid multipart form"))
		return
	default:
		if h.MaxBytes > 0 && fh.Size > h.MaxBytes {
			abortWithError(c, domain.NewValidationError(fmt.Sprintf("file is larger than %d MB", h.MaxBytes>>20)))
			return
		}
		f, err := fh.Open()
		if err != nil {
			abortWithError(c, err)
			return
		}
		defer f.Close()

		in.FileBytes, err = io.ReadAll(f)
		if err != nil {
			abortWithError(c, err)
			return
		}
		in.FileName = fh.Filename
		in.MimeType = fh.Header.Get("Content-Type")
	}

	sub, err := h.Service.Submit(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response.NewSubmissionFromDomain(&sub),
	})
}

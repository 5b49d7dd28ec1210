package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/rest/response"
)

// ImageHandler serves the public gallery
type ImageHandler struct {
	Service domain.GalleryUsecase
}

func NewImageHandler(svc domain.GalleryUsecase) *ImageHandler {
	return &ImageHandler{Service: svc}
}

// Fetch lists approved entries, newest first
func (h *ImageHandler) Fetch(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, total, err := h.Service.FetchVerified(c.Request.Context(), c.Query("category"), page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploads": response.NewSubmissionList(items),
		"total":   total,
	})
}

// GetByID returns one entry and whether userId liked it
func (h *ImageHandler) GetByID(c *gin.Context) {
	sub, liked, err := h.Service.GetDetail(c.Request.Context(), c.Param("id"), c.Query("userId"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SubmissionDetail{
		Submission: response.NewSubmissionFromDomain(&sub),
		HasLiked:   liked,
	})
}

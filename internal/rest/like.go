package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/rest/request"
	"github.com/artcontest/contest-backend/internal/rest/response"
)

// LikeHandler represent the httphandler for the like ledger
type LikeHandler struct {
	Service domain.LikeUsecase
}

func NewLikeHandler(svc domain.LikeUsecase) *LikeHandler {
	return &LikeHandler{Service: svc}
}

// Like adds a like for {uploadId, userId}
func (h *LikeHandler) Like(c *gin.Context) {
	var req request.Like
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.NewValidationError("invalid request body"))
		return
	}

	res, err := h.Service.Like(c.Request.Context(), req.UploadID, req.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewLike("Like added!", res))
}

// Unlike removes the like for {uploadId, userId}
func (h *LikeHandler) Unlike(c *gin.Context) {
	var req request.Like
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.NewValidationError("invalid request body"))
		return
	}

	res, err := h.Service.Unlike(c.Request.Context(), req.UploadID, req.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewLike("Like removed.", res))
}

package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/repository"
	"github.com/artcontest/contest-backend/internal/rest/request"
	"github.com/artcontest/contest-backend/internal/rest/response"
	"github.com/artcontest/contest-backend/internal/usecase/moderation"
)

// AdminHandler serves moderator auth and the moderation queue
type AdminHandler struct {
	Auth       domain.AdminUsecase
	Moderation domain.ModerationUsecase
}

func NewAdminHandler(auth domain.AdminUsecase, mod domain.ModerationUsecase) *AdminHandler {
	return &AdminHandler{Auth: auth, Moderation: mod}
}

func (h *AdminHandler) Register(c *gin.Context) {
	var req request.Register
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.NewValidationError("Email and password are required."))
		return
	}

	if _, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Admin account created successfully."})
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.NewUnauthorizedError("Incorrect email or password."))
		return
	}

	token, admin, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewLogin(token, admin))
}

// Logout is stateless; the client drops its token.
func (h *AdminHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully."})
}

// ListUploads serves ?filter=&search=&category=&page=&limit=&sort=field:dir
func (h *AdminHandler) ListUploads(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(moderation.DefaultListLimit)))
	if err != nil || limit <= 0 {
		limit = moderation.DefaultListLimit
	}
	field, desc := repository.ParseSort(c.DefaultQuery("sort", "createdAt:desc"))

	filter := c.Query("filter")
	if filter != domain.FilterPending && filter != domain.FilterVerified {
		filter = domain.FilterAll
	}

	q := domain.SubmissionQuery{
		Filter:    filter,
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		Page:      page,
		Limit:     limit,
		SortField: field,
		SortDesc:  desc,
	}
	items, total, err := h.Moderation.List(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, err)
		return
	}

	repository.PageVerify(&q.Page, &q.Limit)
	c.JSON(http.StatusOK, gin.H{
		"uploads": response.NewSubmissionList(items),
		"total":   total,
		"page":    q.Page,
		"limit":   q.Limit,
	})
}

func (h *AdminHandler) Approve(c *gin.Context) {
	if err := h.Moderation.Approve(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Upload approved."})
}

func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.Moderation.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Upload deleted."})
}

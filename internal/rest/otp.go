package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/rest/request"
)

// OTPHandler proxies email verification to the OTP provider
type OTPHandler struct {
	Service domain.OTPUsecase
}

func NewOTPHandler(svc domain.OTPUsecase) *OTPHandler {
	return &OTPHandler{Service: svc}
}

func (h *OTPHandler) Send(c *gin.Context) {
	var req request.SendOTP
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.NewValidationError("Missing email."))
		return
	}

	out, err := h.Service.Send(c.Request.Context(), req.Email, int(req.LangID))
	if err != nil {
		abortWithError(c, err)
		return
	}
	renderOutcome(c, out)
}

func (h *OTPHandler) Verify(c *gin.Context) {
	var req request.VerifyOTP
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.NewValidationError("Missing email or OTP."))
		return
	}

	out, err := h.Service.Verify(c.Request.Context(), req.Email, string(req.Code))
	if err != nil {
		abortWithError(c, err)
		return
	}
	renderOutcome(c, out)
}

func renderOutcome(c *gin.Context, out domain.OTPOutcome) {
	body := gin.H{"success": out.Success, "message": out.Message}
	if out.Code != nil {
		body["code"] = *out.Code
	}
	c.JSON(out.HTTPStatus, body)
}

package otp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/artcontest/contest-backend/domain"
)

const (
	msgSent               = "OTP sent successfully."
	msgValid              = "OTP valid."
	msgInvalid            = "OTP invalid."
	msgExpired            = "OTP expired."
	msgInvalidDestination = "Invalid destination (wrong email)."
	msgInvalidParams      = "Invalid parameters sent to OTP server."
	msgProviderInternal   = "Internal error in the OTP service."
	msgUnknown            = "Unknown error."
)

type Service struct {
	provider domain.OTPProvider
	verified domain.VerifiedEmailStore
}

var _ domain.OTPUsecase = (*Service)(nil)

// NewService will create the OTP proxy. verified may be nil.
func NewService(p domain.OTPProvider, v domain.VerifiedEmailStore) *Service {
	return &Service{provider: p, verified: v}
}

func (s *Service) Send(ctx context.Context, email string, langID int) (domain.OTPOutcome, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.OTPOutcome{}, domain.NewValidationError("Missing email.")
	}
	if langID != domain.OTPLangRO && langID != domain.OTPLangRU {
		langID = domain.OTPLangRO
	}

	reply, err := s.provider.Initiate(ctx, email, langID)
	if err != nil {
		logrus.WithError(err).WithField("email", email).Error("otp initiate failed")
		return domain.OTPOutcome{}, domain.NewUpstreamError("Error communicating with the OTP service.", err)
	}

	if reply.ResultCode == domain.OTPResultSuccess {
		return domain.OTPOutcome{HTTPStatus: http.StatusOK, Success: true, Message: msgSent}, nil
	}
	return translate(reply), nil
}

func (s *Service) Verify(ctx context.Context, email, code string) (domain.OTPOutcome, error) {
	email, code = strings.TrimSpace(email), strings.TrimSpace(code)
	if email == "" || code == "" {
		return domain.OTPOutcome{}, domain.NewValidationError("Missing email or OTP.")
	}

	reply, err := s.provider.Confirm(ctx, email, code)
	if err != nil {
		logrus.WithError(err).WithField("email", email).Error("otp confirm failed")
		return domain.OTPOutcome{}, domain.NewUpstreamError("OTP validation error.", err)
	}

	if reply.ResultCode != domain.OTPResultSuccess {
		return translate(reply), nil
	}

	if reply.Status == nil {
		return unknownStatus(reply.Status), nil
	}

	switch status := *reply.Status; status {
	case domain.OTPStatusValid:
		if s.verified != nil {
			if err := s.verified.MarkVerified(ctx, email); err != nil {
				logrus.WithError(err).WithField("email", email).Warn("failed to record verified email")
			}
		}
		return domain.OTPOutcome{HTTPStatus: http.StatusOK, Success: true, Message: msgValid}, nil
	case domain.OTPStatusInvalid:
		return failed(http.StatusBadRequest, msgInvalid, status), nil
	case domain.OTPStatusExpired:
		return failed(http.StatusBadRequest, msgExpired, status), nil
	default:
		return unknownStatus(reply.Status), nil
	}
}

// translate maps a non-success provider result code to the client answer.
func translate(reply domain.OTPReply) domain.OTPOutcome {
	switch reply.ResultCode {
	case domain.OTPResultInvalidDestination:
		return failed(http.StatusBadRequest, msgInvalidDestination, reply.ResultCode)
	case domain.OTPResultInvalidParams:
		return failed(http.StatusBadRequest, msgInvalidParams, reply.ResultCode)
	case domain.OTPResultInternalError:
		return failed(http.StatusInternalServerError, msgProviderInternal, reply.ResultCode)
	default:
		msg := reply.ResultText
		if msg == "" {
			msg = msgUnknown
		}
		return failed(http.StatusInternalServerError, msg, reply.ResultCode)
	}
}

func failed(status int, msg string, code int) domain.OTPOutcome {
	return domain.OTPOutcome{HTTPStatus: status, Message: msg, Code: &code}
}

func unknownStatus(status *int) domain.OTPOutcome {
	text := "undefined"
	if status != nil {
		text = fmt.Sprint(*status)
	}
	return domain.OTPOutcome{
		HTTPStatus: http.StatusInternalServerError,
		Message:    "Unknown status OTP: " + text,
		Code:       status,
	}
}

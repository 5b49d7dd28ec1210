package domain

import "context"

// Language ids understood by the OTP provider
const (
	OTPLangRO = 1
	OTPLangRU = 2
)

// OTP provider result codes
const (
	OTPResultSuccess            = 0
	OTPResultInvalidDestination = 1
	OTPResultInvalidParams      = -2
	OTPResultInternalError      = -1
)

// OTP verification statuses, meaningful when the result code is OTPResultSuccess
const (
	OTPStatusValid   = 1
	OTPStatusInvalid = 0
	OTPStatusExpired = -1
)

// OTPReply is the provider answer before translation
type OTPReply struct {
	ResultCode int    `json:"resultCode"`
	ResultText string `json:"resultText"`
	Status     *int   `json:"status,omitempty"`
}

// OTPOutcome is the translated answer sent to clients
type OTPOutcome struct {
	HTTPStatus int
	Success    bool
	Message    string
	Code       *int
}

// OTPProvider is the external verification authority.
type OTPProvider interface {
	Initiate(ctx context.Context, email string, langID int) (OTPReply, error)
	Confirm(ctx context.Context, email, code string) (OTPReply, error)
}

// VerifiedEmailStore remembers emails that recently passed OTP verification.
type VerifiedEmailStore interface {
	MarkVerified(ctx context.Context, email string) error
	IsVerified(ctx context.Context, email string) (bool, error)
}

// OTPUsecase proxies OTP requests and translates provider codes.
type OTPUsecase interface {
	Send(ctx context.Context, email string, langID int) (OTPOutcome, error)
	Verify(ctx context.Context, email, code string) (OTPOutcome, error)
}

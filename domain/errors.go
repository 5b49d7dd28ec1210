package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrUnauthorized will throw if the credentials are missing or wrong
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden will throw if the caller is authenticated but not allowed
	ErrForbidden = errors.New("forbidden")
	// ErrLockBusy is returned when a coordination lock could not be taken in time
	ErrLockBusy = errors.New("lock is held by another request")
	// ErrCategoryTaken will throw if the user already likes another image of the category
	ErrCategoryTaken = errors.New("category already has a like from this user")
)

// ErrorKind classifies an Error for transport mapping.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindDuplicateLike
	KindCategoryConflict
	KindQuotaExceeded
	KindStorage
	KindUpstream
	KindUnauthorized
	KindForbidden
	KindConflict
)

// Stable machine-readable codes carried by Error.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyLiked     = "ALREADY_LIKED"
	CodeCategoryLiked    = "CATEGORY_ALREADY_LIKED"
	CodeQuotaExceeded    = "QUOTA_EXCEEDED"
	CodeStorage          = "STORAGE_ERROR"
	CodeUpstream         = "UPSTREAM_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeConflict         = "CONFLICT"
	CodeEmailNotVerified = "EMAIL_NOT_VERIFIED"
)

// Error is a classified business error. Message is safe to show to clients.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the sentinel that corresponds to the kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrBadParamInput:
		return e.Kind == KindValidation
	case ErrConflict:
		return e.Kind == KindConflict || e.Kind == KindDuplicateLike
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrForbidden:
		return e.Kind == KindForbidden
	}
	return false
}

func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: msg}
}

func NewUnauthorizedError(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Code: CodeUnauthorized, Message: msg}
}

func NewForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Code: CodeForbidden, Message: msg}
}

func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Code: CodeConflict, Message: msg}
}

func NewEmailNotVerifiedError() *Error {
	return &Error{Kind: KindValidation, Code: CodeEmailNotVerified, Message: "email has not been verified"}
}

func NewDuplicateLikeError() *Error {
	return &Error{Kind: KindDuplicateLike, Code: CodeAlreadyLiked, Message: "you have already liked this image"}
}

func NewCategoryConflictError(category string) *Error {
	return &Error{
		Kind:    KindCategoryConflict,
		Code:    CodeCategoryLiked,
		Message: fmt.Sprintf("you have already liked an image in the %q category", category),
	}
}

func NewQuotaExceededError(label string, limit int) *Error {
	return &Error{
		Kind:    KindQuotaExceeded,
		Code:    CodeQuotaExceeded,
		Message: fmt.Sprintf("you have reached the limit of %d submissions for the %s category", limit, label),
	}
}

func NewStorageError(err error) *Error {
	return &Error{Kind: KindStorage, Code: CodeStorage, Message: "failed to store the uploaded file", Err: err}
}

func NewUpstreamError(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Code: CodeUpstream, Message: msg, Err: err}
}

// KindOf returns the kind of a classified error, or 0 when err is not one.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

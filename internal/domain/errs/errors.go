package errs

import (
	"errors"
	"fmt"
)

// Kind is the coarse category a caller (usually the HTTP layer) branches on.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindExternal     Kind = "external"
	KindInternal     Kind = "internal"
)

// Code is a stable, machine-readable error code.
type Code string

const (
	CodeResourceNotFound     Code = "RESOURCE_NOT_FOUND"
	CodeBusinessConflict     Code = "BUSINESS_CONFLICT"
	CodeValidationFailed     Code = "VALIDATION_FAILED"
	CodeUserNotFound         Code = "USER_NOT_FOUND"
	CodeListingNotFound      Code = "LISTING_NOT_FOUND"
	CodePropertyNotFound     Code = "PROPERTY_NOT_FOUND"
	CodeProposalNotFound     Code = "PROPOSAL_NOT_FOUND"
	CodeAttributeNotFound    Code = "ATTRIBUTE_NOT_FOUND"
	CodeMediaNotFound        Code = "MEDIA_NOT_FOUND"
	CodeNotificationNotFound Code = "NOTIFICATION_NOT_FOUND"
	CodeBookmarkNotFound     Code = "BOOKMARK_NOT_FOUND"

	CodeEmailRequired           Code = "EMAIL_REQUIRED"
	CodeInvalidEmailFormat      Code = "INVALID_EMAIL_FORMAT"
	CodeInvalidCommissionRate   Code = "INVALID_COMMISSION_RATE"
	CodeInvalidStatusTransition Code = "INVALID_STATUS_TRANSITION"
	CodeEmailAlreadyExists      Code = "EMAIL_ALREADY_EXISTS"

	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeAccountDisabled    Code = "ACCOUNT_DISABLED"
	CodeInvalidToken       Code = "INVALID_TOKEN"
	CodeForbidden          Code = "FORBIDDEN"

	CodeMapsQuotaExceeded      Code = "MAPS_QUOTA_EXCEEDED"
	CodeMapsRateLimited        Code = "MAPS_RATE_LIMITED"
	CodeMapsInvalidCredentials Code = "MAPS_INVALID_API_KEY"
	CodeMapsNetworkError       Code = "MAPS_NETWORK_ERROR"
	CodeMapsGeocodeFailed      Code = "MAPS_GEOCODE_FAILED"
	CodeMailSendFailed         Code = "MAIL_SEND_FAILED"
	CodePushSendFailed         Code = "PUSH_SEND_FAILED"
	CodeStorageFailed          Code = "STORAGE_FAILED"
	CodeSearchFailed           Code = "SEARCH_FAILED"

	CodeInternal Code = "INTERNAL_ERROR"
)

// Error is the single domain error type. Every variant is fully described by
// its kind, code, message and optional cause.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches another *Error by code, so errors.Is(err, &Error{Code: X}) works
// without comparing messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil || e == nil {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

func New(kind Kind, code Code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind Kind, code Code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// CodeOf returns the code carried by err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// KindOf returns the kind carried by err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

package auth

import (
	"errors"
	"strings"
)

// Provider error codes. The local provider uses the same codes as the
// Identity Toolkit API so the UI handles both alike.
const (
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeEmailNotFound     = "EMAIL_NOT_FOUND"
	CodeInvalidPassword   = "INVALID_PASSWORD"
	CodeInvalidLogin      = "INVALID_LOGIN_CREDENTIALS"
	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeWeakPassword      = "WEAK_PASSWORD"
	CodeUserDisabled      = "USER_DISABLED"
	CodeTooManyAttempts   = "TOO_MANY_ATTEMPTS_TRY_LATER"
	CodeOperationDisabled = "OPERATION_NOT_ALLOWED"
)

// ErrBusy is returned when a sign-in, sign-up or sign-out is already in
// flight.
var ErrBusy = errors.New("another authentication request is in progress")

// Error is a provider-classified failure. Message is shown to the user
// as is.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

var messages = map[string]string{
	CodeEmailExists:       "The email address is already in use by another account.",
	CodeEmailNotFound:     "There is no account for this email address.",
	CodeInvalidPassword:   "The password is invalid.",
	CodeInvalidLogin:      "Invalid email or password.",
	CodeInvalidEmail:      "The email address is badly formatted.",
	CodeWeakPassword:      "Password should be at least 6 characters.",
	CodeUserDisabled:      "This account has been disabled.",
	CodeTooManyAttempts:   "Too many attempts. Try again later.",
	CodeOperationDisabled: "Password sign-in is disabled for this project.",
}

// NewError builds an Error for code. Provider codes may carry a detail
// suffix ("WEAK_PASSWORD : Password should be at least 6 characters"),
// which becomes the message when the code is unknown.
func NewError(code string) *Error {
	code = strings.TrimSpace(code)
	base, detail, _ := strings.Cut(code, ":")
	base = strings.TrimSpace(base)
	if msg, ok := messages[base]; ok {
		return &Error{Code: base, Message: msg}
	}
	if detail = strings.TrimSpace(detail); detail != "" {
		return &Error{Code: base, Message: detail}
	}
	return &Error{Code: base, Message: code}
}

// Code returns the provider code of err, or "" if err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

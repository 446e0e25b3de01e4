package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypeTokenMissing       ErrorType = "token_missing"
	ErrorTypeMissingSubject     ErrorType = "token_missing_subject"
)

// AuthError represents authentication-specific errors. Every AuthError is
// reported as 401 and carries a bearer challenge.
type AuthError struct {
	*AppError
	// ShouldLog is false for expected failures such as expired tokens
	ShouldLog bool
	// SecurityEvent marks failures that may indicate tampering or guessing
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// Challenge returns the WWW-Authenticate header value for this error
func (e *AuthError) Challenge() string {
	return "Bearer"
}

func newAuthError(t ErrorType, message, details string, shouldLog, securityEvent bool) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    t,
			Message: message,
			Code:    http.StatusUnauthorized,
			Details: details,
		},
		ShouldLog:     shouldLog,
		SecurityEvent: securityEvent,
	}
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The message does not reveal whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return newAuthError(ErrorTypeInvalidCredentials, "Incorrect email or password", "", false, true)
}

// NewTokenExpiredError creates an error for expired tokens
func NewTokenExpiredError(tokenType string) *AuthError {
	return newAuthError(ErrorTypeTokenExpired, fmt.Sprintf("%s has expired", tokenType), "Please login again", false, false)
}

// NewTokenInvalidError creates an error for malformed or badly signed tokens
func NewTokenInvalidError(tokenType string) *AuthError {
	return newAuthError(ErrorTypeTokenInvalid, fmt.Sprintf("Invalid %s", tokenType), "Could not validate credentials", true, true)
}

// NewTokenMissingError creates an error for requests without a bearer token
func NewTokenMissingError() *AuthError {
	return newAuthError(ErrorTypeTokenMissing, "Not authenticated", "", false, false)
}

// NewMissingSubjectError creates an error for tokens without a subject claim
func NewMissingSubjectError() *AuthError {
	return newAuthError(ErrorTypeMissingSubject, "Invalid access token", "Token subject is missing", true, true)
}

// IsAuthError checks if the error is an AuthError (supports wrapped errors via errors.As)
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from error chain (supports wrapped errors via errors.As)
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// IsTokenExpired reports whether err is an expired token error
func IsTokenExpired(err error) bool {
	authErr := GetAuthError(err)
	return authErr != nil && authErr.Type == ErrorTypeTokenExpired
}

// ShouldLogAuthError returns true if the authentication error should be logged
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}

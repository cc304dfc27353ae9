// Package errors provides standardized error types for letsencrypt-vesta.
//
// CertError is the primary error type, carrying an error code, the account
// and domain involved (when applicable), and an optional wrapped error.
// Every fatal code maps to a distinct process exit code:
//
//	0  success
//	1  USAGE            no arguments / malformed option
//	2  NO_VALID_USERS   every account was rejected during aggregation
//	3  NO_VALID_DOMAINS accounts survived but no domains did
//	4  ISSUANCE         the certificate client exited non-zero
//	5  SCHEDULER        renewal requested but the at queue is unavailable
//
// InvalidAccount and InvalidDomain are recoverable: aggregation warns and
// skips, the run continues. Use errors.Is for sentinel comparison and
// errors.As for extracting the CertError context.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeUsage          ErrorCode = "USAGE"            // Bad or missing command line arguments
	ErrCodeInvalidAccount ErrorCode = "INVALID_ACCOUNT"  // Account not present in the panel
	ErrCodeInvalidDomain  ErrorCode = "INVALID_DOMAIN"   // Domain not owned by the account
	ErrCodeNoValidUsers   ErrorCode = "NO_VALID_USERS"   // Nothing left after account validation
	ErrCodeNoValidDomains ErrorCode = "NO_VALID_DOMAINS" // Nothing left after domain validation
	ErrCodeIssuance       ErrorCode = "ISSUANCE"         // Certificate client failed
	ErrCodeInstall        ErrorCode = "INSTALL"          // Panel certificate installation failed
	ErrCodeScheduler      ErrorCode = "SCHEDULER"        // at queue unavailable
	ErrCodePanel          ErrorCode = "PANEL"            // Panel command failed
	ErrCodeConfig         ErrorCode = "CONFIG"           // Configuration error
	ErrCodeInternal       ErrorCode = "INTERNAL"         // Internal/unexpected error
)

// CertError represents a structured error with context about the operation.
type CertError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	User    string    // Panel account (if applicable)
	Domain  string    // Domain name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *CertError) Error() string {
	msg := e.Message
	switch {
	case e.User != "" && e.Domain != "":
		msg = fmt.Sprintf("%s/%s: %s", e.User, e.Domain, e.Message)
	case e.User != "":
		msg = fmt.Sprintf("user %s: %s", e.User, e.Message)
	case e.Domain != "":
		msg = fmt.Sprintf("domain %s: %s", e.Domain, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *CertError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *CertError) Is(target error) bool {
	t, ok := target.(*CertError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrUsage indicates a missing or malformed command line.
	ErrUsage = &CertError{Code: ErrCodeUsage, Message: "invalid usage"}

	// ErrNoValidUsers indicates every requested account was rejected.
	ErrNoValidUsers = &CertError{Code: ErrCodeNoValidUsers, Message: "no valid users"}

	// ErrNoValidDomains indicates no requestable domain survived validation.
	ErrNoValidDomains = &CertError{Code: ErrCodeNoValidDomains, Message: "no valid domains"}

	// ErrIssuanceFailed indicates the certificate client exited non-zero.
	ErrIssuanceFailed = &CertError{Code: ErrCodeIssuance, Message: "certificate issuance failed"}

	// ErrSchedulerUnavailable indicates the at command is not installed.
	ErrSchedulerUnavailable = &CertError{Code: ErrCodeScheduler, Message: "at job scheduler unavailable"}
)

// Exit codes keyed by error category. Success is 0; anything not listed
// here exits 1.
const (
	ExitOK              = 0
	ExitUsage           = 1
	ExitNoValidUsers    = 2
	ExitNoValidDomains  = 3
	ExitIssuanceFailure = 4
	ExitScheduler       = 5
)

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ce *CertError
	if !errors.As(err, &ce) {
		return ExitUsage
	}
	switch ce.Code {
	case ErrCodeNoValidUsers:
		return ExitNoValidUsers
	case ErrCodeNoValidDomains:
		return ExitNoValidDomains
	case ErrCodeIssuance:
		return ExitIssuanceFailure
	case ErrCodeScheduler:
		return ExitScheduler
	default:
		return ExitUsage
	}
}

// Usage creates a usage error with a custom message.
func Usage(msg string) error {
	return &CertError{
		Code:    ErrCodeUsage,
		Message: msg,
	}
}

// InvalidAccount creates a recoverable error for an unknown panel account.
func InvalidAccount(user string) error {
	return &CertError{
		Code:    ErrCodeInvalidAccount,
		Message: "account not found in panel",
		User:    user,
	}
}

// InvalidDomain creates a recoverable error for a domain the account does
// not own.
func InvalidDomain(user, domain string) error {
	return &CertError{
		Code:    ErrCodeInvalidDomain,
		Message: "domain does not belong to account",
		User:    user,
		Domain:  domain,
	}
}

// Issuance wraps a certificate client failure.
func Issuance(err error) error {
	return &CertError{
		Code:    ErrCodeIssuance,
		Message: "certificate issuance failed",
		Err:     err,
	}
}

// Install wraps a panel installation failure with account and domain context.
func Install(user, domain string, err error) error {
	return &CertError{
		Code:    ErrCodeInstall,
		Message: "certificate installation failed",
		User:    user,
		Domain:  domain,
		Err:     err,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &CertError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As

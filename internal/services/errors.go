package services

import "errors"

// Business-rule failures, mapped to HTTP statuses at the handler boundary.
// Anything not in this taxonomy is treated as an internal error.
var (
	ErrAlreadyRegistered  = errors.New("account already registered and verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("please verify your email first")
	ErrActorNotFound      = errors.New("account not found")

	// OTP failures, most specific first. Consume reports the first check that
	// fails in this order: not found, already used, expired, mismatch.
	ErrOTPNotFound    = errors.New("OTP not found. Please request a new one")
	ErrOTPAlreadyUsed = errors.New("OTP already used. Please request a new one")
	ErrOTPExpired     = errors.New("OTP expired. Please request again")
	ErrOTPMismatch    = errors.New("invalid OTP")

	// Signature and expiry failures deliberately collapse into one outcome.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrJobNotFound         = errors.New("job not found")
	ErrJobClosed           = errors.New("job deadline has passed")
	ErrNotJobOwner         = errors.New("job does not belong to this company")
	ErrAlreadyApplied      = errors.New("you have already applied to this job")
	ErrApplicationNotFound = errors.New("application not found")
)

// ValidationError marks missing or malformed input so handlers can map it to
// a 400 without string matching.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenNotFound    = errors.New("refresh token doesn't exist")
	ErrTokenRevoked     = errors.New("refresh token revoked or expired")

	ErrHabitNotFound     = errors.New("habit doesn't exist")
	ErrWrongOwner        = errors.New("habit has different owner")
	ErrUserHasHabit      = errors.New("user already has habit with such name")
	ErrLogDateNotAllowed = errors.New("log date is not allowed")
	ErrLogNotFound       = errors.New("habit log doesn't exist")

	ErrSettingsNotFound = errors.New("user settings don't exist")

	// ErrMalformedRecurrence marks a custom rule with an empty or out-of-range
	// day set. A habit carrying one is never due; callers log and move on.
	ErrMalformedRecurrence = errors.New("malformed recurrence rule")
)

package pollbox_errors

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
	ErrMalformedData = errors.New("malformed data")
)

// Poll validation errors
var (
	ErrEmptyQuestion   = errors.New("question is required")
	ErrQuestionTooLong = errors.New("question must be 500 characters or less")
	ErrTooFewOptions   = errors.New("at least 2 options are required")
	ErrTooManyOptions  = errors.New("maximum 10 options allowed")
	ErrOptionTooLong   = errors.New("options must be 200 characters or less")
)

// Voting errors
var (
	ErrInvalidOption = errors.New("invalid option selected")
	ErrAlreadyVoted  = errors.New("you have already voted on this poll")
)

// NowPtr returns a pointer to current time
func NowPtr() *time.Time {
	now := time.Now()
	return &now
}

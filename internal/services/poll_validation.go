package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	pollbox_errors "pollbox/pkg/errors"
)

const (
	maxQuestionLen = 500
	maxOptionLen   = 200
	minOptions     = 2
	maxOptions     = 10
)

// Best-effort denylist: strips anything that looks like an HTML tag.
// Not a real sanitizer; output must still be escaped at render time.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ValidatePollInput checks a poll's question and options and returns the
// sanitized copies. Options reduce to their non-empty entries before the
// count limits apply, so a request padded with blank options is judged by
// what remains.
func ValidatePollInput(question string, options []string) (string, []string, error) {
	trimmedQuestion := strings.TrimSpace(question)
	if trimmedQuestion == "" {
		return "", nil, pollbox_errors.ErrEmptyQuestion
	}
	if utf8.RuneCountInString(trimmedQuestion) > maxQuestionLen {
		return "", nil, pollbox_errors.ErrQuestionTooLong
	}

	kept := make([]string, 0, len(options))
	for _, opt := range options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}

	if len(kept) < minOptions {
		return "", nil, pollbox_errors.ErrTooFewOptions
	}
	if len(kept) > maxOptions {
		return "", nil, pollbox_errors.ErrTooManyOptions
	}
	for _, opt := range kept {
		if utf8.RuneCountInString(opt) > maxOptionLen {
			return "", nil, pollbox_errors.ErrOptionTooLong
		}
	}

	sanitized := make([]string, len(kept))
	for i, opt := range kept {
		sanitized[i] = sanitizeText(opt)
	}
	return sanitizeText(trimmedQuestion), sanitized, nil
}

func sanitizeText(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

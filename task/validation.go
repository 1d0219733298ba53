package task

import (
	"errors"
	"fmt"
	"unicode/utf8"

	internalstrings "github.com/amonks/taskmate/internal/strings"
	"github.com/amonks/taskmate/internal/validation"
)

var (
	// ErrValidation is the parent of all input validation errors.
	ErrValidation = errors.New("invalid task")

	// ErrEmptyText is returned when task text is blank.
	ErrEmptyText = fmt.Errorf("%w: text cannot be empty", ErrValidation)

	// ErrTextTooLong is returned when task text exceeds MaxTextLength.
	ErrTextTooLong = fmt.Errorf("%w: text exceeds maximum length", ErrValidation)

	// ErrInvalidCategory is returned for a category outside ValidCategories.
	ErrInvalidCategory = fmt.Errorf("%w: unknown category", ErrValidation)

	// ErrInvalidTab is returned for a tab outside ValidTabs.
	ErrInvalidTab = errors.New("invalid tab")

	// ErrTaskNotFound is returned when an id is absent from the list an
	// operation expects it in.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNothingToPurge is returned by PurgeAll when the deleted list is empty.
	ErrNothingToPurge = errors.New("no deleted tasks to purge")
)

// ValidateText checks task text and returns it trimmed.
func ValidateText(text string) (string, error) {
	trimmed := internalstrings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxTextLength {
		return "", fmt.Errorf("%w: %d > %d", ErrTextTooLong, n, MaxTextLength)
	}
	return trimmed, nil
}

// ValidateCategory checks that a category is one of ValidCategories.
func ValidateCategory(category Category) error {
	if !category.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidCategory, category, ValidCategories())
	}
	return nil
}

func notFound(id int64, list string) error {
	return fmt.Errorf("%w: %d is not in the %s list", ErrTaskNotFound, id, list)
}

// Package task implements the task lifecycle store.
//
// A Store owns two ordered lists: the active list and the deleted list. Tasks
// are created in the active list, move to the deleted list on Delete, come
// back on Restore, and are destroyed on Purge. Every successful mutation is
// written through to a kv.Medium before the mutator returns.
//
// The public API mirrors the CLI commands:
//   - Add, Toggle, Delete, Restore, Purge, PurgeAll for the lifecycle
//   - View, Tasks, Deleted, Find, Counts for querying
package task

import (
	internalstrings "github.com/amonks/taskmate/internal/strings"
	"github.com/amonks/taskmate/internal/validation"
)

// Task is a single to-do item.
type Task struct {
	// ID is unique across the active and deleted lists.
	ID int64 `json:"id"`

	// Text is the display string (never blank, max 500 runes).
	Text string `json:"text"`

	// Category is chosen at creation and never changes.
	Category Category `json:"category"`

	// Completed is flipped by Toggle.
	Completed bool `json:"completed"`
}

// MaxTextLength is the maximum allowed length for task text, in runes.
const MaxTextLength = 500

// Category groups tasks.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryFitness  Category = "Fitness"
	CategoryOther    Category = "Other"
)

// ValidCategories returns all categories in display order.
func ValidCategories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryShopping, CategoryFitness, CategoryOther}
}

// IsValid returns true if the category is a known value.
func (c Category) IsValid() bool {
	for _, valid := range ValidCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// ParseCategory resolves user input to a category, ignoring case and
// surrounding whitespace.
func ParseCategory(value string) (Category, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	for _, valid := range ValidCategories() {
		if internalstrings.NormalizeLowerTrimSpace(string(valid)) == normalized {
			return valid, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidCategory, Category(value), ValidCategories())
}

// Tab selects which subset of tasks a view shows.
type Tab string

const (
	// TabActive shows incomplete tasks from the active list.
	TabActive Tab = "Active"

	// TabCompleted shows completed tasks from the active list.
	TabCompleted Tab = "Completed"

	// TabDeleted shows the deleted list.
	TabDeleted Tab = "Deleted"
)

// ValidTabs returns all tabs in display order.
func ValidTabs() []Tab {
	return []Tab{TabActive, TabCompleted, TabDeleted}
}

// IsValid returns true if the tab is a known value.
func (t Tab) IsValid() bool {
	for _, valid := range ValidTabs() {
		if t == valid {
			return true
		}
	}
	return false
}

// ParseTab resolves user input to a tab, ignoring case.
func ParseTab(value string) (Tab, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	for _, valid := range ValidTabs() {
		if internalstrings.NormalizeLowerTrimSpace(string(valid)) == normalized {
			return valid, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidTab, Tab(value), ValidTabs())
}

// Shows reports whether a task in the given list belongs in the tab.
func (t Tab) Shows(item Task, deleted bool) bool {
	switch t {
	case TabActive:
		return !deleted && !item.Completed
	case TabCompleted:
		return !deleted && item.Completed
	case TabDeleted:
		return deleted
	default:
		return false
	}
}

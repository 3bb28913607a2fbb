package service

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskboard/internal/model"
)

// Filters narrows a board. Empty lists impose no restriction.
type Filters struct {
	Priority []model.Priority
	Category []string
}

// Active reports whether any restriction is set.
func (f Filters) Active() bool {
	return len(f.Priority) > 0 || len(f.Category) > 0
}

func (f Filters) match(t model.Task) bool {
	if len(f.Priority) > 0 && !slices.Contains(f.Priority, t.Priority) {
		return false
	}
	if len(f.Category) > 0 && !slices.Contains(f.Category, t.Category) {
		return false
	}
	return true
}

// SortKey selects the ordering of a board. SortNone keeps insertion order.
type SortKey string

const (
	SortNone     SortKey = ""
	SortDate     SortKey = "date"
	SortPriority SortKey = "priority"
	SortCategory SortKey = "category"
	SortTitle    SortKey = "title"
)

func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	switch key {
	case SortNone, SortDate, SortPriority, SortCategory, SortTitle:
		return key, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", raw)
}

// sortTasks orders tasks in place. Ties keep their relative order.
func sortTasks(tasks []model.Task, key SortKey) {
	switch key {
	case SortDate:
		slices.SortStableFunc(tasks, compareDate)
	case SortPriority:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return cmp.Compare(b.Priority.Rank(), a.Priority.Rank())
		})
	case SortCategory:
		c := collate.New(language.Und)
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return c.CompareString(a.Category, b.Category)
		})
	case SortTitle:
		c := collate.New(language.Und)
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
}

// compareDate orders by calendar date; unparseable dates go last.
func compareDate(a, b model.Task) int {
	da, errA := time.Parse(model.DateLayout, a.Date)
	db, errB := time.Parse(model.DateLayout, b.Date)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return da.Compare(db)
}

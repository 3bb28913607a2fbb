package model

import "time"

// Status is the board a task is shown on.
type Status string

const (
	StatusProgress  Status = "progress"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// Statuses lists the boards in display order.
var Statuses = []Status{StatusProgress, StatusCompleted, StatusOverdue}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// Priority is a task's severity.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities by severity; unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

const (
	DefaultTime     = "18:00"
	DefaultProgress = "0/3"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MaxDescriptionLen = 500
)

// Task represents a single card on the board.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Category    string    `json:"category"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Progress    string    `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ApplyDefaults fills the optional fields left empty.
func (t *Task) ApplyDefaults() {
	if t.Time == "" {
		t.Time = DefaultTime
	}
	if t.Progress == "" {
		t.Progress = DefaultProgress
	}
}

// Due returns the task's due moment in loc. ok is false when the date does not parse.
func (t Task) Due(loc *time.Location) (due time.Time, ok bool) {
	day, err := time.ParseInLocation(DateLayout, t.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	clock, err := time.Parse(TimeLayout, t.Time)
	if err != nil {
		return day, true
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), true
}

// TaskPatch carries the fields of a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Category    *string
	Priority    *Priority
	Status      *Status
	Progress    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil && p.Time == nil &&
		p.Category == nil && p.Priority == nil && p.Status == nil && p.Progress == nil
}

// Apply merges the patch onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
}

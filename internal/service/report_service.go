package service

import (
	"slices"
	"time"

	"taskboard/internal/model"
)

// PastDue is an in-progress task whose due moment has passed.
type PastDue struct {
	Task model.Task
	Due  time.Time
}

// Summary is a snapshot of the board for periodic reports.
type Summary struct {
	GeneratedAt time.Time
	Counts      map[model.Status]int
	PastDue     []PastDue
}

// Total returns the number of tasks across all boards.
func (s Summary) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// ReportService builds board summaries. It never changes task status.
type ReportService struct {
	tasks *TaskService
}

func NewReportService(tasks *TaskService) *ReportService {
	return &ReportService{tasks: tasks}
}

func (s *ReportService) Summary(now time.Time) Summary {
	summary := Summary{
		GeneratedAt: now,
		Counts:      make(map[model.Status]int, len(model.Statuses)),
	}
	for _, status := range model.Statuses {
		summary.Counts[status] = 0
	}

	for _, task := range s.tasks.All() {
		summary.Counts[task.Status]++
		if task.Status != model.StatusProgress {
			continue
		}
		due, ok := task.Due(now.Location())
		if ok && now.After(due) {
			summary.PastDue = append(summary.PastDue, PastDue{Task: task, Due: due})
		}
	}

	slices.SortStableFunc(summary.PastDue, func(a, b PastDue) int {
		return a.Due.Compare(b.Due)
	})
	return summary
}

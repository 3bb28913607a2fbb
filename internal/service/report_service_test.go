package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/model"
)

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()
	late := draft("late", "2024-05-01", "Design", model.PriorityHigh)
	dueMorning := draft("due this morning", "2024-05-10", "Design", model.PriorityHigh)
	dueMorning.Time = "09:00"
	future := draft("future", "2024-06-01", "Design", model.PriorityLow)
	done := draft("done", "2024-04-01", "Design", model.PriorityLow)

	board := seedBoard(t, dueMorning, late, future, done)
	all := board.Tasks.All()
	_, err := board.Tasks.Update(ctx, all[3].ID, model.TaskPatch{Status: ptr(model.StatusCompleted)})
	require.NoError(t, err)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	summary := board.Reports.Summary(now)

	assert.Equal(t, now, summary.GeneratedAt)
	assert.Equal(t, 3, summary.Counts[model.StatusProgress])
	assert.Equal(t, 1, summary.Counts[model.StatusCompleted])
	assert.Equal(t, 0, summary.Counts[model.StatusOverdue])
	assert.Equal(t, 4, summary.Total())

	require.Len(t, summary.PastDue, 2)
	assert.Equal(t, "late", summary.PastDue[0].Task.Title)
	assert.Equal(t, time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC), summary.PastDue[0].Due)
	assert.Equal(t, "due this morning", summary.PastDue[1].Task.Title)

	for _, task := range board.Tasks.All() {
		assert.NotEqual(t, model.StatusOverdue, task.Status, "reports never change status")
	}
}

func TestReportService_EmptyBoard(t *testing.T) {
	board := seedBoard(t)
	summary := board.Reports.Summary(time.Now())
	assert.Equal(t, 0, summary.Total())
	assert.Len(t, summary.Counts, len(model.Statuses))
	assert.Empty(t, summary.PastDue)
}

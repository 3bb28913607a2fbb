package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	board, err := service.OpenBoard(context.Background(), repository.NewMemorySlots(), logging.Discard())
	require.NoError(t, err)
	var out bytes.Buffer
	app := New(board, config.Config{ReportInterval: time.Hour}, logging.Discard(), &out)
	app.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }
	return app, &out
}

func run(t *testing.T, app *App, out *bytes.Buffer, args ...string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, app.Run(context.Background(), args))
	return out.String()
}

func onlyTask(t *testing.T, app *App) model.Task {
	t.Helper()
	all := app.board.Tasks.All()
	require.Len(t, all, 1)
	return all[0]
}

func TestRun_AddAndBoard(t *testing.T) {
	app, out := newTestApp(t)

	got := run(t, app, out, "add", "-title", "wireframes", "-date", "2024-05-01", "-category", "UX Design", "-priority", "HIGH")
	assert.True(t, strings.HasPrefix(got, "Added "))

	task := onlyTask(t, app)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, model.DefaultTime, task.Time)

	got = run(t, app, out, "board")
	assert.Contains(t, got, "In Progress (1)")
	assert.Contains(t, got, "Completed (0)")
	assert.Contains(t, got, "Wireframes (UX Design)")
	assert.Contains(t, got, "May 1 18:00")
}

func TestRun_UpdateOnlyVisitedFlags(t *testing.T) {
	app, out := newTestApp(t)
	run(t, app, out, "add", "-title", "T", "-description", "keep", "-date", "2024-05-01", "-priority", "low")
	id := onlyTask(t, app).ID

	run(t, app, out, "update", id, "-status", "completed", "-progress", "3/3")

	task := onlyTask(t, app)
	assert.Equal(t, model.StatusCompleted, task.Status)
	assert.Equal(t, "3/3", task.Progress)
	assert.Equal(t, "keep", task.Description)

	got := run(t, app, out, "board", "-status", "completed")
	assert.Contains(t, got, "Completed (1)")
	assert.NotContains(t, got, "In Progress")
}

func TestRun_UpdateErrors(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	err := app.Run(ctx, []string{"update", "missing", "-title", "x"})
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
	assert.Equal(t, "Task not found.", Describe(err))

	err = app.Run(ctx, []string{"update", "missing"})
	assert.ErrorIs(t, err, ErrUsage)

	err = app.Run(ctx, []string{"update", "-title", "x"})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRun_BoardFiltersAndSort(t *testing.T) {
	app, out := newTestApp(t)
	run(t, app, out, "add", "-title", "b", "-date", "2024-03-10", "-category", "Design", "-priority", "low")
	run(t, app, out, "add", "-title", "a", "-date", "2024-01-05", "-category", "Backend", "-priority", "high")
	run(t, app, out, "add", "-title", "c", "-date", "2024-02-01", "-category", "Design", "-priority", "medium")

	got := run(t, app, out, "board", "-status", "progress", "-sort", "date")
	assert.Less(t, strings.Index(got, "A (Backend)"), strings.Index(got, "C (Design)"))
	assert.Less(t, strings.Index(got, "C (Design)"), strings.Index(got, "B (Design)"))

	got = run(t, app, out, "board", "-status", "progress", "-category", "Design", "-priority", "low, medium")
	assert.Contains(t, got, "In Progress (2)")
	assert.NotContains(t, got, "A (Backend)")

	err := app.Run(context.Background(), []string{"board", "-sort", "colour"})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRun_SearchShowDelete(t *testing.T) {
	app, out := newTestApp(t)
	run(t, app, out, "add", "-title", "Wireframes", "-date", "2024-05-01", "-category", "UX Design", "-priority", "high")
	id := onlyTask(t, app).ID

	got := run(t, app, out, "search", "design")
	assert.Contains(t, got, "(1)")
	assert.Contains(t, got, "Wireframes")

	got = run(t, app, out, "show", id)
	assert.Contains(t, got, "ID:          "+id)
	assert.Contains(t, got, "Wednesday, May 1, 2024")

	run(t, app, out, "delete", id)
	assert.Empty(t, app.board.Tasks.All())
	got = run(t, app, out, "search", "design")
	assert.Contains(t, got, "(0)")
}

func TestRun_Categories(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	got := run(t, app, out, "categories")
	for _, name := range model.DefaultCategories {
		assert.Contains(t, got, "• "+name)
	}

	run(t, app, out, "category-add", "Research", "Lab")
	assert.Contains(t, app.board.Categories.List(), "Research Lab")

	err := app.Run(ctx, []string{"category-add", "Design"})
	assert.ErrorIs(t, err, service.ErrCategoryExists)

	run(t, app, out, "add", "-title", "API", "-date", "2024-05-01", "-category", "Backend", "-priority", "high")
	err = app.Run(ctx, []string{"category-rm", "Backend"})
	assert.ErrorIs(t, err, service.ErrCategoryInUse)
	assert.Contains(t, Describe(err), "tasks still use it")

	got = run(t, app, out, "categories")
	assert.Contains(t, got, "• Backend *")

	run(t, app, out, "category-rm", "Testing")
	assert.NotContains(t, app.board.Categories.List(), "Testing")
}

func TestRun_Report(t *testing.T) {
	app, out := newTestApp(t)
	run(t, app, out, "add", "-title", "late", "-date", "2024-05-01", "-priority", "high")
	run(t, app, out, "add", "-title", "later", "-date", "2024-06-01", "-priority", "low")

	got := run(t, app, out, "report")
	assert.Contains(t, got, "Board report · 2024-05-10 12:00")
	assert.Contains(t, got, "Late · due 2024-05-01 18:00")
	assert.NotContains(t, got, "Later ·")
}

func TestRun_WatchStopsOnCancel(t *testing.T) {
	app, out := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, app.Run(ctx, []string{"watch"}))
	assert.Contains(t, out.String(), "Board report")

	err := app.Run(ctx, []string{"watch", "-at", "25:00"})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRun_UsageAndUnknown(t *testing.T) {
	app, out := newTestApp(t)

	assert.Contains(t, run(t, app, out), "Usage: taskboard")
	assert.Contains(t, run(t, app, out, "add", "-h"), "Usage: taskboard")

	err := app.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim("", ","))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b ", ","))
}

// Package cli is the command-line front end of the board.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"taskboard/internal/config"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// ErrUsage marks bad command-line input.
var ErrUsage = errors.New("usage")

// App dispatches subcommands against an open board.
type App struct {
	board  *service.Board
	cfg    config.Config
	logger *log.Logger
	out    io.Writer
	now    func() time.Time
}

func New(board *service.Board, cfg config.Config, logger *log.Logger, out io.Writer) *App {
	return &App{board: board, cfg: cfg, logger: logger, out: out, now: time.Now}
}

// Run executes the subcommand named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return nil
	}

	cmd, rest := args[0], args[1:]
	a.logger.Debug("command", "name", cmd, "args", rest)
	err := a.dispatch(ctx, cmd, rest)
	if errors.Is(err, flag.ErrHelp) {
		a.printUsage()
		return nil
	}
	return err
}

func (a *App) dispatch(ctx context.Context, cmd string, rest []string) error {
	switch cmd {
	case "add":
		return a.addCommand(ctx, rest)
	case "update":
		return a.updateCommand(ctx, rest)
	case "delete", "rm":
		return a.deleteCommand(ctx, rest)
	case "show":
		return a.showCommand(rest)
	case "board", "ls":
		return a.boardCommand(rest)
	case "search":
		return a.searchCommand(rest)
	case "categories":
		return a.categoriesCommand()
	case "category-add":
		return a.categoryAddCommand(ctx, rest)
	case "category-rm":
		return a.categoryRemoveCommand(ctx, rest)
	case "report":
		return a.reportCommand()
	case "watch":
		return a.watchCommand(ctx, rest)
	case "help", "-h", "--help":
		a.printUsage()
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

// Describe turns an error into a message for the terminal.
func Describe(err error) string {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found."
	case errors.Is(err, service.ErrCategoryInUse):
		return "Cannot delete this category: tasks still use it."
	case errors.Is(err, service.ErrCategoryExists):
		return "This category already exists."
	case errors.Is(err, service.ErrCategoryInvalid):
		return "Please enter a category name."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func (a *App) addCommand(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	title := fs.String("title", "", "task title (required)")
	description := fs.String("description", "", "task description")
	date := fs.String("date", "", "due date, YYYY-MM-DD (required)")
	at := fs.String("time", model.DefaultTime, "due time, HH:MM")
	category := fs.String("category", "", "category name")
	priority := fs.String("priority", string(model.PriorityMedium), "high, medium or low")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *category != "" && !a.board.Categories.Exists(*category) {
		a.logger.Warn("category is not registered", "category", *category)
	}

	task, err := a.board.Tasks.Add(ctx, model.Task{
		Title:       *title,
		Description: *description,
		Date:        *date,
		Time:        *at,
		Category:    *category,
		Priority:    model.Priority(strings.ToLower(*priority)),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s\n", task.ID)
	return nil
}

func (a *App) updateCommand(ctx context.Context, args []string) error {
	id, args := leadingArg(args)
	fs := newFlagSet("update")
	title := fs.String("title", "", "task title")
	description := fs.String("description", "", "task description")
	date := fs.String("date", "", "due date, YYYY-MM-DD")
	at := fs.String("time", "", "due time, HH:MM")
	category := fs.String("category", "", "category name")
	priority := fs.String("priority", "", "high, medium or low")
	status := fs.String("status", "", "progress, completed or overdue")
	progress := fs.String("progress", "", "progress counter, e.g. 1/3")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" {
		id = fs.Arg(0)
	}
	if id == "" {
		return fmt.Errorf("%w: update <id> [flags]", ErrUsage)
	}

	var patch model.TaskPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "description":
			patch.Description = description
		case "date":
			patch.Date = date
		case "time":
			patch.Time = at
		case "category":
			patch.Category = category
		case "priority":
			p := model.Priority(strings.ToLower(*priority))
			patch.Priority = &p
		case "status":
			s := model.Status(strings.ToLower(*status))
			patch.Status = &s
		case "progress":
			patch.Progress = progress
		}
	})
	if patch.IsEmpty() {
		return fmt.Errorf("%w: update needs at least one field flag", ErrUsage)
	}

	task, err := a.board.Tasks.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, formatTask(*task))
	return nil
}

func (a *App) deleteCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", ErrUsage)
	}
	if err := a.board.Tasks.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) showCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show <id>", ErrUsage)
	}
	task, err := a.board.Tasks.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, formatTaskDetail(*task))
	return nil
}

func (a *App) boardCommand(args []string) error {
	fs := newFlagSet("board")
	priorities := fs.String("priority", "", "comma-separated priorities to keep")
	categories := fs.String("category", "", "comma-separated categories to keep")
	sortBy := fs.String("sort", "", "date, priority, category or title")
	only := fs.String("status", "", "show a single board")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := service.ParseSortKey(*sortBy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	filters := service.Filters{Category: splitAndTrim(*categories, ",")}
	for _, p := range splitAndTrim(*priorities, ",") {
		filters.Priority = append(filters.Priority, model.Priority(strings.ToLower(p)))
	}

	statuses := model.Statuses
	if *only != "" {
		s := model.Status(strings.ToLower(*only))
		if !s.Valid() {
			return fmt.Errorf("%w: unknown status %q", ErrUsage, *only)
		}
		statuses = []model.Status{s}
	}

	if filters.Active() {
		fmt.Fprintf(a.out, "Filters: priority=%v category=%v\n\n", filters.Priority, filters.Category)
	}
	for _, status := range statuses {
		tasks := a.board.Tasks.Query(status, filters, key)
		fmt.Fprintf(a.out, "%s %s (%d)\n", statusIcon(status), statusTitle(status), len(tasks))
		if len(tasks) == 0 {
			fmt.Fprintln(a.out, "   — no tasks here")
		}
		for _, task := range tasks {
			fmt.Fprint(a.out, formatTask(task))
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

func (a *App) searchCommand(args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return a.boardCommand(nil)
	}
	tasks := a.board.Tasks.Search(query)
	fmt.Fprintf(a.out, "🔍 Results for %q (%d)\n", query, len(tasks))
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "   — no matching tasks")
	}
	for _, task := range tasks {
		fmt.Fprint(a.out, formatTask(task))
	}
	return nil
}

func (a *App) categoriesCommand() error {
	names := a.board.Categories.List()
	fmt.Fprintln(a.out, "📂 Categories")
	for _, name := range names {
		marker := ""
		if a.board.Tasks.HasCategory(name) {
			marker = " *"
		}
		fmt.Fprintf(a.out, "• %s%s\n", name, marker)
	}
	return nil
}

func (a *App) categoryAddCommand(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if err := a.board.Categories.Add(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added category %q\n", strings.TrimSpace(name))
	return nil
}

func (a *App) categoryRemoveCommand(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		return fmt.Errorf("%w: category-rm <name>", ErrUsage)
	}
	if err := a.board.Categories.Delete(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted category %q\n", name)
	return nil
}

func (a *App) reportCommand() error {
	fmt.Fprint(a.out, formatSummary(a.board.Reports.Summary(a.now())))
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("taskboard "+name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// leadingArg pops a positional argument placed before the flags.
func leadingArg(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

// splitAndTrim splits a string by sep and trims whitespace from each part.
func splitAndTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (a *App) printUsage() {
	fmt.Fprint(a.out, `Usage: taskboard <command> [flags]

Commands:
  add -title T -date YYYY-MM-DD [-time HH:MM] [-category C] [-priority P] [-description D]
  update <id> [-title T] [-status S] [-priority P] ...
  delete <id>
  show <id>
  board [-status S] [-priority p1,p2] [-category c1,c2] [-sort date|priority|category|title]
  search <query>
  categories
  category-add <name>
  category-rm <name>
  report
  watch [-at HH:MM]
`)
}

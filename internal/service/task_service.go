package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// TaskService owns the task collection and persists it after every change.
type TaskService struct {
	repo   *repository.TaskRepository
	logger *log.Logger
	now    func() time.Time
	newID  func() (string, error)

	mu    sync.RWMutex
	tasks []model.Task
}

func NewTaskService(repo *repository.TaskRepository, logger *log.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  newTaskID,
	}
}

// newTaskID returns a UUIDv7, which sorts by creation time and is monotonic
// within the process.
func newTaskID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate task id: %w", err)
	}
	return id.String(), nil
}

// Load replaces the in-memory collection with the persisted one.
func (s *TaskService) Load(ctx context.Context) error {
	tasks, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	s.logger.Debug("tasks loaded", "count", len(tasks))
	return nil
}

// Add stores a new task built from draft. ID, CreatedAt and Status of the
// draft are ignored; the task always starts in progress.
func (s *TaskService) Add(ctx context.Context, draft model.Task) (*model.Task, error) {
	draft.ApplyDefaults()
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}
	task := draft
	task.ID = id
	task.CreatedAt = s.now().UTC()
	task.Status = model.StatusProgress

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clip(s.tasks), task)
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("add task", "err", err)
		return nil, err
	}
	s.tasks = next
	s.logger.Debug("task added", "id", task.ID, "title", task.Title)
	return &task, nil
}

// Update merges patch onto the task with the given id.
func (s *TaskService) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	updated := s.tasks[idx]
	patch.Apply(&updated)
	updated.ApplyDefaults()

	next := slices.Clone(s.tasks)
	next[idx] = updated
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("update task", "id", id, "err", err)
		return nil, err
	}
	s.tasks = next
	s.logger.Debug("task updated", "id", id)
	return &updated, nil
}

// Delete removes the task with the given id. Unknown ids are ignored.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.tasks), idx, idx+1)
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("delete task", "id", id, "err", err)
		return err
	}
	s.tasks = next
	s.logger.Debug("task deleted", "id", id)
	return nil
}

func (s *TaskService) Get(id string) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	task := s.tasks[idx]
	return &task, nil
}

// All returns a copy of the collection in insertion order.
func (s *TaskService) All() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Query returns the tasks on one board, narrowed by filters and optionally sorted.
func (s *TaskService) Query(status model.Status, filters Filters, sortKey SortKey) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, 0)
	for _, task := range s.tasks {
		if task.Status == status && filters.match(task) {
			out = append(out, task)
		}
	}
	sortTasks(out, sortKey)
	return out
}

// Search matches query case-insensitively against title, description and category.
func (s *TaskService) Search(query string) []model.Task {
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, 0)
	for _, task := range s.tasks {
		if strings.Contains(strings.ToLower(task.Title), q) ||
			strings.Contains(strings.ToLower(task.Description), q) ||
			strings.Contains(strings.ToLower(task.Category), q) {
			out = append(out, task)
		}
	}
	return out
}

// HasCategory reports whether any task references the category.
func (s *TaskService) HasCategory(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.tasks, func(t model.Task) bool { return t.Category == name })
}

func (s *TaskService) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func validateDraft(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if err := validateDescription(t.Description); err != nil {
		return err
	}
	if err := validateDate(t.Date); err != nil {
		return err
	}
	if err := validateTime(t.Time); err != nil {
		return err
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, t.Priority)
	}
	return nil
}

func validatePatch(p model.TaskPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Date != nil {
		if err := validateDate(*p.Date); err != nil {
			return err
		}
	}
	if p.Time != nil && *p.Time != "" {
		if err := validateTime(*p.Time); err != nil {
			return err
		}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, *p.Priority)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTask, *p.Status)
	}
	return nil
}

func validateDescription(d string) error {
	if n := utf8.RuneCountInString(d); n > model.MaxDescriptionLen {
		return fmt.Errorf("%w: description has %d characters, limit is %d", ErrInvalidTask, n, model.MaxDescriptionLen)
	}
	return nil
}

func validateDate(d string) error {
	if _, err := time.Parse(model.DateLayout, d); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidTask, d)
	}
	return nil
}

func validateTime(t string) error {
	if _, err := time.Parse(model.TimeLayout, t); err != nil {
		return fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidTask, t)
	}
	return nil
}

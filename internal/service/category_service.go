package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// categoryUsage reports whether a category is referenced.
type categoryUsage interface {
	HasCategory(name string) bool
}

// CategoryService owns the ordered category registry.
type CategoryService struct {
	repo   *repository.CategoryRepository
	usage  categoryUsage
	logger *log.Logger

	mu    sync.RWMutex
	names []string
}

func NewCategoryService(repo *repository.CategoryRepository, usage categoryUsage, logger *log.Logger) *CategoryService {
	return &CategoryService{repo: repo, usage: usage, logger: logger}
}

// Load reads the registry, seeding and persisting the defaults when it is empty.
func (s *CategoryService) Load(ctx context.Context) error {
	names, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		names = slices.Clone(model.DefaultCategories)
		if err := s.repo.Save(ctx, names); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		s.logger.Info("seeded default categories", "count", len(names))
	}

	s.mu.Lock()
	s.names = names
	s.mu.Unlock()
	return nil
}

// Add registers a new category. Names are trimmed and matched exactly.
func (s *CategoryService) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCategoryInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.names, name) {
		return fmt.Errorf("%w: %s", ErrCategoryExists, name)
	}
	next := append(slices.Clip(s.names), name)
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("add category", "name", name, "err", err)
		return err
	}
	s.names = next
	s.logger.Debug("category added", "name", name)
	return nil
}

// Delete removes a category unless a task still uses it.
func (s *CategoryService) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usage.HasCategory(name) {
		return fmt.Errorf("%w: %s", ErrCategoryInUse, name)
	}
	idx := slices.Index(s.names, name)
	if idx < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.names), idx, idx+1)
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("delete category", "name", name, "err", err)
		return err
	}
	s.names = next
	s.logger.Debug("category deleted", "name", name)
	return nil
}

// List returns the names in registry order.
func (s *CategoryService) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.names)
}

func (s *CategoryService) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.names, name)
}

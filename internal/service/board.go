package service

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"taskboard/internal/repository"
)

// Board bundles the services that share one slot store.
type Board struct {
	Tasks      *TaskService
	Categories *CategoryService
	Reports    *ReportService

	slots repository.SlotStore
}

// OpenBoard wires the services over slots and loads the persisted state.
func OpenBoard(ctx context.Context, slots repository.SlotStore, logger *log.Logger) (*Board, error) {
	tasks := NewTaskService(repository.NewTaskRepository(slots), logger.WithPrefix("tasks"))
	categories := NewCategoryService(repository.NewCategoryRepository(slots), tasks, logger.WithPrefix("categories"))

	if err := tasks.Load(ctx); err != nil {
		return nil, err
	}
	if err := categories.Load(ctx); err != nil {
		return nil, err
	}

	return &Board{
		Tasks:      tasks,
		Categories: categories,
		Reports:    NewReportService(tasks),
		slots:      slots,
	}, nil
}

// Close releases the slot store when it holds resources. Every mutation is
// already persisted, so nothing is flushed here.
func (b *Board) Close() error {
	if c, ok := b.slots.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

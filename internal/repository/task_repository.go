package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"taskboard/internal/model"
)

// TasksSlot holds the serialized task collection.
const TasksSlot = "tasky_tasks"

// tasksSchema describes the persisted tasks slot. Optional fields may be
// absent in records written by older versions.
const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "status"],
    "properties": {
      "id":          {"type": "string", "minLength": 1},
      "title":       {"type": "string"},
      "description": {"type": "string"},
      "date":        {"type": "string"},
      "time":        {"type": "string"},
      "category":    {"type": "string"},
      "priority":    {"enum": ["high", "medium", "low", ""]},
      "status":      {"enum": ["progress", "completed", "overdue"]},
      "progress":    {"type": "string"},
      "createdAt":   {"type": "string"}
    }
  }
}`

// ErrCorruptSlot is returned when a persisted slot cannot be decoded.
var ErrCorruptSlot = errors.New("corrupt slot")

// TaskRepository reads and writes the task collection as one slot.
type TaskRepository struct {
	slots  SlotStore
	schema *jsonschema.Schema
}

func NewTaskRepository(slots SlotStore) *TaskRepository {
	return &TaskRepository{
		slots:  slots,
		schema: jsonschema.MustCompileString("tasks.schema.json", tasksSchema),
	}
}

// Load returns the persisted tasks in stored order, with defaults applied.
func (r *TaskRepository) Load(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := r.slots.Get(ctx, TasksSlot)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptSlot, TasksSlot, err)
	}
	if doc == nil {
		return nil, nil
	}
	if err := r.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptSlot, TasksSlot, err)
	}

	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptSlot, TasksSlot, err)
	}
	for i := range tasks {
		tasks[i].ApplyDefaults()
	}
	return tasks, nil
}

// Save replaces the persisted collection.
func (r *TaskRepository) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := r.slots.Put(ctx, TasksSlot, raw); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

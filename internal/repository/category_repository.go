package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// CategoriesSlot holds the serialized category names.
const CategoriesSlot = "tasky_categories"

// CategoryRepository reads and writes the category registry as one slot.
type CategoryRepository struct {
	slots SlotStore
}

func NewCategoryRepository(slots SlotStore) *CategoryRepository {
	return &CategoryRepository{slots: slots}
}

// Load returns the persisted names in stored order.
func (r *CategoryRepository) Load(ctx context.Context) ([]string, error) {
	raw, ok, err := r.slots.Get(ctx, CategoriesSlot)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptSlot, CategoriesSlot, err)
	}
	return names, nil
}

func (r *CategoryRepository) Save(ctx context.Context, names []string) error {
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := r.slots.Put(ctx, CategoriesSlot, raw); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}

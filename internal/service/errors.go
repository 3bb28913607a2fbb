package service

import "errors"

var (
	// ErrTaskNotFound indicates no task has the requested id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTask indicates a draft or patch failed validation.
	ErrInvalidTask = errors.New("invalid task")

	// ErrCategoryInvalid indicates a blank category name.
	ErrCategoryInvalid = errors.New("category name is required")

	// ErrCategoryExists indicates the name is already registered.
	ErrCategoryExists = errors.New("category already exists")

	// ErrCategoryInUse indicates tasks still reference the category.
	ErrCategoryInUse = errors.New("category in use")
)

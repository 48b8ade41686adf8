package service

import "errors"

// Sentinel errors classified at the API edge.
var (
	// ErrConflict: the keyword or category name already exists.
	ErrConflict = errors.New("already exists")
	// ErrReserved: the operation targets a reserved category.
	ErrReserved = errors.New("reserved category")
	// ErrNotFound: the referenced row does not exist.
	ErrNotFound = errors.New("not found")
)

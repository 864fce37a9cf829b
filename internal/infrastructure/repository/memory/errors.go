package memory

import "errors"

var (
	ErrRecordNotFound = errors.New("memory: record not found")
	ErrDuplicateID    = errors.New("memory: duplicate id")
)

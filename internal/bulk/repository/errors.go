package repository

import "errors"

var (
	ErrFailedToInsert          = errors.New("failed to insert")
	ErrConstraintViolation     = errors.New("constraint violation")
	ErrFailedToGet             = errors.New("failed to get")
	ErrFailedToList            = errors.New("failed to list")
	ErrFailedToCount           = errors.New("failed to count")
	ErrFailedToMarkReprocessed = errors.New("failed to mark reprocessed")
	ErrNotFound                = errors.New("record not found")
)

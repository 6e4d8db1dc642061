package cli

import "errors"

var (
	ErrMissingArchive      = errors.New("archive path is required")
	ErrStartWithDictionary = errors.New("starting password cannot be combined with a dictionary")
	ErrMinGreaterThanMax   = errors.New("min length cannot exceed max length")
	ErrWorkersNonPositive  = errors.New("worker count must be positive")
)

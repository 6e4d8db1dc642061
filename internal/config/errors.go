package config

import "errors"

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrWorkersNonPositive = errors.New("default-workers must be positive")
	ErrMinGreaterThanMax  = errors.New("default-min-len cannot exceed default-max-len")
)

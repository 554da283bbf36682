package service

import "errors"

var (
	errEmptyID      = errors.New("container id is required")
	errPageNegative = errors.New("page must be >= 0")
	errPageSize     = errors.New("size must be between 1 and 100")
)

package models

import "errors"

// Custom errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmptyDataset  = errors.New("dataset contains no usable rows")
	ErrMissingScores = errors.New("results dataset carries no score columns")
)

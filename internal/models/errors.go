package models

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrInconsistentSplit = errors.New("inconsistent split")
)

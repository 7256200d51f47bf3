package scenario

import "errors"

var (
	ErrNotFound         = errors.New("scenario not found")
	ErrEmployeeNotFound = errors.New("scenario employee not found")
	ErrUnknownYear      = errors.New("no fiscal table for scenario year")
	ErrUnknownCurrency  = errors.New("unknown currency code")
)

package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrContentBlocked      = errors.New("content blocked for safety reasons")
	ErrQuotaExceeded       = errors.New("generation quota exhausted")
	ErrInvalidResponse     = errors.New("invalid generation response")
	ErrDuplicateJob        = errors.New("duplicate job")
	ErrUnknownSection      = errors.New("unknown section")
)

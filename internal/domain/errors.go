package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrTransientFetch  = errors.New("transient fetch error")
	ErrQuotaExhausted  = errors.New("quota exhausted")
	ErrPartialSnapshot = errors.New("partial snapshot")
	ErrCollectionBusy  = errors.New("collection already in progress")
	ErrLeaseLost       = errors.New("collection lease lost")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidArgument = errors.New("invalid argument")
)

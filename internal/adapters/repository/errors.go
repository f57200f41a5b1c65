package repository

import "errors"

// Sentinel errors returned by the store.
var (
	ErrDuplicate     = errors.New("duplicate record")
	ErrInvalidLimit  = errors.New("invalid leaderboard limit")
	ErrUnknownDriver = errors.New("unknown database driver")
)

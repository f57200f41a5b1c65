package service

import (
	"errors"

	"github.com/okian/stormcast/internal/adapters/repository"
)

// Errors returned by Service. Validation-class errors map to 400,
// the not-found class to 404.
var (
	ErrValidation          = errors.New("validation failed")
	ErrStormNotActive      = errors.New("storm is not active")
	ErrCheckpointNotActive = errors.New("checkpoint is not open for predictions")
	ErrUnknownCheckpoint   = errors.New("unknown checkpoint")
	ErrDuplicate           = repository.ErrDuplicate

	ErrStormNotFound      = errors.New("storm not found")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
)

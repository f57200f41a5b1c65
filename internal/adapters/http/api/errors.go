package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/stormcast/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrUnavailable = errors.New("service unavailable")
)

// opError attaches the failing operation to an error and an optional kind.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	switch {
	case e.kind != nil && e.err != nil:
		return fmt.Sprintf("%s: %v: %v", e.op, e.kind, e.err)
	case e.kind != nil:
		return fmt.Sprintf("%s: %v", e.op, e.kind)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.op, e.err)
	}
	return e.op
}

func (e *opError) Unwrap() []error {
	var errs []error
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.err != nil {
		errs = append(errs, e.err)
	}
	return errs
}

// WrapKind classifies err as kind and tags it with op.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, kind: kind, err: err}
}

// Wrap tags err with op. A request that ran out of time is classified as
// ErrUnavailable.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &opError{op: op, kind: ErrUnavailable, err: err}
	}
	return &opError{op: op, err: err}
}

// classify maps an error to a status code and a stable response code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDuplicate):
		return http.StatusBadRequest, "duplicate"
	case errors.Is(err, service.ErrStormNotActive):
		return http.StatusBadRequest, "storm_not_active"
	case errors.Is(err, service.ErrCheckpointNotActive):
		return http.StatusBadRequest, "checkpoint_not_active"
	case errors.Is(err, service.ErrUnknownCheckpoint):
		return http.StatusBadRequest, "unknown_checkpoint"
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrStormNotFound),
		errors.Is(err, service.ErrCheckpointNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	}
	return http.StatusInternalServerError, "internal_error"
}

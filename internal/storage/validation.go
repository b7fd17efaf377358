// Package storage persists the dashboard load journal.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/recdash/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrInvalidCycle   = errors.New("invalid load cycle")
	ErrInvalidOutcome = errors.New("invalid endpoint outcome")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCycle checks a load cycle before it is written.
func validateCycle(cycle *model.LoadCycle) error {
	if strings.TrimSpace(cycle.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCycle)
	}
	if cycle.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidCycle)
	}
	if !cycle.FinishedAt.IsZero() && cycle.FinishedAt.Before(cycle.StartedAt) {
		return fmt.Errorf("%w: finished before it started", ErrInvalidCycle)
	}

	for i, o := range cycle.Outcomes {
		if strings.TrimSpace(o.Endpoint) == "" {
			return fmt.Errorf("%w at index %d: missing endpoint", ErrInvalidOutcome, i)
		}
		if o.Duration < 0 {
			return fmt.Errorf("%w at index %d: negative duration", ErrInvalidOutcome, i)
		}
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/comps/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidMapping = errors.New("invalid column mapping")
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

// validateMapping rejects column mappings with negative indexes.
func validateMapping(m model.ColumnMapping) error {
	for i, idx := range m.Indexes() {
		if idx < 0 {
			return fmt.Errorf("%w: column %d of the mapping is %d", ErrInvalidMapping, i+1, idx)
		}
	}
	return nil
}

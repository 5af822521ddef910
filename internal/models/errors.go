package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnknownSubmissionType = errors.New("models: unknown submission type")
	ErrNotObject             = errors.New("models: record is not a JSON object")
	ErrMissingID             = errors.New("models: record has no id")
	ErrInvalidID             = errors.New("models: invalid id")
)

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "models: invalid form: " + strings.Join(parts, "; ")
}

// Err returns nil when there are no field errors.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

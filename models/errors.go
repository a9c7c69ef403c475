package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaMismatch means an input file is missing an expected column.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrUnknownCategory means a categorical answer is outside its vocabulary.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrEmptyDistribution means a computation was asked to divide by an
	// empty respondent count.
	ErrEmptyDistribution = errors.New("empty distribution")
	// ErrInvalidValue means a cell could not be parsed into its field type.
	ErrInvalidValue = errors.New("invalid value")
)

// SchemaMismatchError lists every expected header absent from a source.
type SchemaMismatchError struct {
	Source  string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: %s: missing columns [%s]",
		e.Source, ErrSchemaMismatch, strings.Join(quoteAll(e.Missing), ", "))
}

// Is lets errors.Is(err, ErrSchemaMismatch) match.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}

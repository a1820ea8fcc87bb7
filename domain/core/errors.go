package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound             = errors.New("resource not found")
	ErrInterventionNotFound = fmt.Errorf("%w: intervention", ErrNotFound)
	ErrSchemeNotFound       = fmt.Errorf("%w: weighting scheme", ErrNotFound)
	ErrRunNotFound          = fmt.Errorf("%w: analysis run", ErrNotFound)

	// Input validation errors
	ErrSchema     = errors.New("schema violation")
	ErrScoreRange = errors.New("domain score out of range")
	ErrWeightSum  = errors.New("scheme weights do not sum to 1")
	ErrDuplicate  = errors.New("duplicate identifier")

	// Parameter validation errors
	ErrConfiguration = errors.New("invalid configuration")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewSchemaError(subject string, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrSchema, subject, detail)
}

func NewMissingDomainError(subject string, domain string) error {
	return fmt.Errorf("%w: %s is missing domain %s", ErrSchema, subject, domain)
}

func NewScoreRangeError(intervention string, domain string, score float64) error {
	return fmt.Errorf("%w: %s/%s = %g, want [1,5]", ErrScoreRange, intervention, domain, score)
}

func NewWeightSumError(scheme string, sum float64) error {
	return fmt.Errorf("%w: scheme %q sums to %.6f", ErrWeightSum, scheme, sum)
}

func NewConfigurationError(param string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfiguration, param, reason)
}

func NewDuplicateError(kind string, id string) error {
	return fmt.Errorf("%w: %s %q", ErrDuplicate, kind, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrSchema) ||
		errors.Is(err, ErrScoreRange) ||
		errors.Is(err, ErrWeightSum) ||
		errors.Is(err, ErrDuplicate)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a missing or empty search query.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable signals that the catalog store is not reachable.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRetrieval signals that a retrieval stage failed against the store.
	ErrRetrieval = errors.New("retrieval failed")
)

// StageError wraps ErrRetrieval with the retrieval stage that failed.
type StageError struct {
	Stage int
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: stage %d: %v", ErrRetrieval.Error(), e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error { return ErrRetrieval }

// NewStageError creates a stage-tagged retrieval error.
func NewStageError(stage int, cause error) error {
	return &StageError{Stage: stage, Cause: cause}
}

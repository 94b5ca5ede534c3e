package graph

import (
	"context"
	"errors"
	"net"
	"strings"
)

var (
	// ErrNotFound means a referenced User, WordList or Word does not exist.
	// Callers must not retry; it indicates a stale or bogus reference.
	ErrNotFound = errors.New("graph: not found")

	// ErrConflict means a uniqueness constraint was violated, e.g. a
	// duplicate account at registration.
	ErrConflict = errors.New("graph: already exists")

	// ErrEmptyResult is the soft outcome of a selection over an empty set,
	// e.g. drawing a random word from an empty list. It is a normal result,
	// not a failure.
	ErrEmptyResult = errors.New("graph: empty result")
)

// IsTransient reports whether err is a timeout, connectivity failure or a
// Neo4j transient error, the class a caller may retry with backoff. Hard
// outcomes (ErrNotFound, ErrConflict, ErrEmptyResult) are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrEmptyResult) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Neo.TransientError") ||
		strings.Contains(msg, "ConnectivityError") ||
		strings.Contains(msg, "connection refused")
}

// isConstraintViolation detects a Neo4j uniqueness constraint failure.
func isConstraintViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ConstraintValidationFailed")
}

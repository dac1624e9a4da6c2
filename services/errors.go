package services

import "fmt"

// ErrorKind classifies expected failures so controllers can pick a status
// code without string-matching messages.
type ErrorKind string

const (
	ErrValidation    ErrorKind = "validation"     // malformed or out-of-range input
	ErrStateConflict ErrorKind = "state_conflict" // operation illegal in the current state
	ErrNotFound      ErrorKind = "not_found"      // referenced entity does not exist
	ErrConcurrency   ErrorKind = "concurrency"    // optimistic version check failed, re-fetch and retry
	ErrCollaborator  ErrorKind = "collaborator"   // downstream store/blob failure, transient
)

// Error is the typed result for every expected rejection. The message names
// the invariant that blocked the operation.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func validation(field, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func stateConflict(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrStateConflict, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func concurrency(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrConcurrency, Message: fmt.Sprintf(format, args...)}
}

func collaborator(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrCollaborator, Message: fmt.Sprintf(format, args...)}
}

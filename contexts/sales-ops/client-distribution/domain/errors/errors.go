package errors

import (
	"errors"
	"fmt"
)

// Class sentinels. Every specific error below matches exactly one of them
// through errors.Is, which is what the transport layer maps to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrIntegrity    = errors.New("integrity violation")
)

var (
	ErrExecutiveNotFound     = classify("executive not found", ErrNotFound)
	ErrClientNotFound        = classify("client not found", ErrNotFound)
	ErrNoExecutivesAvailable = classify("no executives available", ErrConflict)
	ErrExecutiveExists       = classify("executive already exists", ErrConflict)
	ErrClientExists          = classify("client already exists", ErrConflict)
	ErrLastExecutive         = classify("cannot delete the last executive", ErrConflict)
	ErrEmptyInput            = classify("no client names provided", ErrInvalidInput)
	ErrInvalidName           = classify("name must not be empty", ErrInvalidInput)
	ErrInvalidExecutiveID    = classify("invalid executive id", ErrInvalidInput)
	ErrInvalidClientID       = classify("invalid client id", ErrInvalidInput)
	ErrEmptyPatch            = classify("no client fields to update", ErrInvalidInput)
	ErrUnsupportedFile       = classify("unsupported file type", ErrInvalidInput)
	ErrImportTooLarge        = classify("import file too large", ErrInvalidInput)
	ErrOrphanClient          = classify("client references a missing executive", ErrIntegrity)
)

type classified struct {
	msg   string
	class error
}

func classify(msg string, class error) error {
	return &classified{msg: msg, class: class}
}

func (e *classified) Error() string { return e.msg }

func (e *classified) Unwrap() error { return e.class }

// DuplicateClientError names the clashing client and, when known, the
// executive that already serves it.
type DuplicateClientError struct {
	Name          string
	ExecutiveName string
}

func (e DuplicateClientError) Error() string {
	if e.ExecutiveName == "" {
		return fmt.Sprintf("client %q already exists", e.Name)
	}
	return fmt.Sprintf("client %q is already served by %s", e.Name, e.ExecutiveName)
}

func (e DuplicateClientError) Unwrap() error { return ErrClientExists }

type DuplicateExecutiveError struct {
	Name string
}

func (e DuplicateExecutiveError) Error() string {
	return fmt.Sprintf("executive %q already exists", e.Name)
}

func (e DuplicateExecutiveError) Unwrap() error { return ErrExecutiveExists }

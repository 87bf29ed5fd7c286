package uispec

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched with errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("already exists")
	ErrIntegrity = errors.New("integrity violation")
	ErrProtected = errors.New("protected")
	ErrInvalid   = errors.New("invalid operation")
)

// NotFoundError is returned when an operation names a field, section, form
// or field type that does not exist. In is set when the entry exists but is
// not listed by the section or form the operation named.
type NotFoundError struct {
	Operation string
	Kind      string
	ID        string
	In        string
}

func (e *NotFoundError) Error() string {
	if e.In != "" {
		return fmt.Sprintf("cannot apply %s: %s %s is not in %s", e.Operation, e.Kind, e.ID, e.In)
	}
	return fmt.Sprintf("cannot apply %s: unknown %s %s", e.Operation, e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError is returned when a new identifier is already taken.
type ConflictError struct {
	Kind  string
	ID    string
	Scope string
}

func (e *ConflictError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s %s already exists in %s", e.Kind, e.ID, e.Scope)
	}
	return fmt.Sprintf("%s %s already exists", e.Kind, e.ID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// IntegrityError is returned when a deletion would leave dangling references.
type IntegrityError struct {
	Kind       string
	ID         string
	References []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s %s is referenced by %s", e.Kind, e.ID, strings.Join(e.References, ", "))
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

// ProtectedError is returned when deleting or hiding a field marked as
// protected. An empty Action reads as deleted.
type ProtectedError struct {
	ID     string
	Action string
}

func (e *ProtectedError) Error() string {
	action := e.Action
	if action == "" {
		action = "deleted"
	}
	return fmt.Sprintf("field %s is protected and cannot be %s", e.ID, action)
}

func (e *ProtectedError) Is(target error) bool { return target == ErrProtected }

func notFound(op, kind, id string) error {
	return &NotFoundError{Operation: op, Kind: kind, ID: id}
}

func notListed(op, kind, id, in string) error {
	return &NotFoundError{Operation: op, Kind: kind, ID: id, In: in}
}

func invalid(op, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, op, fmt.Sprintf(format, args...))
}

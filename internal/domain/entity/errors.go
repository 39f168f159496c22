package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy callers match with errors.Is.
var (
	// ErrNotFound marks operations referencing an unknown tab/group id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument marks reorder/move operations given a bad
	// order set or an out-of-range index.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPersistence marks storage read/write failures.
	ErrPersistence = errors.New("persistence failure")
)

// NotFoundError reports an unresolvable entity id with a stable,
// user-presentable message.
type NotFoundError struct {
	Kind string // "tab" or "group"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewTabNotFound builds the canonical not-found error for a tab id.
func NewTabNotFound(id TabID) error {
	return &NotFoundError{Kind: "tab", ID: string(id)}
}

// NewGroupNotFound builds the canonical not-found error for a group id.
func NewGroupNotFound(id GroupID) error {
	return &NotFoundError{Kind: "group", ID: string(id)}
}

// InvalidArgumentError reports a rejected mutation with the collection
// left untouched.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

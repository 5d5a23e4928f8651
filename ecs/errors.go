package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEntity is wrapped by errors about ids the manager does not hold.
	ErrUnknownEntity = errors.New("ecs: unknown entity")
	// ErrNilComponent is returned when attaching a nil component.
	ErrNilComponent = errors.New("ecs: nil component")
)

// UnknownEntityError reports an operation on an id that was never created
// or has been destroyed.
type UnknownEntityError struct {
	ID EntityID
	Op string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("ecs: %s: unknown entity %d", e.Op, uint64(e.ID))
}

func (e *UnknownEntityError) Unwrap() error { return ErrUnknownEntity }

package campus

import (
	"errors"
	"fmt"
)

// Registry errors
var (
	// ErrUnavailable reports that an operation needs a selection from a
	// collection that is currently empty. Nothing is changed when it is returned.
	ErrUnavailable = errors.New("unavailable")

	// ErrNotFound reports a handle that was not issued by this registry.
	ErrNotFound = errors.New("entity not found")
)

// Unavailable conditions, one per relationship operation.
var (
	ErrNoStudentsOrCourses    = fmt.Errorf("no students or courses available: %w", ErrUnavailable)
	ErrNoInstructorsOrCourses = fmt.Errorf("no instructors or courses available: %w", ErrUnavailable)
	ErrNoDepartmentsOrCourses = fmt.Errorf("no departments or courses available: %w", ErrUnavailable)
)

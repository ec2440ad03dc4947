// Package campus implements the in-memory entity/relationship model for the
// university management tool.
//
// The package contains only pure Go code with standard library imports. It has
// no knowledge of the terminal UI, logging, tracing or configuration.
//
// # Core Types
//
// Student and Instructor embed PersonInfo and satisfy Named. Course and
// Department are standalone records. Every entity is addressed by a typed
// handle (StudentID, InstructorID, CourseID, DepartmentID) issued by the
// Registry when the entity is created.
//
// # Registry
//
// Registry is the arena that owns every entity for the lifetime of the
// process. Collections are append-only and keep insertion order. Relationships
// are stored as ordered handle lists inside the Registry, never as references
// between entities:
//
//   - student -> courses and course -> students (bidirectional)
//   - instructor -> courses and course -> instructors (bidirectional)
//   - department -> courses (one-directional)
//
// Registering the same pair twice appends a second entry on both sides, and no
// uniqueness is enforced on roll numbers, course numbers or names.
//
// # Projections
//
// ProjectStudents, ProjectInstructors, ProjectCourses and ProjectDepartments
// join each entity with the names of its related entities. Their String
// methods produce the list lines shown by the terminal UI.
//
// # Import Aliasing
//
// The application service lives in internal/campus/application. When importing
// both packages, alias the domain:
//
//	import (
//	    campusdomain "github.com/zjrosen/campus/internal/campus/domain"
//	    "github.com/zjrosen/campus/internal/campus/application"
//	)
package campus

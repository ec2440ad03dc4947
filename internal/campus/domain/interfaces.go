package campus

import "iter"

// RegistryProvider defines read-only access to the registry. The terminal UI
// depends on this interface for selection lists.
type RegistryProvider interface {
	// Students returns every student in insertion order.
	Students() iter.Seq[Student]

	// Instructors returns every instructor in insertion order.
	Instructors() iter.Seq[Instructor]

	// Courses returns every course in insertion order.
	Courses() iter.Seq[Course]

	// Departments returns every department in insertion order.
	Departments() iter.Seq[Department]

	// Count returns the number of entities of the given kind.
	Count(kind EntityKind) int

	// Revision increases on every mutation.
	Revision() uint64
}

// Compile-time check that Registry implements RegistryProvider.
var _ RegistryProvider = (*Registry)(nil)

var (
	_ Named = Student{}
	_ Named = Instructor{}
	_ Named = Course{}
	_ Named = Department{}
)

package campus

import "strconv"

// Handles issued by the Registry. They are 1-based; the zero value never
// refers to a registered entity.
type (
	StudentID    int
	InstructorID int
	CourseID     int
	DepartmentID int
)

// Student is a person enrolled at the university.
type Student struct {
	ID StudentID
	PersonInfo
	RollNumber int
}

// Instructor is a person teaching at the university.
type Instructor struct {
	ID InstructorID
	PersonInfo
	Salary float64
}

// Course is a class students register for and instructors are assigned to.
// Number is the caller supplied course id; ID is the registry handle.
type Course struct {
	ID     CourseID
	Number int
	Name   string
}

// DisplayName returns the course name, which is how courses are listed.
func (c Course) DisplayName() string {
	return c.Name
}

// Department groups courses.
type Department struct {
	ID   DepartmentID
	Name string
}

// DisplayName returns the department name.
func (d Department) DisplayName() string {
	return d.Name
}

// EntityKind identifies one of the four registry collections.
type EntityKind int

const (
	KindStudent EntityKind = iota
	KindInstructor
	KindCourse
	KindDepartment
)

// Kinds lists every entity kind in menu order.
func Kinds() []EntityKind {
	return []EntityKind{KindStudent, KindInstructor, KindCourse, KindDepartment}
}

// String returns the lowercase kind name used in cache keys and logs.
func (k EntityKind) String() string {
	switch k {
	case KindStudent:
		return "student"
	case KindInstructor:
		return "instructor"
	case KindCourse:
		return "course"
	case KindDepartment:
		return "department"
	default:
		return "unknown"
	}
}

// Label returns the capitalised singular name, e.g. "Student".
func (k EntityKind) Label() string {
	switch k {
	case KindStudent:
		return "Student"
	case KindInstructor:
		return "Instructor"
	case KindCourse:
		return "Course"
	case KindDepartment:
		return "Department"
	default:
		return "Unknown"
	}
}

// Plural returns the capitalised collection name, e.g. "Students".
func (k EntityKind) Plural() string {
	return k.Label() + "s"
}

// ParseKind maps a kind name (singular or plural, any case handled by the
// caller) back to an EntityKind.
func ParseKind(s string) (EntityKind, bool) {
	for _, k := range Kinds() {
		if s == k.String() || s == k.String()+"s" || s == k.Label() || s == k.Plural() {
			return k, true
		}
	}
	return 0, false
}

// Change describes a mutation of the registry. Create operations fill Kind, ID
// and Label. Link operations additionally fill Related with the course side.
type Change struct {
	Kind    EntityKind
	ID      int
	Label   string
	Related string
}

// String renders the change for logs.
func (c Change) String() string {
	s := c.Kind.String() + "#" + strconv.Itoa(c.ID) + " " + c.Label
	if c.Related != "" {
		s += " -> " + c.Related
	}
	return s
}

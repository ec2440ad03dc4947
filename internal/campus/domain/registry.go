package campus

import (
	"iter"
	"sync"
)

// Registry owns every entity created during a run.
//
// Entities live in append-only slices and are addressed by handle (index+1).
// Relationship lists are keyed by handle and hold handles in insertion order.
// A single RWMutex guards all of it so each relationship operation updates
// both sides as one step.
type Registry struct {
	mu sync.RWMutex

	students    []Student
	instructors []Instructor
	courses     []Course
	departments []Department

	studentCourses    map[StudentID][]CourseID
	courseStudents    map[CourseID][]StudentID
	instructorCourses map[InstructorID][]CourseID
	courseInstructors map[CourseID][]InstructorID
	departmentCourses map[DepartmentID][]CourseID

	revision uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		students:          make([]Student, 0),
		instructors:       make([]Instructor, 0),
		courses:           make([]Course, 0),
		departments:       make([]Department, 0),
		studentCourses:    make(map[StudentID][]CourseID),
		courseStudents:    make(map[CourseID][]StudentID),
		instructorCourses: make(map[InstructorID][]CourseID),
		courseInstructors: make(map[CourseID][]InstructorID),
		departmentCourses: make(map[DepartmentID][]CourseID),
	}
}

// CreateStudent appends a new student and returns it.
func (r *Registry) CreateStudent(name string, age, rollNumber int) Student {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Student{
		ID:         StudentID(len(r.students) + 1),
		PersonInfo: PersonInfo{Name: name, Age: age},
		RollNumber: rollNumber,
	}
	r.students = append(r.students, s)
	r.revision++
	return s
}

// CreateInstructor appends a new instructor and returns it.
func (r *Registry) CreateInstructor(name string, age int, salary float64) Instructor {
	r.mu.Lock()
	defer r.mu.Unlock()

	in := Instructor{
		ID:         InstructorID(len(r.instructors) + 1),
		PersonInfo: PersonInfo{Name: name, Age: age},
		Salary:     salary,
	}
	r.instructors = append(r.instructors, in)
	r.revision++
	return in
}

// CreateCourse appends a new course and returns it. number is the caller's
// course id and is not required to be unique.
func (r *Registry) CreateCourse(number int, name string) Course {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := Course{
		ID:     CourseID(len(r.courses) + 1),
		Number: number,
		Name:   name,
	}
	r.courses = append(r.courses, c)
	r.revision++
	return c
}

// CreateDepartment appends a new department and returns it.
func (r *Registry) CreateDepartment(name string) Department {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := Department{
		ID:   DepartmentID(len(r.departments) + 1),
		Name: name,
	}
	r.departments = append(r.departments, d)
	r.revision++
	return d
}

// Students returns the students registered as of this call, in insertion
// order. The sequence can be ranged over any number of times.
func (r *Registry) Students() iter.Seq[Student] {
	r.mu.RLock()
	snapshot := r.students[:len(r.students):len(r.students)]
	r.mu.RUnlock()
	return seqOf(snapshot)
}

// Instructors returns the instructors registered as of this call.
func (r *Registry) Instructors() iter.Seq[Instructor] {
	r.mu.RLock()
	snapshot := r.instructors[:len(r.instructors):len(r.instructors)]
	r.mu.RUnlock()
	return seqOf(snapshot)
}

// Courses returns the courses registered as of this call.
func (r *Registry) Courses() iter.Seq[Course] {
	r.mu.RLock()
	snapshot := r.courses[:len(r.courses):len(r.courses)]
	r.mu.RUnlock()
	return seqOf(snapshot)
}

// Departments returns the departments registered as of this call.
func (r *Registry) Departments() iter.Seq[Department] {
	r.mu.RLock()
	snapshot := r.departments[:len(r.departments):len(r.departments)]
	r.mu.RUnlock()
	return seqOf(snapshot)
}

// seqOf wraps a snapshot slice. Entities are never mutated after append, so
// the snapshot stays valid while the registry keeps growing.
func seqOf[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// Count returns the size of the collection for kind.
func (r *Registry) Count(kind EntityKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch kind {
	case KindStudent:
		return len(r.students)
	case KindInstructor:
		return len(r.instructors)
	case KindCourse:
		return len(r.courses)
	case KindDepartment:
		return len(r.departments)
	default:
		return 0
	}
}

// Revision increases on every mutation. Callers use it to key derived data.
func (r *Registry) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

// Student returns the student for id.
func (r *Registry) Student(id StudentID) (Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.students, int(id))
}

// Instructor returns the instructor for id.
func (r *Registry) Instructor(id InstructorID) (Instructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.instructors, int(id))
}

// Course returns the course for id.
func (r *Registry) Course(id CourseID) (Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.courses, int(id))
}

// Department returns the department for id.
func (r *Registry) Department(id DepartmentID) (Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.departments, int(id))
}

// lookup must be called with r.mu held.
func lookup[T any](items []T, id int) (T, error) {
	var zero T
	if id < 1 || id > len(items) {
		return zero, ErrNotFound
	}
	return items[id-1], nil
}

package campus

import "fmt"

// CanRegister reports whether there is at least one student and one course.
func (r *Registry) CanRegister() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students) > 0 && len(r.courses) > 0
}

// CanAssign reports whether there is at least one instructor and one course.
func (r *Registry) CanAssign() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instructors) > 0 && len(r.courses) > 0
}

// CanAddCourseToDepartment reports whether there is at least one department
// and one course.
func (r *Registry) CanAddCourseToDepartment() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.departments) > 0 && len(r.courses) > 0
}

// Link is the pair of records joined by a relationship operation, read under
// the same lock as the write.
type Link[E Named] struct {
	Entity E
	Course Course
}

// RegisterStudentForCourse links a student and a course on both sides.
// Registering the same pair again appends a second entry on both sides.
func (r *Registry) RegisterStudentForCourse(sid StudentID, cid CourseID) (Link[Student], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.students) == 0 || len(r.courses) == 0 {
		return Link[Student]{}, ErrNoStudentsOrCourses
	}
	st, err := lookup(r.students, int(sid))
	if err != nil {
		return Link[Student]{}, fmt.Errorf("student %d: %w", sid, err)
	}
	c, err := lookup(r.courses, int(cid))
	if err != nil {
		return Link[Student]{}, fmt.Errorf("course %d: %w", cid, err)
	}

	r.studentCourses[sid] = append(r.studentCourses[sid], cid)
	r.courseStudents[cid] = append(r.courseStudents[cid], sid)
	r.revision++
	return Link[Student]{Entity: st, Course: c}, nil
}

// AssignInstructorToCourse links an instructor and a course on both sides.
func (r *Registry) AssignInstructorToCourse(iid InstructorID, cid CourseID) (Link[Instructor], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.instructors) == 0 || len(r.courses) == 0 {
		return Link[Instructor]{}, ErrNoInstructorsOrCourses
	}
	in, err := lookup(r.instructors, int(iid))
	if err != nil {
		return Link[Instructor]{}, fmt.Errorf("instructor %d: %w", iid, err)
	}
	c, err := lookup(r.courses, int(cid))
	if err != nil {
		return Link[Instructor]{}, fmt.Errorf("course %d: %w", cid, err)
	}

	r.instructorCourses[iid] = append(r.instructorCourses[iid], cid)
	r.courseInstructors[cid] = append(r.courseInstructors[cid], iid)
	r.revision++
	return Link[Instructor]{Entity: in, Course: c}, nil
}

// AddCourseToDepartment appends a course to a department. The course keeps no
// record of the department.
func (r *Registry) AddCourseToDepartment(did DepartmentID, cid CourseID) (Link[Department], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.departments) == 0 || len(r.courses) == 0 {
		return Link[Department]{}, ErrNoDepartmentsOrCourses
	}
	d, err := lookup(r.departments, int(did))
	if err != nil {
		return Link[Department]{}, fmt.Errorf("department %d: %w", did, err)
	}
	c, err := lookup(r.courses, int(cid))
	if err != nil {
		return Link[Department]{}, fmt.Errorf("course %d: %w", cid, err)
	}

	r.departmentCourses[did] = append(r.departmentCourses[did], cid)
	r.revision++
	return Link[Department]{Entity: d, Course: c}, nil
}

// StudentCourses returns the courses a student registered for, in
// registration order and including duplicates.
func (r *Registry) StudentCourses(sid StudentID) []Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolve(r.courses, r.studentCourses[sid])
}

// CourseStudents returns the students registered for a course.
func (r *Registry) CourseStudents(cid CourseID) []Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolve(r.students, r.courseStudents[cid])
}

// InstructorCourses returns the courses assigned to an instructor.
func (r *Registry) InstructorCourses(iid InstructorID) []Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolve(r.courses, r.instructorCourses[iid])
}

// CourseInstructors returns the instructors assigned to a course.
func (r *Registry) CourseInstructors(cid CourseID) []Instructor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolve(r.instructors, r.courseInstructors[cid])
}

// DepartmentCourses returns the courses added to a department.
func (r *Registry) DepartmentCourses(did DepartmentID) []Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolve(r.courses, r.departmentCourses[did])
}

// resolve maps handles to entities. Must be called with r.mu held.
func resolve[T any, ID ~int](items []T, ids []ID) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, items[int(id)-1])
	}
	return out
}

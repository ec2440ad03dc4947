package campus

import (
	"fmt"
	"strconv"
	"strings"
)

// StudentProjection is a student joined with the names of its courses.
type StudentProjection struct {
	ID         StudentID `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Age        int       `json:"age" yaml:"age"`
	RollNumber int       `json:"roll_number" yaml:"roll_number"`
	Courses    []string  `json:"courses" yaml:"courses"`
}

// String renders the list line for the student.
func (p StudentProjection) String() string {
	return fmt.Sprintf("Name: %s, Age: %d, Roll Number: %d, Courses: %s",
		p.Name, p.Age, p.RollNumber, JoinNames(p.Courses))
}

// InstructorProjection is an instructor joined with the names of its courses.
type InstructorProjection struct {
	ID      InstructorID `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Age     int          `json:"age" yaml:"age"`
	Salary  float64      `json:"salary" yaml:"salary"`
	Courses []string     `json:"courses" yaml:"courses"`
}

// String renders the list line for the instructor.
func (p InstructorProjection) String() string {
	return fmt.Sprintf("Name: %s, Age: %d, Salary: %s, Courses: %s",
		p.Name, p.Age, FormatSalary(p.Salary), JoinNames(p.Courses))
}

// CourseProjection is a course joined with its student and instructor names.
type CourseProjection struct {
	ID          CourseID `json:"-" yaml:"-"`
	Number      int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Students    []string `json:"students" yaml:"students"`
	Instructors []string `json:"instructors" yaml:"instructors"`
}

// String renders the list line for the course.
func (p CourseProjection) String() string {
	return fmt.Sprintf("ID: %d, Name: %s, Students: %s, Instructors: %s",
		p.Number, p.Name, JoinNames(p.Students), JoinNames(p.Instructors))
}

// DepartmentProjection is a department joined with its course names.
type DepartmentProjection struct {
	ID      DepartmentID `json:"-" yaml:"-"`
	Name    string       `json:"name" yaml:"name"`
	Courses []string     `json:"courses" yaml:"courses"`
}

// String renders the list line for the department.
func (p DepartmentProjection) String() string {
	return fmt.Sprintf("Name: %s, Courses: %s", p.Name, JoinNames(p.Courses))
}

// JoinNames joins related names with ", ". An empty list yields "".
func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}

// FormatSalary prints a salary without trailing zeros, so 5000 renders as
// "5000" and 1234.5 as "1234.5".
func FormatSalary(salary float64) string {
	return strconv.FormatFloat(salary, 'f', -1, 64)
}

// ProjectStudents projects every student in insertion order.
func (r *Registry) ProjectStudents() []StudentProjection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]StudentProjection, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, StudentProjection{
			ID:         s.ID,
			Name:       s.Name,
			Age:        s.Age,
			RollNumber: s.RollNumber,
			Courses:    courseNames(r.courses, r.studentCourses[s.ID]),
		})
	}
	return out
}

// ProjectInstructors projects every instructor in insertion order.
func (r *Registry) ProjectInstructors() []InstructorProjection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]InstructorProjection, 0, len(r.instructors))
	for _, in := range r.instructors {
		out = append(out, InstructorProjection{
			ID:      in.ID,
			Name:    in.Name,
			Age:     in.Age,
			Salary:  in.Salary,
			Courses: courseNames(r.courses, r.instructorCourses[in.ID]),
		})
	}
	return out
}

// ProjectCourses projects every course in insertion order.
func (r *Registry) ProjectCourses() []CourseProjection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]CourseProjection, 0, len(r.courses))
	for _, c := range r.courses {
		students := make([]string, 0, len(r.courseStudents[c.ID]))
		for _, sid := range r.courseStudents[c.ID] {
			students = append(students, r.students[sid-1].Name)
		}
		instructors := make([]string, 0, len(r.courseInstructors[c.ID]))
		for _, iid := range r.courseInstructors[c.ID] {
			instructors = append(instructors, r.instructors[iid-1].Name)
		}
		out = append(out, CourseProjection{
			ID:          c.ID,
			Number:      c.Number,
			Name:        c.Name,
			Students:    students,
			Instructors: instructors,
		})
	}
	return out
}

// ProjectDepartments projects every department in insertion order.
func (r *Registry) ProjectDepartments() []DepartmentProjection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]DepartmentProjection, 0, len(r.departments))
	for _, d := range r.departments {
		out = append(out, DepartmentProjection{
			ID:      d.ID,
			Name:    d.Name,
			Courses: courseNames(r.courses, r.departmentCourses[d.ID]),
		})
	}
	return out
}

func courseNames(courses []Course, ids []CourseID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, courses[id-1].Name)
	}
	return names
}

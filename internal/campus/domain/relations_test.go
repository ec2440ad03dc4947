package campus

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustRegister(t *testing.T, reg *Registry, sid StudentID, cid CourseID) {
	t.Helper()
	_, err := reg.RegisterStudentForCourse(sid, cid)
	require.NoError(t, err)
}

func mustAssign(t *testing.T, reg *Registry, iid InstructorID, cid CourseID) {
	t.Helper()
	_, err := reg.AssignInstructorToCourse(iid, cid)
	require.NoError(t, err)
}

func mustAddToDepartment(t *testing.T, reg *Registry, did DepartmentID, cid CourseID) {
	t.Helper()
	_, err := reg.AddCourseToDepartment(did, cid)
	require.NoError(t, err)
}

func TestRegisterStudentForCourse_MutualLink(t *testing.T) {
	reg := NewRegistry()
	s := reg.CreateStudent("Ann", 20, 1)
	c := reg.CreateCourse(100, "Algorithms")

	link, err := reg.RegisterStudentForCourse(s.ID, c.ID)

	require.NoError(t, err)
	require.Equal(t, s, link.Entity)
	require.Equal(t, c, link.Course)
	require.Equal(t, []Course{c}, reg.StudentCourses(s.ID))
	require.Equal(t, []Student{s}, reg.CourseStudents(c.ID))
}

func TestRegisterStudentForCourse_Duplicates(t *testing.T) {
	reg := NewRegistry()
	s := reg.CreateStudent("Ann", 20, 1)
	c := reg.CreateCourse(100, "Algorithms")

	mustRegister(t, reg, s.ID, c.ID)
	mustRegister(t, reg, s.ID, c.ID)

	require.Equal(t, []Course{c, c}, reg.StudentCourses(s.ID))
	require.Equal(t, []Student{s, s}, reg.CourseStudents(c.ID))
}

func TestRegisterStudentForCourse_RegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	s := reg.CreateStudent("Ann", 20, 1)
	a := reg.CreateCourse(1, "A")
	b := reg.CreateCourse(2, "B")

	mustRegister(t, reg, s.ID, b.ID)
	mustRegister(t, reg, s.ID, a.ID)

	require.Equal(t, []Course{b, a}, reg.StudentCourses(s.ID))
}

func TestRegisterStudentForCourse_Unavailable(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *Registry)
	}{
		{"empty registry", func(r *Registry) {}},
		{"no courses", func(r *Registry) { r.CreateStudent("Ann", 20, 1) }},
		{"no students", func(r *Registry) { r.CreateCourse(100, "Algorithms") }},
		{"only instructors", func(r *Registry) {
			r.CreateInstructor("Grace", 45, 5000)
			r.CreateCourse(100, "Algorithms")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			tt.setup(reg)
			rev := reg.Revision()
			before := reg.ProjectCourses()

			require.False(t, reg.CanRegister())
			_, err := reg.RegisterStudentForCourse(1, 1)

			require.ErrorIs(t, err, ErrUnavailable)
			require.ErrorIs(t, err, ErrNoStudentsOrCourses)
			require.Equal(t, "no students or courses available: unavailable", err.Error())
			require.Equal(t, rev, reg.Revision(), "nothing changes")
			require.Equal(t, before, reg.ProjectCourses())
		})
	}
}

func TestRegisterStudentForCourse_UnknownHandle(t *testing.T) {
	reg := NewRegistry()
	s := reg.CreateStudent("Ann", 20, 1)
	c := reg.CreateCourse(100, "Algorithms")

	_, err := reg.RegisterStudentForCourse(s.ID, c.ID+1)
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, errors.Is(err, ErrUnavailable))

	_, err = reg.RegisterStudentForCourse(s.ID+5, c.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.Empty(t, reg.StudentCourses(s.ID), "failed calls leave both sides untouched")
	require.Empty(t, reg.CourseStudents(c.ID))
}

func TestAssignInstructorToCourse_MutualLink(t *testing.T) {
	reg := NewRegistry()
	in := reg.CreateInstructor("Grace", 45, 5000)
	c := reg.CreateCourse(100, "Algorithms")

	require.True(t, reg.CanAssign())
	mustAssign(t, reg, in.ID, c.ID)

	require.Equal(t, []Course{c}, reg.InstructorCourses(in.ID))
	require.Equal(t, []Instructor{in}, reg.CourseInstructors(c.ID))
	require.Empty(t, reg.CourseStudents(c.ID), "students side untouched")
}

func TestAssignInstructorToCourse_Unavailable(t *testing.T) {
	reg := NewRegistry()
	reg.CreateStudent("Ann", 20, 1)
	reg.CreateCourse(100, "Algorithms")

	require.False(t, reg.CanAssign())
	_, err := reg.AssignInstructorToCourse(1, 1)

	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, ErrNoInstructorsOrCourses)
	require.Empty(t, reg.CourseInstructors(1))
}

func TestAddCourseToDepartment_OneDirectional(t *testing.T) {
	reg := NewRegistry()
	d := reg.CreateDepartment("Computer Science")
	c := reg.CreateCourse(100, "Algorithms")
	coursesBefore := reg.ProjectCourses()

	require.True(t, reg.CanAddCourseToDepartment())
	mustAddToDepartment(t, reg, d.ID, c.ID)

	require.Equal(t, []Course{c}, reg.DepartmentCourses(d.ID))
	require.Equal(t, coursesBefore, reg.ProjectCourses(), "course side carries no department link")
}

func TestAddCourseToDepartment_Unavailable(t *testing.T) {
	reg := NewRegistry()
	reg.CreateCourse(100, "Algorithms")

	require.False(t, reg.CanAddCourseToDepartment())
	_, err := reg.AddCourseToDepartment(1, 1)
	require.ErrorIs(t, err, ErrNoDepartmentsOrCourses)
}

func TestRelations_ConcurrentRegistrationsStayPaired(t *testing.T) {
	reg := NewRegistry()
	const n = 20
	for i := range n {
		reg.CreateStudent(fmt.Sprintf("s%d", i), 20, i)
	}
	c := reg.CreateCourse(100, "Algorithms")

	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(id StudentID) {
			defer wg.Done()
			_, _ = reg.RegisterStudentForCourse(id, c.ID)
		}(StudentID(i))
	}
	wg.Wait()

	require.Len(t, reg.CourseStudents(c.ID), n)
	for s := range reg.Students() {
		require.Equal(t, []Course{c}, reg.StudentCourses(s.ID))
	}
}

func TestLinks_ReturnResolvedRecords(t *testing.T) {
	reg := NewRegistry()
	in := reg.CreateInstructor("Grace", 50, 9000)
	d := reg.CreateDepartment("CS")
	c := reg.CreateCourse(100, "Algorithms")

	assigned, err := reg.AssignInstructorToCourse(in.ID, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Grace, 50", assigned.Entity.DisplayName())
	require.Equal(t, "Algorithms", assigned.Course.Name)

	added, err := reg.AddCourseToDepartment(d.ID, c.ID)
	require.NoError(t, err)
	require.Equal(t, d, added.Entity)
	require.Equal(t, c, added.Course)

	failed, err := reg.AddCourseToDepartment(d.ID, c.ID+1)
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, failed)
}

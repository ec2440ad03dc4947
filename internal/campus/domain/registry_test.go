package campus

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NotNil(t, reg)
	for _, kind := range Kinds() {
		require.Zero(t, reg.Count(kind), "expected empty %s collection", kind)
	}
	require.Empty(t, slices.Collect(reg.Students()))
	require.Zero(t, reg.Revision())
}

func TestPersonInfo_DisplayName(t *testing.T) {
	p := PersonInfo{Name: "Ann", Age: 20}
	require.Equal(t, "Ann, 20", p.DisplayName())
}

func TestRegistry_CreateStudent(t *testing.T) {
	reg := NewRegistry()

	s := reg.CreateStudent("Ann", 20, 1)

	require.Equal(t, StudentID(1), s.ID)
	require.Equal(t, "Ann", s.Name)
	require.Equal(t, 20, s.Age)
	require.Equal(t, 1, s.RollNumber)
	require.Equal(t, "Ann, 20", s.DisplayName())
	require.Empty(t, reg.StudentCourses(s.ID), "new student has no courses")

	students := slices.Collect(reg.Students())
	require.Equal(t, []Student{s}, students)
}

func TestRegistry_CreateInstructor(t *testing.T) {
	reg := NewRegistry()

	in := reg.CreateInstructor("Grace", 45, 5000)

	require.Equal(t, InstructorID(1), in.ID)
	require.Equal(t, "Grace, 45", in.DisplayName())
	require.InDelta(t, 5000.0, in.Salary, 0)
	require.Empty(t, reg.InstructorCourses(in.ID))
	require.Equal(t, []Instructor{in}, slices.Collect(reg.Instructors()))
}

func TestRegistry_CreateCourse(t *testing.T) {
	reg := NewRegistry()

	c := reg.CreateCourse(100, "Algorithms")

	require.Equal(t, CourseID(1), c.ID)
	require.Equal(t, 100, c.Number)
	require.Equal(t, "Algorithms", c.DisplayName())
	require.Empty(t, reg.CourseStudents(c.ID))
	require.Empty(t, reg.CourseInstructors(c.ID))
}

func TestRegistry_CreateDepartment(t *testing.T) {
	reg := NewRegistry()

	d := reg.CreateDepartment("Computer Science")

	require.Equal(t, DepartmentID(1), d.ID)
	require.Equal(t, "Computer Science", d.DisplayName())
	require.Empty(t, reg.DepartmentCourses(d.ID))
	require.Equal(t, 1, reg.Count(KindDepartment))
}

func TestRegistry_InsertionOrder(t *testing.T) {
	reg := NewRegistry()
	reg.CreateCourse(3, "C")
	reg.CreateCourse(1, "A")
	reg.CreateCourse(2, "B")

	var names []string
	for c := range reg.Courses() {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"C", "A", "B"}, names)
}

func TestRegistry_DuplicateIdentifiersAllowed(t *testing.T) {
	reg := NewRegistry()

	a := reg.CreateStudent("Ann", 20, 7)
	b := reg.CreateStudent("Ann", 20, 7)
	c1 := reg.CreateCourse(100, "Algorithms")
	c2 := reg.CreateCourse(100, "Algorithms")

	require.NotEqual(t, a.ID, b.ID, "handles stay distinct for identical records")
	require.NotEqual(t, c1.ID, c2.ID)
	require.Equal(t, 2, reg.Count(KindStudent))
	require.Equal(t, 2, reg.Count(KindCourse))
}

func TestRegistry_SequenceIsRestartable(t *testing.T) {
	reg := NewRegistry()
	reg.CreateStudent("Ann", 20, 1)
	reg.CreateStudent("Bob", 21, 2)

	seq := reg.Students()
	first := slices.Collect(seq)
	second := slices.Collect(seq)

	require.Len(t, first, 2)
	require.Equal(t, first, second)
}

func TestRegistry_SequenceReflectsCallTime(t *testing.T) {
	reg := NewRegistry()
	reg.CreateStudent("Ann", 20, 1)

	before := reg.Students()
	reg.CreateStudent("Bob", 21, 2)

	require.Len(t, slices.Collect(before), 1, "earlier sequence keeps its view")
	require.Len(t, slices.Collect(reg.Students()), 2, "re-querying sees the addition")
}

func TestRegistry_SequenceEarlyBreak(t *testing.T) {
	reg := NewRegistry()
	for i := range 5 {
		reg.CreateDepartment(string(rune('A' + i)))
	}

	seen := 0
	for range reg.Departments() {
		seen++
		if seen == 2 {
			break
		}
	}
	require.Equal(t, 2, seen)
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()
	s := reg.CreateStudent("Ann", 20, 1)

	got, err := reg.Student(s.ID)
	require.NoError(t, err)
	require.Equal(t, s, got)

	_, err = reg.Student(0)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = reg.Student(2)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = reg.Course(1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_RevisionIncreasesOnMutation(t *testing.T) {
	reg := NewRegistry()

	r0 := reg.Revision()
	s := reg.CreateStudent("Ann", 20, 1)
	r1 := reg.Revision()
	c := reg.CreateCourse(100, "Algorithms")
	r2 := reg.Revision()
	mustRegister(t, reg, s.ID, c.ID)
	r3 := reg.Revision()

	require.Less(t, r0, r1)
	require.Less(t, r1, r2)
	require.Less(t, r2, r3)

	_ = reg.ProjectStudents()
	require.Equal(t, r3, reg.Revision(), "projections do not mutate")
}

func TestEntityKind_Names(t *testing.T) {
	tests := []struct {
		kind   EntityKind
		str    string
		plural string
	}{
		{KindStudent, "student", "Students"},
		{KindInstructor, "instructor", "Instructors"},
		{KindCourse, "course", "Courses"},
		{KindDepartment, "department", "Departments"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			require.Equal(t, tt.str, tt.kind.String())
			require.Equal(t, tt.plural, tt.kind.Plural())

			parsed, ok := ParseKind(tt.plural)
			require.True(t, ok)
			require.Equal(t, tt.kind, parsed)

			parsed, ok = ParseKind(tt.str)
			require.True(t, ok)
			require.Equal(t, tt.kind, parsed)
		})
	}

	_, ok := ParseKind("faculty")
	require.False(t, ok)
	require.Equal(t, "unknown", EntityKind(99).String())
}

func TestChange_String(t *testing.T) {
	c := Change{Kind: KindStudent, ID: 1, Label: "Ann, 20"}
	require.Equal(t, "student#1 Ann, 20", c.String())

	c.Related = "Algorithms"
	require.Equal(t, "student#1 Ann, 20 -> Algorithms", c.String())
}

package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	campus "github.com/zjrosen/campus/internal/campus/domain"
	"github.com/zjrosen/campus/internal/log"
	"github.com/zjrosen/campus/internal/presentation"
	"github.com/zjrosen/campus/internal/pubsub"
	"github.com/zjrosen/campus/internal/ui/form"
	"github.com/zjrosen/campus/internal/ui/markdown"
	"github.com/zjrosen/campus/internal/ui/picker"
	"github.com/zjrosen/campus/internal/ui/styles"
)

type action int

const (
	actionAddStudent action = iota
	actionAddInstructor
	actionAddCourse
	actionAddDepartment
	actionRegister
	actionAssign
	actionAddCourseToDepartment
	actionViewList
	actionExit
)

var menuLabels = []string{
	actionAddStudent:            "Add Student",
	actionAddInstructor:         "Add Instructor",
	actionAddCourse:             "Add Course",
	actionAddDepartment:         "Add Department",
	actionRegister:              "Register for Course",
	actionAssign:                "Assign Course",
	actionAddCourseToDepartment: "Add Course to Department",
	actionViewList:              "View List",
	actionExit:                  "Exit",
}

// Picker and form ids.
const (
	pickMenu             = "menu"
	pickRegisterStudent  = "register-student"
	pickRegisterCourse   = "register-course"
	pickAssignInstructor = "assign-instructor"
	pickAssignCourse     = "assign-course"
	pickDepartment       = "department"
	pickDepartmentCourse = "department-course"
	pickListKind         = "list-kind"

	formStudent    = "student"
	formInstructor = "instructor"
	formCourse     = "course"
	formDepartment = "department"
)

// Shown when a link action has nothing to link.
const (
	msgNoStudents    = "No students or courses available."
	msgNoInstructors = "No instructors or courses available."
	msgNoDepartments = "No departments or courses available."
)

const (
	minPickerWidth = 20
	maxPickerWidth = 40
)

func newMenu() picker.Model {
	options := make([]picker.Option, len(menuLabels))
	for i, label := range menuLabels {
		options[i] = picker.Option{Label: label, Value: i}
	}
	return picker.New(pickMenu, "Choose an option:", options)
}

func (m Model) runAction(a action) (tea.Model, tea.Cmd) {
	log.Debug(log.CatUI, "menu", "action", menuLabels[a])
	m.status = ""

	switch a {
	case actionAddStudent:
		return m.openForm(form.New(formStudent, "Add Student",
			form.Field{Label: "Enter student name:"},
			form.Field{Label: "Enter student age:", Validate: form.Int},
			form.Field{Label: "Enter student roll number:", Validate: form.Int},
		))
	case actionAddInstructor:
		return m.openForm(form.New(formInstructor, "Add Instructor",
			form.Field{Label: "Enter instructor name:"},
			form.Field{Label: "Enter instructor age:", Validate: form.Int},
			form.Field{Label: "Enter instructor salary:", Validate: form.Float},
		))
	case actionAddCourse:
		return m.openForm(form.New(formCourse, "Add Course",
			form.Field{Label: "Enter course ID:", Validate: form.Int},
			form.Field{Label: "Enter course name:"},
		))
	case actionAddDepartment:
		return m.openForm(form.New(formDepartment, "Add Department",
			form.Field{Label: "Enter department name:"},
		))
	case actionRegister:
		if !m.svc.CanRegister() {
			return m.setStatus(msgNoStudents, true), nil
		}
		return m.openPicker(picker.New(pickRegisterStudent, "Select a student:", m.studentOptions())), nil
	case actionAssign:
		if !m.svc.CanAssign() {
			return m.setStatus(msgNoInstructors, true), nil
		}
		return m.openPicker(picker.New(pickAssignInstructor, "Select an instructor:", m.instructorOptions())), nil
	case actionAddCourseToDepartment:
		if !m.svc.CanAddCourseToDepartment() {
			return m.setStatus(msgNoDepartments, true), nil
		}
		return m.openPicker(picker.New(pickDepartment, "Select a department:", m.departmentOptions())), nil
	case actionViewList:
		options := make([]picker.Option, 0, len(campus.Kinds()))
		for _, k := range campus.Kinds() {
			label := fmt.Sprintf("%s (%d)", k.Plural(), m.svc.Registry().Count(k))
			options = append(options, picker.Option{Label: label, Value: int(k), Color: styles.KindColor(k)})
		}
		return m.openPicker(picker.New(pickListKind, "Select list to view:", options)), nil
	case actionExit:
		log.Info(log.CatUI, "exit")
		m.quitting = true
		m.farewell = true
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) openForm(f form.Model) (tea.Model, tea.Cmd) {
	m.form = f
	m.screen = screenForm
	return m, f.Init()
}

func (m Model) openPicker(p picker.Model) Model {
	m.picker = p.SetBoxWidth(m.pickerWidth())
	m.screen = screenPicker
	return m
}

// pickerWidth fits picker boxes to the terminal. Zero, before the first
// resize, leaves the picker's own default.
func (m Model) pickerWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(min(m.width-4, maxPickerWidth), minPickerWidth)
}

func (m Model) handleChosen(msg picker.ChosenMsg) (tea.Model, tea.Cmd) {
	v := msg.Option.Value

	switch msg.PickerID {
	case pickMenu:
		return m.runAction(action(v))

	case pickRegisterStudent:
		m.pending = v
		return m.openPicker(picker.New(pickRegisterCourse, "Select a course:", m.courseOptions())), nil
	case pickRegisterCourse:
		err := m.svc.RegisterStudentForCourse(m.ctx, campus.StudentID(m.pending), campus.CourseID(v))
		return m.finishLink(err), nil

	case pickAssignInstructor:
		m.pending = v
		return m.openPicker(picker.New(pickAssignCourse, "Select a course:", m.courseOptions())), nil
	case pickAssignCourse:
		err := m.svc.AssignInstructorToCourse(m.ctx, campus.InstructorID(m.pending), campus.CourseID(v))
		return m.finishLink(err), nil

	case pickDepartment:
		m.pending = v
		return m.openPicker(picker.New(pickDepartmentCourse, "Select a course:", m.courseOptions())), nil
	case pickDepartmentCourse:
		err := m.svc.AddCourseToDepartment(m.ctx, campus.DepartmentID(m.pending), campus.CourseID(v))
		return m.finishLink(err), nil

	case pickListKind:
		kind := campus.EntityKind(v)
		m.listKind = kind
		m.list = m.renderList(kind)
		m.screen = screenList
		return m, nil
	}
	return m, nil
}

func (m Model) finishLink(err error) Model {
	m = m.toMenu()
	switch {
	case err == nil:
		return m
	case errors.Is(err, campus.ErrNoStudentsOrCourses):
		return m.setStatus(msgNoStudents, true)
	case errors.Is(err, campus.ErrNoInstructorsOrCourses):
		return m.setStatus(msgNoInstructors, true)
	case errors.Is(err, campus.ErrNoDepartmentsOrCourses):
		return m.setStatus(msgNoDepartments, true)
	default:
		return m.setStatus(err.Error(), true)
	}
}

func (m Model) handleSubmitted(msg form.SubmittedMsg) (tea.Model, tea.Cmd) {
	v := msg.Values
	// Values passed the form's validators, so the parse errors are unreachable.
	switch msg.FormID {
	case formStudent:
		age, _ := strconv.Atoi(v[1])
		roll, _ := strconv.Atoi(v[2])
		m.svc.CreateStudent(m.ctx, v[0], age, roll)
	case formInstructor:
		age, _ := strconv.Atoi(v[1])
		salary, _ := strconv.ParseFloat(v[2], 64)
		m.svc.CreateInstructor(m.ctx, v[0], age, salary)
	case formCourse:
		number, _ := strconv.Atoi(v[0])
		m.svc.CreateCourse(m.ctx, number, v[1])
	case formDepartment:
		m.svc.CreateDepartment(m.ctx, v[0])
	}
	return m.toMenu(), nil
}

func (m Model) studentOptions() []picker.Option {
	var out []picker.Option
	for s := range m.svc.Registry().Students() {
		out = append(out, picker.Option{Label: s.DisplayName(), Value: int(s.ID), Color: styles.StudentColor})
	}
	return out
}

func (m Model) instructorOptions() []picker.Option {
	var out []picker.Option
	for in := range m.svc.Registry().Instructors() {
		out = append(out, picker.Option{Label: in.DisplayName(), Value: int(in.ID), Color: styles.InstructorColor})
	}
	return out
}

func (m Model) courseOptions() []picker.Option {
	var out []picker.Option
	for c := range m.svc.Registry().Courses() {
		out = append(out, picker.Option{Label: c.DisplayName(), Value: int(c.ID), Color: styles.CourseColor})
	}
	return out
}

func (m Model) departmentOptions() []picker.Option {
	var out []picker.Option
	for d := range m.svc.Registry().Departments() {
		out = append(out, picker.Option{Label: d.DisplayName(), Value: int(d.ID), Color: styles.DepartmentColor})
	}
	return out
}

// renderList renders the list for kind, through glamour when ui.markdown is
// set and as wrapped colored lines otherwise.
func (m Model) renderList(kind campus.EntityKind) string {
	lists, err := m.svc.Project(m.ctx, kind)
	if err != nil {
		log.ErrorErr(log.CatProjection, "list failed", err, "kind", kind)
		return styles.ErrorTextStyle.Render(err.Error())
	}

	width := max(m.width-2, 20)
	if m.cfg.UI.Markdown {
		r, err := markdown.New(width, m.cfg.UI.MarkdownStyle)
		if err == nil {
			out, err := r.Render(presentation.Markdown(lists))
			if err == nil {
				return strings.TrimRight(out, "\n")
			}
		}
		log.Warn(log.CatUI, "markdown render failed, using plain list", "error", err)
	}

	color := styles.KindColor(kind)
	var b strings.Builder
	for _, s := range presentation.Sections(lists) {
		b.WriteString(styles.TitleStyle.Foreground(color).Render(s.Title))
		b.WriteString("\n")
		if len(s.Lines) == 0 {
			b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("No %s yet.", strings.ToLower(kind.Plural()))))
			b.WriteString("\n")
		}
		for _, line := range s.Lines {
			b.WriteString(styles.TitleStyle.UnsetBold().Foreground(color).Render(wordwrap.String(line, width)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// changeMessage turns a registry change into the toast text.
func changeMessage(ev pubsub.Event[campus.Change]) string {
	c := ev.Payload
	if ev.Type == pubsub.CreatedEvent {
		return c.Kind.Label() + " added successfully"
	}
	switch c.Kind {
	case campus.KindStudent:
		return "Student registered for course successfully"
	case campus.KindInstructor:
		return "Course assigned to instructor successfully"
	case campus.KindDepartment:
		return "Course added to department successfully"
	default:
		return c.String()
	}
}

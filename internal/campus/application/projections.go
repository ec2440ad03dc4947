package application

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/campus/internal/cachemanager"
	campus "github.com/zjrosen/campus/internal/campus/domain"
	"github.com/zjrosen/campus/internal/log"
	"github.com/zjrosen/campus/internal/tracing"
)

// Lists holds one projection per entity kind.
type Lists struct {
	Students    []campus.StudentProjection    `json:"students" yaml:"students"`
	Instructors []campus.InstructorProjection `json:"instructors" yaml:"instructors"`
	Courses     []campus.CourseProjection     `json:"courses" yaml:"courses"`
	Departments []campus.DepartmentProjection `json:"departments" yaml:"departments"`
}

// cacheKey ties a cached list to the registry revision it was built from.
func cacheKey(kind campus.EntityKind, revision uint64) string {
	return fmt.Sprintf("%s@%d", kind, revision)
}

// project serves a cached list. Returned slices are shared with the cache and
// must not be modified.
func project[V any](ctx context.Context, s *Service, kind campus.EntityKind, cache *cachemanager.ReadThroughCache[string, []V, *campus.Registry]) ([]V, error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanProject,
		attribute.String(tracing.AttrEntityKind, kind.String()))

	key := cacheKey(kind, s.registry.Revision())
	items, err := cache.Get(ctx, key, s.registry, s.ttl)
	if err != nil {
		tracing.End(span, err)
		return nil, fmt.Errorf("project %s: %w", kind.Plural(), err)
	}

	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(items)))
	tracing.End(span, nil)
	log.Debug(log.CatProjection, "projected", "kind", kind, "key", key, "count", len(items))
	return items, nil
}

// ProjectStudents lists every student with its course names.
func (s *Service) ProjectStudents(ctx context.Context) ([]campus.StudentProjection, error) {
	return project(ctx, s, campus.KindStudent, s.students)
}

// ProjectInstructors lists every instructor with its course names.
func (s *Service) ProjectInstructors(ctx context.Context) ([]campus.InstructorProjection, error) {
	return project(ctx, s, campus.KindInstructor, s.instructors)
}

// ProjectCourses lists every course with its student and instructor names.
func (s *Service) ProjectCourses(ctx context.Context) ([]campus.CourseProjection, error) {
	return project(ctx, s, campus.KindCourse, s.courses)
}

// ProjectDepartments lists every department with its course names.
func (s *Service) ProjectDepartments(ctx context.Context) ([]campus.DepartmentProjection, error) {
	return project(ctx, s, campus.KindDepartment, s.departments)
}

// ProjectAll builds every list.
func (s *Service) ProjectAll(ctx context.Context) (Lists, error) {
	var (
		out Lists
		err error
	)
	if out.Students, err = s.ProjectStudents(ctx); err != nil {
		return Lists{}, err
	}
	if out.Instructors, err = s.ProjectInstructors(ctx); err != nil {
		return Lists{}, err
	}
	if out.Courses, err = s.ProjectCourses(ctx); err != nil {
		return Lists{}, err
	}
	if out.Departments, err = s.ProjectDepartments(ctx); err != nil {
		return Lists{}, err
	}
	return out, nil
}

// Project returns the list for kind.
func (s *Service) Project(ctx context.Context, kind campus.EntityKind) (Lists, error) {
	var (
		out Lists
		err error
	)
	switch kind {
	case campus.KindStudent:
		out.Students, err = s.ProjectStudents(ctx)
	case campus.KindInstructor:
		out.Instructors, err = s.ProjectInstructors(ctx)
	case campus.KindCourse:
		out.Courses, err = s.ProjectCourses(ctx)
	case campus.KindDepartment:
		out.Departments, err = s.ProjectDepartments(ctx)
	default:
		err = fmt.Errorf("unknown entity kind %d", kind)
	}
	return out, err
}

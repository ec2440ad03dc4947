package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/campus/internal/cachemanager"
	campus "github.com/zjrosen/campus/internal/campus/domain"
	"github.com/zjrosen/campus/internal/log"
	"github.com/zjrosen/campus/internal/pubsub"
	"github.com/zjrosen/campus/internal/tracing"
)

// Service is the entry point for every registry mutation and list view.
type Service struct {
	registry *campus.Registry
	tracer   trace.Tracer
	broker   *pubsub.Broker[campus.Change]
	ttl      time.Duration

	students    *cachemanager.ReadThroughCache[string, []campus.StudentProjection, *campus.Registry]
	instructors *cachemanager.ReadThroughCache[string, []campus.InstructorProjection, *campus.Registry]
	courses     *cachemanager.ReadThroughCache[string, []campus.CourseProjection, *campus.Registry]
	departments *cachemanager.ReadThroughCache[string, []campus.DepartmentProjection, *campus.Registry]
}

type options struct {
	tracer    trace.Tracer
	ttl       time.Duration
	skipCache bool
}

// Option configures a Service.
type Option func(*options)

// WithTracer sets the tracer used for operation spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithCacheTTL sets how long projections stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithoutCache makes every projection call read the registry directly.
func WithoutCache() Option {
	return func(o *options) { o.skipCache = true }
}

// NewService wraps registry. A nil registry gets a fresh one. A TTL of zero
// or less disables the projection cache.
func NewService(registry *campus.Registry, opts ...Option) *Service {
	o := options{
		tracer: noop.NewTracerProvider().Tracer("noop"),
		ttl:    cachemanager.DefaultExpiration,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ttl <= 0 {
		o.skipCache = true
	}
	if registry == nil {
		registry = campus.NewRegistry()
	}

	return &Service{
		registry: registry,
		tracer:   o.tracer,
		broker:   pubsub.NewBroker[campus.Change](),
		ttl:      o.ttl,
		students: cachemanager.NewReadThroughCache(
			newCache[[]campus.StudentProjection]("students", o.ttl),
			func(_ context.Context, r *campus.Registry) ([]campus.StudentProjection, error) {
				return r.ProjectStudents(), nil
			}, o.skipCache),
		instructors: cachemanager.NewReadThroughCache(
			newCache[[]campus.InstructorProjection]("instructors", o.ttl),
			func(_ context.Context, r *campus.Registry) ([]campus.InstructorProjection, error) {
				return r.ProjectInstructors(), nil
			}, o.skipCache),
		courses: cachemanager.NewReadThroughCache(
			newCache[[]campus.CourseProjection]("courses", o.ttl),
			func(_ context.Context, r *campus.Registry) ([]campus.CourseProjection, error) {
				return r.ProjectCourses(), nil
			}, o.skipCache),
		departments: cachemanager.NewReadThroughCache(
			newCache[[]campus.DepartmentProjection]("departments", o.ttl),
			func(_ context.Context, r *campus.Registry) ([]campus.DepartmentProjection, error) {
				return r.ProjectDepartments(), nil
			}, o.skipCache),
	}
}

func newCache[V any](useCase string, ttl time.Duration) cachemanager.CacheManager[string, V] {
	return cachemanager.NewInMemoryCacheManager[string, V](useCase, ttl, cachemanager.DefaultCleanupInterval)
}

// Registry exposes read-only access for selection lists.
func (s *Service) Registry() campus.RegistryProvider {
	return s.registry
}

// Broker returns the change broker. Subscribers receive a CreatedEvent for
// every new entity and a LinkedEvent for every relationship.
func (s *Service) Broker() *pubsub.Broker[campus.Change] {
	return s.broker
}

// Close shuts down the change broker.
func (s *Service) Close() {
	log.Debug(log.CatRegistry, "closing change broker",
		"subscribers", s.broker.Subscribers(), "dropped", s.broker.Dropped())
	s.broker.Close()
}

// CreateStudent adds a student.
func (s *Service) CreateStudent(ctx context.Context, name string, age, rollNumber int) campus.Student {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanCreateStudent,
		attribute.String(tracing.AttrEntityKind, campus.KindStudent.String()),
		attribute.String(tracing.AttrEntityName, name))
	defer tracing.End(span, nil)

	st := s.registry.CreateStudent(name, age, rollNumber)
	span.SetAttributes(attribute.Int(tracing.AttrEntityID, int(st.ID)))
	s.created(ctx, campus.Change{Kind: campus.KindStudent, ID: int(st.ID), Label: st.DisplayName()})
	return st
}

// CreateInstructor adds an instructor.
func (s *Service) CreateInstructor(ctx context.Context, name string, age int, salary float64) campus.Instructor {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanCreateInstructor,
		attribute.String(tracing.AttrEntityKind, campus.KindInstructor.String()),
		attribute.String(tracing.AttrEntityName, name))
	defer tracing.End(span, nil)

	in := s.registry.CreateInstructor(name, age, salary)
	span.SetAttributes(attribute.Int(tracing.AttrEntityID, int(in.ID)))
	s.created(ctx, campus.Change{Kind: campus.KindInstructor, ID: int(in.ID), Label: in.DisplayName()})
	return in
}

// CreateCourse adds a course. number is the user-facing course id.
func (s *Service) CreateCourse(ctx context.Context, number int, name string) campus.Course {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanCreateCourse,
		attribute.String(tracing.AttrEntityKind, campus.KindCourse.String()),
		attribute.String(tracing.AttrEntityName, name),
		attribute.Int(tracing.AttrCourseID, number))
	defer tracing.End(span, nil)

	c := s.registry.CreateCourse(number, name)
	span.SetAttributes(attribute.Int(tracing.AttrEntityID, int(c.ID)))
	s.created(ctx, campus.Change{Kind: campus.KindCourse, ID: int(c.ID), Label: c.DisplayName()})
	return c
}

// CreateDepartment adds a department.
func (s *Service) CreateDepartment(ctx context.Context, name string) campus.Department {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanCreateDepartment,
		attribute.String(tracing.AttrEntityKind, campus.KindDepartment.String()),
		attribute.String(tracing.AttrEntityName, name))
	defer tracing.End(span, nil)

	d := s.registry.CreateDepartment(name)
	span.SetAttributes(attribute.Int(tracing.AttrEntityID, int(d.ID)))
	s.created(ctx, campus.Change{Kind: campus.KindDepartment, ID: int(d.ID), Label: d.DisplayName()})
	return d
}

// CanRegister reports whether a student can be registered for a course.
func (s *Service) CanRegister() bool { return s.registry.CanRegister() }

// CanAssign reports whether an instructor can be assigned to a course.
func (s *Service) CanAssign() bool { return s.registry.CanAssign() }

// CanAddCourseToDepartment reports whether a course can be added to a
// department.
func (s *Service) CanAddCourseToDepartment() bool { return s.registry.CanAddCourseToDepartment() }

// RegisterStudentForCourse links a student and a course.
func (s *Service) RegisterStudentForCourse(ctx context.Context, sid campus.StudentID, cid campus.CourseID) (err error) {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanRegisterStudent,
		attribute.Int(tracing.AttrEntityID, int(sid)),
		attribute.Int(tracing.AttrCourseID, int(cid)))
	defer func() { tracing.End(span, err) }()

	link, err := s.registry.RegisterStudentForCourse(sid, cid)
	if err != nil {
		log.Warn(log.CatRelations, "register failed", "student", sid, "course", cid, "error", err)
		return fmt.Errorf("register student: %w", err)
	}

	s.linked(ctx, campus.Change{Kind: campus.KindStudent, ID: int(sid), Label: link.Entity.DisplayName(), Related: link.Course.Name})
	return nil
}

// AssignInstructorToCourse links an instructor and a course.
func (s *Service) AssignInstructorToCourse(ctx context.Context, iid campus.InstructorID, cid campus.CourseID) (err error) {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanAssignInstructor,
		attribute.Int(tracing.AttrEntityID, int(iid)),
		attribute.Int(tracing.AttrCourseID, int(cid)))
	defer func() { tracing.End(span, err) }()

	link, err := s.registry.AssignInstructorToCourse(iid, cid)
	if err != nil {
		log.Warn(log.CatRelations, "assign failed", "instructor", iid, "course", cid, "error", err)
		return fmt.Errorf("assign instructor: %w", err)
	}

	s.linked(ctx, campus.Change{Kind: campus.KindInstructor, ID: int(iid), Label: link.Entity.DisplayName(), Related: link.Course.Name})
	return nil
}

// AddCourseToDepartment records a course under a department.
func (s *Service) AddCourseToDepartment(ctx context.Context, did campus.DepartmentID, cid campus.CourseID) (err error) {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanAddCourseDepartment,
		attribute.Int(tracing.AttrEntityID, int(did)),
		attribute.Int(tracing.AttrCourseID, int(cid)))
	defer func() { tracing.End(span, err) }()

	link, err := s.registry.AddCourseToDepartment(did, cid)
	if err != nil {
		log.Warn(log.CatRelations, "add course to department failed", "department", did, "course", cid, "error", err)
		return fmt.Errorf("add course to department: %w", err)
	}

	s.linked(ctx, campus.Change{Kind: campus.KindDepartment, ID: int(did), Label: link.Entity.DisplayName(), Related: link.Course.Name})
	return nil
}

func (s *Service) created(ctx context.Context, c campus.Change) {
	s.invalidate(ctx)
	log.Info(log.CatRegistry, "created", "change", c)
	s.broker.Publish(pubsub.CreatedEvent, c)
}

func (s *Service) linked(ctx context.Context, c campus.Change) {
	s.invalidate(ctx)
	log.Info(log.CatRelations, "linked", "change", c)
	s.broker.Publish(pubsub.LinkedEvent, c)
}

// invalidate drops every cached projection. Entries are keyed by revision, so
// after a mutation none of them can be read again.
func (s *Service) invalidate(ctx context.Context) {
	dropped := s.students.Len() + s.instructors.Len() + s.courses.Len() + s.departments.Len()
	if dropped == 0 {
		return
	}
	err := errors.Join(
		s.students.Flush(ctx),
		s.instructors.Flush(ctx),
		s.courses.Flush(ctx),
		s.departments.Flush(ctx),
	)
	if err != nil {
		log.ErrorErr(log.CatCache, "flushing projections failed", err)
		return
	}
	log.Debug(log.CatCache, "projections invalidated", "dropped", dropped)
}

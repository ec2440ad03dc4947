package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names, one per registry operation.
const (
	SpanCreateStudent       = "campus.create_student"
	SpanCreateInstructor    = "campus.create_instructor"
	SpanCreateCourse        = "campus.create_course"
	SpanCreateDepartment    = "campus.create_department"
	SpanRegisterStudent     = "campus.register_student"
	SpanAssignInstructor    = "campus.assign_instructor"
	SpanAddCourseDepartment = "campus.add_course_to_department"
	SpanProject             = "campus.project"
)

// Span attribute keys.
const (
	AttrSessionID    = "session.id"
	AttrEntityKind   = "entity.kind"
	AttrEntityID     = "entity.id"
	AttrEntityName   = "entity.name"
	AttrCourseID     = "course.id"
	AttrCacheHit     = "cache.hit"
	AttrResultCount  = "result.count"
	AttrErrorMessage = "error.message"
)

// Start opens an internal span named name with the given attributes.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

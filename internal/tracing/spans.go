package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Span attribute keys.
const (
	AttrStorePath      = "store.path"
	AttrStoreFormat    = "store.format"
	AttrRegistryModels = "registry.models"
	AttrDBPath         = "db.path"
	AttrCommandName    = "command.name"

	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanStoreSave = "store.save"
	SpanStoreLoad = "store.load"
	SpanDBExport  = "db.export"
	SpanDBImport  = "db.import"

	SpanPrefixCommand = "command."
)

// OrNoop returns t, or a no-op tracer when t is nil.
func OrNoop(t trace.Tracer) trace.Tracer {
	if t == nil {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return t
}

// Start opens an internal span with the given attributes. A nil tracer
// yields a no-op span.
func Start(ctx context.Context, t trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return OrNoop(t).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// Finish records the outcome of span and ends it.
func Finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

package measure

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/measure"

func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// startDetect opens a span around one detector run.
func (m *Measure) startDetect(t Trigger) trace.Span {
	_, span := m.opts.Tracer.Start(context.Background(), "measure.detect",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("measure.trigger", t.String())),
	)
	return span
}

// endDetect records the outcome on span and ends it.
func endDetect(span trace.Span, o Outcome, r Rect, err error) {
	span.SetAttributes(attribute.String("measure.outcome", string(o)))
	if o == OutcomeJump || o == OutcomeSet {
		span.SetAttributes(
			attribute.Float64("measure.width", r.Width),
			attribute.Float64("measure.height", r.Height),
			attribute.Float64("measure.x", r.X),
			attribute.Float64("measure.y", r.Y),
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

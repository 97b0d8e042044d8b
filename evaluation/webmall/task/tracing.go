package task

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	traceScope = "webmall.task"

	traceSpanSetup    = "webmall.task.setup"
	traceSpanValidate = "webmall.task.validate"

	traceAttrTaskID  = "webmall.task_id"
	traceAttrDelta   = "webmall.score_delta"
	traceAttrDone    = "webmall.done"
	traceAttrReached = "webmall.reached"
	traceAttrWrong   = "webmall.wrong_solutions"
	traceAttrStatus  = "webmall.status"
)

func startSpan(ctx context.Context, name, taskID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	spanAttrs = append(spanAttrs, attribute.String(traceAttrTaskID, taskID))
	spanAttrs = append(spanAttrs, attrs...)
	return otel.Tracer(traceScope).Start(ctx, name, trace.WithAttributes(spanAttrs...))
}

func markSpanResult(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(traceAttrStatus, "error"))
		return
	}
	span.SetStatus(codes.Ok, "")
	span.SetAttributes(attribute.String(traceAttrStatus, "success"))
}

func stepAttributes(result StepResult) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64(traceAttrDelta, result.Score),
		attribute.Bool(traceAttrDone, result.Done),
		attribute.Int(traceAttrReached, len(result.Detail.ReachedDuringThisStep)),
		attribute.Int(traceAttrWrong, len(result.Detail.WrongSolutions)),
	}
}

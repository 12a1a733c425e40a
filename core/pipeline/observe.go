package pipeline

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/parse"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/utils"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/providers/observability"
)

// run carries the observation state of one pipeline call. provider is nil
// when observation is disabled, and every method is then a no-op apart from
// timing.
type run struct {
	ctx       context.Context
	provider  observability.Provider
	span      observability.Span
	timer     *utils.Timer
	requestID string
	kind      string
}

func (p *Pipeline) start(ctx context.Context, spanName, kind, raw string) *run {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &run{
		ctx:       ctx,
		provider:  p.observer,
		timer:     utils.NewTimer(),
		requestID: uuid.NewString(),
		kind:      kind,
	}
	if r.provider == nil {
		r.provider = observability.ObserverFromContext(ctx)
	}
	if r.provider == nil {
		return r
	}

	r.ctx, r.span = r.provider.StartSpan(ctx, spanName,
		observability.String(observability.AttrRequestID, r.requestID),
		observability.String(observability.AttrKind, kind),
		observability.Int(observability.AttrInputLength, len(raw)),
	)
	r.ctx = observability.ContextWithSpan(r.ctx, r.span)
	r.ctx = observability.ContextWithObserver(r.ctx, r.provider)

	r.provider.Debug(r.ctx, "pipeline started",
		observability.String(observability.AttrRequestID, r.requestID),
		observability.String(observability.AttrKind, kind),
		observability.String(observability.AttrInputPreview, p.preview(raw)),
	)
	return r
}

func (r *run) event(name string, attrs ...observability.Attribute) {
	if r.span != nil {
		r.span.AddEvent(name, attrs...)
	}
}

func (r *run) count(metric string, n int) {
	if r.provider == nil || n == 0 {
		return
	}
	r.provider.Counter(metric).Add(r.ctx, int64(n), observability.String(observability.AttrKind, r.kind))
}

// extracted reports the extraction stage. Failed attempts are logged at
// debug level only: falling through the cascade is expected.
func (r *run) extracted(outcome parse.Outcome, n int) {
	r.event(observability.EventExtract,
		observability.String(observability.AttrExtractStrategy, string(outcome.Strategy)),
		observability.Int(observability.AttrExtractFailures, len(outcome.Failures)),
		observability.Int(observability.AttrRecordsExtracted, n),
	)
	if r.provider == nil || len(outcome.Failures) == 0 {
		return
	}
	r.provider.Debug(r.ctx, "extraction attempts failed",
		observability.String(observability.AttrRequestID, r.requestID),
		observability.Error(errors.Join(outcome.Failures...)),
	)
}

// finish records the duration, reports an empty result as a warning, and
// ends the span. An empty result is a valid outcome, so the span status
// stays OK.
func (r *run) finish(recovered int, attrs ...observability.Attribute) {
	duration := r.timer.Stop()
	if r.provider == nil {
		return
	}

	kind := observability.String(observability.AttrKind, r.kind)
	r.provider.Histogram(observability.MetricDuration).Record(r.ctx, duration.Seconds(), kind)

	logAttrs := append([]observability.Attribute{
		observability.String(observability.AttrRequestID, r.requestID),
		observability.Duration(observability.AttrDuration, duration),
	}, attrs...)

	status := "recovered"
	if recovered == 0 {
		status = "empty result"
		r.provider.Counter(observability.MetricEmptyResult).Add(r.ctx, 1, kind)
		r.provider.Warn(r.ctx, "nothing usable recovered from model output", logAttrs...)
	} else {
		r.provider.Info(r.ctx, "model output recovered", logAttrs...)
	}

	if r.span != nil {
		r.span.SetAttributes(attrs...)
		r.span.SetStatus(observability.StatusOK, status)
		r.span.End()
	}
}

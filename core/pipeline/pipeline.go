// Package pipeline composes the recovery stages into one call per model
// response: sanitize, extract, then normalize.
//
// A [Pipeline] is safe for concurrent use. Each call gets a request ID that
// is returned in the result and attached to every log line; when an
// observer is configured (or found in the context) each call opens a span
// with one event per stage and records counters and a duration histogram.
//
//	p := pipeline.New(pipeline.WithObserver(slogobs.New()))
//	res := p.Questions(ctx, modelOutput)
//	if res.IsEmpty() {
//	    // soft failure: offer to regenerate
//	}
package pipeline

import (
	"context"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/lessonplan"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/normalize"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/parse"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/question"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/sanitize"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/utils"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/providers/observability"
)

// Pipeline recovers questions and lesson plans from raw model output.
type Pipeline struct {
	observer   observability.Provider
	normalizer *normalize.Normalizer
	previewLen int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver sets the observability provider. Without one, the provider
// is taken from the call context, if any.
func WithObserver(observer observability.Provider) Option {
	return func(p *Pipeline) {
		p.observer = observer
	}
}

// WithNormalizer replaces the default question normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(p *Pipeline) {
		p.normalizer = n
	}
}

// WithPreviewLength sets how many bytes of raw model output are logged.
func WithPreviewLength(n int) Option {
	return func(p *Pipeline) {
		p.previewLen = n
	}
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		normalizer: normalize.New(),
		previewLen: 200,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.normalizer == nil {
		p.normalizer = normalize.New()
	}
	return p
}

// Result is the outcome of one question-recovery call.
type Result struct {
	RequestID string              `json:"requestId"`
	Questions []question.Question `json:"questions"`
	// Strategy is the extraction attempt that succeeded, or "none".
	Strategy parse.Strategy `json:"strategy"`
	// Extracted counts raw records; Dropped counts those without a
	// question or an answer.
	Extracted int `json:"extracted"`
	Dropped   int `json:"dropped"`
}

// IsEmpty reports whether nothing usable was recovered. Callers should
// treat it as a soft failure.
func (r Result) IsEmpty() bool {
	return len(r.Questions) == 0
}

// LessonPlanResult is the outcome of one lesson-plan call.
type LessonPlanResult struct {
	RequestID string                `json:"requestId"`
	Plan      lessonplan.LessonPlan `json:"plan"`
	Strategy  parse.Strategy        `json:"strategy"`
}

// Questions recovers canonical questions from raw model output. It never
// fails; the Questions slice is empty, not nil, when nothing was recovered.
func (p *Pipeline) Questions(ctx context.Context, raw string) Result {
	r := p.start(ctx, observability.SpanPipelineQuestions, "questions", raw)

	sanitized := sanitize.Sanitize(raw)
	r.event(observability.EventSanitize, observability.Int(observability.AttrSanitizedLength, len(sanitized)))

	records, outcome := parse.ExtractWithOutcome(sanitized)
	r.extracted(outcome, len(records))

	questions := p.normalizer.Normalize(records)
	res := Result{
		RequestID: r.requestID,
		Questions: questions,
		Strategy:  outcome.Strategy,
		Extracted: len(records),
		Dropped:   len(records) - len(questions),
	}
	r.event(observability.EventNormalize,
		observability.Int(observability.AttrQuestionsRecovered, len(questions)),
		observability.Int(observability.AttrRecordsDropped, res.Dropped),
	)
	r.count(observability.MetricRecordsExtracted, res.Extracted)
	r.count(observability.MetricRecordsDropped, res.Dropped)
	r.count(observability.MetricQuestionsRecovered, len(questions))

	r.finish(len(questions),
		observability.String(observability.AttrExtractStrategy, string(res.Strategy)),
		observability.Int(observability.AttrQuestionsRecovered, len(questions)),
		observability.Int(observability.AttrRecordsDropped, res.Dropped),
	)
	return res
}

// LessonPlan recovers lesson-plan sections from raw model output. It never
// fails; an unusable response yields an empty plan.
func (p *Pipeline) LessonPlan(ctx context.Context, raw string) LessonPlanResult {
	r := p.start(ctx, observability.SpanPipelineLessonPlan, "lessonplan", raw)

	sanitized := sanitize.Sanitize(raw)
	r.event(observability.EventSanitize, observability.Int(observability.AttrSanitizedLength, len(sanitized)))

	plan, outcome := lessonplan.ExtractWithOutcome(sanitized)
	r.extracted(outcome, len(plan.Sections))

	r.finish(len(plan.Sections),
		observability.String(observability.AttrExtractStrategy, string(outcome.Strategy)),
		observability.Int(observability.AttrSectionsRecovered, len(plan.Sections)),
	)
	return LessonPlanResult{
		RequestID: r.requestID,
		Plan:      plan,
		Strategy:  outcome.Strategy,
	}
}

// Questions runs a default Pipeline without observation.
func Questions(raw string) []question.Question {
	return New().Questions(context.Background(), raw).Questions
}

func (p *Pipeline) preview(raw string) string {
	return utils.TruncateString(raw, p.previewLen)
}

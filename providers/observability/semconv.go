package observability

// Attribute keys recorded by the pipeline.
const (
	// AttrRequestID identifies one pipeline call.
	AttrRequestID = "request.id"

	// AttrInputLength is the length in bytes of the raw model output.
	AttrInputLength = "input.length"

	// AttrInputPreview is a truncated copy of the raw model output.
	AttrInputPreview = "input.preview"

	// AttrSanitizedLength is the length in bytes after sanitization.
	AttrSanitizedLength = "sanitized.length"

	// AttrExtractStrategy is the extraction attempt that succeeded.
	AttrExtractStrategy = "extract.strategy"

	// AttrExtractFailures is the number of extraction attempts that failed.
	AttrExtractFailures = "extract.failures"

	// AttrRecordsExtracted is the number of raw records recovered.
	AttrRecordsExtracted = "records.extracted"

	// AttrRecordsDropped is the number of raw records the normalizer rejected.
	AttrRecordsDropped = "records.dropped"

	// AttrQuestionsRecovered is the number of canonical questions returned.
	AttrQuestionsRecovered = "questions.recovered"

	// AttrSectionsRecovered is the number of lesson-plan sections returned.
	AttrSectionsRecovered = "sections.recovered"

	// AttrKind is the kind of output processed: "questions" or "lessonplan".
	AttrKind = "kind"

	// AttrGrade and AttrBloomLevel carry the taxonomy labels of a CLI
	// request.
	AttrGrade      = "taxonomy.grade"
	AttrBloomLevel = "taxonomy.bloom_level"
)

// General attributes.
const (
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// Span names.
const (
	SpanPipelineQuestions  = "pipeline.questions"
	SpanPipelineLessonPlan = "pipeline.lessonplan"
)

// Span event names, one per pipeline stage.
const (
	EventSanitize  = "sanitize"
	EventExtract   = "extract"
	EventNormalize = "normalize"
)

// Metric names.
const (
	MetricRecordsExtracted   = "qgen.pipeline.records.extracted"
	MetricRecordsDropped     = "qgen.pipeline.records.dropped"
	MetricQuestionsRecovered = "qgen.pipeline.questions.recovered"
	MetricEmptyResult        = "qgen.pipeline.empty_result"
	MetricDuration           = "qgen.pipeline.duration"
)

package application

// Outcome classifies how a mutating operation ended. Every failure is
// recovered at the component boundary; nothing here aborts the request.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeValidationFailed
	OutcomePersistenceFailed
	OutcomeNotFound
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationFailed:
		return "validation_failed"
	case OutcomePersistenceFailed:
		return "persistence_failed"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// FieldError is one (field, reason) pair from input validation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Result carries the outcome plus any field-level validation detail. The
// transport layer decides how much of it to surface; the ephemeral status
// message stays generic either way.
type Result struct {
	Outcome Outcome
	Fields  []FieldError
}

func succeeded() Result       { return Result{Outcome: OutcomeSuccess} }
func failed(o Outcome) Result { return Result{Outcome: o} }

func invalid(fields []FieldError) Result {
	return Result{Outcome: OutcomeValidationFailed, Fields: fields}
}

// OK reports whether the operation completed its mutation.
func (r Result) OK() bool { return r.Outcome == OutcomeSuccess }

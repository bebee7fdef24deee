package types

import "errors"

// Error kinds surfaced by the engine. All of them are fatal: the engine
// fails fast with no retry and no partial-result recovery. Callers match
// with errors.Is.
var (
	// ErrSchema covers duplicate field names and unknown columns in a
	// projection, raised at plan/schema construction time.
	ErrSchema = errors.New("schema error")

	// ErrColumnNotFound is a name/index resolution miss during field
	// resolution or planner binding.
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnsupportedOperation means the planner has no lowering for a
	// plan or expression variant. It signals an incomplete
	// implementation, not a data error.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrType covers non-boolean filter predicates and incompatible
	// operand kinds for an operator.
	ErrType = errors.New("type error")

	// ErrSizeMismatch means two columns in one evaluation or batch
	// disagree in length.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrCast is an unsupported or undefined source-to-target cast.
	ErrCast = errors.New("cast error")

	// ErrIndexOutOfRange is a row access outside [0, length).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrArityMismatch means a projection's expression count does not
	// match its output schema.
	ErrArityMismatch = errors.New("arity mismatch")
)

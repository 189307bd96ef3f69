package sat

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure that can cross the solver boundary.
type ErrorKind int

const (
	// InvalidParameter marks malformed call-level input: non-positive counts, an absent or
	// empty buffer, a negative clause length or a literal outside [1, numVars].
	InvalidParameter ErrorKind = iota + 1
	// OutOfBounds marks a read that would land at or past the declared buffer capacity.
	OutOfBounds
	// ResourceLimit marks an engine that cannot take more variables or a longer clause.
	ResourceLimit
	// InternalError marks any other engine failure, including an indeterminate result.
	InternalError
)

func (kind ErrorKind) String() string {
	switch kind {
	case InvalidParameter:
		return "InvalidParameter"
	case OutOfBounds:
		return "OutOfBounds"
	case ResourceLimit:
		return "ResourceLimit"
	case InternalError:
		return "InternalError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
}

// SolverError is the only error type returned by a Bridge call.
type SolverError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Sentinels to be matched with errors.Is; they compare by Kind only.
var (
	ErrInvalidParameter = &SolverError{Kind: InvalidParameter}
	ErrOutOfBounds      = &SolverError{Kind: OutOfBounds}
	ErrResourceLimit    = &SolverError{Kind: ResourceLimit}
	ErrInternal         = &SolverError{Kind: InternalError}
)

func (e *SolverError) Error() string {
	message := e.Message
	if message == "" {
		message = "solver failure"
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v: %v", e.Kind, message, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, message)
}

func (e *SolverError) Unwrap() error {
	return e.Err
}

func (e *SolverError) Is(target error) bool {
	other, ok := target.(*SolverError)
	return ok && other.Kind == e.Kind
}

// Retryable reports whether the same call may succeed with a smaller instance.
func (e *SolverError) Retryable() bool {
	return e.Kind == ResourceLimit
}

// KindOf extracts the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var solverErr *SolverError
	if errors.As(err, &solverErr) {
		return solverErr.Kind, true
	}
	return 0, false
}

func invalidParameterf(format string, args ...any) *SolverError {
	return &SolverError{Kind: InvalidParameter, Message: fmt.Sprintf(format, args...)}
}

func outOfBoundsf(format string, args ...any) *SolverError {
	return &SolverError{Kind: OutOfBounds, Message: fmt.Sprintf(format, args...)}
}

func internalError(message string, err error) *SolverError {
	return &SolverError{Kind: InternalError, Message: message, Err: err}
}

// FailureReason enumerates the ways an engine can refuse work.
type FailureReason int

const (
	TooManyVariables FailureReason = iota + 1
	TooLongClause
	EngineFault
)

func (reason FailureReason) String() string {
	switch reason {
	case TooManyVariables:
		return "too many variables"
	case TooLongClause:
		return "too long clause"
	default:
		return "engine fault"
	}
}

// EngineFailure is what engines return instead of their own error types, so that the adapter
// can map them onto an ErrorKind without knowing the engine.
type EngineFailure struct {
	Reason FailureReason
	Err    error
}

func (f *EngineFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%v: %v", f.Reason, f.Err)
	}
	return f.Reason.String()
}

func (f *EngineFailure) Unwrap() error {
	return f.Err
}

// classify converts an engine error raised at one pipeline stage. Only the reason that is
// meaningful for that stage becomes a ResourceLimit; everything else is internal.
func classify(stage string, err error, limit FailureReason) *SolverError {
	var failure *EngineFailure
	if errors.As(err, &failure) && failure.Reason == limit {
		return &SolverError{Kind: ResourceLimit, Message: stage, Err: err}
	}
	return internalError(stage, err)
}

package optimization

import "fmt"

// Error represents an optimization error with context
// that can be wrapped with additional information.
type Error struct {
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
	// Component is the component where the error occurred.
	Component string
	// Err is the underlying error that triggered this one, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var prefix string
	switch {
	case e.Component != "" && e.Op != "":
		prefix = fmt.Sprintf("%s: %s", e.Component, e.Op)
	case e.Component != "":
		prefix = e.Component
	case e.Op != "":
		prefix = e.Op
	}

	if e.Err != nil {
		if prefix != "" {
			return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	if prefix != "" {
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithOperation adds operation context to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// WithComponent adds component context to the error.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// NewError creates a new optimization error with the given message.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// WrapError wraps an existing error with additional context.
// If err is nil, WrapError returns nil.
func WrapError(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// InvalidObjectiveError reports an objective string that matches none
// of the known categories. Policy: callers degrade to the Composite
// objective rather than aborting the call.
type InvalidObjectiveError struct {
	Objective string
}

func (e *InvalidObjectiveError) Error() string {
	return fmt.Sprintf("unknown optimization objective %q", e.Objective)
}

// InvalidBaselineError reports a baseline objective value <= 0, which
// makes the improvement percentage undefined. It carries the objective
// and parameter map that produced the baseline for diagnosability.
type InvalidBaselineError struct {
	Objective  Objective
	Baseline   float64
	Parameters ParameterMap
}

func (e *InvalidBaselineError) Error() string {
	return fmt.Sprintf("baseline value %g for objective %q is not positive", e.Baseline, e.Objective)
}

// OutOfBoundsParameterError reports a parameter value that cannot be
// coerced to numeric for a field the search would perturb. The search
// resolves it by excluding the parameter rather than failing the call.
type OutOfBoundsParameterError struct {
	Name  string
	Value any
}

func (e *OutOfBoundsParameterError) Error() string {
	return fmt.Sprintf("parameter %q has non-numeric value %v", e.Name, e.Value)
}

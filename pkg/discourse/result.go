package discourse

// Result is the envelope returned by every client operation.
//
// Success and Errors are independent: a successful result may still carry
// warnings in Errors, so callers should inspect Errors even when Success is
// true. Data holds the zero value of T on failure.
type Result[T any] struct {
	Success bool     `json:"success" yaml:"success"`
	Errors  []string `json:"errors"  yaml:"errors"`
	Data    T        `json:"data"    yaml:"data"`
}

// OK returns a successful result carrying data.
func OK[T any](data T) *Result[T] {
	return &Result[T]{
		Success: true,
		Errors:  []string{},
		Data:    data,
	}
}

// Fail returns a failed result with the given error messages.
func Fail[T any](errs ...string) *Result[T] {
	if errs == nil {
		errs = []string{}
	}

	return &Result[T]{
		Success: false,
		Errors:  errs,
	}
}

// Warn returns a successful result that still carries warning messages.
func Warn[T any](data T, warnings ...string) *Result[T] {
	if warnings == nil {
		warnings = []string{}
	}

	return &Result[T]{
		Success: true,
		Errors:  warnings,
		Data:    data,
	}
}

// HasWarnings reports whether a successful result carries messages.
func (r *Result[T]) HasWarnings() bool {
	return r.Success && len(r.Errors) > 0
}

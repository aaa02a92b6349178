package params

import "fmt"

// ValidationError reports a malformed routing directive or override set. It
// is raised before any merge work so a failed request is never partially
// mapped.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

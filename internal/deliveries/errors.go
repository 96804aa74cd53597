package deliveries

import "fmt"

// Rule error codes, machine-readable so API clients can distinguish
// "not yours" from "doesn't exist" from "blocked by precondition".
const (
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodePreconditionFailed = "PRECONDITION_FAILED"
)

// RuleError is a business-rule outcome from the visibility or ownership
// checks. It is not an infrastructure fault: callers map it to a specific
// HTTP status and surface the reason verbatim.
type RuleError struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func notFound(format string, args ...any) *RuleError {
	return &RuleError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...any) *RuleError {
	return &RuleError{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

func preconditionFailed(format string, args ...any) *RuleError {
	return &RuleError{Code: CodePreconditionFailed, Message: fmt.Sprintf(format, args...)}
}

package serrors

import "fmt"

// Base is a coded error shared across packages so transports can map
// domain failures onto stable machine-readable codes.
type Base struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewError(code, message string) *Base {
	return &Base{Code: code, Message: message}
}

func (e *Base) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Base) Is(target error) bool {
	other, ok := target.(*Base)
	if !ok {
		return false
	}
	return other.Code == e.Code
}

// ValidationError carries a single failed field.
type ValidationError struct {
	Base
	Field string `json:"field"`
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Base:  Base{Code: "VALIDATION_ERROR", Message: message},
		Field: field,
	}
}

// ValidationErrors maps field names to their failures.
type ValidationErrors map[string]*ValidationError

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(v))
}

func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for field, err := range v {
		fields[field] = err.Message
	}
	return fields
}

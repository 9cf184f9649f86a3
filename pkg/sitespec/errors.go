package sitespec

import "fmt"

// FieldError reports a field-level validation failure with the path of the
// offending field, e.g. "components[2].props.title".
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Path, e.Reason)
}

// NewFieldError creates a FieldError for the given field path.
func NewFieldError(path, reason string) *FieldError {
	return &FieldError{Path: path, Reason: reason}
}

// ParseError reports that the document could not be parsed even after the
// second repair pass. Offset is the approximate byte offset of the syntax
// error, when known.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("document parse failed near byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("document parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

package format

import "fmt"

// FormatError reports structurally invalid input: bad magic, implausible
// page size, a length or offset that runs past the buffer, or a page whose
// type contradicts its owning table. I/O failures are reported as the
// wrapped errors of the underlying reader/writer, not as FormatError.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "invalid format: " + e.Reason }

// Errf builds a *FormatError from a printf-style reason.
func Errf(f string, args ...interface{}) error {
	return &FormatError{Reason: fmt.Sprintf(f, args...)}
}

// UnsupportedVariantError is returned when a row is requested for a page
// type whose row layout has not been reverse-engineered.
type UnsupportedVariantError struct {
	PageType PageType
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("no known row layout for page type %s", e.PageType)
}

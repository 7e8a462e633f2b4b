package dataset

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMalformedLine       = errors.New("malformed line")
	ErrResourceUnavailable = errors.New("resource unavailable")

	ErrLineTooLong = fmt.Errorf("%w: longer than %v bytes", ErrMalformedLine, maxLineLength)
)

// LineError is returned in strict mode for a line that cannot become a sample.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %v %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

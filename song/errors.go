package song

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel every ParseError unwraps to.
var ErrParse = errors.New("parse error")

// ParseError is returned for invalid chord tokens, malformed metadata and
// illegal line orderings.
type ParseError struct {
	Path string // input name, may be empty
	Line int    // 1-based line number, 0 when not tied to a line
	Msg  string
	Err  error // underlying error, if any
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

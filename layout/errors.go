package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLayout is wrapped by every LayoutError.
var ErrLayout = errors.New("layout error")

// LayoutError is a song that cannot be laid out with the given style.
type LayoutError struct {
	Path  string
	Page  int // 1-based, 0 when not tied to a page
	Verse int // 1-based, 0 when not tied to a verse
	Msg   string
	Err   error
}

func (e *LayoutError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path + ": ")
	}
	if e.Page > 0 {
		fmt.Fprintf(&b, "page %d: ", e.Page)
	}
	if e.Verse > 0 {
		fmt.Fprintf(&b, "verse %d: ", e.Verse)
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *LayoutError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLayout}
	}
	return []error{ErrLayout, e.Err}
}

type capacityError struct {
	chords, capacity int
}

func (e *capacityError) Error() string {
	return fmt.Sprintf("%d chords, room for %d", e.chords, e.capacity)
}

// annotate fills in the context the inner layers did not know.
func annotate(err error, path string, page int) error {
	var le *LayoutError
	if !errors.As(err, &le) {
		return &LayoutError{Path: path, Page: page, Msg: "layout failed", Err: err}
	}
	if le.Path == "" {
		le.Path = path
	}
	if le.Page == 0 {
		le.Page = page
	}
	return le
}

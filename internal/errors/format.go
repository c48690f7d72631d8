package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
)

// colorEnabled starts out true when stderr is a terminal.
var colorEnabled = isTerminal(os.Stderr)

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DisableColors turns off ANSI escapes in Format and PrintError.
func DisableColors() { colorEnabled = false }

// EnableColors turns on ANSI escapes in Format and PrintError.
func EnableColors() { colorEnabled = true }

func paint(code, s string) string {
	if !colorEnabled || s == "" {
		return s
	}
	return code + s + ansiReset
}

// Format renders e for a terminal:
//
//	error[E101]: Duplicate sibling key (tree)
//	 --> trees/list.yaml:6:5
//	  |
//	5 |   - tag: li
//	6 |     key: A
//	  |     ^
//	  |
//	  = key "A" appears 2 times under <ul>
//	  = hint: Give every keyed child of an element a distinct key.
func (e *Error) Format() string {
	var b strings.Builder

	label := "error"
	if e.Code != "" {
		label += "[" + e.Code + "]"
	}
	b.WriteString(paint(ansiBold+ansiRed, label))
	b.WriteString(paint(ansiBold, ": "+e.Message))
	if e.Category != "" {
		fmt.Fprintf(&b, " (%s)", e.Category)
	}
	b.WriteByte('\n')

	pad := strings.Repeat(" ", e.gutterWidth())
	bar := paint(ansiBlue, "|")

	if e.Location != nil {
		fmt.Fprintf(&b, "%s%s %s\n", pad, paint(ansiBlue, "-->"), e.Location)
	}
	if e.Location != nil && len(e.Context) > 0 {
		fmt.Fprintf(&b, "%s %s\n", pad, bar)
		for i, line := range e.Context {
			n := e.ContextLine + i
			num := fmt.Sprintf("%*d", len(pad), n)
			fmt.Fprintf(&b, "%s %s %s\n", paint(ansiBlue, num), bar, line)
			if n == e.Location.Line && e.Location.Column > 0 {
				caret := strings.Repeat(" ", e.Location.Column-1) + paint(ansiRed, "^")
				fmt.Fprintf(&b, "%s %s %s\n", pad, bar, caret)
			}
		}
		fmt.Fprintf(&b, "%s %s\n", pad, bar)
	}

	note := func(kind, text string) {
		if text == "" {
			return
		}
		fmt.Fprintf(&b, "%s = ", pad)
		if kind != "" {
			b.WriteString(paint(ansiCyan, kind+": "))
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	note("", e.Detail)
	if e.Wrapped != nil {
		note("cause", e.Wrapped.Error())
	}
	note("hint", e.Suggestion)

	return b.String()
}

// gutterWidth is the width of the widest line number shown, at least 1.
func (e *Error) gutterWidth() int {
	last := 0
	if e.Location != nil {
		last = e.Location.Line
		if len(e.Context) > 0 {
			last = max(last, e.ContextLine+len(e.Context)-1)
		}
	}
	return max(len(strconv.Itoa(last)), 1)
}

// MarshalJSON encodes e as the body of an HTTP error response.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := struct {
		Code       string    `json:"code,omitempty"`
		Category   Category  `json:"category,omitempty"`
		Message    string    `json:"message"`
		Detail     string    `json:"detail,omitempty"`
		Location   *Location `json:"location,omitempty"`
		Cause      string    `json:"cause,omitempty"`
		Suggestion string    `json:"suggestion,omitempty"`
	}{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	return json.Marshal(out)
}

// Fprint writes err to w, using Format for *Error values.
func Fprint(w io.Writer, err error) {
	var e *Error
	if errors.As(err, &e) {
		io.WriteString(w, e.Format())
		return
	}
	fmt.Fprintf(w, "%s: %s\n", paint(ansiBold+ansiRed, "error"), err)
}

// PrintError writes err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}

package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

var colorEnabled = true

// DisableColors turns off ANSI colors in Format and PrintError.
func DisableColors() {
	colorEnabled = false
}

// EnableColors turns ANSI colors back on.
func EnableColors() {
	colorEnabled = true
}

func paint(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + ansiReset
}

// Format renders the error for a terminal: the code and message on one
// line, then the detail, the cause and the hint, each indented.
func (e *CoreError) Format() string {
	var b strings.Builder

	head := "ERROR: "
	if e.Code != "" {
		head = "ERROR " + e.Code + ": "
	}
	b.WriteString(paint(ansiRed+ansiBold, head))
	b.WriteString(e.Message)
	b.WriteString("\n")

	for _, line := range wrapText(e.Detail, 72) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(paint(ansiGray, "Cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(paint(ansiCyan, "Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n")
	}
	return b.String()
}

type jsonError struct {
	Code       string   `json:"code,omitempty"`
	Category   Category `json:"category,omitempty"`
	Message    string   `json:"message"`
	Detail     string   `json:"detail,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Fatal      bool     `json:"fatal,omitempty"`
	Cause      string   `json:"cause,omitempty"`
}

// MarshalJSON encodes the error's fields. The wrapped error is reduced to
// its message.
func (e *CoreError) MarshalJSON() ([]byte, error) {
	je := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		Fatal:      e.Fatal,
	}
	if e.Wrapped != nil {
		je.Cause = e.Wrapped.Error()
	}
	return json.Marshal(je)
}

// PrintError writes err to w. A CoreError anywhere in err's chain is
// rendered with Format, after any context the outer wrappers added.
func PrintError(w io.Writer, err error) {
	var ce *CoreError
	if !stderrors.As(err, &ce) {
		fmt.Fprintf(w, "%s%s\n", paint(ansiRed+ansiBold, "ERROR: "), err)
		return
	}
	if outer := strings.TrimSuffix(err.Error(), ce.Error()); outer != "" {
		fmt.Fprintf(w, "%s\n", strings.TrimSuffix(outer, ": "))
	}
	fmt.Fprint(w, ce.Format())
}

// wrapText breaks text into lines of at most width bytes where words allow.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := []string{words[0]}
	for _, w := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(w) > width {
			lines = append(lines, w)
			continue
		}
		*last += " " + w
	}
	return lines
}

package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategorySetup    Category = "setup"
	CategoryScenario Category = "scenario"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location is a position in a source file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as file:line[:column].
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// MeasureError is a coded error with optional location and remediation.
type MeasureError struct {
	// Code is the registered identifier, e.g. "M001".
	Code string

	Category Category
	Message  string
	Detail   string

	// Location and Context point into the offending file, if any.
	Location *Location
	Context  []string

	Suggestion string
	DocURL     string

	// Wrapped is the underlying cause.
	Wrapped error
}

// Error implements the error interface.
func (e *MeasureError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *MeasureError) Unwrap() error {
	return e.Wrapped
}

// WithLocation points the error at file:line:column and loads the
// surrounding lines for display.
func (e *MeasureError) WithLocation(file string, line, column int) *MeasureError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion.
func (e *MeasureError) WithSuggestion(s string) *MeasureError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *MeasureError) WithDetail(d string) *MeasureError {
	e.Detail = d
	return e
}

// Wrap sets the underlying cause.
func (e *MeasureError) Wrap(err error) *MeasureError {
	e.Wrapped = err
	return e
}

// readContextLines returns up to contextSize lines centred on targetLine.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}
	return lines
}

// New creates an error from a registered code.
func New(code string) *MeasureError {
	template, ok := registry[code]
	if !ok {
		return &MeasureError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &MeasureError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates an uncoded error with a formatted message.
func Newf(category Category, format string, args ...any) *MeasureError {
	return &MeasureError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err under code unless it already is a *MeasureError.
func FromError(err error, code string) *MeasureError {
	if err == nil {
		return nil
	}
	if me, ok := err.(*MeasureError); ok {
		return me
	}
	return New(code).Wrap(err)
}

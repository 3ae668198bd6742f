// Package diagnostics is the accumulator every pass in this module
// reports through: passes never panic on a diagnosable condition,
// they call NewError and keep going.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/vinelang/vinec/internal/token"
)

// Code identifies the taxonomy of a diagnostic.
type Code string

const (
	NameError        Code = "NameError"
	TypeErrorCode    Code = "TypeError"
	SyntaxError      Code = "SyntaxError"
	AttributeError   Code = "AttributeError"
	AssignError      Code = "AssignError"
	VisibilityError  Code = "VisibilityError"
	InheritanceError Code = "InheritanceError"
	ImportError      Code = "ImportError"
	IoError          Code = "IoError"
	UnimplementedError Code = "UnimplementedError"
	UnusedWarning    Code = "UnusedWarning"
	TypeWarning      Code = "TypeWarning"
	NameWarning      Code = "NameWarning"
)

// IsWarning reports whether a code accumulates without forcing pass failure.
func (c Code) IsWarning() bool {
	switch c {
	case UnusedWarning, TypeWarning, NameWarning:
		return true
	default:
		return false
	}
}

// DiagnosticError is the structured record a pass reports: an
// error-number, location, caused-by, kind, message, sub-messages, and
// an optional hint.
type DiagnosticError struct {
	Number      int
	Code        Code
	Token       token.Token
	File        string
	CausedBy    error
	Message     string
	SubMessages []string
	Hint        string
}

func (e *DiagnosticError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s:%s: %s", e.Code, e.File, e.Token.Position(), e.Message)
	for _, s := range e.SubMessages {
		fmt.Fprintf(&b, "\n  %s", s)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "\n  hint: %s", e.Hint)
	}
	return b.String()
}

func (e *DiagnosticError) Unwrap() error { return e.CausedBy }

var nextNumber int

// NewError constructs a diagnostic with the calling convention every pass
// in this module uses: NewError(code, token, message), then accumulated
// into a []*DiagnosticError rather than returned up the call stack.
func NewError(code Code, tok token.Token, message string) *DiagnosticError {
	nextNumber++
	return &DiagnosticError{Number: nextNumber, Code: code, Token: tok, Message: message}
}

// WithHint attaches a hint and returns the receiver for chaining.
func (e *DiagnosticError) WithHint(hint string) *DiagnosticError {
	e.Hint = hint
	return e
}

// WithFile attaches the originating source file.
func (e *DiagnosticError) WithFile(file string) *DiagnosticError {
	e.File = file
	return e
}

// WithCause records the underlying error that triggered this diagnostic.
func (e *DiagnosticError) WithCause(cause error) *DiagnosticError {
	e.CausedBy = cause
	return e
}

// Bag accumulates diagnostics for a single pass, split into hard
// errors and warnings: warnings accumulate alongside errors but never
// force failure on their own.
type Bag struct {
	Errors   []*DiagnosticError
	Warnings []*DiagnosticError
}

// Add files a diagnostic into Errors or Warnings by its code's class.
func (b *Bag) Add(d *DiagnosticError) {
	if d.Code.IsWarning() {
		b.Warnings = append(b.Warnings, d)
	} else {
		b.Errors = append(b.Errors, d)
	}
}

// Failed reports whether the pass that produced this bag should be
// treated as having an unsuccessful terminal (non-empty error list).
func (b *Bag) Failed() bool { return len(b.Errors) > 0 }

// seehuhn.de/go/ajisai - an exact-fraction concatenative language
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ajisai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies the class of an interpreter error.  Hosts can
// branch on the kind instead of parsing messages.
type ErrorKind int

// These are the error kinds reported by the interpreter.
const (
	Custom ErrorKind = iota
	StackUnderflow
	DivisionByZero
	TypeError
	IndexOutOfBounds
	VectorLengthMismatch
	UnknownWord
	ProtectedWord
	ModeUnsupported
	DimensionLimitExceeded
	NoChange
	SyntaxError
)

var kindNames = [...]string{
	Custom:                 "error",
	StackUnderflow:         "stack underflow",
	DivisionByZero:         "division by zero",
	TypeError:              "type error",
	IndexOutOfBounds:       "index out of bounds",
	VectorLengthMismatch:   "vector length mismatch",
	UnknownWord:            "unknown word",
	ProtectedWord:          "protected word",
	ModeUnsupported:        "mode unsupported",
	DimensionLimitExceeded: "dimension limit exceeded",
	NoChange:               "no change",
	SyntaxError:            "syntax error",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the error type returned by all interpreter operations.
// Only the detail fields relevant to Kind are set.
type Error struct {
	Kind ErrorKind
	Msg  string

	Expected, Got string   // TypeError
	Index, Length int      // IndexOutOfBounds
	Len1, Len2    int      // VectorLengthMismatch
	Name          string   // UnknownWord, ProtectedWord
	Dependents    []string // ProtectedWord
	Word, Mode    string   // ModeUnsupported, NoChange
	Depth         int      // DimensionLimitExceeded

	cause error
}

func (err *Error) Error() string {
	if err.Msg == "" {
		return err.Kind.String()
	}
	return err.Kind.String() + ": " + err.Msg
}

func (err *Error) Unwrap() error {
	return err.cause
}

// Is makes errors.Is(err, ErrXxx) match all errors of the same kind.
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Kind == err.Kind
}

// Sentinel values for use with errors.Is.
var (
	ErrCustom                 = &Error{Kind: Custom}
	ErrStackUnderflow         = &Error{Kind: StackUnderflow}
	ErrDivisionByZero         = &Error{Kind: DivisionByZero}
	ErrType                   = &Error{Kind: TypeError}
	ErrIndexOutOfBounds       = &Error{Kind: IndexOutOfBounds}
	ErrVectorLengthMismatch   = &Error{Kind: VectorLengthMismatch}
	ErrUnknownWord            = &Error{Kind: UnknownWord}
	ErrProtectedWord          = &Error{Kind: ProtectedWord}
	ErrModeUnsupported        = &Error{Kind: ModeUnsupported}
	ErrDimensionLimitExceeded = &Error{Kind: DimensionLimitExceeded}
	ErrNoChange               = &Error{Kind: NoChange}
	ErrSyntax                 = &Error{Kind: SyntaxError}
)

// KindOf returns the kind of err.  The second return value is false if err
// is not an interpreter error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return Custom, false
}

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func errUnderflow(word string, need, have int) *Error {
	return errorf(StackUnderflow, "%s: needs %d values, stack has %d", word, need, have)
}

func errType(word, expected string, got Value) *Error {
	e := errorf(TypeError, "%s: expected %s, got %s", word, expected, got.kindName())
	e.Expected = expected
	e.Got = got.kindName()
	return e
}

func errIndex(word string, index, length int) *Error {
	e := errorf(IndexOutOfBounds, "%s: index %d out of range for length %d", word, index, length)
	e.Index = index
	e.Length = length
	return e
}

func errLength(word string, len1, len2 int) *Error {
	e := errorf(VectorLengthMismatch, "%s: lengths %d and %d differ", word, len1, len2)
	e.Len1 = len1
	e.Len2 = len2
	return e
}

func errUnknown(name string) *Error {
	e := errorf(UnknownWord, "%s", name)
	e.Name = name
	return e
}

func errProtected(name string, dependents []string) *Error {
	var e *Error
	if len(dependents) == 0 {
		e = errorf(ProtectedWord, "%s is a builtin word", name)
	} else {
		e = errorf(ProtectedWord, "%s is used by %s", name, strings.Join(dependents, ", "))
	}
	e.Name = name
	e.Dependents = dependents
	return e
}

func errMode(word string, mode TargetMode) *Error {
	e := errorf(ModeUnsupported, "%s does not support %s mode", word, mode)
	e.Word = word
	e.Mode = mode.String()
	return e
}

func errDepth(depth int) *Error {
	e := errorf(DimensionLimitExceeded, "nesting depth %d exceeds the limit of %d", depth, MaxDimensions)
	e.Depth = depth
	return e
}

func errNoChange(word string) *Error {
	e := errorf(NoChange, "%s had no effect", word)
	e.Word = word
	return e
}

func errWrap(kind ErrorKind, word string, cause error) *Error {
	e := errorf(kind, "%s: %v", word, cause)
	e.cause = cause
	return e
}

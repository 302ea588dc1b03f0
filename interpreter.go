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
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"seehuhn.de/go/ajisai/fraction"
)

// TargetMode selects the operand of an operation.
type TargetMode int

// These are the operation target modes.
const (
	StackTop TargetMode = iota // the value on top of the stack
	Stack                      // the whole stack, as one vector
)

func (m TargetMode) String() string {
	if m == Stack {
		return "stack"
	}
	return "stack-top"
}

// ConsumptionMode selects whether operands are removed from the stack.
type ConsumptionMode int

// These are the consumption modes.
const (
	Consume ConsumptionMode = iota
	Keep
)

func (m ConsumptionMode) String() string {
	if m == Keep {
		return "keep"
	}
	return "consume"
}

// Interpreter is a stack machine executing token streams.  An Interpreter
// must not be used concurrently; independent interpreters share no state.
type Interpreter struct {
	Stack []Value
	Dict  *Dictionary

	target      TargetMode
	consumption ConsumptionMode
	force       bool

	out strings.Builder

	logger        *slog.Logger
	noChangeCheck bool
	maxCallDepth  int
	callDepth     int
}

// NewInterpreter returns an interpreter with an empty stack and a
// dictionary holding only the builtin words.
func NewInterpreter(opts ...Option) *Interpreter {
	intp := &Interpreter{
		Dict: NewDictionary(),
	}
	for _, opt := range defaultOptions {
		opt.apply(intp)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(intp)
		}
	}
	return intp
}

// Modes returns the current execution modes.
func (intp *Interpreter) Modes() (TargetMode, ConsumptionMode) {
	return intp.target, intp.consumption
}

func (intp *Interpreter) resetModes() {
	intp.target = StackTop
	intp.consumption = Consume
	intp.force = false
}

// Reset clears the stack, the modes and all custom words.
func (intp *Interpreter) Reset() {
	intp.Stack = nil
	intp.Dict.Reset()
	intp.resetModes()
}

// Output returns the text written since the last call, and clears the
// output buffer.
func (intp *Interpreter) Output() string {
	s := intp.out.String()
	intp.out.Reset()
	return s
}

func (intp *Interpreter) println(s string) {
	intp.out.WriteString(s)
	intp.out.WriteByte('\n')
}

// ExecuteString scans and executes source code.
func (intp *Interpreter) ExecuteString(code string) error {
	tokens, err := Scan(code)
	if err != nil {
		return err
	}
	return intp.Execute(tokens)
}

// Execute runs a token stream to completion.  The first error aborts the
// execution.
func (intp *Interpreter) Execute(tokens []Token) error {
	run, err := intp.Start(tokens)
	if err != nil {
		return err
	}
	return run.Finish(context.Background())
}

// Status is the outcome of Exec.
type Status int

// These are the possible values of Status.
const (
	StatusOK Status = iota
	StatusError
)

func (s Status) String() string {
	if s == StatusError {
		return "ERROR"
	}
	return "OK"
}

// Result is the outcome of one call to Exec.
type Result struct {
	Status Status
	Output string
	Stack  []Value
	Err    error
}

// ErrorMessage returns the error message, or "" on success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Exec executes source code and reports the outcome together with the
// output written and a snapshot of the stack.
func (intp *Interpreter) Exec(code string) Result {
	err := intp.ExecuteString(code)
	res := Result{
		Output: intp.Output(),
		Stack:  slices.Clone(intp.Stack),
		Err:    err,
	}
	if err != nil {
		res.Status = StatusError
	}
	return res
}

// Run is a program in progress.  It allows a host to execute a program
// one top-level line at a time.
type Run struct {
	intp  *Interpreter
	lines [][]Token
	pos   int
}

// Start prepares tokens for execution.  Nothing is executed until Step or
// Finish is called.
func (intp *Interpreter) Start(tokens []Token) (*Run, error) {
	if err := checkBalanced(tokens); err != nil {
		return nil, err
	}
	return &Run{intp: intp, lines: splitLines(tokens)}, nil
}

// More reports whether lines remain to be executed.
func (r *Run) More() bool {
	return r.pos < len(r.lines)
}

// Step executes the next line.  It reports whether more lines remain.
// After an error the run is finished.
func (r *Run) Step() (more bool, err error) {
	if !r.More() {
		return false, nil
	}
	line := r.lines[r.pos]
	r.pos++

	intp := r.intp
	defer func() {
		if p := recover(); p != nil {
			err = errorf(Custom, "internal error: %v", p)
		}
		if err != nil {
			intp.resetModes()
			intp.callDepth = 0
			r.pos = len(r.lines)
			intp.logf(slog.LevelDebug, "execution failed", "error", err)
		}
		more = r.More()
	}()
	return true, intp.executeLine(line)
}

// Finish executes all remaining lines, checking ctx between lines.
func (r *Run) Finish(ctx context.Context) error {
	for r.More() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.Step(); err != nil {
			return err
		}
	}
	return nil
}

// executeBody runs a sequence of tokens which may span several lines.
func (intp *Interpreter) executeBody(tokens []Token) error {
	for _, line := range splitLines(tokens) {
		if err := intp.executeLine(line); err != nil {
			return err
		}
	}
	return nil
}

func (intp *Interpreter) executeLine(line []Token) error {
	if isGuard(line) {
		clause, err := ParseGuard(line)
		if err != nil {
			return err
		}
		return intp.executeGuard(clause)
	}
	return intp.executeTokens(line)
}

func (intp *Interpreter) executeTokens(tokens []Token) error {
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case NumberToken:
			f, err := fraction.Parse(t.Text)
			if err != nil {
				return errWrap(SyntaxError, t.Text, err)
			}
			intp.push(FromFraction(f))
		case StringToken:
			intp.push(FromString(t.Text))
		case BooleanToken:
			intp.push(FromBool(t.Text == "TRUE"))
		case VectorStart:
			j, err := matchGroup(tokens, i)
			if err != nil {
				return err
			}
			v, err := literal(tokens[i+1:j], 1)
			if err != nil {
				return err
			}
			intp.push(v)
			i = j
		case CodeBlockStart:
			j, err := matchGroup(tokens, i)
			if err != nil {
				return err
			}
			intp.push(NewCodeBlock(tokens[i+1 : j]))
			i = j
		case SymbolToken:
			if err := intp.call(t.Text); err != nil {
				return err
			}
		case LineBreak:
			// only found inside opened vectors
		default:
			return errorf(SyntaxError, "unexpected %s", t.Kind)
		}
	}
	return nil
}

// literal converts the contents of a bracket group into a value.  Groups
// consisting only of literals become vectors, all other groups are
// quoted as code blocks.
func literal(inner []Token, depth int) (Value, error) {
	if depth > MaxDimensions {
		return Value{}, errDepth(depth)
	}
	if !isLiteral(inner) {
		return NewCodeBlock(inner), nil
	}
	var items []Value
	for i := 0; i < len(inner); i++ {
		t := inner[i]
		switch t.Kind {
		case NumberToken:
			f, err := fraction.Parse(t.Text)
			if err != nil {
				return Value{}, errWrap(SyntaxError, t.Text, err)
			}
			items = append(items, FromFraction(f))
		case StringToken:
			items = append(items, FromString(t.Text))
		case BooleanToken:
			items = append(items, FromBool(t.Text == "TRUE"))
		case SymbolToken: // NIL
			items = append(items, NilValue())
		case VectorStart:
			j, err := matchGroup(inner, i)
			if err != nil {
				return Value{}, err
			}
			v, err := literal(inner[i+1:j], depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
			i = j
		}
	}
	return NewVector(items)
}

func isLiteral(tokens []Token) bool {
	for _, t := range tokens {
		switch t.Kind {
		case NumberToken, StringToken, BooleanToken, VectorStart, VectorEnd, LineBreak:
			// pass
		case SymbolToken:
			if t.Text != "NIL" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// call executes the word name.
func (intp *Interpreter) call(name string) error {
	def, ok := intp.Dict.Lookup(name)
	if !ok {
		return errUnknown(name)
	}
	intp.logf(slog.LevelDebug, "call", "word", name, "depth", len(intp.Stack),
		"target", intp.target, "consumption", intp.consumption)

	if def.Kind == BuiltinWord {
		err := def.fn(intp)
		if !def.modifier {
			intp.resetModes()
		}
		return err
	}

	if intp.callDepth >= intp.maxCallDepth {
		return errorf(Custom, "%s: call depth limit of %d exceeded", name, intp.maxCallDepth)
	}
	intp.callDepth++
	defer func() { intp.callDepth-- }()
	for _, line := range def.Lines {
		if err := intp.executeLine(line); err != nil {
			return err
		}
	}
	intp.resetModes()
	return nil
}

// open executes a vector or code block.  Opening a vector executes the
// literal tokens of its elements.
func (intp *Interpreter) open(word string, v Value) error {
	switch d := v.Data.(type) {
	case CodeBlock:
		return intp.executeBody(d)
	case Vector:
		var tokens []Token
		for _, item := range d {
			tokens = append(tokens, item.tokens()...)
		}
		return intp.executeTokens(tokens)
	}
	return errType(word, "code block or vector", v)
}

// bodyLines converts a value into the lines of a word definition.
func bodyLines(word string, v Value) ([][]Token, error) {
	switch d := v.Data.(type) {
	case CodeBlock:
		return splitLines(d), nil
	case Vector:
		if v.Hint == HintString {
			break
		}
		var line []Token
		for _, item := range d {
			line = append(line, item.tokens()...)
		}
		return [][]Token{line}, nil
	}
	return nil, errType(word, "code block or vector", v)
}

func (intp *Interpreter) push(v Value) {
	intp.Stack = append(intp.Stack, v)
}

func (intp *Interpreter) logf(level slog.Level, msg string, args ...any) {
	if intp.logger == nil {
		return
	}
	intp.logger.Log(context.Background(), level, msg, args...)
}

// StackString formats the stack for display.
func (intp *Interpreter) StackString() string {
	return formatStack(intp.Stack)
}

func (intp *Interpreter) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	intp.println("Warning: " + msg)
	intp.logf(slog.LevelWarn, msg)
}

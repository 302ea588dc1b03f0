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
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/ajisai/fraction"
)

func TestExecute(t *testing.T) {
	cases := []struct {
		src string
		exp string
	}{
		// broadcasting
		{"[ 1 2 3 ] [ 10 20 30 ] +", "[ 11 22 33 ]"},
		{"[ 2 ] [ 1 2 3 ] +", "[ 3 4 5 ]"},
		{"1/2 1/3 +", "5/6"},
		{"[ 1 2 ] 10 *", "[ 10 20 ]"},
		{"10 [ 1 2 ] -", "[ 9 8 ]"},
		{"[ [ 1 2 ] [ 3 4 ] ] [ 10 20 ] +", "[ { 11 12 } { 23 24 } ]"},
		{"0.5 1/4 /", "2"},
		{"7 2 MOD", "1"},
		{"-7 2 MOD", "1"},
		{"7 -2 MOD", "-1"},
		{"1 NIL +", "NIL"},
		{"1 : 2 ; +", ": 2 ;"},

		// comparison and logic
		{"1 2 <", "TRUE"},
		{"2 2 <=", "TRUE"},
		{"[ 1 5 ] 3 >", "[ FALSE TRUE ]"},
		{"1/2 0.5 =", "TRUE"},
		{"NIL 1 =", "NIL"},
		{"FALSE NIL AND", "FALSE"},
		{"TRUE NIL AND", "NIL"},
		{"TRUE NIL OR", "TRUE"},
		{"FALSE NIL OR", "NIL"},
		{"NIL NOT", "NIL"},
		{"[ TRUE FALSE ] NOT", "[ FALSE TRUE ]"},

		// rounding
		{"3/2 FLOOR", "1"},
		{"-3/2 ROUND", "-2"},
		{"[ 1/2 5/2 ] CEIL", "[ 1 3 ]"},

		// structure
		{"[ 1 2 3 ] LENGTH", "3"},
		{"NIL LENGTH", "0"},
		{"[ 1 2 3 ] 0 GET", "1"},
		{"[ 1 2 3 ] -1 GET", "3"},
		{"[ 1 2 3 ] 1 9 INSERT", "[ 1 9 2 3 ]"},
		{"[ 1 2 ] 2 3 INSERT", "[ 1 2 3 ]"},
		{"[ 1 2 3 ] 1 REMOVE", "[ 1 3 ]"},
		{"[ 1 ] 0 REMOVE", "NIL"},
		{"[ 1 2 3 ] 0 7 REPLACE", "[ 7 2 3 ]"},
		{"[ 1 2 3 ] 2 TAKE", "[ 1 2 ]"},
		{"[ 1 2 3 ] -1 TAKE", "[ 3 ]"},
		{"[ 1 2 ] [ 3 ] CONCAT", "[ 1 2 3 ]"},
		{"'ab' 'cd' CONCAT", "'abcd'"},
		{"[ 1 2 3 ] REVERSE", "[ 3 2 1 ]"},
		{"1 4 RANGE", "[ 1 2 3 4 ]"},
		{"3 1 RANGE", "[ 3 2 1 ]"},
		{"[ [ 1 2 3 ] [ 4 5 6 ] ] SHAPE", "[ 2 3 ]"},
		{"[ [ 1 2 3 ] [ 4 5 6 ] ] RANK", "2"},
		{"[ 1 2 3 4 5 6 ] [ 2 3 ] RESHAPE", "[ { 1 2 3 } { 4 5 6 } ]"},
		{"[ [ 1 2 ] [ 3 4 ] ] TRANSPOSE", "[ { 1 3 } { 2 4 } ]"},
		{"[ 2 2 ] 0 FILL", "[ { 0 0 } { 0 0 } ]"},
		{"[ [ 1 2 ] [ 3 ] ] FLATTEN", "[ 1 2 3 ]"},

		// higher order
		{"[ 1 2 3 ] [ 2 * ] MAP", "[ 2 4 6 ]"},
		{"[ 1 2 3 4 ] [ 2 MOD 0 = ] FILTER", "[ 2 4 ]"},
		{"[ 1 2 3 ] 0 [ + ] FOLD", "6"},
		{": 1 2 + ; EXEC", "3"},
		{"[ 1 2 + ] EXEC", "3"},
		{"[ 1 2 ] EXEC", "1 2"},
		{"0 [ 1 + ] 3 TIMES", "3"},

		// conversion
		{"42 STR", "'42'"},
		{"'12' NUM", "12"},
		{"' 1/4 ' NUM", "1/4"},
		{"'x' NUM", "NIL"},
		{"'true' BOOL", "TRUE"},
		{"0 BOOL", "FALSE"},
		{"1 0 2 .. BOOL", "TRUE FALSE TRUE"},
		{"1 0 2 .. NOT", "FALSE TRUE FALSE"},
		{"'ab' CHARS", "[ 'a' 'b' ]"},
		{"[ 'a' 'b' ] JOIN", "'ab'"},

		// modes
		{"1 2 3 .. LENGTH", "3"},
		{"1 2 3 .. ,, LENGTH", "1 2 3 3"},
		{"1 2 3 .. REVERSE", "3 2 1"},
		{"1 2 3 .. +", "6"},
		{"1 2 ,, +", "1 2 3"},
		{"1 2 3 .. 0 GET", "1"},
		{"1 2 3 .. 0 GET 4 5 +", "1 9"},
		{"[ 1 2 ] [ 3 ] .. CONCAT", "[ 1 2 3 ]"},
		{"[ 1 2 ] ,, LENGTH 3 4 +", "[ 1 2 ] 2 7"},
		{"1 2 3 .. [ 10 * ] MAP", "10 20 30"},

		// words
		{"[ 1 2 ] 'xs' DEF xs xs", "1 2 1 2"},
		{"[ 2 * ] 'DOUBLE' DEF 21 DOUBLE", "42"},
		{": 5 ; 'five' DEF FIVE", "5"},
		{"[ 1 ] 'A' 'one' DEF A", "1"},
		{"[ 2 * ] 'D' DEF [ D D ] 'Q' DEF 3 Q", "12"},
		{"[ 1 ] 'A' ,, DEF", "[ 1 ] 'A'"},
		{"[ 1 + ] 'INC' DEF 1 2 3 .. INC", "7"},
		{"[ + ] 'SUM' DEF 1 2 3 .. SUM", "6"},

		// guards
		{"[ TRUE ] : [ 1 ] : [ 2 ]", "1"},
		{"[ FALSE ] : [ 1 ] : [ 2 ]", "2"},
		{"FALSE : 1 : TRUE : 2 : 3", "2"},
		{"NIL : 1 : 2", "2"},
		{"0 : 1 : 2", "1"},
		{"TRUE : : 2", ""},
		{"[ [ TRUE ] : [ 'yes' ] : [ 'no' ] ] 'T' DEF T", "'yes'"},
	}
	for _, c := range cases {
		intp := NewInterpreter()
		err := intp.ExecuteString(c.src)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if got := intp.StackString(); got != c.exp {
			t.Errorf("%q: got %q, want %q", c.src, got, c.exp)
		}
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		src   string
		kind  ErrorKind
		stack string
	}{
		{"5 0 /", DivisionByZero, "5 0"},
		{"5 0 MOD", DivisionByZero, "5 0"},
		{"[ 1 2 ] [ 1 2 3 ] +", VectorLengthMismatch, "[ 1 2 ] [ 1 2 3 ]"},
		{"1 +", StackUnderflow, "1"},
		{"FOO", UnknownWord, ""},
		{"1 2 .. <", ModeUnsupported, "1 2"},
		{"[ 1 ] 'X' .. DEF", ModeUnsupported, "[ 1 ] 'X'"},
		{"[ 1 2 3 ] 5 GET", IndexOutOfBounds, "[ 1 2 3 ] 5"},
		{"[ 1 2 3 ] 'a' GET", TypeError, "[ 1 2 3 ] 'a'"},
		{"[ 1 2 3 ] 3000000000 GET", IndexOutOfBounds, "[ 1 2 3 ] 3000000000"},
		{"[ 1 2 3 ] -3000000000 TAKE", IndexOutOfBounds, "[ 1 2 3 ] -3000000000"},
		{": 1 ; : 2 ; =", TypeError, ": 1 ; : 2 ;"},
		{"TRUE : 1 ; AND", TypeError, "TRUE : 1 ;"},
		{"[ 1 ] 0 : 2 ; INSERT 1 <", TypeError, "[ : 2 ; 1 ] 1"},
		{"1 : 2 ; 3 .. OR", TypeError, "1 : 2 ; 3"},
		{"[ 1 ] REVERSE", NoChange, "[ 1 ]"},
		{"'abc' 'X' DEF", TypeError, "'abc' 'X'"},
		{"[ 1 ] 'a b' DEF", TypeError, "[ 1 ] 'a b'"},
		{"[ 1 ] '+' DEF", ProtectedWord, "[ 1 ] '+'"},
		{"'NOPE' DEL", UnknownWord, "'NOPE'"},
		{"[ 1 2 3 ] [ 2 2 ] RESHAPE", VectorLengthMismatch, "[ 1 2 3 ] [ 2 2 ]"},
		{"[ 1 2 3 ] [ 1 2 ] MAP", Custom, "[ 1 2 3 ] [ 1 2 ]"},
		{"1 [ 2 0 / ] EXEC", DivisionByZero, "1 : 2 0 / ;"},
		{"TRUE : 1", SyntaxError, ""},
		{"TRUE : 1 :", SyntaxError, ""},
		{": 1 : 2", SyntaxError, ""},
		{"1 2 : 3 : 4", Custom, ""},
		{"[ 1", SyntaxError, ""},
		{"1 ]", SyntaxError, ""},
		{"[ [ [ [ [ [ [ [ [ [ 1 ] ] ] ] ] ] ] ] ] ]", DimensionLimitExceeded, ""},
		{"[ 0 ] 1 FILL", TypeError, "[ 0 ] 1"},
		{"[ 2 2 2 2 2 2 2 2 2 2 ] 0 FILL", DimensionLimitExceeded, "[ 2 2 2 2 2 2 2 2 2 2 ] 0"},
	}
	for _, c := range cases {
		intp := NewInterpreter()
		err := intp.ExecuteString(c.src)
		kind, ok := KindOf(err)
		if err == nil || !ok || kind != c.kind {
			t.Errorf("%q: got error %v, want kind %s", c.src, err, c.kind)
			continue
		}
		if got := intp.StackString(); got != c.stack {
			t.Errorf("%q: stack %q, want %q", c.src, got, c.stack)
		}
		if target, consumption := intp.Modes(); target != StackTop || consumption != Consume {
			t.Errorf("%q: modes not reset after error", c.src)
		}
	}
}

func TestAtomicDivision(t *testing.T) {
	intp := NewInterpreter()
	err := intp.ExecuteString("5 0 /")
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
	if !errors.Is(err, fraction.ErrDivisionByZero) {
		t.Errorf("cause not preserved: %v", err)
	}
	exp := []Value{Int(5), Int(0)}
	if d := cmp.Diff(exp, intp.Stack); d != "" {
		t.Error(d)
	}

	err = intp.ExecuteString("MOD")
	if !errors.Is(err, fraction.ErrModuloByZero) {
		t.Errorf("expected modulo error, got %v", err)
	}
}

func TestVectorLengthDetails(t *testing.T) {
	intp := NewInterpreter()
	err := intp.ExecuteString("[ 1 2 ] [ 1 2 3 ] +")
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("unexpected error %v", err)
	}
	if e.Len1 != 2 || e.Len2 != 3 {
		t.Errorf("lengths %d, %d", e.Len1, e.Len2)
	}
}

func TestIndexDetails(t *testing.T) {
	intp := NewInterpreter()
	err := intp.ExecuteString("[ 1 2 3 ] 3000000000 GET")
	var e *Error
	if !errors.As(err, &e) || e.Kind != IndexOutOfBounds {
		t.Fatalf("unexpected error %v", err)
	}
	if int64(e.Index) != 3000000000 || e.Length != 3 {
		t.Errorf("index %d, length %d", e.Index, e.Length)
	}

	intp.Stack = nil
	err = intp.ExecuteString("[ 1 ] 3000000000 TIMES")
	if !errors.Is(err, ErrType) {
		t.Errorf("huge count: got %v", err)
	}
}

func TestStackBoolKeepsDepth(t *testing.T) {
	src := strings.Repeat("[ ", MaxDimensions) + "1" + strings.Repeat(" ]", MaxDimensions)
	intp := NewInterpreter()
	if err := intp.ExecuteString(src + " 0 .. BOOL"); err != nil {
		t.Fatal(err)
	}
	if len(intp.Stack) != 2 {
		t.Fatalf("stack %s", intp.StackString())
	}
	if d := intp.Stack[0].Depth(); d != MaxDimensions {
		t.Errorf("depth %d", d)
	}
	if got := intp.Stack[1].String(); got != "FALSE" {
		t.Errorf("got %s", got)
	}
}

func TestApplyDepthLimit(t *testing.T) {
	deep := Int(1)
	for range MaxDimensions {
		deep = Value{Data: Vector{deep}}
	}
	intp := NewInterpreter()
	intp.Stack = []Value{deep}
	intp.target = Stack
	err := intp.apply("WRAP", 0, false, func(v Value, _ []Value) (Value, error) {
		return v, nil
	})
	if !errors.Is(err, ErrDimensionLimitExceeded) {
		t.Fatalf("expected dimension error, got %v", err)
	}
	if len(intp.Stack) != 1 || !intp.Stack[0].Equal(deep) {
		t.Errorf("stack changed: %s", intp.StackString())
	}
}

func TestBroadcastShape(t *testing.T) {
	vectors := []string{
		"[ 1 ]",
		"[ 1 2 3 ]",
		"[ [ 1 2 ] [ 3 4 ] [ 5 6 ] ]",
		"[ [ [ 1 ] [ 2 ] ] ]",
	}
	for _, v := range vectors {
		intp := NewInterpreter()
		if err := intp.ExecuteString(v + " ,, 7/3 +"); err != nil {
			t.Fatal(err)
		}
		in, out := intp.Stack[0], intp.Stack[len(intp.Stack)-1]
		if d := cmp.Diff(in.Shape(), out.Shape()); d != "" {
			t.Errorf("%s: %s", v, d)
		}
	}
}

func TestNoChangeCheckOption(t *testing.T) {
	intp := NewInterpreter(WithNoChangeCheck(false))
	if err := intp.ExecuteString("[ 1 ] REVERSE"); err != nil {
		t.Fatal(err)
	}
	if got := intp.StackString(); got != "[ 1 ]" {
		t.Errorf("got %q", got)
	}
}

func TestCallDepth(t *testing.T) {
	intp := NewInterpreter(WithMaxCallDepth(10))
	err := intp.ExecuteString("[ R ] 'R' DEF R")
	if !errors.Is(err, ErrCustom) {
		t.Fatalf("expected depth error, got %v", err)
	}
	if err := intp.ExecuteString("1 2 +"); err != nil {
		t.Fatalf("interpreter unusable after depth error: %v", err)
	}
}

func TestDependencyProtection(t *testing.T) {
	intp := NewInterpreter()
	if err := intp.ExecuteString("[ 1 ] 'A' DEF\n[ A 1 + ] 'B' DEF"); err != nil {
		t.Fatal(err)
	}

	err := intp.ExecuteString("'A' DEL")
	var e *Error
	if !errors.As(err, &e) || e.Kind != ProtectedWord {
		t.Fatalf("expected protected word error, got %v", err)
	}
	if e.Name != "A" {
		t.Errorf("name %q", e.Name)
	}
	if d := cmp.Diff([]string{"B"}, e.Dependents); d != "" {
		t.Error(d)
	}

	intp.Stack = nil
	if err := intp.ExecuteString("! 'A' DEL"); err != nil {
		t.Fatal(err)
	}
	if out := intp.Output(); !strings.Contains(out, "affects B") {
		t.Errorf("missing warning, output %q", out)
	}
	def, ok := intp.Dict.Lookup("B")
	if !ok || len(def.Dependencies) != 0 {
		t.Errorf("B still depends on %v", def.Dependencies)
	}
}

func TestForceIsOneShot(t *testing.T) {
	intp := NewInterpreter()
	if err := intp.ExecuteString("[ 1 ] 'A' DEF [ A ] 'C' DEF"); err != nil {
		t.Fatal(err)
	}
	err := intp.ExecuteString("! 1 1 + 'A' DEL")
	if !errors.Is(err, ErrProtectedWord) {
		t.Errorf("force flag survived an unrelated word: %v", err)
	}

	intp.Stack = nil
	err = intp.ExecuteString("! [ 2 ] 'A' DEF")
	if err != nil {
		t.Fatal(err)
	}
	err = intp.ExecuteString("[ 3 ] 'A' DEF")
	if !errors.Is(err, ErrProtectedWord) {
		t.Errorf("force flag not cleared by DEF: %v", err)
	}
}

func TestOutput(t *testing.T) {
	intp := NewInterpreter()
	res := intp.Exec("42 PRINT 'hi' PRINT 1 2")
	if res.Status != StatusOK || res.Err != nil {
		t.Fatalf("unexpected result %v", res)
	}
	if res.Output != "42\n'hi'\n" {
		t.Errorf("output %q", res.Output)
	}
	if d := cmp.Diff([]Value{Int(1), Int(2)}, res.Stack); d != "" {
		t.Error(d)
	}
	if out := intp.Output(); out != "" {
		t.Errorf("output not drained: %q", out)
	}

	res = intp.Exec(".. PRINT")
	if res.Output != "1 2\n" || len(res.Stack) != 0 {
		t.Errorf("stack print: %q %v", res.Output, res.Stack)
	}

	res = intp.Exec("1 0 /")
	if res.Status != StatusError || res.ErrorMessage() == "" {
		t.Errorf("unexpected result %v", res)
	}
}

func TestStep(t *testing.T) {
	intp := NewInterpreter()
	tokens, err := Scan("1\n2\n3 +")
	if err != nil {
		t.Fatal(err)
	}
	run, err := intp.Start(tokens)
	if err != nil {
		t.Fatal(err)
	}

	var stacks []string
	for run.More() {
		more, err := run.Step()
		if err != nil {
			t.Fatal(err)
		}
		stacks = append(stacks, intp.StackString())
		if more != run.More() {
			t.Error("inconsistent More()")
		}
	}
	exp := []string{"1", "1 2", "1 5"}
	if d := cmp.Diff(exp, stacks); d != "" {
		t.Error(d)
	}
	if more, err := run.Step(); more || err != nil {
		t.Errorf("finished run: %t, %v", more, err)
	}
}

func TestStepError(t *testing.T) {
	intp := NewInterpreter()
	tokens, _ := Scan("1\nFOO\n2")
	run, err := intp.Start(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := run.Step(); err != nil {
		t.Fatal(err)
	}
	more, err := run.Step()
	if !errors.Is(err, ErrUnknownWord) || more {
		t.Errorf("got %t, %v", more, err)
	}
	if got := intp.StackString(); got != "1" {
		t.Errorf("stack %q", got)
	}
}

func TestLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	intp := NewInterpreter(WithLogger(logger))
	err := intp.ExecuteString("[ 1 ] 'A' DEF [ A ] 'B' DEF ! [ 2 ] 'A' DEF B")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("no warning logged: %q", buf.String())
	}
	if strings.Contains(buf.String(), "level=DEBUG") {
		t.Error("debug output above the handler level")
	}
	if got := intp.StackString(); got != "2" {
		t.Errorf("stack %q", got)
	}
}

func TestReset(t *testing.T) {
	intp := NewInterpreter()
	if err := intp.ExecuteString("[ 1 ] 'A' DEF 1 2 RESET"); err != nil {
		t.Fatal(err)
	}
	if len(intp.Stack) != 0 || len(intp.Dict.Words()) != 0 {
		t.Errorf("RESET left %v and %d words", intp.Stack, len(intp.Dict.Words()))
	}
	if !intp.Dict.IsBuiltin("DEF") {
		t.Error("RESET removed builtins")
	}
}

func TestLookup(t *testing.T) {
	intp := NewInterpreter()
	res := intp.Exec("[ 2 * ] 'DOUBLE' 'twice the input' DEF 'double' ? WORDS '+' ?")
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	exp := "2 *\n# twice the input\nDOUBLE # twice the input\n" +
		intp.Dict.builtins["+"].Description + "\n"
	if res.Output != exp {
		t.Errorf("output %q, want %q", res.Output, exp)
	}
}

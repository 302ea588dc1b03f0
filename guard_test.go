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
	"testing"

	"github.com/stretchr/testify/require"
)

func scanLine(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Scan(src)
	require.NoError(t, err)
	return tokens
}

func TestParseGuard(t *testing.T) {
	clause, err := ParseGuard(scanLine(t, "[ 1 > ] : [ 'big' ] : DUP 0 = : 'zero' : [ 'small' ]"))
	require.NoError(t, err)
	require.Len(t, clause.Branches, 2)
	require.Equal(t, []Token{Num("1"), Sym(">")}, clause.Branches[0].Condition)
	require.Equal(t, []Token{Str("big")}, clause.Branches[0].Action)
	require.Equal(t, []Token{Sym("DUP"), Num("0"), Sym("=")}, clause.Branches[1].Condition)
	require.Equal(t, []Token{Str("zero")}, clause.Branches[1].Action)
	require.Equal(t, []Token{Str("small")}, clause.Default)
}

func TestParseGuardKeepsCompoundSegments(t *testing.T) {
	clause, err := ParseGuard(scanLine(t, "[ 1 ] [ 2 ] : 3 : 4"))
	require.NoError(t, err)
	require.Len(t, clause.Branches[0].Condition, 6)
}

func TestParseGuardErrors(t *testing.T) {
	for _, src := range []string{
		"TRUE : 1",           // no default
		"TRUE : 1 :",         // empty default
		": 1 : 2",            // empty condition
		"TRUE : 1 : : 2 : 3", // empty condition in the second branch
		"[ 1 : 2 : 3",        // unbalanced
	} {
		tokens, err := Scan(src)
		require.NoError(t, err, src)
		_, err = ParseGuard(tokens)
		require.ErrorIs(t, err, ErrSyntax, src)
	}
}

func TestGuardBranches(t *testing.T) {
	for _, c := range []struct {
		src, exp string
	}{
		{"[ TRUE ] : [ 1 ] : [ 2 ]", "1"},
		{"[ FALSE ] : [ 1 ] : [ 2 ]", "2"},
		{"[ NIL ] : [ 1 ] : [ 2 ]", "2"},
		{"[ [ FALSE ] ] : [ 1 ] : [ 2 ]", "2"},
		{"[ 1 2 <  ] : [ 'less' ] : [ 'more' ]", "'less'"},
		{"5\n[ TRUE ] : [ 1 + ] : [ 1 - ]", "6"},
		{"5\n[ FALSE ] : [ 1 + ] : [ 1 - ]", "4"},
		{"5\n[ ,, BOOL ] : [ 1 + ] : [ 1 - ]", "6"},
		{"FALSE : 1 : FALSE : 2 : 3 4 +", "7"},
		{"TRUE : [ 1 2 ] : 3", "1 2"},
	} {
		intp := NewInterpreter()
		require.NoError(t, intp.ExecuteString(c.src), c.src)
		require.Equal(t, c.exp, intp.StackString(), c.src)
	}
}

func TestGuardConditionMustProduceValue(t *testing.T) {
	intp := NewInterpreter()
	intp.Stack = []Value{Int(7)}

	err := intp.ExecuteString("1 2 : 3 : 4")
	require.ErrorIs(t, err, ErrCustom)
	require.Contains(t, err.Error(), "condition must produce a value")
	require.Equal(t, "7", intp.StackString())

	err = intp.ExecuteString("NIL NOT NOT + : 3 : 4")
	require.Error(t, err)
	require.Equal(t, "7", intp.StackString())
}

func TestGuardInWords(t *testing.T) {
	intp := NewInterpreter()
	src := `[ [ ,, BOOL ] : [ 'yes' ] : [ 'no' ] ] 'ASK' DEF`
	require.NoError(t, intp.ExecuteString(src))

	res := intp.Exec("1 ASK")
	require.NoError(t, res.Err)
	require.Equal(t, "1 'yes'", intp.StackString())

	intp.Stack = nil
	res = intp.Exec("NIL ASK")
	require.NoError(t, res.Err)
	require.Equal(t, "NIL 'no'", intp.StackString())

	intp.Stack = nil
	res = intp.Exec("ASK")
	require.ErrorIs(t, res.Err, ErrStackUnderflow)
}

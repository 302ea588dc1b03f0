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

func TestBuiltinTable(t *testing.T) {
	d := NewDictionary()
	for _, name := range d.Builtins() {
		def, ok := d.Lookup(name)
		require.True(t, ok, name)
		require.Equal(t, name, def.Name)
		require.Equal(t, BuiltinWord, def.Kind)
		require.NotEmpty(t, def.Description, name)
		require.NotNil(t, def.fn, name)
		require.True(t, validName(name), name)
	}

	var modifiers []string
	for _, name := range d.Builtins() {
		if def, _ := d.Lookup(name); def.modifier {
			modifiers = append(modifiers, name)
		}
	}
	require.Equal(t, []string{"!", ",", ",,", ".", ".."}, modifiers)
}

func TestStackModeRefused(t *testing.T) {
	for _, src := range []string{
		"1 2 .. =",
		"1 2 .. >=",
		"[ 1 ] 'X' .. DEF",
		"'X' .. DEL",
		"'+' .. ?",
		".. WORDS",
		".. RESET",
		"[ 1 ] .. EXEC",
		"[ 1 ] 2 .. TIMES",
		"1 3 .. RANGE",
		"2 0 .. FILL",
	} {
		intp := NewInterpreter()
		err := intp.ExecuteString(src)
		require.ErrorIs(t, err, ErrModeUnsupported, src)

		var e *Error
		require.ErrorAs(t, err, &e)
		require.Equal(t, Stack.String(), e.Mode, src)
	}
}

func TestModesPersistAcrossLiterals(t *testing.T) {
	intp := NewInterpreter()
	require.NoError(t, intp.ExecuteString(",, 1 2 +"))
	require.Equal(t, "1 2 3", intp.StackString())
	target, consumption := intp.Modes()
	require.Equal(t, StackTop, target)
	require.Equal(t, Consume, consumption)

	require.NoError(t, intp.ExecuteString("[ ,, + ] 'TEE' DEF .. TEE"))
	target, _ = intp.Modes()
	require.Equal(t, StackTop, target)
}

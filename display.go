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
	"strings"
	"time"
	"unicode"
)

// DisplayHint controls how a value is formatted.  Hints never change the
// underlying fractions, and equality and arithmetic ignore them.
type DisplayHint int

// These are the supported display hints.
const (
	HintAuto DisplayHint = iota
	HintNumber
	HintString
	HintBoolean
	HintDateTime
	HintNil
)

func (h DisplayHint) String() string {
	switch h {
	case HintAuto:
		return "auto"
	case HintNumber:
		return "number"
	case HintString:
		return "string"
	case HintBoolean:
		return "boolean"
	case HintDateTime:
		return "datetime"
	case HintNil:
		return "nil"
	default:
		return "invalid hint"
	}
}

// fits reports whether hint h agrees with the shape of v.
func (h DisplayHint) fits(v Value) bool {
	switch h {
	case HintAuto, HintNumber:
		return true
	case HintString:
		_, ok := v.AsString()
		return ok || v.IsNil()
	case HintBoolean, HintDateTime:
		return v.IsScalar()
	case HintNil:
		return v.IsNil()
	}
	return false
}

var brackets = [...][2]string{{"[", "]"}, {"{", "}"}, {"(", ")"}}

// String formats v for display.
func (v Value) String() string {
	var b strings.Builder
	v.format(&b, 0)
	return b.String()
}

func (v Value) format(b *strings.Builder, level int) {
	switch d := v.Data.(type) {
	case nil, Nil:
		if v.Hint == HintString {
			b.WriteString("''")
		} else {
			b.WriteString("NIL")
		}
	case Scalar:
		switch v.Hint {
		case HintBoolean:
			if d.IsZero() {
				b.WriteString("FALSE")
			} else {
				b.WriteString("TRUE")
			}
		case HintDateTime:
			sec, _ := d.Floor().Int64()
			b.WriteString("@" + time.Unix(sec, 0).UTC().Format(time.RFC3339))
		default:
			b.WriteString(d.String())
		}
	case Vector:
		if s, ok := v.AsString(); ok && (v.Hint == HintString || v.Hint == HintAuto && looksLikeText(d)) {
			b.WriteString(quoteString(s))
			return
		}
		br := brackets[level%len(brackets)]
		b.WriteString(br[0])
		for _, item := range d {
			b.WriteByte(' ')
			item.format(b, level+1)
		}
		b.WriteString(" " + br[1])
	case CodeBlock:
		b.WriteString(FormatTokens(v.tokens()))
	}
}

// looksLikeText decides whether an Auto-hinted vector is shown as text:
// it must have at least two elements, all of them printable code points
// without a hint of their own.
func looksLikeText(items Vector) bool {
	if len(items) < 2 {
		return false
	}
	for _, item := range items {
		r, ok := item.codePoint()
		if !ok || item.Hint != HintAuto || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// formatStack formats the values of a stack, separated by spaces.
func formatStack(stack []Value) string {
	parts := make([]string, len(stack))
	for i, v := range stack {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

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
	"slices"
	"strings"
)

// TokenKind classifies the tokens consumed by the interpreter.
type TokenKind int

// These are the token kinds produced by the scanner.
const (
	NumberToken TokenKind = iota + 1
	StringToken
	BooleanToken
	SymbolToken
	VectorStart
	VectorEnd
	GuardSeparator
	LineBreak
	CodeBlockStart
	CodeBlockEnd
)

func (k TokenKind) String() string {
	switch k {
	case NumberToken:
		return "number"
	case StringToken:
		return "string"
	case BooleanToken:
		return "boolean"
	case SymbolToken:
		return "symbol"
	case VectorStart:
		return "vector start"
	case VectorEnd:
		return "vector end"
	case GuardSeparator:
		return "guard separator"
	case LineBreak:
		return "line break"
	case CodeBlockStart:
		return "code block start"
	case CodeBlockEnd:
		return "code block end"
	default:
		return "invalid token"
	}
}

// Token is one element of a program.  Text holds the literal source for
// numbers and symbols, the decoded contents for strings, and "TRUE" or
// "FALSE" for booleans.
type Token struct {
	Kind TokenKind
	Text string
}

// Num returns a number token.
func Num(text string) Token { return Token{Kind: NumberToken, Text: text} }

// Str returns a string token.
func Str(text string) Token { return Token{Kind: StringToken, Text: text} }

// Bool returns a boolean token.
func Bool(b bool) Token {
	if b {
		return Token{Kind: BooleanToken, Text: "TRUE"}
	}
	return Token{Kind: BooleanToken, Text: "FALSE"}
}

// Sym returns a symbol token.
func Sym(name string) Token { return Token{Kind: SymbolToken, Text: name} }

// Punct returns a token of the given structural kind.
func Punct(kind TokenKind) Token { return Token{Kind: kind} }

// String returns the source form of the token.
func (t Token) String() string {
	switch t.Kind {
	case StringToken:
		return quoteString(t.Text)
	case VectorStart:
		return "["
	case VectorEnd:
		return "]"
	case GuardSeparator, CodeBlockStart:
		return ":"
	case CodeBlockEnd:
		return ";"
	case LineBreak:
		return "\n"
	default:
		return t.Text
	}
}

// FormatTokens renders tokens as source text which scans back into the
// same tokens.
//
// A ':' only opens a code block if the next ':' or ';' is a ';'.  Code
// blocks containing a ':' of their own are therefore written as bracket
// groups, which execute as the same code block.
func FormatTokens(tokens []Token) string {
	text := make([]string, len(tokens))
	for i, t := range tokens {
		text[i] = t.String()
	}
	for i, t := range tokens {
		if t.Kind != CodeBlockStart {
			continue
		}
		j, err := matchGroup(tokens, i)
		if err != nil {
			continue
		}
		if slices.ContainsFunc(tokens[i+1:j], func(t Token) bool {
			return t.Kind == GuardSeparator || t.Kind == CodeBlockStart
		}) {
			text[i], text[j] = "[", "]"
		}
	}

	var b strings.Builder
	atLineStart := true
	for i, t := range tokens {
		if t.Kind == LineBreak {
			b.WriteByte('\n')
			atLineStart = true
			continue
		}
		if !atLineStart {
			b.WriteByte(' ')
		}
		b.WriteString(text[i])
		atLineStart = false
	}
	return b.String()
}

// splitLines splits tokens at top-level line breaks.  Empty lines are
// dropped.
func splitLines(tokens []Token) [][]Token {
	var lines [][]Token
	depth := 0
	start := 0
	for i, t := range tokens {
		switch t.Kind {
		case VectorStart, CodeBlockStart:
			depth++
		case VectorEnd, CodeBlockEnd:
			depth--
		case LineBreak:
			if depth == 0 {
				if i > start {
					lines = append(lines, tokens[start:i])
				}
				start = i + 1
			}
		}
	}
	if start < len(tokens) {
		lines = append(lines, tokens[start:])
	}
	return lines
}

// matchGroup returns the index of the token which closes the group opened
// at tokens[start].
func matchGroup(tokens []Token, start int) (int, error) {
	var open []TokenKind
	for i := start; i < len(tokens); i++ {
		switch k := tokens[i].Kind; k {
		case VectorStart, CodeBlockStart:
			open = append(open, k)
		case VectorEnd, CodeBlockEnd:
			want := VectorStart
			if k == CodeBlockEnd {
				want = CodeBlockStart
			}
			if len(open) == 0 || open[len(open)-1] != want {
				return 0, errorf(SyntaxError, "unexpected %s", k)
			}
			open = open[:len(open)-1]
			if len(open) == 0 {
				return i, nil
			}
		}
	}
	return 0, errorf(SyntaxError, "unterminated %s", tokens[start].Kind)
}

// checkBalanced verifies that all groups in tokens are properly nested.
func checkBalanced(tokens []Token) error {
	for i := 0; i < len(tokens); i++ {
		switch k := tokens[i].Kind; k {
		case VectorStart, CodeBlockStart:
			j, err := matchGroup(tokens, i)
			if err != nil {
				return err
			}
			i = j
		case VectorEnd, CodeBlockEnd:
			return errorf(SyntaxError, "unexpected %s", k)
		}
	}
	return nil
}

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
	"io"
	"strings"
	"unicode"

	"seehuhn.de/go/ajisai/fraction"
)

// Scanner splits source text into tokens.
type Scanner struct {
	Line int // 0-based
	Col  int // 0-based

	src []rune
	pos int
}

// NewScanner returns a scanner reading from src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: []rune(src)}
}

// Scan converts source text into a token stream.  Runs of line breaks are
// collapsed, and leading and trailing line breaks are dropped.
func Scan(src string) ([]Token, error) {
	s := NewScanner(src)
	var tokens []Token
	for {
		t, err := s.ScanToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if t.Kind == LineBreak && (len(tokens) == 0 || tokens[len(tokens)-1].Kind == LineBreak) {
			continue
		}
		tokens = append(tokens, t)
	}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == LineBreak {
		tokens = tokens[:n-1]
	}
	return tokens, nil
}

// ScanToken returns the next token, or io.EOF at the end of the input.
func (s *Scanner) ScanToken() (Token, error) {
	s.skipSpace()
	r, ok := s.peek()
	if !ok {
		return Token{}, io.EOF
	}
	switch r {
	case '\n':
		s.skip()
		return Punct(LineBreak), nil
	case '[', '{', '(':
		s.skip()
		return Punct(VectorStart), nil
	case ']', '}', ')':
		s.skip()
		return Punct(VectorEnd), nil
	case ';':
		s.skip()
		return Punct(CodeBlockEnd), nil
	case ':':
		s.skip()
		if s.opensCodeBlock() {
			return Punct(CodeBlockStart), nil
		}
		return Punct(GuardSeparator), nil
	case '\'', '"':
		return s.scanString()
	}

	var word []rune
	for {
		r, ok := s.peek()
		if !ok || isDelimiter(r) {
			break
		}
		s.skip()
		word = append(word, r)
	}
	return classifyWord(string(word)), nil
}

func classifyWord(word string) Token {
	upper := strings.ToUpper(word)
	switch upper {
	case "TRUE":
		return Bool(true)
	case "FALSE":
		return Bool(false)
	}
	if _, err := fraction.Parse(word); err == nil {
		return Num(word)
	}
	return Sym(upper)
}

// opensCodeBlock decides whether the ':' just consumed starts a code block.
// This is the case if the next ':' or ';' in the input is a ';'.
func (s *Scanner) opensCodeBlock() bool {
	var quote rune
	comment, escaped := false, false
	for _, r := range s.src[s.pos:] {
		switch {
		case comment:
			if r == '\n' {
				comment = false
			}
		case escaped:
			escaped = false
		case quote != 0:
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '#':
			comment = true
		case r == ':':
			return false
		case r == ';':
			return true
		}
	}
	return false
}

func (s *Scanner) scanString() (Token, error) {
	line, col := s.Line, s.Col
	quote, _ := s.peek()
	s.skip()
	var res []rune
	for {
		r, ok := s.peek()
		if !ok {
			return Token{}, errorf(SyntaxError, "%d:%d: unterminated string", line+1, col+1)
		}
		s.skip()
		switch r {
		case quote:
			return Str(string(res)), nil
		case '\\':
			r, ok = s.peek()
			if !ok {
				return Token{}, errorf(SyntaxError, "%d:%d: unterminated string", line+1, col+1)
			}
			s.skip()
			switch r {
			case 'n':
				res = append(res, '\n')
			case 't':
				res = append(res, '\t')
			case 'r':
				res = append(res, '\r')
			default:
				res = append(res, r)
			}
		default:
			res = append(res, r)
		}
	}
}

// skipSpace skips white space other than newlines, and comments.
func (s *Scanner) skipSpace() {
	for {
		r, ok := s.peek()
		if !ok {
			return
		}
		switch {
		case r == '#':
			for {
				r, ok := s.peek()
				if !ok || r == '\n' {
					break
				}
				s.skip()
			}
		case r != '\n' && unicode.IsSpace(r):
			s.skip()
		default:
			return
		}
	}
}

func (s *Scanner) peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *Scanner) skip() {
	if s.src[s.pos] == '\n' {
		s.Line++
		s.Col = 0
	} else {
		s.Col++
	}
	s.pos++
}

func isDelimiter(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '[', ']', '{', '}', '(', ')', '\'', '"', ':', ';', '#':
		return true
	}
	return false
}

// Incomplete reports whether src ends inside a string or an unclosed
// bracket group, so that an interactive host should read more input.
func Incomplete(src string) bool {
	s := NewScanner(src)
	depth := 0
	for {
		t, err := s.ScanToken()
		if err == io.EOF {
			return depth > 0
		} else if err != nil {
			return s.pos >= len(s.src)
		}
		switch t.Kind {
		case VectorStart, CodeBlockStart:
			depth++
		case VectorEnd, CodeBlockEnd:
			depth--
		}
	}
}

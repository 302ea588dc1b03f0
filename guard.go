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
)

// GuardBranch is one condition/action pair of a guard clause.
type GuardBranch struct {
	Condition []Token
	Action    []Token
}

// GuardClause is the parsed form of a line
//
//	cond1 : action1 : cond2 : action2 : ... : default
//
// The branches are tried in order.  The action of the first branch whose
// condition gives a true value is executed; if no condition holds, the
// default is executed.
type GuardClause struct {
	Branches []GuardBranch
	Default  []Token
}

// isGuard reports whether line contains a top-level guard separator.
func isGuard(line []Token) bool {
	depth := 0
	for _, t := range line {
		switch t.Kind {
		case VectorStart, CodeBlockStart:
			depth++
		case VectorEnd, CodeBlockEnd:
			depth--
		case GuardSeparator:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// ParseGuard splits a line at its top-level guard separators.  A segment
// which consists of a single bracket group stands for the contents of the
// group.
func ParseGuard(line []Token) (*GuardClause, error) {
	var segments [][]Token
	depth, start := 0, 0
	for i, t := range line {
		switch t.Kind {
		case VectorStart, CodeBlockStart:
			depth++
		case VectorEnd, CodeBlockEnd:
			depth--
		case GuardSeparator:
			if depth == 0 {
				segments = append(segments, line[start:i])
				start = i + 1
			}
		}
	}
	segments = append(segments, line[start:])
	if len(segments) < 2 {
		return nil, errorf(SyntaxError, "not a guard clause")
	}

	for i, seg := range segments {
		inner, err := unwrapGroup(seg)
		if err != nil {
			return nil, err
		}
		segments[i] = inner
	}

	if len(segments)%2 == 0 {
		return nil, errorf(SyntaxError, "guard clause has no default")
	}
	clause := &GuardClause{}
	last := len(segments) - 1
	for i := 0; i < last; i += 2 {
		if len(segments[i]) == 0 {
			return nil, errorf(SyntaxError, "guard clause: empty condition in branch %d", i/2+1)
		}
		clause.Branches = append(clause.Branches, GuardBranch{
			Condition: segments[i],
			Action:    segments[i+1],
		})
	}
	if len(segments[last]) == 0 {
		return nil, errorf(SyntaxError, "guard clause: empty default")
	}
	clause.Default = segments[last]
	return clause, nil
}

// unwrapGroup returns the contents of seg if seg is a single bracket
// group, and seg itself otherwise.
func unwrapGroup(seg []Token) ([]Token, error) {
	if len(seg) < 2 {
		return seg, nil
	}
	switch seg[0].Kind {
	case VectorStart, CodeBlockStart:
		end, err := matchGroup(seg, 0)
		if err != nil {
			return nil, err
		}
		if end == len(seg)-1 {
			return seg[1:end], nil
		}
	}
	return seg, nil
}

// executeGuard runs a guard clause against the current stack.
func (intp *Interpreter) executeGuard(clause *GuardClause) error {
	for _, br := range clause.Branches {
		ok, err := intp.condition(br.Condition)
		if err != nil {
			return err
		}
		if ok {
			return intp.executeBody(br.Action)
		}
	}
	return intp.executeBody(clause.Default)
}

// condition evaluates a guard condition, which must add exactly one value
// to the stack.  The value is removed again.  On error the stack is
// restored.
func (intp *Interpreter) condition(cond []Token) (bool, error) {
	saved := slices.Clone(intp.Stack)
	err := intp.executeBody(cond)
	if err == nil && len(intp.Stack) != len(saved)+1 {
		err = errorf(Custom, "condition must produce a value")
	}
	if err != nil {
		intp.Stack = saved
		return false, err
	}
	v := intp.Stack[len(intp.Stack)-1]
	intp.Stack = intp.Stack[:len(intp.Stack)-1]
	return v.Truthy(), nil
}

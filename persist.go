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
	"fmt"
	"log/slog"
	"strings"
)

// WordRecord is the persisted form of a user-defined word.  Definition is
// source text which scans back into the body of the word.
type WordRecord struct {
	Name        string `json:"name"`
	Definition  string `json:"definition"`
	Description string `json:"description,omitempty"`
}

// ExportWords returns the user-defined words.  Every word comes after the
// words it depends on, so that the records can be imported in order.
func (intp *Interpreter) ExportWords() []WordRecord {
	var res []WordRecord
	done := map[string]bool{}
	var visit func(def *WordDefinition)
	visit = func(def *WordDefinition) {
		if done[def.Name] {
			return
		}
		done[def.Name] = true
		for _, dep := range def.Dependencies {
			if d, ok := intp.Dict.Lookup(dep); ok && d.Kind == CustomWord {
				visit(d)
			}
		}
		res = append(res, WordRecord{
			Name:        def.Name,
			Definition:  def.Source(),
			Description: def.Description,
		})
	}
	for _, def := range intp.Dict.Words() {
		visit(def)
	}
	return res
}

// ImportWords defines the given words.  Existing words of the same names
// are replaced.  Either all records are imported, or, on error, the
// dictionary is left unchanged.
func (intp *Interpreter) ImportWords(records []WordRecord) error {
	d := intp.Dict.Clone()
	type parsed struct {
		name  string
		lines [][]Token
		desc  string
	}
	words := make([]parsed, 0, len(records))
	for _, r := range records {
		name := strings.ToUpper(strings.TrimSpace(r.Name))
		if !validName(name) {
			return errorf(TypeError, "invalid word name %q", r.Name)
		}
		tokens, err := Scan(r.Definition)
		if err == nil {
			err = checkBalanced(tokens)
		}
		if err != nil {
			return fmt.Errorf("word %s: %w", name, err)
		}
		words = append(words, parsed{name, splitLines(tokens), r.Description})
	}

	// The second pass records dependencies on words which were defined
	// later in the list.
	for range 2 {
		for _, w := range words {
			if _, err := d.Define(w.name, w.lines, w.desc, true); err != nil {
				return fmt.Errorf("word %s: %w", w.name, err)
			}
		}
	}
	intp.Dict = d
	intp.logf(slog.LevelInfo, "imported words", "count", len(words))
	return nil
}

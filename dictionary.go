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
	"maps"
	"slices"
	"strings"
)

// WordKind distinguishes builtin from user-defined words.
type WordKind int

// These are the kinds of dictionary entries.
const (
	BuiltinWord WordKind = iota
	CustomWord
)

type builtin func(*Interpreter) error

// WordDefinition is a dictionary entry.
//
// Custom words hold their body as lines of tokens, which are executed in
// order.  Dependencies lists the custom words called by the body.
// Definitions are never modified after they have been entered into the
// dictionary.
type WordDefinition struct {
	Name         string
	Kind         WordKind
	Lines        [][]Token
	Description  string
	Dependencies []string

	fn       builtin
	modifier bool // mode words leave the execution modes in place
}

// Source returns the body of a custom word as source text.
func (def *WordDefinition) Source() string {
	parts := make([]string, len(def.Lines))
	for i, line := range def.Lines {
		parts[i] = FormatTokens(line)
	}
	return strings.Join(parts, "\n")
}

// Dictionary maps word names to definitions.  Besides the forward edges
// stored in each definition, the dictionary keeps the reverse edges, so
// that the users of a word can be found without a scan.
type Dictionary struct {
	builtins   map[string]*WordDefinition
	words      map[string]*WordDefinition
	dependents map[string]map[string]struct{}
}

// NewDictionary returns a dictionary holding only the builtin words.
func NewDictionary() *Dictionary {
	return &Dictionary{
		builtins:   makeBuiltins(),
		words:      map[string]*WordDefinition{},
		dependents: map[string]map[string]struct{}{},
	}
}

// Lookup finds the definition of a word.
func (d *Dictionary) Lookup(name string) (*WordDefinition, bool) {
	if def, ok := d.builtins[name]; ok {
		return def, true
	}
	def, ok := d.words[name]
	return def, ok
}

// IsBuiltin reports whether name is a builtin word.
func (d *Dictionary) IsBuiltin(name string) bool {
	_, ok := d.builtins[name]
	return ok
}

// Dependents returns the custom words which call name, in sorted order.
func (d *Dictionary) Dependents(name string) []string {
	return slices.Sorted(maps.Keys(d.dependents[name]))
}

// Words returns all custom words, sorted by name.
func (d *Dictionary) Words() []*WordDefinition {
	res := make([]*WordDefinition, 0, len(d.words))
	for _, name := range slices.Sorted(maps.Keys(d.words)) {
		res = append(res, d.words[name])
	}
	return res
}

// Builtins returns the names of all builtin words, in sorted order.
func (d *Dictionary) Builtins() []string {
	return slices.Sorted(maps.Keys(d.builtins))
}

// Define adds or replaces the custom word name.
//
// Redefining a word which is used by other custom words fails with a
// ProtectedWord error, unless force is set.  In this case the names of the
// affected words are returned.  On error the dictionary is unchanged.
func (d *Dictionary) Define(name string, lines [][]Token, description string, force bool) ([]string, error) {
	if name == "" {
		return nil, errorf(TypeError, "DEF: empty word name")
	}
	if d.IsBuiltin(name) {
		return nil, errProtected(name, nil)
	}
	var affected []string
	if _, exists := d.words[name]; exists {
		affected = d.Dependents(name)
		if len(affected) > 0 && !force {
			return nil, errProtected(name, affected)
		}
	}

	deps := map[string]struct{}{}
	for _, line := range lines {
		for _, t := range line {
			if t.Kind != SymbolToken || t.Text == name {
				continue
			}
			if _, ok := d.words[t.Text]; ok {
				deps[t.Text] = struct{}{}
			}
		}
	}

	def := &WordDefinition{
		Name:         name,
		Kind:         CustomWord,
		Lines:        lines,
		Description:  description,
		Dependencies: slices.Sorted(maps.Keys(deps)),
	}
	if old, exists := d.words[name]; exists {
		d.unlink(old)
	}
	d.words[name] = def
	d.link(def)
	return affected, nil
}

// Delete removes the custom word name.
//
// Deleting a word which is used by other custom words fails with a
// ProtectedWord error, unless force is set.  In this case the dependency
// edges of the affected words are removed as well, and their names are
// returned.  On error the dictionary is unchanged.
func (d *Dictionary) Delete(name string, force bool) ([]string, error) {
	if d.IsBuiltin(name) {
		return nil, errProtected(name, nil)
	}
	def, ok := d.words[name]
	if !ok {
		return nil, errUnknown(name)
	}
	affected := d.Dependents(name)
	if len(affected) > 0 && !force {
		return nil, errProtected(name, affected)
	}

	for _, user := range affected {
		old := d.words[user]
		updated := *old
		updated.Dependencies = slices.DeleteFunc(slices.Clone(old.Dependencies), func(dep string) bool {
			return dep == name
		})
		d.words[user] = &updated
	}
	d.unlink(def)
	delete(d.dependents, name)
	delete(d.words, name)
	return affected, nil
}

// Reset removes all custom words.
func (d *Dictionary) Reset() {
	d.words = map[string]*WordDefinition{}
	d.dependents = map[string]map[string]struct{}{}
}

// Clone returns an independent copy of the dictionary.
func (d *Dictionary) Clone() *Dictionary {
	res := &Dictionary{
		builtins:   d.builtins,
		words:      maps.Clone(d.words),
		dependents: make(map[string]map[string]struct{}, len(d.dependents)),
	}
	for name, users := range d.dependents {
		res.dependents[name] = maps.Clone(users)
	}
	return res
}

func (d *Dictionary) link(def *WordDefinition) {
	for _, dep := range def.Dependencies {
		users := d.dependents[dep]
		if users == nil {
			users = map[string]struct{}{}
			d.dependents[dep] = users
		}
		users[def.Name] = struct{}{}
	}
}

func (d *Dictionary) unlink(def *WordDefinition) {
	for _, dep := range def.Dependencies {
		users := d.dependents[dep]
		delete(users, def.Name)
		if len(users) == 0 {
			delete(d.dependents, dep)
		}
	}
}

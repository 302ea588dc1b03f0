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
)

func dictionaryWords() map[string]builtinInfo {
	return map[string]builtinInfo{
		"DEF":   {desc: "body 'NAME' ['description'] DEF : define a word", fn: builtinDef},
		"DEL":   {desc: "'NAME' DEL : delete a word", fn: builtinDel},
		"?":     {desc: "'NAME' ? : show the definition of a word", fn: builtinLookup},
		"WORDS": {desc: "WORDS : list the user-defined words", fn: builtinWords},
		"RESET": {desc: "RESET : clear the stack and delete all user-defined words",
			fn: func(intp *Interpreter) error {
				if err := intp.stackTopOnly("RESET"); err != nil {
					return err
				}
				intp.Reset()
				return nil
			}},
	}
}

func builtinDef(intp *Interpreter) error {
	if err := intp.stackTopOnly("DEF"); err != nil {
		return err
	}
	force := intp.force
	intp.force = false
	if err := intp.need("DEF", 2); err != nil {
		return err
	}

	n := len(intp.Stack)
	nargs := 2
	description := ""
	if n >= 3 && intp.Stack[n-1].IsString() && intp.Stack[n-2].IsString() && isBody(intp.Stack[n-3]) {
		nargs = 3
		description, _ = intp.Stack[n-1].AsString()
	}
	body := intp.Stack[n-nargs]
	name, err := wordName("DEF", intp.Stack[n-nargs+1])
	if err != nil {
		return err
	}
	lines, err := bodyLines("DEF", body)
	if err != nil {
		return err
	}

	affected, err := intp.Dict.Define(name, lines, description, force)
	if err != nil {
		return err
	}
	if len(affected) > 0 {
		intp.warnf("%s redefined, affects %s", name, strings.Join(affected, ", "))
	}
	intp.commit(nargs)
	return nil
}

func builtinDel(intp *Interpreter) error {
	if err := intp.stackTopOnly("DEL"); err != nil {
		return err
	}
	force := intp.force
	intp.force = false
	if err := intp.need("DEL", 1); err != nil {
		return err
	}
	name, err := wordName("DEL", intp.Stack[len(intp.Stack)-1])
	if err != nil {
		return err
	}
	affected, err := intp.Dict.Delete(name, force)
	if err != nil {
		return err
	}
	if len(affected) > 0 {
		intp.warnf("%s deleted, affects %s", name, strings.Join(affected, ", "))
	}
	intp.commit(1)
	return nil
}

func builtinLookup(intp *Interpreter) error {
	if err := intp.stackTopOnly("?"); err != nil {
		return err
	}
	if err := intp.need("?", 1); err != nil {
		return err
	}
	name, err := wordName("?", intp.Stack[len(intp.Stack)-1])
	if err != nil {
		return err
	}
	def, ok := intp.Dict.Lookup(name)
	if !ok {
		return errUnknown(name)
	}
	if def.Kind == BuiltinWord {
		intp.println(def.Description)
	} else {
		intp.println(def.Source())
		if def.Description != "" {
			intp.println("# " + def.Description)
		}
	}
	intp.commit(1)
	return nil
}

func builtinWords(intp *Interpreter) error {
	if err := intp.stackTopOnly("WORDS"); err != nil {
		return err
	}
	for _, def := range intp.Dict.Words() {
		if def.Description != "" {
			intp.println(def.Name + " # " + def.Description)
		} else {
			intp.println(def.Name)
		}
	}
	return nil
}

// isBody reports whether v can be used as the body of a word.
func isBody(v Value) bool {
	return v.IsCode() || v.IsVector() && !v.IsString()
}

// wordName extracts a word name from a string value.  Names are
// upper-cased and must scan as a single symbol.
func wordName(word string, v Value) (string, error) {
	s, ok := v.AsString()
	if !ok || !v.IsString() {
		return "", errType(word, "string", v)
	}
	name := strings.ToUpper(strings.TrimSpace(s))
	if !validName(name) {
		return "", errorf(TypeError, "%s: invalid word name %q", word, s)
	}
	return name, nil
}

func validName(name string) bool {
	tokens, err := Scan(name)
	return err == nil && len(tokens) == 1 &&
		tokens[0].Kind == SymbolToken && tokens[0].Text == name
}

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

import "log/slog"

// Option configures an Interpreter.
type Option interface{ apply(intp *Interpreter) }

var defaultOptions = []Option{
	withNoChangeCheck(true),
	withMaxCallDepth(1000),
}

// WithLogger sets the logger used for tracing.  A nil logger disables
// logging.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger} }

// WithNoChangeCheck controls whether structural operations whose result
// equals their input fail with a NoChange error.
func WithNoChangeCheck(enabled bool) Option { return withNoChangeCheck(enabled) }

// WithMaxCallDepth limits the nesting of custom word calls.
func WithMaxCallDepth(n int) Option { return withMaxCallDepth(n) }

type loggerOption struct{ *slog.Logger }
type withNoChangeCheck bool
type withMaxCallDepth int

func (o loggerOption) apply(intp *Interpreter) {
	intp.logger = o.Logger
}

func (check withNoChangeCheck) apply(intp *Interpreter) {
	intp.noChangeCheck = bool(check)
}

func (n withMaxCallDepth) apply(intp *Interpreter) {
	if n < 1 {
		n = 1
	}
	intp.maxCallDepth = int(n)
}

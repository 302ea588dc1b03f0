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

// Ajisai runs programs written in the ajisai language.
//
// Usage:
//
//	ajisai [-trace] [-no-change-check=false] [-e code] [file ...]
//
// With -e the given code is executed.  Files given on the command line are
// executed concurrently, each by its own interpreter; their output is
// printed in command line order.  Otherwise the program reads from standard
// input, interactively if standard input is a terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"seehuhn.de/go/ajisai"
)

const (
	historyFile = ".ajisai_history"
	promptMain  = "> "
	promptCont  = ". "
)

func main() {
	trace := flag.Bool("trace", false, "log every word call to standard error")
	code := flag.String("e", "", "execute `code` and print the resulting stack")
	noChange := flag.Bool("no-change-check", true, "report structural operations which have no effect")
	flag.Parse()

	var logger *slog.Logger
	if *trace {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	opts := []ajisai.Option{
		ajisai.WithLogger(logger),
		ajisai.WithNoChangeCheck(*noChange),
	}

	var status int
	switch {
	case *code != "":
		status = runCode(*code, opts)
	case flag.NArg() > 0:
		status = runFiles(context.Background(), flag.Args(), opts)
	case term.IsTerminal(int(os.Stdin.Fd())):
		status = repl(opts)
	default:
		status = runLines(os.Stdin, opts)
	}
	os.Exit(status)
}

func runCode(code string, opts []ajisai.Option) int {
	intp := ajisai.NewInterpreter(opts...)
	res := intp.Exec(code)
	fmt.Print(res.Output)
	if res.Err != nil {
		fmt.Fprintln(os.Stderr, "error:", res.Err)
		return 1
	}
	fmt.Println(intp.StackString())
	return 0
}

// runFiles executes each file in its own interpreter.  The first failure
// cancels the remaining files.
func runFiles(ctx context.Context, files []string, opts []ajisai.Option) int {
	outputs := make([]strings.Builder, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	for i, name := range files {
		eg.Go(func() error {
			src, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			tokens, err := ajisai.Scan(string(src))
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			intp := ajisai.NewInterpreter(opts...)
			run, err := intp.Start(tokens)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			err = run.Finish(ctx)
			outputs[i].WriteString(intp.Output())
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	err := eg.Wait()
	for i := range outputs {
		fmt.Print(outputs[i].String())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// runLines executes piped input one complete chunk at a time.
func runLines(r io.Reader, opts []ajisai.Option) int {
	intp := ajisai.NewInterpreter(opts...)
	status := 0
	var buf strings.Builder
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(lines.Text())
		if ajisai.Incomplete(buf.String()) {
			continue
		}
		res := intp.Exec(buf.String())
		buf.Reset()
		fmt.Print(res.Output)
		if res.Err != nil {
			fmt.Fprintln(os.Stderr, "error:", res.Err)
			status = 1
		}
	}
	if err := lines.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	if buf.Len() > 0 {
		fmt.Fprintln(os.Stderr, "error: incomplete input at end of file")
		return 1
	}
	fmt.Println(intp.StackString())
	return status
}

func repl(opts []ajisai.Option) int {
	fmt.Println("ajisai - Ctrl+C cancels input, Ctrl+D exits.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	intp := ajisai.NewInterpreter(opts...)
	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		res := intp.Exec(code)
		fmt.Print(res.Output)
		if res.Err != nil {
			fmt.Fprintln(os.Stderr, "error:", res.Err)
		}
		fmt.Println(intp.StackString())
	}
}

// readInput reads lines until they form a complete chunk of code.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		} else if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !ajisai.Incomplete(b.String()) {
			return b.String(), true
		}
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apexforge/afns/internal/session"
	"github.com/peterh/liner"
)

// runREPL is a thin liner-backed line editor over session.Run: since the
// AFNS lexer/parser is an external collaborator (spec.md Non-goals), this
// REPL cannot itself turn a typed snippet into an *ast.File — it exists to
// carry the interactive-session UX (history, line editing, completion)
// that a real front end would plug into, grounded on the teacher's
// internal/repl.REPL.Start.
func runREPL(trace bool) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".afns_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(in string) (c []string) {
		if !strings.HasPrefix(in, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":trace"} {
			if strings.HasPrefix(cmd, in) {
				c = append(c, cmd)
			}
		}
		return c
	})

	fmt.Printf("%s %s\n", bold("afns"), bold("dev"))
	fmt.Println("Type :help for help, :quit to exit")
	fmt.Println()

	for {
		input, err := line.Prompt("afns> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if handleREPLCommand(input) {
				break
			}
			continue
		}

		evalSnippet(input, trace)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func handleREPLCommand(cmd string) (quit bool) {
	switch {
	case cmd == ":quit" || cmd == ":q":
		fmt.Println(green("Goodbye!"))
		return true
	case cmd == ":trace":
		fmt.Println("Tracing is set via --trace at startup")
		return false
	case cmd == ":help" || cmd == ":h":
		fmt.Println("REPL commands:")
		fmt.Println("  :help, :h     Show this help")
		fmt.Println("  :quit, :q     Exit the REPL")
		return false
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		return false
	}
}

// evalSnippet parses and runs a single REPL line via the same ParseFunc
// the `run` command uses — it will fail clearly until a front end is
// wired (see main.go:parseSource), matching the teacher's own repl.go
// TODO markers for out-of-scope pipeline stages.
func evalSnippet(src string, trace bool) {
	tmp, err := os.CreateTemp("", "afns-repl-*.afml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(src); err != nil {
		tmp.Close()
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return
	}
	tmp.Close()

	sess := session.New(session.Options{Parse: parseSource})
	result, err := sess.Run(tmp.Name())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return
	}
	if trace {
		traceDump(src, result)
	}
	fmt.Printf("%s %s\n", cyan("=>"), result.String())
}

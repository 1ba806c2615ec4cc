// Command tram runs tram scripts and provides an interactive REPL.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/MoonBarc/tram"
)

const (
	appName     = "tram"
	historyFile = ".tram_history"
	promptMain  = ">> "
	promptCont  = ".. "
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func cyan(s string) string { return "\x1b[36m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		// Bare invocation drops into the REPL, like the original tool.
		os.Exit(cmdRepl())
	}
	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(tram.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`tram %s

Usage:
  %s run <file.tram>    Run a script.
  %s repl               Start the REPL (also the default).
  %s version            Print the version.
`, tram.Version, appName, appName, appName)
}

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.tram>\n", appName)
		return 2
	}
	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := tram.NewInterpreter()
	if _, err := ip.EvalSource(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, red(tram.WrapErrorWithName(err, file, string(src)).Error()))
		return 1
	}
	return 0
}

func cmdRepl() int {
	fmt.Printf("tram %s REPL — Ctrl+D exits\n", tram.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := tram.NewInterpreter()
	for {
		code, ok := readChunk(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(code) == "" {
			continue
		}

		v, err := ip.EvalPersistentSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(tram.WrapErrorWithSource(err, code).Error()))
			continue
		}
		fmt.Println(cyan(tram.FormatValue(v)))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readChunk reads lines until they parse, or until the parse fails for a
// reason more input cannot fix. Returns false on EOF.
func readChunk(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := tram.Parse(src); perr == nil || !tram.IsIncomplete(perr) {
			return src, true
		}
	}
}

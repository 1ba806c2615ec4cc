// interpreter.go — the public API surface of the tram engine.
//
// Evaluation happens in environments (*Env) forming a lexical chain. Every
// interpreter owns two well-known frames:
//
//   - Core: builtins and registered natives; parent of Global.
//   - Global: persistent program state (top-level lets, REPL bindings).
//
// The entry points differ only in which environment they target:
//
//   - EvalSource runs in a fresh child of Global, so bindings made by the
//     program land in a throwaway frame (one-shot script execution).
//   - EvalPersistentSource runs in Global itself, so `let` survives between
//     calls (REPL-style).
//
// Both return (Value, error); on failure the error is a *LexError,
// *ParseError, or *RuntimeError carrying a 1-based line and 0-based column.
// The engine never prints: rendering diagnostics (see WrapErrorWithSource)
// and choosing an exit status is the driver's job.
package tram

import (
	"fmt"
	"io"
	"os"
)

// Version of the tram language and engine.
const Version = "0.2.0"

// RuntimeErrKind classifies execution-time failures.
type RuntimeErrKind int

const (
	ErrTypeMismatch RuntimeErrKind = iota
	ErrUndefinedVariable
	ErrDivisionByZero
	ErrNotCallable
	ErrArityMismatch
	ErrStackOverflow
)

func (k RuntimeErrKind) String() string {
	switch k {
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrUndefinedVariable:
		return "undefined variable"
	case ErrDivisionByZero:
		return "division by zero"
	case ErrNotCallable:
		return "not callable"
	case ErrArityMismatch:
		return "arity mismatch"
	case ErrStackOverflow:
		return "stack overflow"
	default:
		return "runtime error"
	}
}

// RuntimeError is an execution-time failure at a source position. It is
// raised at the point of violation and propagates through every enclosing
// evaluation frame; the language has no catch construct, so it always
// reaches the Eval* caller whole.
type RuntimeError struct {
	Kind RuntimeErrKind
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Interpreter evaluates tram programs. Construct with NewInterpreter; a
// zero Interpreter is not usable. Instances are single-threaded; hosts that
// want parallel evaluation run one independent Interpreter per goroutine.
type Interpreter struct {
	Core   *Env // builtins; parent of Global
	Global *Env // persistent program state

	// Stdout receives the output of the print builtin. Defaults to
	// os.Stdout.
	Stdout io.Writer

	depth int // live call depth, guarded by maxCallDepth
}

// NewInterpreter returns an engine with all standard builtins installed in
// Core and an empty Global.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{Stdout: os.Stdout}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	registerCoreBuiltins(ip)
	registerMathBuiltins(ip)
	return ip
}

// Register installs a native function into Core under name. The native
// declares a fixed arity; the evaluator checks it and evaluates arguments
// left to right exactly as for user-defined functions. Registration must
// happen before the script runs for the name to be visible; NewInterpreter
// performs the standard registrations itself.
func (ip *Interpreter) Register(name string, arity int, impl NativeImpl) {
	ip.Core.Define(name, FunVal(&Fun{
		NativeName: name,
		Native:     impl,
		nativeArgs: arity,
	}))
}

// EvalSource parses and evaluates src in a fresh child of Global.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Nil, err
	}
	return ip.run(prog, NewEnv(ip.Global))
}

// EvalPersistentSource parses and evaluates src in Global, so bindings
// persist across calls (REPL semantics).
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Nil, err
	}
	return ip.run(prog, ip.Global)
}

// eval.go — the tree-walking evaluator.
//
// eval is a pure function of (node, environment); the only state on the
// Interpreter is the call-depth counter. Runtime failures are signalled by
// panicking with a *RuntimeError and recovered exactly once, in run; no
// error value threads through the walk. A panic with anything other than a
// *RuntimeError is a bug in the evaluator and is re-raised.
package tram

import (
	"fmt"
	"math"
)

// maxCallDepth bounds tram-level call nesting so runaway recursion surfaces
// as a StackOverflow runtime error instead of exhausting the Go stack.
const maxCallDepth = 10000

func throw(kind RuntimeErrKind, n Node, format string, args ...any) {
	line, col := n.Pos()
	panic(&RuntimeError{Kind: kind, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)})
}

// run evaluates a parsed program in env, converting the evaluator's panic
// discipline back into an ordinary error return.
func (ip *Interpreter) run(prog *Program, env *Env) (out Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			rte, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			out, err = Nil, rte
		}
	}()
	ip.depth = 0
	return ip.evalStmts(prog.Stmts, env), nil
}

// evalStmts evaluates a statement sequence and yields the last statement's
// value; Nil for an empty sequence. Let statements evaluate to Nil, which
// gives blocks ending in a declaration their nil value for free.
func (ip *Interpreter) evalStmts(stmts []Node, env *Env) Value {
	out := Nil
	for _, s := range stmts {
		out = ip.eval(s, env)
	}
	return out
}

// eval dispatches over the closed node set. Every variant of ast.go must be
// handled here; the default case panics so a missed variant is caught by the
// first test that exercises it rather than silently misbehaving.
func (ip *Interpreter) eval(n Node, env *Env) Value {
	switch n := n.(type) {
	case *Program:
		return ip.evalStmts(n.Stmts, env)

	case *Literal:
		switch v := n.Value.(type) {
		case nil:
			return Nil
		case bool:
			return BoolVal(v)
		case int64:
			return IntVal(v)
		case float64:
			return NumVal(v)
		case string:
			return StrVal(v)
		default:
			panic(fmt.Sprintf("unhandled literal payload %T", n.Value))
		}

	case *Ident:
		v, ok := env.Get(n.Name)
		if !ok {
			throw(ErrUndefinedVariable, n, "undefined variable: %s", n.Name)
		}
		return v

	case *Unary:
		return ip.evalUnary(n, env)

	case *Binary:
		return ip.evalBinary(n, env)

	case *Logical:
		left := ip.eval(n.Left, env)
		if n.Op == ANDAND {
			if !left.Truthy() {
				return left
			}
		} else { // OROR
			if left.Truthy() {
				return left
			}
		}
		return ip.eval(n.Right, env)

	case *Assign:
		v := ip.eval(n.Value, env)
		if err := env.Set(n.Name, v); err != nil {
			throw(ErrUndefinedVariable, n, "cannot assign to undefined variable: %s", n.Name)
		}
		return v

	case *Let:
		env.Define(n.Name, ip.eval(n.Value, env))
		return Nil

	case *Block:
		return ip.evalStmts(n.Stmts, NewEnv(env))

	case *If:
		if ip.eval(n.Cond, env).Truthy() {
			return ip.eval(n.Then, env)
		}
		if n.Else != nil {
			return ip.eval(n.Else, env)
		}
		return Nil

	case *FuncLit:
		fn := &Fun{Name: n.Name, Params: n.Params, Body: n.Body, Env: env}
		fv := FunVal(fn)
		if n.Name != "" {
			// Named literals also declare, so the body (and the rest of
			// the frame) can refer to the function by name.
			env.Define(n.Name, fv)
		}
		return fv

	case *Call:
		callee := ip.eval(n.Callee, env)
		if callee.Tag != VTFun {
			throw(ErrNotCallable, n, "%s value is not callable", callee.Tag)
		}
		fn := callee.Data.(*Fun)
		args := make([]Value, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, ip.eval(a, env))
		}
		if len(args) != fn.Arity() {
			throw(ErrArityMismatch, n, "%s expects %d argument(s), got %d", fn, fn.Arity(), len(args))
		}
		return ip.apply(fn, args, n)

	default:
		panic(fmt.Sprintf("unhandled AST node %T", n))
	}
}

// apply invokes fn with already-evaluated, arity-checked arguments. The new
// frame's parent is the function's captured environment, never the caller's:
// scoping is lexical.
func (ip *Interpreter) apply(fn *Fun, args []Value, site Node) Value {
	if ip.depth >= maxCallDepth {
		throw(ErrStackOverflow, site, "call depth exceeded %d frames", maxCallDepth)
	}
	ip.depth++
	defer func() { ip.depth-- }()

	if fn.Native != nil {
		out, err := fn.Native(args)
		if err != nil {
			if rte, ok := err.(*RuntimeError); ok {
				line, col := site.Pos()
				rte.Line, rte.Col = line, col
				panic(rte)
			}
			throw(ErrTypeMismatch, site, "%s: %v", fn.NativeName, err)
		}
		return out
	}

	frame := NewEnv(fn.Env)
	for i, p := range fn.Params {
		frame.Define(p, args[i])
	}
	return ip.eval(fn.Body, frame)
}

// ─── operators ───

func (ip *Interpreter) evalUnary(n *Unary, env *Env) Value {
	v := ip.eval(n.Operand, env)
	switch n.Op {
	case BANG:
		return BoolVal(!v.Truthy())
	case MINUS:
		switch v.Tag {
		case VTInt:
			return IntVal(-v.Data.(int64))
		case VTNum:
			return NumVal(-v.Data.(float64))
		}
		throw(ErrTypeMismatch, n, "cannot negate %s", v.Tag)
	}
	panic(fmt.Sprintf("unhandled unary operator %v", n.Op))
}

func isNumeric(v Value) bool { return v.Tag == VTInt || v.Tag == VTNum }
func bothInts(a, b Value) bool {
	return a.Tag == VTInt && b.Tag == VTInt
}

func (ip *Interpreter) evalBinary(n *Binary, env *Env) Value {
	a := ip.eval(n.Left, env)
	b := ip.eval(n.Right, env)

	switch n.Op {
	case EQ:
		return BoolVal(valuesEqual(a, b))
	case NEQ:
		return BoolVal(!valuesEqual(a, b))
	}

	// String cases of the polymorphic operators.
	if a.Tag == VTStr && b.Tag == VTStr {
		x, y := a.Data.(string), b.Data.(string)
		switch n.Op {
		case PLUS:
			return StrVal(x + y)
		case LESS:
			return BoolVal(x < y)
		case LESS_EQ:
			return BoolVal(x <= y)
		case GREATER:
			return BoolVal(x > y)
		case GREATER_EQ:
			return BoolVal(x >= y)
		}
		throw(ErrTypeMismatch, n, "operator %q is not defined on strings", opText(n.Op))
	}

	if !isNumeric(a) || !isNumeric(b) {
		throw(ErrTypeMismatch, n, "operator %q needs two numbers, got %s and %s", opText(n.Op), a.Tag, b.Tag)
	}

	switch n.Op {
	case PLUS:
		if bothInts(a, b) {
			return IntVal(a.Data.(int64) + b.Data.(int64))
		}
		return NumVal(toFloat(a) + toFloat(b))
	case MINUS:
		if bothInts(a, b) {
			return IntVal(a.Data.(int64) - b.Data.(int64))
		}
		return NumVal(toFloat(a) - toFloat(b))
	case STAR:
		if bothInts(a, b) {
			return IntVal(a.Data.(int64) * b.Data.(int64))
		}
		return NumVal(toFloat(a) * toFloat(b))
	case SLASH:
		// Division always produces a float, for ints included.
		if toFloat(b) == 0 {
			throw(ErrDivisionByZero, n, "division by zero")
		}
		return NumVal(toFloat(a) / toFloat(b))
	case PERCENT:
		if bothInts(a, b) {
			d := b.Data.(int64)
			if d == 0 {
				throw(ErrDivisionByZero, n, "modulo by zero")
			}
			return IntVal(a.Data.(int64) % d)
		}
		if toFloat(b) == 0 {
			throw(ErrDivisionByZero, n, "modulo by zero")
		}
		return NumVal(math.Mod(toFloat(a), toFloat(b)))
	case POW:
		return NumVal(math.Pow(toFloat(a), toFloat(b)))
	case LESS:
		if bothInts(a, b) {
			return BoolVal(a.Data.(int64) < b.Data.(int64))
		}
		return BoolVal(toFloat(a) < toFloat(b))
	case LESS_EQ:
		if bothInts(a, b) {
			return BoolVal(a.Data.(int64) <= b.Data.(int64))
		}
		return BoolVal(toFloat(a) <= toFloat(b))
	case GREATER:
		if bothInts(a, b) {
			return BoolVal(a.Data.(int64) > b.Data.(int64))
		}
		return BoolVal(toFloat(a) > toFloat(b))
	case GREATER_EQ:
		if bothInts(a, b) {
			return BoolVal(a.Data.(int64) >= b.Data.(int64))
		}
		return BoolVal(toFloat(a) >= toFloat(b))
	}
	panic(fmt.Sprintf("unhandled binary operator %v", n.Op))
}

func opText(tt TokenType) string {
	switch tt {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case POW:
		return "**"
	case LESS:
		return "<"
	case LESS_EQ:
		return "<="
	case GREATER:
		return ">"
	case GREATER_EQ:
		return ">="
	case EQ:
		return "=="
	case NEQ:
		return "!="
	default:
		return "?"
	}
}

// ast.go — the abstract syntax tree produced by the parser.
//
// The node set is closed: every variant implements the sealed Node interface
// via the unexported node() marker, and the evaluator dispatches with an
// exhaustive type switch (eval.go). Nodes are immutable after parsing and own
// their children exclusively; every node records the source position of its
// first token for diagnostics.
package tram

// Node is the interface implemented by every AST node.
type Node interface {
	Pos() (line, col int)
	node()
}

type pos struct {
	Line int
	Col  int
}

func (p pos) Pos() (int, int) { return p.Line, p.Col }

// Program is the root node: the top-level statement sequence of a source
// unit. Unlike Block it does not introduce a scope of its own; the evaluator
// runs it directly in the target environment so top-level lets land there.
type Program struct {
	pos
	Stmts []Node
}

// Literal is a number, string, boolean, or nil literal.
// Value holds int64, float64, string, bool, or nil respectively.
type Literal struct {
	pos
	Value any
}

// Ident is a variable reference.
type Ident struct {
	pos
	Name string
}

// Unary is a prefix operator application: "-" or "!".
type Unary struct {
	pos
	Op      TokenType
	Operand Node
}

// Binary is an arithmetic or comparison operator application.
// Both operands are always evaluated, left first.
type Binary struct {
	pos
	Op    TokenType
	Left  Node
	Right Node
}

// Logical is a short-circuiting "&&" or "||".
type Logical struct {
	pos
	Op    TokenType
	Left  Node
	Right Node
}

// Assign writes to an existing binding and evaluates to the assigned value.
// The parser guarantees the target is an identifier; whether it resolves is
// checked at evaluation time.
type Assign struct {
	pos
	Name  string
	Value Node
}

// Let declares a binding in the innermost frame. A statement: its value is nil.
type Let struct {
	pos
	Name  string
	Value Node
}

// Block is a braced statement sequence. It is an expression: it evaluates its
// statements in a fresh scope and yields the last expression's value, nil for
// an empty block or one ending in a let.
type Block struct {
	pos
	Stmts []Node
}

// If is the conditional expression: if cond then A [else B]. Without an else
// branch a false condition yields nil. Else may be nil.
type If struct {
	pos
	Cond Node
	Then Node
	Else Node
}

// FuncLit is a function literal. Name is "" for anonymous functions; when
// present the evaluator binds it in the surrounding frame so the body can
// refer to itself.
type FuncLit struct {
	pos
	Name   string
	Params []string
	Body   Node
}

// Call applies a callee to arguments, evaluated left to right.
type Call struct {
	pos
	Callee Node
	Args   []Node
}

func (*Program) node() {}
func (*Literal) node() {}
func (*Ident) node()   {}
func (*Unary) node()   {}
func (*Binary) node()  {}
func (*Logical) node() {}
func (*Assign) node()  {}
func (*Let) node()     {}
func (*Block) node()   {}
func (*If) node()      {}
func (*FuncLit) node() {}
func (*Call) node()    {}

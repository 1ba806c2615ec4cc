package tram

import (
	"testing"
)

// --- helpers ---------------------------------------------------------------

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	ip := NewInterpreter()
	v, err := ip.EvalSource(src)
	if err != nil {
		t.Fatalf("EvalSource error: %v\nsource:\n%s", err, src)
	}
	return v
}

func evalErr(t *testing.T, src string) error {
	t.Helper()
	ip := NewInterpreter()
	_, err := ip.EvalSource(src)
	if err == nil {
		t.Fatalf("expected an error, got none\nsource:\n%s", src)
	}
	return err
}

func wantRuntimeErr(t *testing.T, src string, kind RuntimeErrKind) *RuntimeError {
	t.Helper()
	err := evalErr(t, src)
	rte, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("want *RuntimeError, got %T: %v", err, err)
	}
	if rte.Kind != kind {
		t.Fatalf("want kind %v, got %v (%v)", kind, rte.Kind, rte)
	}
	return rte
}

func wantInt(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Tag != VTInt || v.Data.(int64) != n {
		t.Fatalf("want int %d, got %#v", n, v)
	}
}

func wantNum(t *testing.T, v Value, f float64) {
	t.Helper()
	if v.Tag != VTNum {
		t.Fatalf("want num %g, got %#v", f, v)
	}
	if got := v.Data.(float64); got != f {
		t.Fatalf("want num %g, got %g", f, got)
	}
}

func wantStr(t *testing.T, v Value, s string) {
	t.Helper()
	if v.Tag != VTStr || v.Data.(string) != s {
		t.Fatalf("want str %q, got %#v", s, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != VTBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

func wantNil(t *testing.T, v Value) {
	t.Helper()
	if v.Tag != VTNil {
		t.Fatalf("want nil, got %#v", v)
	}
}

// --- arithmetic & numeric model --------------------------------------------

func TestIntArithmeticStaysExact(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"17 + 25", 42},
		{"17 - 25", -8},
		{"6 * 7", 42},
		{"7 % 4", 3},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"-5 + 2", -3},
	}
	for _, c := range cases {
		wantInt(t, evalSrc(t, c.src), c.want)
	}
}

func TestDivisionAlwaysFloat(t *testing.T) {
	wantNum(t, evalSrc(t, "7 / 2"), 3.5)
	wantNum(t, evalSrc(t, "6 / 3"), 2) // float even when it divides evenly
	wantNum(t, evalSrc(t, "7.0 / 2"), 3.5)
}

func TestMixedOperandsPromoteToFloat(t *testing.T) {
	wantNum(t, evalSrc(t, "1 + 2.5"), 3.5)
	wantNum(t, evalSrc(t, "2.0 * 3"), 6)
	wantInt(t, evalSrc(t, "2 * 3"), 6)
}

func TestPowerOperator(t *testing.T) {
	wantNum(t, evalSrc(t, "2 ** 10"), 1024)
	wantNum(t, evalSrc(t, "9 ** 0.5"), 3)
}

func TestFloatModulo(t *testing.T) {
	wantNum(t, evalSrc(t, "7.5 % 2"), 1.5)
	wantInt(t, evalSrc(t, "7 % 2"), 1)
}

func TestDivisionByZero(t *testing.T) {
	wantRuntimeErr(t, "1 / 0", ErrDivisionByZero)
	wantRuntimeErr(t, "1.0 / 0.0", ErrDivisionByZero)
	wantRuntimeErr(t, "5 % 0", ErrDivisionByZero)
}

func TestStringConcatAndCompare(t *testing.T) {
	wantStr(t, evalSrc(t, `"foo" + "bar"`), "foobar")
	wantBool(t, evalSrc(t, `"abc" < "abd"`), true)
	wantBool(t, evalSrc(t, `"b" >= "a"`), true)
}

func TestCrossKindArithmeticIsTypeMismatch(t *testing.T) {
	wantRuntimeErr(t, `"a" + 1`, ErrTypeMismatch)
	wantRuntimeErr(t, `1 - "a"`, ErrTypeMismatch)
	wantRuntimeErr(t, `1 < "2"`, ErrTypeMismatch)
	wantRuntimeErr(t, `-"x"`, ErrTypeMismatch)
}

// --- equality policy --------------------------------------------------------

func TestEqualityAcrossKindsIsFalseNotError(t *testing.T) {
	wantBool(t, evalSrc(t, `1 == "1"`), false)
	wantBool(t, evalSrc(t, `1 != "1"`), true)
	wantBool(t, evalSrc(t, `nil == false`), false)
	wantBool(t, evalSrc(t, `1 == 1.0`), true) // int/num compare numerically
	wantBool(t, evalSrc(t, `"x" == "x"`), true)
}

func TestFunctionEqualityIsIdentity(t *testing.T) {
	wantBool(t, evalSrc(t, "let f = func() 1\nf == f"), true)
	wantBool(t, evalSrc(t, "let f = func() 1\nlet g = func() 1\nf == g"), false)
}

// --- truthiness & logic -----------------------------------------------------

func TestTruthiness(t *testing.T) {
	wantStr(t, evalSrc(t, `if 0 then "t" else "f"`), "t")
	wantStr(t, evalSrc(t, `if "" then "t" else "f"`), "t")
	wantStr(t, evalSrc(t, `if nil then "t" else "f"`), "f")
	wantStr(t, evalSrc(t, `if false then "t" else "f"`), "f")
	wantBool(t, evalSrc(t, "!nil"), true)
	wantBool(t, evalSrc(t, "!0"), false)
}

func TestLogicalOperatorsReturnOperands(t *testing.T) {
	wantInt(t, evalSrc(t, "1 && 2"), 2)
	wantBool(t, evalSrc(t, "false && 2"), false)
	wantInt(t, evalSrc(t, "1 || 2"), 1)
	wantInt(t, evalSrc(t, "nil || 7"), 7)
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	src := `
let calls = 0
let bump = func() { calls += 1 true }
false && bump()
true || bump()
calls
`
	wantInt(t, evalSrc(t, src), 0)
}

// --- if as expression -------------------------------------------------------

func TestIfIsAnExpression(t *testing.T) {
	wantStr(t, evalSrc(t, `if 1 < 2 then "yes" else "no"`), "yes")
	wantStr(t, evalSrc(t, `if 1 > 2 then "yes" else "no"`), "no")
	// composes in any expression position
	wantInt(t, evalSrc(t, `len(if true then "abc" else "")`), 3)
	wantInt(t, evalSrc(t, `let x = 1 + (if false then 10 else 20)`+"\nx"), 21)
}

func TestIfWithoutElseYieldsNil(t *testing.T) {
	wantNil(t, evalSrc(t, "if false then 1"))
	wantInt(t, evalSrc(t, "if true then 1"), 1)
}

func TestUntakenBranchHasNoSideEffects(t *testing.T) {
	src := `
let n = 0
if true then 1 else { n = 5 }
n
`
	wantInt(t, evalSrc(t, src), 0)
}

func TestElseIfChains(t *testing.T) {
	src := `
let grade = func(n)
    if n >= 90 then "A"
    else if n >= 80 then "B"
    else "C"
grade(85)
`
	wantStr(t, evalSrc(t, src), "B")
}

// --- blocks & scoping -------------------------------------------------------

func TestBlockValueIsLastExpression(t *testing.T) {
	wantInt(t, evalSrc(t, "{ 1 2 3 }"), 3)
	wantNil(t, evalSrc(t, "{ }"))
	wantNil(t, evalSrc(t, "{ let x = 1 }")) // ends in a declaration
}

func TestShadowingLeavesOuterIntact(t *testing.T) {
	src := `
let x = 1
{ let x = 99 x }
x
`
	wantInt(t, evalSrc(t, src), 1)
}

func TestInnerAssignmentReachesOuter(t *testing.T) {
	src := `
let x = 1
{ x = 2 }
x
`
	wantInt(t, evalSrc(t, src), 2)
}

func TestLetRedeclarationOverwrites(t *testing.T) {
	wantInt(t, evalSrc(t, "let x = 1\nlet x = 2\nx"), 2)
}

func TestAssignmentIsAnExpression(t *testing.T) {
	wantInt(t, evalSrc(t, "let a = 0\nlet b = (a = 41) + 1\nb"), 42)
	wantInt(t, evalSrc(t, "let a = 0\nlet b = 0\na = b = 7\na"), 7)
}

func TestCompoundAssignment(t *testing.T) {
	wantInt(t, evalSrc(t, "let a = 40\na += 2\na"), 42)
	wantInt(t, evalSrc(t, "let a = 50\na -= 8\na"), 42)
	wantNum(t, evalSrc(t, "let a = 2\na **= 3\na"), 8)
	wantNum(t, evalSrc(t, "let a = 84\na /= 2\na"), 42)
}

func TestAssignToUndeclaredFails(t *testing.T) {
	wantRuntimeErr(t, "y = 3", ErrUndefinedVariable)
}

func TestUndefinedVariableReference(t *testing.T) {
	wantRuntimeErr(t, "nope", ErrUndefinedVariable)
}

// --- functions & closures ---------------------------------------------------

func TestFunctionCallBasics(t *testing.T) {
	wantInt(t, evalSrc(t, "let add = func(a, b) a + b\nadd(40, 2)"), 42)
	wantInt(t, evalSrc(t, "let id = func(x) x\nid(id)(7)"), 7)
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	src := `
let log = ""
let note = func(s) { log += s s }
let pair = func(a, b) log
pair(note("a"), note("b"))
`
	wantStr(t, evalSrc(t, src), "ab")
}

func TestLexicalScopingNotDynamic(t *testing.T) {
	src := `
let a = "outer"
let show = func() a
let wrap = func() { let a = "inner" show() }
wrap()
`
	wantStr(t, evalSrc(t, src), "outer")
}

func TestClosureCapturesByReference(t *testing.T) {
	src := `
let x = 1
let get = func() x
x = 2
get()
`
	wantInt(t, evalSrc(t, src), 2)
}

func TestClosureSharedCounter(t *testing.T) {
	src := `
let make = func() {
    let n = 0
    func() { n += 1 n }
}
let tick = make()
tick()
tick()
tick()
`
	wantInt(t, evalSrc(t, src), 3)
}

func TestRecursiveFactorialViaSelfName(t *testing.T) {
	src := `
let fact = func f(n) if n < 2 then 1 else n * f(n - 1)
fact(5)
`
	wantInt(t, evalSrc(t, src), 120)
}

func TestNamedFunctionDeclares(t *testing.T) {
	src := `
func fib(n) if n < 2 then n else fib(n - 1) + fib(n - 2)
fib(10)
`
	wantInt(t, evalSrc(t, src), 55)
}

func TestNotCallable(t *testing.T) {
	wantRuntimeErr(t, "let n = 3\nn(1)", ErrNotCallable)
	wantRuntimeErr(t, `"s"(1)`, ErrNotCallable)
}

func TestArityMismatch(t *testing.T) {
	wantRuntimeErr(t, "let f = func(a, b) a + b\nf(1)", ErrArityMismatch)
	wantRuntimeErr(t, "let f = func() 1\nf(1)", ErrArityMismatch)
}

func TestRunawayRecursionIsStackOverflow(t *testing.T) {
	wantRuntimeErr(t, "func loop() loop()\nloop()", ErrStackOverflow)
}

// --- persistence & isolation ------------------------------------------------

func TestPersistentEvalKeepsBindings(t *testing.T) {
	ip := NewInterpreter()
	if _, err := ip.EvalPersistentSource("let v = 10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := ip.EvalPersistentSource("v + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInt(t, v, 11)
}

func TestEvalSourceIsEphemeral(t *testing.T) {
	ip := NewInterpreter()
	if _, err := ip.EvalSource("let w = 5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ip.EvalSource("w"); err == nil {
		t.Fatalf("binding leaked out of an ephemeral run")
	}
}

func TestInterpretersAreIndependent(t *testing.T) {
	a := NewInterpreter()
	b := NewInterpreter()
	if _, err := a.EvalPersistentSource("let only = 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.EvalPersistentSource("only"); err == nil {
		t.Fatalf("bindings crossed interpreter instances")
	}
}

// --- error positions --------------------------------------------------------

func TestRuntimeErrorCarriesPosition(t *testing.T) {
	rte := wantRuntimeErr(t, "let a = 1\n1 / 0", ErrDivisionByZero)
	if rte.Line != 2 {
		t.Fatalf("want error on line 2, got line %d", rte.Line)
	}
}

package tram

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestPrintWritesToStdout(t *testing.T) {
	ip := NewInterpreter()
	var buf bytes.Buffer
	ip.Stdout = &buf

	_, err := ip.EvalSource(`print("hello") print(42) print(1.5) print(nil)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "hello\n42\n1.5\nnil\n"
	if buf.String() != want {
		t.Fatalf("print output:\n got %q\nwant %q", buf.String(), want)
	}
}

func TestStrBuiltin(t *testing.T) {
	wantStr(t, evalSrc(t, `str(42)`), "42")
	wantStr(t, evalSrc(t, `str(1.5)`), "1.5")
	wantStr(t, evalSrc(t, `str(4.0)`), "4.0")
	wantStr(t, evalSrc(t, `str(true)`), "true")
	wantStr(t, evalSrc(t, `str(nil)`), "nil")
	wantStr(t, evalSrc(t, `str("x")`), "x") // already a string, no quotes
}

func TestLenCountsRunes(t *testing.T) {
	wantInt(t, evalSrc(t, `len("")`), 0)
	wantInt(t, evalSrc(t, `len("abc")`), 3)
	wantInt(t, evalSrc(t, `len("héllo")`), 5)
	wantRuntimeErr(t, `len(42)`, ErrTypeMismatch)
}

func TestClockReturnsFloatSeconds(t *testing.T) {
	v := evalSrc(t, "clock()")
	if v.Tag != VTNum {
		t.Fatalf("want num, got %#v", v)
	}
	// Sanity: sometime after 2020.
	if v.Data.(float64) < 1577836800 {
		t.Fatalf("implausible clock value %v", v.Data)
	}
}

func TestSqrt(t *testing.T) {
	wantNum(t, evalSrc(t, "sqrt(9)"), 3)
	wantNum(t, evalSrc(t, "sqrt(2.25)"), 1.5)
	wantRuntimeErr(t, `sqrt("x")`, ErrTypeMismatch)
}

func TestMathBuiltins(t *testing.T) {
	wantNum(t, evalSrc(t, "floor(1.9)"), 1)
	wantNum(t, evalSrc(t, "ceil(1.1)"), 2)
	wantNum(t, evalSrc(t, "round(2.5)"), 3)
	wantNum(t, evalSrc(t, "pow(2, 10)"), 1024)
	wantNum(t, evalSrc(t, "sin(0)"), 0)
	wantNum(t, evalSrc(t, "exp(0)"), 1)
	wantNum(t, evalSrc(t, "log(E)"), 1)
}

func TestMathConstants(t *testing.T) {
	v := evalSrc(t, "PI")
	if v.Tag != VTNum || v.Data.(float64) != math.Pi {
		t.Fatalf("PI: got %#v", v)
	}
}

func TestAbsKeepsIntness(t *testing.T) {
	wantInt(t, evalSrc(t, "abs(-5)"), 5)
	wantInt(t, evalSrc(t, "abs(5)"), 5)
	wantNum(t, evalSrc(t, "abs(-1.5)"), 1.5)
}

func TestMinMaxReturnOriginalOperand(t *testing.T) {
	wantInt(t, evalSrc(t, "min(3, 2)"), 2)
	wantInt(t, evalSrc(t, "max(3, 2)"), 3)
	// Mixed operands keep the kind of whichever wins.
	wantNum(t, evalSrc(t, "min(3, 2.5)"), 2.5)
	wantInt(t, evalSrc(t, "min(2, 2.5)"), 2)
}

func TestBuiltinErrorsCarryCallSite(t *testing.T) {
	rte := wantRuntimeErr(t, "let a = 1\nsqrt(\"x\")", ErrTypeMismatch)
	if rte.Line != 2 {
		t.Fatalf("want error on line 2, got line %d", rte.Line)
	}
}

func TestBuiltinArityIsChecked(t *testing.T) {
	wantRuntimeErr(t, "sqrt(1, 2)", ErrArityMismatch)
	wantRuntimeErr(t, "sqrt()", ErrArityMismatch)
	wantRuntimeErr(t, "pow(2)", ErrArityMismatch)
}

func TestRegisterCustomNative(t *testing.T) {
	ip := NewInterpreter()
	ip.Register("twice", 1, func(args []Value) (Value, error) {
		if args[0].Tag != VTInt {
			return Nil, fmt.Errorf("twice expects an int, got %s", args[0].Tag)
		}
		return IntVal(2 * args[0].Data.(int64)), nil
	})

	v, err := ip.EvalSource("twice(21)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInt(t, v, 42)

	_, err = ip.EvalSource(`twice("no")`)
	rte, ok := err.(*RuntimeError)
	if !ok || rte.Kind != ErrTypeMismatch {
		t.Fatalf("want a type mismatch from the native's error, got %v", err)
	}
	if !strings.Contains(rte.Msg, "twice expects an int") {
		t.Fatalf("native error text lost: %q", rte.Msg)
	}
}

func TestBuiltinsShadowableByUserCode(t *testing.T) {
	// A user let in Global shadows the Core binding without clobbering it.
	ip := NewInterpreter()
	if _, err := ip.EvalPersistentSource(`let len = func(x) 99`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := ip.EvalPersistentSource(`len("abc")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInt(t, v, 99)

	fresh := NewInterpreter()
	v2, err := fresh.EvalSource(`len("abc")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInt(t, v2, 3)
}

func TestBuiltinsAreValuesToo(t *testing.T) {
	// Natives pass around like any function value.
	wantNum(t, evalSrc(t, "let apply = func(f, x) f(x)\napply(sqrt, 16)"), 4)
}

// value.go — the runtime value model.
//
// Value is a small tagged union: a discriminant plus an untyped payload. The
// tag decides which Go type Data holds (see ValueTag). Composite values
// (functions) are held by pointer and shared; a closure keeps its captured
// environment alive for as long as the function value is reachable.
package tram

import (
	"fmt"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNil  ValueTag = iota // no payload
	VTBool                 // bool
	VTInt                  // int64
	VTNum                  // float64
	VTStr                  // string
	VTFun                  // *Fun (closure or native)
)

func (t ValueTag) String() string {
	switch t {
	case VTNil:
		return "nil"
	case VTBool:
		return "bool"
	case VTInt:
		return "int"
	case VTNum:
		return "num"
	case VTStr:
		return "str"
	case VTFun:
		return "func"
	default:
		return "unknown"
	}
}

// Value is the universal runtime carrier.
type Value struct {
	Tag  ValueTag
	Data any
}

// Nil is the singleton nil value.
var Nil = Value{Tag: VTNil}

// Constructors.
func BoolVal(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func IntVal(n int64) Value   { return Value{Tag: VTInt, Data: n} }
func NumVal(f float64) Value { return Value{Tag: VTNum, Data: f} }
func StrVal(s string) Value  { return Value{Tag: VTStr, Data: s} }
func FunVal(f *Fun) Value    { return Value{Tag: VTFun, Data: f} }

// Truthy implements the language's truthiness rule: only false and nil are
// falsy; every other value, including 0 and "", is truthy.
func (v Value) Truthy() bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// String renders a debug representation; FormatValue (printer.go) is the
// user-facing one.
func (v Value) String() string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTFun:
		return v.Data.(*Fun).String()
	default:
		return "<unknown>"
	}
}

// NativeImpl is the implementation signature for registered host functions.
// Arguments arrive already evaluated, in call order. A returned error aborts
// the call with a TypeMismatch runtime error at the call site.
type NativeImpl func(args []Value) (Value, error)

// Fun is a callable value: either a user-defined closure (Params + Body +
// captured Env) or a registered native (Native + NativeName). The two are
// indistinguishable at the call site; arity checking and argument evaluation
// order apply to both.
type Fun struct {
	Name   string   // self-reference name; "" for anonymous
	Params []string // parameter names, in order
	Body   Node     // nil for natives
	Env    *Env     // defining environment; nil for natives

	NativeName string     // non-empty for natives
	Native     NativeImpl // non-nil for natives
	nativeArgs int        // declared arity for natives
}

// Arity returns the number of arguments the function expects.
func (f *Fun) Arity() int {
	if f.Native != nil {
		return f.nativeArgs
	}
	return len(f.Params)
}

func (f *Fun) String() string {
	name := f.Name
	if f.NativeName != "" {
		name = f.NativeName
	}
	if name == "" {
		return fmt.Sprintf("<func/%d>", f.Arity())
	}
	return fmt.Sprintf("<func %s/%d>", name, f.Arity())
}

// valuesEqual implements "==": same-kind structural equality, false across
// kinds except int/num which compare numerically. Functions compare by
// identity.
func valuesEqual(a, b Value) bool {
	if a.Tag != b.Tag {
		if (a.Tag == VTInt && b.Tag == VTNum) || (a.Tag == VTNum && b.Tag == VTInt) {
			return toFloat(a) == toFloat(b)
		}
		return false
	}
	switch a.Tag {
	case VTNil:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTInt:
		return a.Data.(int64) == b.Data.(int64)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTFun:
		return a.Data.(*Fun) == b.Data.(*Fun)
	default:
		return false
	}
}

func toFloat(v Value) float64 {
	if v.Tag == VTInt {
		return float64(v.Data.(int64))
	}
	return v.Data.(float64)
}

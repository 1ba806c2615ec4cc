// builtin_math.go — math natives and constants installed into Core.
package tram

import (
	"fmt"
	"math"
)

// asNumber promotes an int argument to float; anything else is a type error
// reported against the builtin's call site.
func asNumber(name string, v Value) (float64, error) {
	switch v.Tag {
	case VTInt:
		return float64(v.Data.(int64)), nil
	case VTNum:
		return v.Data.(float64), nil
	default:
		return 0, fmt.Errorf("%s expects a number, got %s", name, v.Tag)
	}
}

func registerMathBuiltins(ip *Interpreter) {
	ip.Core.Define("PI", NumVal(math.Pi))
	ip.Core.Define("E", NumVal(math.E))

	un := func(name string, f func(float64) float64) {
		ip.Register(name, 1, func(args []Value) (Value, error) {
			x, err := asNumber(name, args[0])
			if err != nil {
				return Nil, err
			}
			return NumVal(f(x)), nil
		})
	}
	un("sin", math.Sin)
	un("cos", math.Cos)
	un("tan", math.Tan)
	un("sqrt", math.Sqrt)
	un("exp", math.Exp)
	un("log", math.Log)
	un("floor", math.Floor)
	un("ceil", math.Ceil)
	un("round", math.Round)

	ip.Register("pow", 2, func(args []Value) (Value, error) {
		x, err := asNumber("pow", args[0])
		if err != nil {
			return Nil, err
		}
		y, err := asNumber("pow", args[1])
		if err != nil {
			return Nil, err
		}
		return NumVal(math.Pow(x, y)), nil
	})

	// abs keeps the int-ness of its argument; min/max promote only when the
	// operands are mixed.
	ip.Register("abs", 1, func(args []Value) (Value, error) {
		switch args[0].Tag {
		case VTInt:
			n := args[0].Data.(int64)
			if n < 0 {
				n = -n
			}
			return IntVal(n), nil
		case VTNum:
			return NumVal(math.Abs(args[0].Data.(float64))), nil
		default:
			return Nil, fmt.Errorf("abs expects a number, got %s", args[0].Tag)
		}
	})

	pick := func(name string, takeLeft func(a, b float64) bool) {
		ip.Register(name, 2, func(args []Value) (Value, error) {
			x, err := asNumber(name, args[0])
			if err != nil {
				return Nil, err
			}
			y, err := asNumber(name, args[1])
			if err != nil {
				return Nil, err
			}
			if takeLeft(x, y) {
				return args[0], nil
			}
			return args[1], nil
		})
	}
	pick("min", func(a, b float64) bool { return a <= b })
	pick("max", func(a, b float64) bool { return a >= b })
}

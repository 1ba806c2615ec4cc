// builtin_core.go — general-purpose natives installed into Core.
package tram

import (
	"fmt"
	"time"
	"unicode/utf8"
)

func registerCoreBuiltins(ip *Interpreter) {
	// print(v) — write the display form of v plus a newline to ip.Stdout.
	ip.Register("print", 1, func(args []Value) (Value, error) {
		fmt.Fprintln(ip.Stdout, DisplayValue(args[0]))
		return Nil, nil
	})

	// str(v) — the display form of any value, as a string.
	ip.Register("str", 1, func(args []Value) (Value, error) {
		return StrVal(DisplayValue(args[0])), nil
	})

	// len(s) — rune count of a string.
	ip.Register("len", 1, func(args []Value) (Value, error) {
		if args[0].Tag != VTStr {
			return Nil, fmt.Errorf("expected a string, got %s", args[0].Tag)
		}
		return IntVal(int64(utf8.RuneCountInString(args[0].Data.(string)))), nil
	})

	// clock() — seconds since the Unix epoch, as a float.
	ip.Register("clock", 0, func(args []Value) (Value, error) {
		return NumVal(float64(time.Now().UnixNano()) / 1e9), nil
	})
}

// printer.go — user-facing value rendering.
package tram

import (
	"strconv"
	"strings"
)

// DisplayValue renders v the way print shows it: strings appear raw, every
// other kind uses its literal-like form.
func DisplayValue(v Value) string {
	if v.Tag == VTStr {
		return v.Data.(string)
	}
	return FormatValue(v)
}

// FormatValue renders v the way the REPL echoes results: strings are quoted
// so `"1"` and `1` stay distinguishable.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTNum:
		return formatFloat(v.Data.(float64))
	case VTStr:
		return strconv.Quote(v.Data.(string))
	case VTFun:
		return v.Data.(*Fun).String()
	default:
		return "<unknown>"
	}
}

// formatFloat keeps whole floats recognizable as floats: 4 renders as "4.0",
// not "4".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") { // 1.5, 1e9, +Inf, NaN
		return s
	}
	return s + ".0"
}

// errors.go — caret-snippet rendering for diagnostics.
//
// The engine's entry points return structured errors (*LexError, *ParseError,
// *RuntimeError). Drivers that hold the source can pass them through
// WrapErrorWithSource to get a readable multi-line snippet with a caret under
// the offending column:
//
//	PARSE ERROR at 3:12: expected ')' to close the group, found end of input
//
//	   2 | let x = (1 + 2
//	   3 |              )
//	       |            ^
//	   4 | print(x)
//
// Output is plain text, safe for logs and terminals; anything that is not one
// of the three diagnostic families passes through unchanged.
package tram

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource renders err against src; see WrapErrorWithName.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName renders lex/parse/runtime diagnostics as caret snippets,
// labeled with srcName when non-empty. Other errors are returned unchanged.
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Cols are 0-based internally; render 1-based.
		return fmt.Errorf("%s", snippet(src, "LEX ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", srcName, e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

// snippet builds the header plus up to one line of context on each side,
// with a caret under the 1-based column. Out-of-range coordinates are
// clamped so rendering never fails.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

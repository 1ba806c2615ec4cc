package tram

import (
	"math"
	"testing"
)

func TestFormatValue(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{BoolVal(true), "true"},
		{BoolVal(false), "false"},
		{IntVal(42), "42"},
		{IntVal(-7), "-7"},
		{NumVal(1.5), "1.5"},
		{NumVal(4), "4.0"}, // whole floats stay recognizable as floats
		{NumVal(-2), "-2.0"},
		{NumVal(1e21), "1e+21"},
		{StrVal("hi"), `"hi"`},
		{StrVal(""), `""`},
		{StrVal("a\nb"), `"a\nb"`},
	}
	for _, c := range cases {
		if got := FormatValue(c.v); got != c.want {
			t.Errorf("FormatValue(%v): got %q, want %q", c.v, got, c.want)
		}
	}
}

func TestFormatSpecialFloats(t *testing.T) {
	// Inf and NaN must not grow a ".0" suffix.
	if got := FormatValue(NumVal(math.Inf(1))); got != "+Inf" {
		t.Errorf("+Inf: got %q", got)
	}
	if got := FormatValue(NumVal(math.NaN())); got != "NaN" {
		t.Errorf("NaN: got %q", got)
	}
}

func TestDisplayValueStringsAreRaw(t *testing.T) {
	if got := DisplayValue(StrVal("hi")); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
	if got := DisplayValue(IntVal(3)); got != "3" {
		t.Errorf("got %q, want %q", got, "3")
	}
}

func TestFormatFunctionValues(t *testing.T) {
	named := FunVal(&Fun{Name: "add", Params: []string{"a", "b"}})
	if got := FormatValue(named); got != "<func add/2>" {
		t.Errorf("named: got %q", got)
	}
	anon := FunVal(&Fun{Params: []string{"x"}})
	if got := FormatValue(anon); got != "<func/1>" {
		t.Errorf("anonymous: got %q", got)
	}
}

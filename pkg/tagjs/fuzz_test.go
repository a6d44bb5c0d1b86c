package tagjs_test

import (
	"strings"
	"testing"

	"github.com/funvibe/tagjs/pkg/tagjs"
)

// FuzzConvert checks that conversion never panics and leaves text without
// guard or function forms untouched.
func FuzzConvert(f *testing.F) {
	f.Add("guard Even(x) { return x % 2 == 0 }\nfunction f(x: Even) { return x }")
	f.Add("function foo(x: A * B, y, z: C) {}")
	f.Add("const x = 1;")
	f.Add("guard(")

	f.Fuzz(func(t *testing.T, src string) {
		out := tagjs.Convert(src)
		if !strings.Contains(src, "guard") && !strings.Contains(src, "function") && out != src {
			t.Errorf("Convert changed text without forms: %q -> %q", src, out)
		}
		if tagjs.Convert(src) != out {
			t.Error("conversion is not deterministic")
		}
	})
}

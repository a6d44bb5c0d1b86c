package main

import (
	"fmt"
	"testing"

	"github.com/funvibe/tagjs/internal/config"
)

func TestOutputPath(t *testing.T) {
	tests := []struct{ in, ext, want string }{
		{"main.tjs", ".js", "main.js"},
		{"dir/lib.tag.js", ".out.js", "dir/lib.out.js"},
		{"script", ".js", "script.js"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.in, tt.ext); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.in, tt.ext, got, tt.want)
		}
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"function f(x: A) {", true},
		{"function f(x: A) { return x }", false},
		{"print('{')", false},
		{"print(\"a\\\"(\")", false},
		{"// {\nlet x = 1", false},
		{"const s = `abc", true},
		{"foo(1,", true},
		{"let a = 1 /* { */", false},
		{"/* ( */ f(", true},
		{"/* unterminated", true},
		{"const r = /'/", false},
		{"const r = /[/(]/.test(s)", false},
		{"const q = a / b / (c)", false},
		{"if (x) { const r = /}/", true},
	}
	for _, tt := range tests {
		if got := incomplete(tt.src); got != tt.want {
			t.Errorf("incomplete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestSessionAccumulatesOverloads(t *testing.T) {
	s := mustSession(t)

	if _, _, err := s.eval("guard Even(x) { return x % 2 == 0 }\nguard Odd(x) { return x % 2 == 1 }"); err != nil {
		t.Fatalf("guards: %v", err)
	}
	if _, _, err := s.eval("function foo(x: Even) { return x / 2 }"); err != nil {
		t.Fatalf("first overload: %v", err)
	}
	if _, _, err := s.eval("function foo(x: Odd) { return x + 1 }"); err != nil {
		t.Fatalf("second overload: %v", err)
	}

	out, _, err := s.eval("print(foo(foo(foo(foo(10)))))")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if out != "4\n" {
		t.Errorf("output = %q, want 4", out)
	}

	out, _, err = s.eval("print('next')")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if out != "next\n" {
		t.Errorf("earlier output repeated: %q", out)
	}
}

func TestSessionDropsFailingChunk(t *testing.T) {
	s := mustSession(t)
	if _, _, err := s.eval("guard Even(x) { return x % 2 == 0 }\nfunction half(x: Even) { return x / 2 }"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, _, err := s.eval("half(3)"); err == nil {
		t.Fatal("expected dispatch error")
	}
	_, value, err := s.eval("half(8)")
	if err != nil {
		t.Fatalf("failing chunk was kept: %v", err)
	}
	if fmt.Sprint(value) != "4" {
		t.Errorf("value = %#v, want 4", value)
	}

	if err := s.reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.source != "" || s.functions.Len() != 0 || s.guards.Len() != 0 {
		t.Error("reset did not clear the session")
	}
	if _, _, err := s.eval("half(8)"); err == nil {
		t.Error("expected half to be undefined after reset")
	}
}

func mustSession(t *testing.T) *session {
	t.Helper()
	s, err := newSession(config.DefaultSettings())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return s
}

func TestSessionOutputIsPerChunk(t *testing.T) {
	s := mustSession(t)

	out, _, err := s.eval("print(Math.random() < 0.5 ? 'a' : 'bbbbbbbbbb')")
	if err != nil {
		t.Fatalf("random chunk: %v", err)
	}
	if out != "a\n" && out != "bbbbbbbbbb\n" {
		t.Errorf("unexpected output %q", out)
	}

	for i := 0; i < 3; i++ {
		out, _, err := s.eval("print('next')")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if out != "next\n" {
			t.Errorf("call %d output = %q, want %q", i, out, "next\n")
		}
	}
}

func TestSessionDoesNotReplaySideEffects(t *testing.T) {
	s := mustSession(t)
	if _, _, err := s.eval("var counter = 0"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for want := 1; want <= 3; want++ {
		_, value, err := s.eval("counter++; counter")
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if fmt.Sprint(value) != fmt.Sprint(want) {
			t.Errorf("counter = %v, want %d", value, want)
		}
	}
}

func TestSessionShowsConvertedSource(t *testing.T) {
	s := mustSession(t)
	if _, _, err := s.eval("function id(x) { return x }"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if s.source != "function id(x) { return x }" {
		t.Errorf("source = %q", s.source)
	}
}

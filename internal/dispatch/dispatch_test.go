package dispatch

import (
	"strings"
	"testing"

	"github.com/funvibe/tagjs/internal/pipeline"
	"github.com/funvibe/tagjs/internal/registry"
)

func TestGuardedChain(t *testing.T) {
	guards := registry.NewGuardRegistry("X1", "X2", "Y1", "Y2") // X3 is unknown
	result := GuardedChain("foo", guards, []*registry.Overload{
		{ArgTypesLists: [][]string{{"X1", "X2"}, {"Y1"}}, MangledName: "foo_1"},
		{ArgTypesLists: [][]string{{"X3"}, {"Y2"}}, MangledName: "foo_2"},
	})

	want := `  if(_guardTest_X1(arguments[0]) && _guardTest_X2(arguments[0]) && _guardTest_Y1(arguments[1]))
    return foo_1(...arguments)
  else if(_guardTest_Y2(arguments[1]))
    return foo_2(...arguments)
  else
    throw Error('No guards passed for foo call')`
	if result != want {
		t.Errorf("unexpected chain:\n%s\nwant:\n%s", result, want)
	}
}

func TestConditionWithoutKnownTags(t *testing.T) {
	guards := registry.NewGuardRegistry("A")
	o := &registry.Overload{ArgTypesLists: [][]string{{"Unknown"}, {}}}
	if got := Condition(guards, o); got != "true" {
		t.Errorf("condition = %q, want true", got)
	}
}

func TestCatchAllBranchKeepsOrder(t *testing.T) {
	guards := registry.NewGuardRegistry("A")
	functions := registry.NewFunctionRegistry()
	functions.Add("f", registry.NewOverload("f", [][]string{{"A"}}))
	functions.Add("f", registry.NewOverload("f", [][]string{{}}))

	got := Dispatcher("f", guards, functions)
	want := `function f(){
  if(_guardTest_A(arguments[0]))
    return f_A(...arguments)
  else if(true)
    return f_(...arguments)
  else
    throw Error('No guards passed for f call')
}`
	if got != want {
		t.Errorf("unexpected dispatcher:\n%s\nwant:\n%s", got, want)
	}
}

func TestRegularDispatcherForwards(t *testing.T) {
	functions := registry.NewFunctionRegistry()
	functions.Add("add", registry.NewOverload("add", [][]string{{}, {}}))

	got := Dispatcher("add", registry.NewGuardRegistry(), functions)
	want := "function add(){\n  return add_(...arguments)\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "throw") {
		t.Error("regular dispatcher must not throw")
	}
}

func TestSingleTaggedOverloadIsGuarded(t *testing.T) {
	functions := registry.NewFunctionRegistry()
	functions.Add("half", registry.NewOverload("half", [][]string{{"Even"}}))

	got := Dispatcher("half", registry.NewGuardRegistry("Even"), functions)
	if !strings.Contains(got, "if(_guardTest_Even(arguments[0]))") {
		t.Errorf("expected guard test, got:\n%s", got)
	}
	if !strings.Contains(got, "No guards passed for half call") {
		t.Errorf("expected dispatch error, got:\n%s", got)
	}
}

func TestSynthesizeOrderAndEmpty(t *testing.T) {
	if got := Synthesize("let x = 1", registry.NewGuardRegistry(), registry.NewFunctionRegistry()); got != "let x = 1" {
		t.Errorf("expected unchanged source, got %q", got)
	}

	functions := registry.NewFunctionRegistry()
	functions.Add("b", registry.NewOverload("b", [][]string{{}}))
	functions.Add("a", registry.NewOverload("a", [][]string{{}}))

	got := Synthesize("src", registry.NewGuardRegistry(), functions)
	want := "src\nfunction b(){\n  return b_(...arguments)\n}\nfunction a(){\n  return a_(...arguments)\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDispatchProcessor(t *testing.T) {
	ctx := pipeline.NewPipelineContext("body")
	ctx.Functions.Add("f", registry.NewOverload("f", [][]string{{}}))
	ctx = (&DispatchProcessor{}).Process(ctx)
	if !strings.HasSuffix(ctx.Text, "function f(){\n  return f_(...arguments)\n}") {
		t.Errorf("text = %q", ctx.Text)
	}
}

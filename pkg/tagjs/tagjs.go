// Package tagjs adds guard-based multiple dispatch to JavaScript source.
//
// Guards are named single-argument predicates:
//
//	guard Even(x) { return x % 2 == 0 }
//	guard Odd(x)  { return x % 2 == 1 }
//
// Functions may be declared several times with guard tags on their
// parameters. Tags on one parameter are joined with "*" and must all pass:
//
//	function foo(x: Even) { return x / 2 }
//	function foo(x: Odd)  { return x + 1 }
//
// Convert renames each overload (foo_Even, foo_Odd) and appends a dispatcher
// called foo that tries the overloads in declaration order. A call that no
// overload accepts throws "No guards passed for foo call".
package tagjs

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/funvibe/tagjs/internal/backend"
	"github.com/funvibe/tagjs/internal/config"
	"github.com/funvibe/tagjs/internal/diagnostics"
	"github.com/funvibe/tagjs/internal/dispatch"
	"github.com/funvibe/tagjs/internal/functions"
	"github.com/funvibe/tagjs/internal/guards"
	"github.com/funvibe/tagjs/internal/pipeline"
	"github.com/funvibe/tagjs/internal/registry"
)

type (
	GuardRegistry    = registry.GuardRegistry
	FunctionRegistry = registry.FunctionRegistry
	Overload         = registry.Overload
	Settings         = config.Settings
	Diagnostic       = diagnostics.DiagnosticError
)

// ExtractGuards rewrites guard headers into predicate function headers.
func ExtractGuards(source string) (string, *GuardRegistry) {
	return guards.Extract(source)
}

// ExtractFunctions renames function headers to their mangled overload names.
func ExtractFunctions(source string) (string, *FunctionRegistry) {
	return functions.Extract(source)
}

// SynthesizeDispatchers appends one dispatcher per function family.
func SynthesizeDispatchers(source string, g *GuardRegistry, f *FunctionRegistry) string {
	return dispatch.Synthesize(source, g, f)
}

// RewriteProcessors returns the three rewrite stages in pipeline order.
func RewriteProcessors() []pipeline.Processor {
	return []pipeline.Processor{
		&guards.GuardProcessor{},
		&functions.FunctionProcessor{},
		&dispatch.DispatchProcessor{},
	}
}

// Convert rewrites source into plain JavaScript.
func Convert(source string) string {
	return pipeline.New(RewriteProcessors()...).Run(pipeline.NewPipelineContext(source)).Text
}

// Options configures RunContext.
type Options struct {
	// Stdout receives print and console.log output. Defaults to os.Stdout.
	Stdout io.Writer
	// Settings defaults to config.DefaultSettings().
	Settings *Settings
	// FilePath names the script in stack traces.
	FilePath string
}

// Run converts source and executes it, printing to os.Stdout.
func Run(source string) error {
	return RunContext(context.Background(), source, Options{})
}

// RunContext converts source and executes it until it finishes or ctx is
// done. Execution failures are returned as *Diagnostic values when there is
// exactly one.
func RunContext(ctx context.Context, source string, opts Options) error {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	initial := pipeline.NewPipelineContext(source)
	initial.FilePath = opts.FilePath
	initial.Context = ctx
	if opts.Settings != nil {
		initial.Settings = opts.Settings
	}

	stages := append(RewriteProcessors(), backend.NewExecutionProcessor(&backend.GojaBackend{Stdout: stdout}))
	final := pipeline.New(stages...).Run(initial)

	switch len(final.Errors) {
	case 0:
		return nil
	case 1:
		return final.Errors[0]
	}
	msgs := make([]string, len(final.Errors))
	for i, e := range final.Errors {
		msgs[i] = e.Error()
	}
	return errors.New("errors during execution:\n" + strings.Join(msgs, "\n"))
}

// ParseSettings parses tagjs.yaml content.
func ParseSettings(data []byte) (*Settings, error) {
	return config.ParseSettings(data, "tagjs.yaml")
}

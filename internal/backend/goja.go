package backend

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dop251/goja"
	"github.com/pkg/errors"

	"github.com/funvibe/tagjs/internal/config"
	"github.com/funvibe/tagjs/internal/pipeline"
)

// GojaBackend runs converted programs in an embedded ECMAScript VM.
// Every Run uses a fresh runtime.
type GojaBackend struct {
	// Stdout receives output from print and console.log.
	Stdout io.Writer
}

// NewGoja creates a backend printing to os.Stdout.
func NewGoja() *GojaBackend {
	return &GojaBackend{Stdout: os.Stdout}
}

// Name returns the backend name
func (b *GojaBackend) Name() string {
	return "goja"
}

// Run executes ctx.Text. The runtime is interrupted when ctx.Context is done
// or the configured timeout elapses.
func (b *GojaBackend) Run(ctx *pipeline.PipelineContext) (interface{}, error) {
	settings := ctx.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}

	vm := goja.New()
	if err := bindGlobals(vm, b.Stdout, settings.Globals); err != nil {
		return nil, err
	}
	return runScript(ctx.Context, vm, settings, ctx.FilePath, ctx.Text)
}

// Session is a runtime that keeps its globals between runs, so each script
// sees the functions and variables defined by the previous ones.
type Session struct {
	vm       *goja.Runtime
	settings *config.Settings
}

// NewSession creates a session printing to stdout.
func NewSession(stdout io.Writer, settings *config.Settings) (*Session, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	vm := goja.New()
	if err := bindGlobals(vm, stdout, settings.Globals); err != nil {
		return nil, err
	}
	return &Session{vm: vm, settings: settings}, nil
}

// Run executes text in the session runtime. Errors are returned as
// diagnostics.
func (s *Session) Run(ctx context.Context, name, text string) (interface{}, error) {
	value, err := runScript(ctx, s.vm, s.settings, name, text)
	if err != nil {
		return nil, Diagnose(err)
	}
	return value, nil
}

func runScript(ctx context.Context, vm *goja.Runtime, settings *config.Settings, name, text string) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d := settings.TimeoutDuration(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	// The watcher must have exited before the interrupt flag is cleared, or
	// a late Interrupt would leak into the next script of a Session.
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()
	defer func() {
		close(done)
		<-stopped
		vm.ClearInterrupt()
	}()

	if name == "" {
		name = "<stdin>"
	}
	value, err := vm.RunScript(name, text)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return value.Export(), nil
}

func bindGlobals(vm *goja.Runtime, out io.Writer, globals []string) error {
	if out == nil {
		out = io.Discard
	}
	print := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return goja.Undefined()
	}

	console := vm.NewObject()
	if err := console.Set(config.ConsoleLogName, print); err != nil {
		return errors.Wrap(err, "binding console.log")
	}
	if err := vm.Set(config.ConsoleName, console); err != nil {
		return errors.Wrap(err, "binding console")
	}
	for _, name := range globals {
		if err := vm.Set(name, print); err != nil {
			return errors.Wrapf(err, "binding %s", name)
		}
	}
	return nil
}

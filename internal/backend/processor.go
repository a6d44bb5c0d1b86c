package backend

import (
	"github.com/dop251/goja"
	"github.com/pkg/errors"

	"github.com/funvibe/tagjs/internal/diagnostics"
	"github.com/funvibe/tagjs/internal/pipeline"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if len(ctx.Errors) > 0 {
		return ctx
	}

	result, err := p.Backend.Run(ctx)
	if err != nil {
		ctx.AddError(Diagnose(err))
		return ctx
	}
	ctx.Result = result
	return ctx
}

// Diagnose turns a backend error into a diagnostic. Thrown values keep their
// message, so a failed dispatch reads "Error: No guards passed for f call".
func Diagnose(err error) *diagnostics.DiagnosticError {
	var d *diagnostics.DiagnosticError
	if errors.As(err, &d) {
		return d
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return diagnostics.NewError(diagnostics.ErrR002, "execution interrupted: %v", interrupted.Value())
	}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		d = diagnostics.NewError(diagnostics.ErrR001, "%s", exc.Value().String())
		d.Stack = exc.String()
		return d
	}

	return diagnostics.NewError(diagnostics.ErrR001, "%s", err.Error())
}

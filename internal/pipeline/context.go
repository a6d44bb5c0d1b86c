package pipeline

import (
	"context"

	"github.com/funvibe/tagjs/internal/config"
	"github.com/funvibe/tagjs/internal/diagnostics"
	"github.com/funvibe/tagjs/internal/registry"
)

// PipelineContext carries the program text and the registries from one
// stage to the next. A context belongs to a single conversion.
type PipelineContext struct {
	// SourceCode is the original input and is never modified.
	SourceCode string
	// Text is the buffer under transformation.
	Text string
	// FilePath is used in diagnostics only.
	FilePath string

	Guards    *registry.GuardRegistry
	Functions *registry.FunctionRegistry

	Settings *config.Settings
	// Context bounds execution. Rewrite stages ignore it.
	Context context.Context

	// Result is the exported completion value of an executed program.
	Result interface{}

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{
		SourceCode: sourceCode,
		Text:       sourceCode,
		Guards:     registry.NewGuardRegistry(),
		Functions:  registry.NewFunctionRegistry(),
		Settings:   config.DefaultSettings(),
		Context:    context.Background(),
	}
}

// AddError records err, filling in the file path when it is missing.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

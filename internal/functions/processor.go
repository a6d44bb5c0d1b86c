package functions

import "github.com/funvibe/tagjs/internal/pipeline"

// FunctionProcessor implements pipeline.Processor to rename overloads and
// fill ctx.Functions.
type FunctionProcessor struct{}

// Process runs Extract over ctx.Text.
func (fp *FunctionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Text, ctx.Functions = Extract(ctx.Text)
	return ctx
}

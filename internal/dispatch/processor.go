package dispatch

import "github.com/funvibe/tagjs/internal/pipeline"

// DispatchProcessor implements pipeline.Processor to append dispatchers for
// the families in ctx.Functions.
type DispatchProcessor struct{}

// Process appends the dispatchers to ctx.Text.
func (dp *DispatchProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Text = Synthesize(ctx.Text, ctx.Guards, ctx.Functions)
	return ctx
}

package guards

import "github.com/funvibe/tagjs/internal/pipeline"

// GuardProcessor implements pipeline.Processor to rewrite guard declarations
// and fill ctx.Guards.
type GuardProcessor struct{}

// Process runs Extract over ctx.Text.
func (gp *GuardProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Text, ctx.Guards = Extract(ctx.Text)
	return ctx
}

// Package backend provides the host execution facility for converted
// programs. The rewrite stages only produce text; a Backend runs it.
package backend

import "github.com/funvibe/tagjs/internal/pipeline"

// Backend is the interface for execution backends
type Backend interface {
	// Run executes ctx.Text and returns the program's completion value
	Run(ctx *pipeline.PipelineContext) (interface{}, error)

	// Name returns the backend name for display
	Name() string
}

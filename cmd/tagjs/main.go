package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/funvibe/tagjs/internal/backend"
	"github.com/funvibe/tagjs/internal/config"
	"github.com/funvibe/tagjs/internal/diagnostics"
	"github.com/funvibe/tagjs/internal/pipeline"
	"github.com/funvibe/tagjs/pkg/tagjs"
)

const usage = `Usage:
  tagjs <file>                 convert and run a file (stdin if omitted)
  tagjs run <file>             same as above
  tagjs convert [-w] <file>    print the converted JavaScript; -w writes <file>.js
  tagjs repl                   interactive session
  tagjs help                   show this message

Flags:
  -v   print stage summaries to stderr
`

var verbose bool

func colorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func red(s string) string {
	if !colorEnabled(os.Stderr) {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func logf(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func printErrors(heading string, errs []*diagnostics.DiagnosticError) {
	fmt.Fprintln(os.Stderr, heading)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "- %s\n", red(err.Error()))
		if verbose && err.Stack != "" {
			fmt.Fprintln(os.Stderr, err.Stack)
		}
	}
}

// loadSettings resolves tagjs.yaml for the script at path, or for the
// working directory when path is empty.
func loadSettings(path string) (*config.Settings, error) {
	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	return config.ResolveSettings(dir)
}

func handleHelp(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help", "-help", "--help", "-h":
		fmt.Print(usage)
		return true
	}
	return false
}

// handleConvert prints or writes the converted text of a file.
func handleConvert(args []string) bool {
	if len(args) == 0 || args[0] != "convert" {
		return false
	}

	write := false
	var files []string
	for _, arg := range args[1:] {
		if arg == "-w" || arg == "--write" {
			write = true
			continue
		}
		files = append(files, arg)
	}

	if len(files) == 0 {
		source, err := readInput("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", red(err.Error()))
			os.Exit(1)
		}
		fmt.Println(convertSource(source))
		return true
	}

	for _, path := range files {
		source, err := readInput(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", red(err.Error()))
			os.Exit(1)
		}
		converted := convertSource(source)
		if !write {
			fmt.Println(converted)
			continue
		}

		settings, err := loadSettings(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", red(err.Error()))
			os.Exit(1)
		}
		out := outputPath(path, settings.OutputExt)
		if err := os.WriteFile(out, []byte(converted), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %s\n", out, red(err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Converted %s -> %s\n", path, out)
	}
	return true
}

func convertSource(source string) string {
	ctx := pipeline.New(tagjs.RewriteProcessors()...).Run(pipeline.NewPipelineContext(source))
	logf("guards: %d, functions: %d", ctx.Guards.Len(), ctx.Functions.Len())
	return ctx.Text
}

// outputPath replaces a recognized source extension with ext, or appends
// ext when the file has none of them.
func outputPath(path, ext string) string {
	for _, srcExt := range config.SourceFileExtensions {
		if strings.HasSuffix(path, srcExt) {
			return strings.TrimSuffix(path, srcExt) + ext
		}
	}
	return path + ext
}

// runPipeline converts and executes source. It returns false if any stage
// reported errors.
func runPipeline(source, filePath string, settings *config.Settings) bool {
	initialContext := pipeline.NewPipelineContext(source)
	initialContext.FilePath = filePath
	initialContext.Settings = settings

	stages := tagjs.RewriteProcessors()
	if settings.PrintConverted {
		stages = append(stages, pipeline.ProcessorFunc(func(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
			fmt.Fprintln(os.Stderr, ctx.Text)
			return ctx
		}))
	}
	execBackend := backend.NewGoja()
	stages = append(stages, backend.NewExecutionProcessor(execBackend))

	finalContext := pipeline.New(stages...).Run(initialContext)
	logf("guards: %d, functions: %d, backend: %s",
		finalContext.Guards.Len(), finalContext.Functions.Len(), execBackend.Name())

	if len(finalContext.Errors) > 0 {
		printErrors("Processing failed with errors:", finalContext.Errors)
		return false
	}
	return true
}

func readInput(path string) (string, error) {
	var input []byte
	var err error

	if path == "" {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return "", errors.New("no input: pass a file or pipe source on stdin")
		}
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrap(err, "reading input")
	}
	return string(input), nil
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	var args []string
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			continue
		}
		args = append(args, arg)
	}

	if handleHelp(args) {
		return
	}
	if handleConvert(args) {
		return
	}
	if len(args) > 0 && args[0] == "repl" {
		settings, err := loadSettings("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", red(err.Error()))
			os.Exit(1)
		}
		os.Exit(cmdRepl(settings))
	}
	if len(args) > 0 && args[0] == "run" {
		args = args[1:]
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	source, err := readInput(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", red(err.Error()))
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	settings, err := loadSettings(path)
	if err != nil {
		printErrors("Configuration failed with errors:", []*diagnostics.DiagnosticError{
			diagnostics.NewError(diagnostics.ErrC001, "%s", err.Error()),
		})
		os.Exit(1)
	}

	filePath := ""
	if path != "" {
		filePath, _ = filepath.Abs(path)
	}
	if !runPipeline(source, filePath, settings) {
		os.Exit(1)
	}
}

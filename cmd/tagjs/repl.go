package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/funvibe/tagjs/internal/backend"
	"github.com/funvibe/tagjs/internal/config"
	"github.com/funvibe/tagjs/internal/dispatch"
	"github.com/funvibe/tagjs/internal/functions"
	"github.com/funvibe/tagjs/internal/guards"
	"github.com/funvibe/tagjs/internal/registry"
	"github.com/funvibe/tagjs/pkg/tagjs"
)

const (
	banner      = "tagjs repl. Type :show to see the converted session, :reset to clear it, :quit to exit."
	promptMain  = "> "
	promptCont  = ". "
	historyFile = ".tagjs_history"
)

// session keeps one runtime for the whole REPL. Each chunk is rewritten on
// its own and run together with fresh dispatchers built from every overload
// accepted so far, so a new overload joins the family of earlier ones while
// earlier chunks never run again.
type session struct {
	settings  *config.Settings
	runtime   *backend.Session
	out       bytes.Buffer
	source    string
	guards    *registry.GuardRegistry
	functions *registry.FunctionRegistry
}

func newSession(settings *config.Settings) (*session, error) {
	s := &session{settings: settings}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// eval runs chunk and returns what it printed and its completion value. On
// error the chunk's overloads are not registered.
func (s *session) eval(chunk string) (string, interface{}, error) {
	text, chunkGuards := guards.Extract(chunk)
	text, chunkFunctions := functions.Extract(text)

	allGuards := s.guards.Clone()
	allGuards.Merge(chunkGuards)
	allFunctions := s.functions.Clone()
	allFunctions.Merge(chunkFunctions)

	s.out.Reset()
	value, err := s.runtime.Run(context.Background(), "<repl>", dispatch.Synthesize(text, allGuards, allFunctions))
	printed := s.out.String()
	if err != nil {
		return printed, nil, err
	}

	s.guards, s.functions = allGuards, allFunctions
	if s.source == "" {
		s.source = chunk
	} else {
		s.source += "\n" + chunk
	}
	return printed, value, nil
}

// reset discards every definition and starts a new runtime.
func (s *session) reset() error {
	runtime, err := backend.NewSession(&s.out, s.settings)
	if err != nil {
		return err
	}
	s.runtime = runtime
	s.out.Reset()
	s.source = ""
	s.guards = registry.NewGuardRegistry()
	s.functions = registry.NewFunctionRegistry()
	return nil
}

// incomplete reports whether src has unclosed brackets, ignoring brackets
// inside string and regex literals and comments.
func incomplete(src string) bool {
	depth := 0
	var quote byte
	// prev is the last significant byte outside literals and comments.
	var prev byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			switch {
			case c == '\\':
				i++
			case c == quote:
				quote = 0
				prev = c
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '/':
			switch {
			case i+1 < len(src) && src[i+1] == '/':
				for i < len(src) && src[i] != '\n' {
					i++
				}
			case i+1 < len(src) && src[i+1] == '*':
				end := strings.Index(src[i+2:], "*/")
				if end < 0 {
					return true
				}
				i += end + 3
			case regexAllowedAfter(prev):
				i = skipRegex(src, i)
				prev = '/'
			default:
				prev = c
			}
		case '{', '(', '[':
			depth++
			prev = c
		case '}', ')', ']':
			depth--
			prev = c
		case ' ', '\t', '\n', '\r':
		default:
			prev = c
		}
	}
	return depth > 0 || quote == '`'
}

// regexAllowedAfter reports whether a '/' following prev starts a regex
// literal rather than a division.
func regexAllowedAfter(prev byte) bool {
	return prev == 0 || strings.IndexByte("(,=:[!&|?{};+-*%<>~^", prev) >= 0
}

// skipRegex returns the index of the '/' closing the regex literal that
// starts at i, or the end of the line when it is unterminated.
func skipRegex(src string, i int) int {
	inClass := false
	for j := i + 1; j < len(src); j++ {
		switch c := src[j]; {
		case c == '\\':
			j++
		case c == '\n':
			return j
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			return j
		}
	}
	return len(src)
}

func cmdRepl(settings *config.Settings) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s, err := newSession(settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	for {
		code, ok := readChunk(ln)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			case ":show":
				fmt.Println(tagjs.Convert(s.source))
			case ":reset":
				if err := s.reset(); err != nil {
					fmt.Fprintln(os.Stderr, red(err.Error()))
				}
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		out, value, err := s.eval(code)
		fmt.Print(out)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		if value != nil {
			fmt.Println(value)
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

func readChunk(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// Package engine evaluates stroke scripts: small zygomys Lisp programs
// that draw the strokes a reconstruction runs on. Scripts run in a fresh
// sandbox with a hard timeout.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/retopo/pkg/strokes"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError is a non-fatal error in the script itself, such as a parse
// error or a bad builtin argument.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine runs stroke scripts. It is safe for concurrent use; each call to
// Evaluate gets its own sandbox.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs source and returns the strokes it drew.
//
//   - On success: set, nil, nil.
//   - On a script error: nil, eval errors, nil.
//   - On timeout, panic or a superseded run: nil, nil, error.
func (e *Engine) Evaluate(source string) (*strokes.Set, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("engine: panic during evaluation: %v", r)}
			}
		}()

		set, evalErrs, err := e.evaluate(source)
		ch <- evalResult{set: set, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

func (e *Engine) evaluate(source string) (*strokes.Set, []EvalError, error) {
	set := &strokes.Set{Strokes: []strokes.Stroke{}}
	if strings.TrimSpace(source) == "" {
		return set, nil, nil
	}

	// The sandbox has no filesystem or syscall access.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, set)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return set, nil, nil
}

// linePattern matches "Error on line N: ..." as zygomys reports it.
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches "line N: ...".
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError turns a zygomys error into EvalErrors, pulling out the
// line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

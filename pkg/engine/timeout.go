package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/retopo/pkg/strokes"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past EvalTimeout.
	ErrTimeout = errors.New("engine: evaluation timed out")
	// ErrSuperseded is returned when a newer Evaluate call started before
	// this one finished.
	ErrSuperseded = errors.New("engine: evaluation superseded by newer request")
)

type evalResult struct {
	set    *strokes.Set
	errors []EvalError
	err    error
}

// waitWithTimeout waits for the result on ch for at most EvalTimeout.
// Results from a generation older than *currentGen are discarded.
//
// A timed out script keeps running in its goroutine; its result lands in
// the buffered channel and is dropped.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (*strokes.Set, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, ErrSuperseded
		}
		return res.set, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, EvalTimeout)
	}
}

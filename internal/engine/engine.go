// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine dispatches script executions: it resolves a name against
// the registry, binds raw argument tokens to the script's declared specs,
// runs the entry point under a time box, and reports a structured result.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FATESAIKOU/learn-windows-automation/internal/capability"
	"github.com/FATESAIKOU/learn-windows-automation/internal/capability/selector"
	"github.com/FATESAIKOU/learn-windows-automation/internal/registry"
)

// Status is the terminal state of one execution request.
type Status string

const (
	// StatusCompleted: the body returned normally.
	StatusCompleted Status = "completed"
	// StatusFailed: the body errored, panicked, or timed out.
	StatusFailed Status = "failed"
	// StatusRejected: the request never ran (unknown script or bad arguments).
	StatusRejected Status = "rejected"
)

// Exit codes carried in Result.Code, one per failure kind so callers can map
// them straight to process exit codes.
const (
	CodeOK        = 0
	CodeNotFound  = 2
	CodeBadArgs   = 3
	CodeTimeout   = 4
	CodeExecution = 5
)

// Request describes one invocation. Constructed per call, never persisted.
type Request struct {
	Script  string
	Args    []string
	Timeout time.Duration
}

// Result is what Execute hands back. The engine retains nothing after
// returning it.
type Result struct {
	Status  Status
	Code    int
	Output  string
	Err     error
	Elapsed time.Duration
}

// Invocation is the context a script body runs with: its registry entry, the
// typed bound arguments, and the capability backend the selector chose.
type Invocation struct {
	Entry *registry.Entry
	Args  Args
	Caps  capability.Backend

	out *lockedBuffer
}

// NewInvocation builds an invocation outside the engine, with output
// capture wired up. Used by tests that exercise a script body directly.
func NewInvocation(entry *registry.Entry, args Args, caps capability.Backend) *Invocation {
	return &Invocation{Entry: entry, Args: args, Caps: caps, out: &lockedBuffer{}}
}

// Output returns everything the body wrote so far.
func (inv *Invocation) Output() string { return inv.out.String() }

// Printf writes formatted text to the execution's captured output.
func (inv *Invocation) Printf(format string, a ...any) {
	fmt.Fprintf(inv.out, format, a...)
}

// Println writes a line to the execution's captured output.
func (inv *Invocation) Println(a ...any) {
	fmt.Fprintln(inv.out, a...)
}

// Out exposes the captured output stream for bodies that pipe into it.
func (inv *Invocation) Out() io.Writer { return inv.out }

// Handler is a script entry point. It receives the bound arguments and the
// selected backend through inv and reports failure by returning an error.
type Handler func(ctx context.Context, inv *Invocation) error

// Engine resolves and runs scripts. It never retries: automation side
// effects (opened documents, moved windows) are not idempotent, so a silent
// retry could double them.
type Engine struct {
	reg      *registry.Registry
	sel      *selector.Selector
	handlers map[string]Handler
	logger   *log.Logger
}

// New builds an engine over a scanned registry, a backend selector, and the
// entry points registered by name.
func New(reg *registry.Registry, sel *selector.Selector, handlers map[string]Handler, logger *log.Logger) *Engine {
	return &Engine{reg: reg, sel: sel, handlers: handlers, logger: logger}
}

// Execute runs one request to completion (or timeout) and returns its
// result. A request walks resolve -> bind -> run; the first two can only end
// in rejection, the run step in completion or failure.
//
// Timeout is the sole cancellation mechanism. A timed-out body is abandoned:
// its goroutine keeps running until its next return, and native resources it
// opened are not forcibly reclaimed.
func (e *Engine) Execute(ctx context.Context, req Request) Result {
	start := time.Now()

	entry, err := e.reg.Lookup(req.Script)
	if err != nil {
		return Result{
			Status:  StatusRejected,
			Code:    CodeNotFound,
			Err:     &NotFoundError{Script: req.Script},
			Elapsed: time.Since(start),
		}
	}
	handler, ok := e.handlers[req.Script]
	if !ok {
		return Result{
			Status:  StatusRejected,
			Code:    CodeNotFound,
			Err:     &NotFoundError{Script: req.Script, Detail: "no entry point registered"},
			Elapsed: time.Since(start),
		}
	}

	bound, err := bindArgs(&entry.Script, req.Args)
	if err != nil {
		return Result{
			Status:  StatusRejected,
			Code:    CodeBadArgs,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}

	inv := &Invocation{
		Entry: entry,
		Args:  bound,
		Caps:  e.sel.Current(),
		out:   &lockedBuffer{},
	}
	e.logger.Debug("running script", "script", req.Script, "backend", inv.Caps.Name(), "timeout", req.Timeout)

	runErr := e.run(ctx, req, handler, inv)
	elapsed := time.Since(start)

	switch err := runErr.(type) {
	case nil:
		e.logger.Debug("script completed", "script", req.Script, "elapsed", elapsed)
		return Result{Status: StatusCompleted, Code: CodeOK, Output: inv.Output(), Elapsed: elapsed}
	case *TimeoutError:
		e.logger.Warn("script timed out", "script", req.Script, "timeout", req.Timeout)
		return Result{Status: StatusFailed, Code: CodeTimeout, Output: inv.Output(), Err: err, Elapsed: elapsed}
	default:
		e.logger.Warn("script failed", "script", req.Script, "err", err)
		return Result{
			Status:  StatusFailed,
			Code:    CodeExecution,
			Output:  inv.Output(),
			Err:     &ExecError{Script: req.Script, Err: err},
			Elapsed: elapsed,
		}
	}
}

// run invokes the handler on its own goroutine and waits for it, the
// deadline, or context cancellation, whichever comes first.
func (e *Engine) run(ctx context.Context, req Request, handler Handler, inv *Invocation) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic: %v", r)
			}
		}()
		done <- handler(ctx, inv)
	}()

	var deadline <-chan time.Time
	if req.Timeout > 0 {
		timer := time.NewTimer(req.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case err := <-done:
		return err
	case <-deadline:
		return &TimeoutError{Script: req.Script, Timeout: req.Timeout}
	case <-ctx.Done():
		return &TimeoutError{Script: req.Script, Timeout: req.Timeout}
	}
}

// lockedBuffer lets the result path read captured output while an abandoned
// body goroutine may still be writing.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

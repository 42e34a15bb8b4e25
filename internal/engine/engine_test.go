// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FATESAIKOU/learn-windows-automation/internal/capability"
	"github.com/FATESAIKOU/learn-windows-automation/internal/capability/mock"
	"github.com/FATESAIKOU/learn-windows-automation/internal/capability/selector"
	"github.com/FATESAIKOU/learn-windows-automation/internal/registry"
)

const greeterMetadata = `
name = "greeter"
description = "say hello"
category = "test"

[[arguments]]
name = "who"
kind = "string"
required = true

[[arguments]]
name = "times"
kind = "integer"
required = false
default = 1
`

type testEnv struct {
	engine  *Engine
	backend *mock.Backend
}

// newTestEnv scans a throwaway root containing the greeter metadata and
// builds an engine over it with the given handler registered.
func newTestEnv(t *testing.T, handler Handler) *testEnv {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "greeter.toml"), []byte(greeterMetadata), 0o644))

	logger := log.New(io.Discard)
	reg, err := registry.Scan(root, &registry.Config{}, logger)
	require.NoError(t, err)

	backend := mock.New()
	sel := selector.New()
	require.NoError(t, sel.Override(backend))

	handlers := map[string]Handler{}
	if handler != nil {
		handlers["greeter"] = handler
	}
	return &testEnv{
		engine:  New(reg, sel, handlers, logger),
		backend: backend,
	}
}

func TestExecute_Completed(t *testing.T) {
	env := newTestEnv(t, func(ctx context.Context, inv *Invocation) error {
		for i := int64(0); i < inv.Args.Int("times"); i++ {
			inv.Printf("hello %s\n", inv.Args.String("who"))
		}
		return nil
	})

	res := env.engine.Execute(context.Background(), Request{Script: "greeter", Args: []string{"world", "2"}})
	require.NoError(t, res.Err)
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, CodeOK, res.Code)
	assert.Equal(t, "hello world\nhello world\n", res.Output)
	assert.Greater(t, res.Elapsed, time.Duration(0))
}

func TestExecute_UnknownScriptTouchesNoCapabilities(t *testing.T) {
	env := newTestEnv(t, nil)

	res := env.engine.Execute(context.Background(), Request{Script: "ghost"})
	assert.Equal(t, StatusRejected, res.Status)
	assert.Equal(t, CodeNotFound, res.Code)

	var nf *NotFoundError
	require.ErrorAs(t, res.Err, &nf)
	assert.Equal(t, "ghost", nf.Script)

	assert.Zero(t, env.backend.Calls(), "rejected request must not reach the backend")
}

func TestExecute_NoEntryPoint(t *testing.T) {
	env := newTestEnv(t, nil) // metadata exists, body does not

	res := env.engine.Execute(context.Background(), Request{Script: "greeter", Args: []string{"x"}})
	assert.Equal(t, StatusRejected, res.Status)
	assert.Equal(t, CodeNotFound, res.Code)
	assert.Zero(t, env.backend.Calls())
}

func TestExecute_BindingRejection(t *testing.T) {
	env := newTestEnv(t, func(ctx context.Context, inv *Invocation) error {
		t.Error("body must not run on a binding failure")
		return nil
	})

	res := env.engine.Execute(context.Background(), Request{Script: "greeter"})
	assert.Equal(t, StatusRejected, res.Status)
	assert.Equal(t, CodeBadArgs, res.Code)

	var be *BindingError
	require.ErrorAs(t, res.Err, &be)
	assert.Equal(t, "who", be.Argument)
	assert.Zero(t, env.backend.Calls())
}

func TestExecute_BodyErrorWrapped(t *testing.T) {
	capErr := capability.OpFailed("mock", "find_window", capability.ErrNotFound)
	env := newTestEnv(t, func(ctx context.Context, inv *Invocation) error {
		inv.Println("partial output")
		return capErr
	})

	res := env.engine.Execute(context.Background(), Request{Script: "greeter", Args: []string{"x"}})
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, CodeExecution, res.Code)
	assert.Equal(t, "partial output\n", res.Output)

	var ee *ExecError
	require.ErrorAs(t, res.Err, &ee)
	assert.ErrorIs(t, res.Err, capability.ErrNotFound, "capability failures stay reachable through the chain")
}

func TestExecute_PanicBecomesFailure(t *testing.T) {
	env := newTestEnv(t, func(ctx context.Context, inv *Invocation) error {
		panic("boom")
	})

	res := env.engine.Execute(context.Background(), Request{Script: "greeter", Args: []string{"x"}})
	assert.Equal(t, StatusFailed, res.Status)

	var ee *ExecError
	require.ErrorAs(t, res.Err, &ee)
	assert.Contains(t, ee.Error(), "boom")
}

func TestExecute_Timeout(t *testing.T) {
	started := make(chan struct{})
	env := newTestEnv(t, func(ctx context.Context, inv *Invocation) error {
		close(started)
		time.Sleep(2 * time.Second)
		return nil
	})

	timeout := 50 * time.Millisecond
	res := env.engine.Execute(context.Background(), Request{
		Script:  "greeter",
		Args:    []string{"x"},
		Timeout: timeout,
	})

	<-started
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, CodeTimeout, res.Code)

	var te *TimeoutError
	require.ErrorAs(t, res.Err, &te)
	assert.Equal(t, timeout, te.Timeout)

	// Execute returns promptly at the deadline, not when the body finishes.
	assert.GreaterOrEqual(t, res.Elapsed, timeout)
	assert.Less(t, res.Elapsed, time.Second)
}

func TestExecute_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	env := newTestEnv(t, func(ctx context.Context, inv *Invocation) error {
		cancel()
		time.Sleep(2 * time.Second)
		return nil
	})

	res := env.engine.Execute(ctx, Request{Script: "greeter", Args: []string{"x"}})
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, CodeTimeout, res.Code)
	assert.Less(t, res.Elapsed, time.Second)
}

func TestExecute_NoRetry(t *testing.T) {
	var runs int
	env := newTestEnv(t, func(ctx context.Context, inv *Invocation) error {
		runs++
		return fmt.Errorf("transient-looking failure")
	})

	res := env.engine.Execute(context.Background(), Request{Script: "greeter", Args: []string{"x"}})
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, 1, runs)
}

func TestExecute_ResultsAreIndependent(t *testing.T) {
	var calls int
	env := newTestEnv(t, func(ctx context.Context, inv *Invocation) error {
		calls++
		if calls == 1 {
			return errors.New("first run fails")
		}
		inv.Println("second run output")
		return nil
	})

	first := env.engine.Execute(context.Background(), Request{Script: "greeter", Args: []string{"x"}})
	second := env.engine.Execute(context.Background(), Request{Script: "greeter", Args: []string{"x"}})

	assert.Equal(t, StatusFailed, first.Status)
	assert.Equal(t, StatusCompleted, second.Status)
	assert.Empty(t, first.Output)
	assert.Equal(t, "second run output\n", second.Output)
}

/*
engine owns the conversation loop and the bridge lifecycle. A single
worker goroutine consumes prompts from the inbound queue, drives the
model through bounded tool-calling rounds, and emits text and status
events on the outbound queues.
*/
package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	// Packages
	bridge "github.com/mcpbridge/mcpbridge"
	queue "github.com/mcpbridge/mcpbridge/pkg/queue"
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
	translate "github.com/mcpbridge/mcpbridge/pkg/translate"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Engine struct {
	generator    bridge.Generator
	invoker      bridge.Invoker
	translator   *translate.Translator
	router       *queue.Router
	maxRounds    int
	systemPrompt string

	mu         sync.Mutex
	state      schema.BridgeState
	transcript schema.Transcript
	cancel     context.CancelFunc
}

// Opt is a function which modifies engine options
type Opt func(*Engine) error

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Default cap on model rounds within a single turn
	DefaultMaxRounds = 8
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an engine bound to a model backend and a tool provider.
// The engine is not usable until Start has run the setup sequence.
func New(generator bridge.Generator, invoker bridge.Invoker, opts ...Opt) (*Engine, error) {
	if generator == nil {
		return nil, bridge.ErrBadParameter.With("missing generator")
	}
	engine := &Engine{
		generator:  generator,
		invoker:    invoker,
		translator: translate.New(),
		router:     queue.NewRouter(),
		maxRounds:  DefaultMaxRounds,
		state:      schema.StateUninitialized,
	}
	for _, opt := range opts {
		if err := opt(engine); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithMaxRounds sets the cap on model rounds within a single turn
func WithMaxRounds(n int) Opt {
	return func(e *Engine) error {
		if n < 1 {
			return bridge.ErrBadParameter.Withf("max rounds %d", n)
		}
		e.maxRounds = n
		return nil
	}
}

// WithSystemPrompt seeds the transcript with a system message
func WithSystemPrompt(prompt string) Opt {
	return func(e *Engine) error {
		e.systemPrompt = prompt
		return nil
	}
}

// WithRouter replaces the default event router
func WithRouter(router *queue.Router) Opt {
	return func(e *Engine) error {
		if router == nil {
			return bridge.ErrBadParameter.With("missing router")
		}
		e.router = router
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Router returns the event router for producers and consumers
func (e *Engine) Router() *queue.Router {
	return e.router
}

// State returns the current lifecycle state
func (e *Engine) State() schema.BridgeState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Tools returns the names of the cached tool definitions
func (e *Engine) Tools() []string {
	return e.translator.Names()
}

// Start runs the setup sequence: verify the model backend credential,
// then connect to the tool provider and cache its tool definitions. A
// backend failure is fatal; a provider failure leaves the engine
// degraded, answering without tools.
func (e *Engine) Start(ctx context.Context) error {
	if state := e.State(); state != schema.StateUninitialized {
		return bridge.ErrConflict.Withf("already started, state %q", state)
	}

	// Verify the backend credential
	e.setState(schema.StateVerifyingBackend, "checking model backend")
	if err := e.generator.Ping(ctx); err != nil {
		e.setState(schema.StateFailed, err.Error())
		return bridge.ErrNotReady.With("model backend unavailable: ", err)
	}
	e.setState(schema.StateBackendReady, e.generator.Name())

	// Seed the transcript
	if e.systemPrompt != "" {
		e.transcript.Append(schema.NewMessage(schema.RoleSystem, e.systemPrompt))
	}

	// Discover the provider's tools. The provider being down is not
	// fatal, the engine still answers from the model alone.
	e.setState(schema.StateConnectingProvider, "listing provider tools")
	if e.invoker == nil {
		e.setState(schema.StateDegraded, "no tool provider configured")
		return nil
	}
	tools, err := e.invoker.ListTools(ctx)
	if err != nil {
		slog.Warn("tool provider unavailable", "error", err)
		e.setState(schema.StateDegraded, err.Error())
		return nil
	}
	if err := e.translator.Load(tools); err != nil {
		slog.Warn("tool definitions rejected", "error", err)
		e.setState(schema.StateDegraded, err.Error())
		return nil
	}
	e.setState(schema.StateProviderReady, "")
	e.setState(schema.StateReady, "")

	slog.Info("engine ready", "backend", e.generator.Name(), "tools", e.translator.Len())
	return nil
}

// Run consumes prompts from the inbound queue until the context is
// cancelled or the queue is closed. Each prompt becomes one turn,
// processed in arrival order.
func (e *Engine) Run(ctx context.Context) error {
	for {
		prompt, err := e.router.Inbound.Wait(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		} else if err != nil {
			return err
		}
		if err := e.turn(ctx, prompt); err != nil {
			slog.Debug("turn ended with error", "error", err)
		}
	}
}

// Submit enqueues a prompt for processing. It never blocks.
func (e *Engine) Submit(prompt string) {
	e.router.Inbound.Push(prompt)
}

// Cancel aborts the in-flight turn, if any. The transcript rolls back
// to its state before the turn and no text event is emitted; queued
// prompts are unaffected.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// Close shuts the router queues down
func (e *Engine) Close() {
	e.Cancel()
	e.router.Close()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// setState transitions the lifecycle and emits a status event. Illegal
// transitions are logged and dropped rather than applied.
func (e *Engine) setState(next schema.BridgeState, detail string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.CanTransition(next) {
		slog.Warn("illegal state transition", "from", e.state, "to", next)
		return
	}
	e.state = next
	e.router.PushStatus(next, detail)
}

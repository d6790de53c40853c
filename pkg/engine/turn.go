package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	// Packages
	bridge "github.com/mcpbridge/mcpbridge"
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// turn processes one user prompt to completion. The model is called in
// rounds; any tool calls it emits are executed sequentially and their
// results fed back, until the model answers with plain text or the
// round cap is reached. Exactly one text event is emitted per
// successful turn; a cancelled turn emits none, and either way a
// failed turn rolls the transcript back so the next prompt starts
// clean.
func (e *Engine) turn(ctx context.Context, prompt string) error {
	state := e.State()
	if !state.Usable() {
		e.router.PushStatus(state, fmt.Sprintf("prompt dropped, bridge is %s", state))
		return bridge.ErrNotReady.Withf("state %q", state)
	}

	// Per-turn context so Cancel aborts the in-flight round
	ctx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()
	defer func() {
		cancel()
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
	}()

	// Tools are only advertised when the provider came up
	var tools []schema.FunctionSpec
	if state == schema.StateReady {
		tools = e.translator.Functions()
	}

	snapshot := e.transcript.Len()
	e.transcript.Append(schema.NewMessage(schema.RoleUser, prompt))

	for round := 0; round < e.maxRounds; round++ {
		reply, err := e.generator.Chat(ctx, e.transcript, tools)
		if err != nil {
			e.transcript.Truncate(snapshot)
			if errors.Is(err, context.Canceled) {
				return bridge.ErrCancelled
			}
			e.router.PushStatus(e.State(), fmt.Sprintf("model backend error: %v", err))
			e.router.Text.Push(fmt.Sprintf("Error: %v", err))
			return err
		}
		e.transcript.Append(reply)

		// A reply without tool calls ends the turn
		calls := reply.ToolCalls()
		if len(calls) == 0 {
			e.router.Text.Push(reply.Text())
			return nil
		}

		// Execute the calls in the order the model emitted them
		if err := e.runTools(ctx, calls); err != nil {
			e.transcript.Truncate(snapshot)
			return err
		}
	}

	// Round cap reached without a final answer
	e.transcript.Truncate(snapshot)
	e.router.PushStatus(e.State(), fmt.Sprintf("round cap of %d reached without a final answer, turn abandoned", e.maxRounds))
	e.router.Text.Push(fmt.Sprintf("Error: no final answer after %d tool-calling rounds.", e.maxRounds))
	return bridge.ErrMaxRounds.Withf("%d rounds", e.maxRounds)
}

// runTools invokes each requested tool and appends one tool-result
// message per call. Invocation failures are absorbed into the
// transcript as error results so the model can react; only
// cancellation aborts the turn.
func (e *Engine) runTools(ctx context.Context, calls []schema.ToolCall) error {
	for _, call := range calls {
		e.router.PushStatus(e.State(), fmt.Sprintf("calling tool %q", call.Name))

		def, exists := e.translator.Lookup(call.Name)
		if !exists {
			e.transcript.Append(schema.NewToolErrorMessage(call.ID, call.Name, bridge.ErrNotFound.Withf("tool %q", call.Name)))
			continue
		}

		// Check the arguments against the cached input schema before
		// anything is launched
		if err := e.translator.Validate(call.Name, call.Input); err != nil {
			e.transcript.Append(schema.NewToolErrorMessage(call.ID, call.Name, err))
			continue
		}

		payload, err := e.invoker.Invoke(ctx, def, call.Input)
		if ctx.Err() != nil {
			return bridge.ErrCancelled
		}
		if err != nil {
			slog.Debug("tool invocation failed", "tool", call.Name, "error", err)
			e.transcript.Append(schema.NewToolErrorMessage(call.ID, call.Name, err))
			continue
		}
		e.transcript.Append(schema.NewToolResultMessage(call.ID, call.Name, payload))
	}
	return nil
}

package gateway

import (
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	KindLaunch           Kind = iota // provider process failed to launch
	KindHandshake                    // initialize handshake rejected
	KindUnknownTool                  // tool name unknown to provider
	KindInvalidArguments             // arguments rejected by the declared schema
	KindTimeout                      // call exceeded the per-call timeout
	KindToolError                    // provider returned an application-level error
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Kind classifies a gateway failure
type Kind int

// Error is a typed per-invocation failure. It is always recovered locally
// into a tool-result message and is never fatal to the session.
type Error struct {
	Kind Kind
	Tool string
	err  error
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewError creates a gateway error for a tool with an underlying cause
func NewError(kind Kind, tool string, err error) *Error {
	return &Error{Kind: kind, Tool: tool, err: err}
}

// NewErrorf creates a gateway error for a tool with a formatted detail
func NewErrorf(kind Kind, tool, format string, args ...any) *Error {
	return &Error{Kind: kind, Tool: tool, err: fmt.Errorf(format, args...)}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (k Kind) String() string {
	switch k {
	case KindLaunch:
		return "launch failed"
	case KindHandshake:
		return "handshake rejected"
	case KindUnknownTool:
		return "unknown tool"
	case KindInvalidArguments:
		return "invalid arguments"
	case KindTimeout:
		return "timed out"
	case KindToolError:
		return "tool error"
	}
	return fmt.Sprintf("kind %d", int(k))
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Tool, e.Kind, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Tool, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.err
}

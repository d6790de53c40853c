/*
gateway executes single tool calls against the tool-provider process.
Every invocation launches a fresh provider process, performs the MCP
initialize handshake, issues exactly one call and closes the connection
before returning. Nothing is pooled or reused across calls: a corrupted
or blocked provider session cannot contaminate the next invocation, and
a crashed provider self-heals on the next call.
*/
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	bridge "github.com/mcpbridge/mcpbridge"
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
	translate "github.com/mcpbridge/mcpbridge/pkg/translate"
	version "github.com/mcpbridge/mcpbridge/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// DialFunc establishes a connected session to the tool-provider. The
// default launches the configured command; tests substitute an in-memory
// server.
type DialFunc func(context.Context) (*mcp.ClientSession, error)

// Gateway opens an ephemeral provider session per invocation. It owns no
// persistent state beyond its configuration.
type Gateway struct {
	name    string
	args    []string
	timeout time.Duration
	dial    DialFunc
}

// Opt is a functional option for configuring the gateway
type Opt func(*Gateway) error

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultTimeout bounds the handshake and call for one invocation
	DefaultTimeout = 30 * time.Second
)

// Interface check
var _ bridge.Invoker = (*Gateway)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a gateway for the given provider launch command. The command
// is a single string split on whitespace, e.g. "python server.py".
func New(command string, opts ...Opt) (*Gateway, error) {
	g := &Gateway{
		timeout: DefaultTimeout,
	}

	fields := strings.Fields(command)
	if len(fields) == 0 && g.dial == nil {
		// A dial function may still be supplied by an option below
		g.name = ""
	} else if len(fields) > 0 {
		g.name = fields[0]
		g.args = fields[1:]
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	if g.name == "" && g.dial == nil {
		return nil, bridge.ErrBadParameter.With("empty provider launch command")
	}
	return g, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTimeout sets the per-call timeout
func WithTimeout(d time.Duration) Opt {
	return func(g *Gateway) error {
		if d <= 0 {
			return bridge.ErrBadParameter.Withf("invalid timeout: %v", d)
		}
		g.timeout = d
		return nil
	}
}

// WithDial replaces the provider connection with a custom dial function
func WithDial(fn DialFunc) Opt {
	return func(g *Gateway) error {
		g.dial = fn
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Timeout returns the per-call timeout
func (g *Gateway) Timeout() time.Duration {
	return g.timeout
}

// ListTools launches a provider session, discovers the tool descriptors
// and closes the session.
func (g *Gateway) ListTools(ctx context.Context) ([]schema.ToolDefinition, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	session, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	result, err := session.ListTools(ctx, nil)
	if err != nil {
		return nil, NewError(KindHandshake, "", err)
	}

	defs := make([]schema.ToolDefinition, 0, len(result.Tools))
	for _, tool := range result.Tools {
		// The SDK delivers the input schema as an untyped value; round-trip
		// through JSON to obtain the typed schema the bridge works with.
		var inputSchema *jsonschema.Schema
		if tool.InputSchema != nil {
			data, err := json.Marshal(tool.InputSchema)
			if err != nil {
				return nil, NewError(KindHandshake, tool.Name, err)
			}
			inputSchema = new(jsonschema.Schema)
			if err := json.Unmarshal(data, inputSchema); err != nil {
				return nil, NewError(KindHandshake, tool.Name, err)
			}
		}
		defs = append(defs, schema.ToolDefinition{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: inputSchema,
		})
	}
	return defs, nil
}

// Invoke validates the arguments against the declared input schema, then
// runs exactly one tool call over a fresh provider session. The session is
// closed unconditionally before returning. Every failure mode is returned
// as a typed *Error so the caller can always append a tool-result message.
func (g *Gateway) Invoke(ctx context.Context, def schema.ToolDefinition, args []byte) (string, error) {
	// Validate locally before any process is launched
	if err := translate.ValidateInput(def, args); err != nil {
		return "", NewError(KindInvalidArguments, def.Name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	slog.Debug("invoking tool", "tool", def.Name)

	session, err := g.connect(ctx)
	if err != nil {
		var gwerr *Error
		if errors.As(err, &gwerr) {
			return "", NewError(gwerr.Kind, def.Name, gwerr.Unwrap())
		}
		return "", NewError(KindHandshake, def.Name, err)
	}
	defer session.Close()

	params := &mcp.CallToolParams{Name: def.Name}
	if len(args) > 0 {
		params.Arguments = json.RawMessage(args)
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
			return "", NewErrorf(KindTimeout, def.Name, "no response within %v", g.timeout)
		case isUnknownTool(err):
			return "", NewError(KindUnknownTool, def.Name, err)
		default:
			return "", NewError(KindToolError, def.Name, err)
		}
	}

	payload := flatten(result.Content)
	if result.IsError {
		return "", NewErrorf(KindToolError, def.Name, "%s", payload)
	}

	slog.Debug("tool call complete", "tool", def.Name, "bytes", len(payload))
	return translate.Fragment(payload), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// connect establishes a session, launching a fresh provider process unless
// a dial function was configured. The handshake is performed by Connect.
func (g *Gateway) connect(ctx context.Context) (*mcp.ClientSession, error) {
	if g.dial != nil {
		return g.dial(ctx)
	}

	cmd := exec.CommandContext(ctx, g.name, g.args...)
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "mcpbridge",
		Version: version.Version(),
	}, nil)

	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		if isLaunchError(err) {
			return nil, NewError(KindLaunch, "", err)
		}
		return nil, NewError(KindHandshake, "", err)
	}
	return session, nil
}

// isUnknownTool reports whether the provider rejected the call because the
// tool name is not registered. The protocol carries this as an
// invalid-params error whose message names the unknown tool.
func isUnknownTool(err error) bool {
	detail := strings.ToLower(err.Error())
	return strings.Contains(detail, "unknown tool") || strings.Contains(detail, "tool not found")
}

// isLaunchError reports whether the connection failure happened before the
// provider process was running at all
func isLaunchError(err error) bool {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return true
	}
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}

// flatten joins the text blocks of a tool result payload. Non-text blocks
// are reduced to a marker so no content is silently dropped.
func flatten(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		switch c := c.(type) {
		case *mcp.TextContent:
			parts = append(parts, c.Text)
		default:
			parts = append(parts, fmt.Sprintf("[%T]", c))
		}
	}
	return strings.Join(parts, "\n")
}

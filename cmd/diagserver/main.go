/*
diagserver is a network-diagnostics MCP server speaking JSON-RPC over
stdio. It exists as the stock tool provider for the bridge, but any
MCP stdio server can take its place.
*/
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	// Packages
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	version "github.com/mcpbridge/mcpbridge/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := NewServer()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		slog.Error("server terminated", "error", err)
		os.Exit(1)
	}
}

// NewServer creates the diagnostics server with its tools registered
func NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "diagserver",
		Version: version.Version(),
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_files",
		Description: "List the files in a directory",
	}, listFiles)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_file",
		Description: "Read a text file and return its contents",
	}, readFile)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dns_lookup",
		Description: "Resolve a hostname to its IP addresses",
	}, dnsLookup)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "interface_status",
		Description: "Report the state and addresses of the network interfaces",
	}, interfaceStatus)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "connectivity_check",
		Description: "Check TCP connectivity to a host and port",
	}, connectivityCheck)

	return server
}

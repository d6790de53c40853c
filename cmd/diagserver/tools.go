package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	// Packages
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ListFilesArgs struct {
	Path string `json:"path" jsonschema:"the directory to list"`
}

type ReadFileArgs struct {
	Path string `json:"path" jsonschema:"the file to read"`
}

type DnsLookupArgs struct {
	Hostname string `json:"hostname" jsonschema:"the hostname to resolve"`
}

type InterfaceStatusArgs struct{}

type ConnectivityCheckArgs struct {
	Host string `json:"host" jsonschema:"the host to connect to"`
	Port int    `json:"port" jsonschema:"the TCP port to connect to"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	maxFileSize = 64 * 1024
	dialTimeout = 5 * time.Second
)

////////////////////////////////////////////////////////////////////////////////
// TOOLS

func listFiles(_ context.Context, _ *mcp.CallToolRequest, args ListFilesArgs) (*mcp.CallToolResult, any, error) {
	entries, err := os.ReadDir(args.Path)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name()+string(os.PathSeparator))
		} else {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return text("Found %d files: %s.", len(names), strings.Join(names, ", ")), nil, nil
}

func readFile(_ context.Context, _ *mcp.CallToolRequest, args ReadFileArgs) (*mcp.CallToolResult, any, error) {
	info, err := os.Stat(args.Path)
	if err != nil {
		return nil, nil, err
	}
	if info.Size() > maxFileSize {
		return nil, nil, fmt.Errorf("%s: file too large (%d bytes)", filepath.Base(args.Path), info.Size())
	}
	data, err := os.ReadFile(args.Path)
	if err != nil {
		return nil, nil, err
	}
	return text("%s", string(data)), nil, nil
}

func dnsLookup(ctx context.Context, _ *mcp.CallToolRequest, args DnsLookupArgs) (*mcp.CallToolResult, any, error) {
	addrs, err := net.DefaultResolver.LookupHost(ctx, args.Hostname)
	if err != nil {
		return nil, nil, err
	}
	return text("%s resolves to %s", args.Hostname, strings.Join(addrs, ", ")), nil, nil
}

func interfaceStatus(_ context.Context, _ *mcp.CallToolRequest, _ InterfaceStatusArgs) (*mcp.CallToolResult, any, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, nil, err
	}
	var lines []string
	for _, iface := range ifaces {
		state := "down"
		if iface.Flags&net.FlagUp != 0 {
			state = "up"
		}
		var addrs []string
		if list, err := iface.Addrs(); err == nil {
			for _, addr := range list {
				addrs = append(addrs, addr.String())
			}
		}
		lines = append(lines, fmt.Sprintf("%s: %s %s", iface.Name, state, strings.Join(addrs, " ")))
	}
	return text("%s", strings.Join(lines, "\n")), nil, nil
}

func connectivityCheck(ctx context.Context, _ *mcp.CallToolRequest, args ConnectivityCheckArgs) (*mcp.CallToolResult, any, error) {
	if args.Port < 1 || args.Port > 65535 {
		return nil, nil, fmt.Errorf("invalid port %d", args.Port)
	}
	dialer := net.Dialer{Timeout: dialTimeout}
	address := net.JoinHostPort(args.Host, fmt.Sprint(args.Port))
	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return text("Connection to %s failed: %v", address, err), nil, nil
	}
	conn.Close()
	return text("Connection to %s succeeded in %v", address, time.Since(start).Round(time.Millisecond)), nil, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func text(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

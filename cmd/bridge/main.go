package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	config "github.com/mcpbridge/mcpbridge/pkg/config"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Configuration
	Config   string `name:"config" type:"path" help:"Configuration file path"`
	Model    string `name:"model" help:"Model name, overrides configuration"`
	Provider string `name:"provider" help:"Tool provider command, overrides configuration"`

	// Credentials
	OpenAIKey string `env:"OPENAI_API_KEY" help:"OpenAI API Key"`

	// Context
	ctx context.Context
	cfg config.Config
}

type CLI struct {
	Globals

	Chat    ChatCmd    `cmd:"" default:"withargs" help:"Chat with the model, with tools bridged in"`
	Tools   ToolsCmd   `cmd:"" help:"List the tools the provider advertises"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Bridge between a chat model and an MCP tool provider"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Set the log level
	if cli.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Load the configuration, apply command line overrides
	cfg, err := config.Load(cli.Config)
	cmd.FatalIfErrorf(err)
	if cli.Model != "" {
		cfg.Model = cli.Model
	}
	if cli.Provider != "" {
		cfg.ProviderCommand = cli.Provider
	}
	if cli.OpenAIKey != "" {
		cfg.APIKey = cli.OpenAIKey
	}
	cli.Globals.cfg = cfg

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

func clientOpts(globals *Globals) []client.ClientOpt {
	result := []client.ClientOpt{
		client.OptTimeout(globals.cfg.Timeout()),
	}
	if globals.Debug {
		result = append(result, client.OptTrace(os.Stderr, globals.Verbose))
	}
	return result
}

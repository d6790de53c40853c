package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	// Packages
	bridge "github.com/mcpbridge/mcpbridge"
	engine "github.com/mcpbridge/mcpbridge/pkg/engine"
	gateway "github.com/mcpbridge/mcpbridge/pkg/gateway"
	openai "github.com/mcpbridge/mcpbridge/pkg/openai"
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
	errgroup "golang.org/x/sync/errgroup"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ChatCmd struct {
	System string `flag:"system" help:"Set the system prompt, overrides configuration"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ChatCmd) Run(globals *Globals) error {
	cfg := globals.cfg
	if cmd.System != "" {
		cfg.SystemPrompt = cmd.System
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Model backend
	backend, err := openai.New(cfg.APIKey, cfg.Model, clientOpts(globals)...)
	if err != nil {
		return err
	}

	// Tool provider gateway
	var provider bridge.Invoker
	if cfg.ProviderCommand != "" {
		provider, err = gateway.New(cfg.ProviderCommand, gateway.WithTimeout(cfg.Timeout()))
		if err != nil {
			return err
		}
	}

	// Engine
	opts := []engine.Opt{
		engine.WithMaxRounds(int(cfg.MaxRounds)),
	}
	if cfg.SystemPrompt != "" {
		opts = append(opts, engine.WithSystemPrompt(cfg.SystemPrompt))
	}
	e, err := engine.New(backend, provider, opts...)
	if err != nil {
		return err
	}
	if err := e.Start(globals.ctx); err != nil {
		return err
	}
	banner(e, cfg.Model)

	// Worker and event consumers
	var group errgroup.Group
	group.Go(func() error {
		return e.Run(globals.ctx)
	})
	group.Go(func() error {
		for {
			text, err := e.Router().Text.Wait(globals.ctx)
			if err != nil {
				return ignoreShutdown(err)
			}
			fmt.Println(text)
			fmt.Print("> ")
		}
	})
	group.Go(func() error {
		for {
			event, err := e.Router().Status.Wait(globals.ctx)
			if err != nil {
				return ignoreShutdown(err)
			}
			if globals.Verbose || globals.Debug {
				fmt.Fprintln(os.Stderr, event)
			}
		}
	})

	// Read prompts until end of input
	fmt.Print("> ")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Print("> ")
			continue
		}
		if input == "/quit" || input == "/exit" {
			break
		}
		e.Submit(input)
	}

	// Closing the queues unblocks the worker and the consumers
	e.Close()
	if err := group.Wait(); err != nil {
		return err
	}
	return scanner.Err()
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func banner(e *engine.Engine, model string) {
	fmt.Printf("Connected to %s.\n", model)
	if tools := e.Tools(); len(tools) > 0 {
		fmt.Printf("%d tools available: %s\n", len(tools), strings.Join(tools, ", "))
	} else if e.State() == schema.StateDegraded {
		fmt.Println("Tool provider unavailable, answering without tools.")
	}
	fmt.Println("Type /quit to exit.")
}

func ignoreShutdown(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

package main

import (
	"fmt"

	// Packages
	gateway "github.com/mcpbridge/mcpbridge/pkg/gateway"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolsCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ToolsCmd) Run(globals *Globals) error {
	provider, err := gateway.New(globals.cfg.ProviderCommand, gateway.WithTimeout(globals.cfg.Timeout()))
	if err != nil {
		return err
	}
	tools, err := provider.ListTools(globals.ctx)
	if err != nil {
		return err
	}
	for _, tool := range tools {
		fmt.Printf("%-24s %s\n", tool.Name, tool.Description)
	}
	return nil
}

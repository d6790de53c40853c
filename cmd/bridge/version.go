package main

import (
	"fmt"
	"runtime"

	// Packages
	version "github.com/mcpbridge/mcpbridge/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *VersionCmd) Run(globals *Globals) error {
	fmt.Println(execName(), version.Version())
	fmt.Println(version.Runtime(), runtime.GOOS+"/"+runtime.GOARCH)
	return nil
}

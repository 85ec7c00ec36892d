// Package main provides the karma binary entry point.
// Karma builds versioned knowledge graphs of software usage from
// documentation and release notes.
package main

import (
	"fmt"
	"os"
	"runtime"

	// Register LLM providers via init()
	_ "github.com/c360studio/karma/llm/providers"

	"github.com/c360studio/karma/commands"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

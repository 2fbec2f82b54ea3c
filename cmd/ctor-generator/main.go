// Command ctor-generator writes constructor functions for Go types
// annotated with //ctor(...) directives.
//
// Usage:
//
//	ctor-generator [generate|check|explain|watch] [packages...]
//
// A typical setup adds a go:generate line to one file of the package:
//
//	//go:generate go run ctor-generator/cmd/ctor-generator
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ctor-generator/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// Package main provides the entry point for mipsim.
// mipsim is a cycle-accurate MIPS32 five-stage pipeline simulator.
//
// For the full CLI, use: go run ./cmd/mipsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("mipsim - MIPS32 five-stage pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: mipsim [options] <program.s>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -timing    Enable pipelined timing simulation mode")
	fmt.Println("  -config    Path to trace options JSON file")
	fmt.Println("  -plot      Save an execution-count chart after the run")
	fmt.Println("  -v         Verbose statistics output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mipsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mipsim' instead.")
	}
}

// Package main provides the command-line front end for the MIPS32
// cycle-accurate simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/archsim/mipsim/asm"
	"github.com/archsim/mipsim/emu"
	"github.com/archsim/mipsim/insts"
	"github.com/archsim/mipsim/timing/pipeline"
	"github.com/archsim/mipsim/trace"
)

var (
	timing     = flag.Bool("timing", false, "Enable pipelined timing simulation mode")
	configPath = flag.String("config", "", "Path to trace options JSON file")
	plotPath   = flag.String("plot", "", "Save an execution-count chart to this file after the run")
	verbose    = flag.Bool("v", false, "Verbose statistics output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: mipsim [options] <program.s>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	prog, err := asm.New().AssembleFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	opts := trace.DefaultOptions()
	if *configPath != "" {
		opts, err = trace.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading trace config: %v\n", err)
			os.Exit(1)
		}
	}
	emitter := trace.NewEmitter(os.Stdout, opts)

	var code insts.ExitCode
	if *timing {
		code = runTiming(prog, emitter)
	} else {
		code = runEmulation(prog, emitter)
	}
	os.Exit(int(code))
}

// runEmulation runs the program on the non-pipelined reference
// emulator.
func runEmulation(prog *asm.Program, emitter *trace.Emitter) insts.ExitCode {
	emulator := emu.NewEmulator(
		prog.Instructions,
		emu.WithCycleHook(emitter.CycleRegisters),
	)

	code := insts.Success
	if err := emulator.Run(); err != nil {
		code = err.Code
	}
	emitter.Report(os.Stderr, code, prog.Source, emulator.PC(), emulator.Memory(), emulator.Cycles(), emulator.Counts())

	if *verbose {
		fmt.Printf("\nInstructions executed: %d\n", emulator.Cycles())
	}
	savePlot(emulator.Counts(), prog.Source)
	return code
}

// runTiming runs the program through the five-stage pipeline.
func runTiming(prog *asm.Program, emitter *trace.Emitter) insts.ExitCode {
	regFile := &emu.RegFile{}
	memory := emu.NewMemory()
	pipe := pipeline.NewPipeline(
		prog.Instructions,
		regFile,
		memory,
		pipeline.WithCycleHook(emitter.Cycle),
	)

	code := insts.Success
	if err := pipe.Run(); err != nil {
		code = err.Code
	}
	stats := pipe.Stats()
	emitter.Report(os.Stderr, code, prog.Source, pipe.PC(), memory, stats.Cycles, pipe.Counts())

	if *verbose {
		fmt.Printf("\nCycles: %d\n", stats.Cycles)
		fmt.Printf("Instructions issued: %d\n", stats.Instructions)
		fmt.Printf("Stall cycles: %d\n", stats.Stalls)
		fmt.Printf("Branches: %d (taken %d)\n", stats.Branches, stats.BranchesTaken)
		fmt.Printf("Jumps: %d\n", stats.Jumps)
		fmt.Printf("Memory writes: %d\n", stats.MemWrites)
		fmt.Printf("CPI: %.2f\n", stats.CPI())
	}
	savePlot(pipe.Counts(), prog.Source)
	return code
}

func savePlot(counts []uint64, source [][]string) {
	if *plotPath == "" {
		return
	}
	if err := trace.SaveCountsPlot(*plotPath, counts, source); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving plot: %v\n", err)
	}
}

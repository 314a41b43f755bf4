// Package asm provides assembly source loading for the MIPS32 simulator.
//
// The assembler is two-pass: the first pass tokenizes lines, collects
// label definitions, and builds the padded source token matrix; the
// second pass decodes every row into an insts.Instruction with branch
// and jump labels resolved against the completed label table.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/archsim/mipsim/insts"
)

// PoisonedLabel is the label-table sentinel for a label defined more
// than once. References to it fault with an invalid-label error.
const PoisonedLabel = -1

// placeholderLabel absorbs single-token lines that are not label
// definitions, as the reference parser does.
const placeholderLabel = "?"

// Program is an assembled program ready for execution.
type Program struct {
	// Instructions holds the decoded instruction vector. Rows that
	// failed to decode carry their fault and poison the run only when
	// reached.
	Instructions []insts.Instruction

	// Labels maps label names to instruction indices; PoisonedLabel
	// marks a redefinition.
	Labels map[string]int

	// Source retains the padded token rows for diagnostics and the
	// per-instruction execution report.
	Source [][]string
}

// Assembler assembles MIPS32 source text into a Program.
type Assembler struct {
	decoder *insts.Decoder
}

// New creates a new Assembler.
func New() *Assembler {
	return &Assembler{decoder: insts.NewDecoder()}
}

// AssembleFile assembles the source file at path.
func (a *Assembler) AssembleFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return a.Assemble(f)
}

// Assemble assembles source text read from r.
func (a *Assembler) Assemble(r io.Reader) (*Program, error) {
	prog := &Program{Labels: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		a.parseLine(prog, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	for _, row := range prog.Source {
		prog.Instructions = append(prog.Instructions, a.decoder.Decode(row, prog.Labels))
	}
	return prog, nil
}

// parseLine tokenizes one source line, registering any label definition
// and appending the padded instruction row if one remains.
func (a *Assembler) parseLine(prog *Program, line string) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	switch {
	case len(tokens) == 0:
		return
	case len(tokens) == 1:
		label := placeholderLabel
		if strings.HasSuffix(tokens[0], ":") {
			label = strings.TrimSuffix(tokens[0], ":")
		}
		a.defineLabel(prog, label)
		return
	case strings.HasSuffix(tokens[0], ":"):
		a.defineLabel(prog, strings.TrimSuffix(tokens[0], ":"))
		tokens = tokens[1:]
	case strings.Contains(tokens[0], ":"):
		idx := strings.Index(tokens[0], ":")
		a.defineLabel(prog, tokens[0][:idx])
		tokens[0] = tokens[0][idx+1:]
	case strings.HasPrefix(tokens[1], ":"):
		a.defineLabel(prog, tokens[0])
		tokens[1] = tokens[1][1:]
		if tokens[1] == "" {
			tokens = tokens[2:]
		} else {
			tokens = tokens[1:]
		}
	}
	if len(tokens) == 0 {
		return
	}

	// Pad or truncate to mnemonic plus three operand slots, folding any
	// surplus tokens into the third slot.
	row := make([]string, 4)
	copy(row, tokens)
	if len(tokens) > 4 {
		row[3] = strings.Join(tokens[3:], " ")
	}
	prog.Source = append(prog.Source, row)
}

// defineLabel records a label at the current instruction index, or
// poisons it on redefinition.
func (a *Assembler) defineLabel(prog *Program, label string) {
	if _, seen := prog.Labels[label]; seen {
		prog.Labels[label] = PoisonedLabel
		return
	}
	prog.Labels[label] = len(prog.Source)
}

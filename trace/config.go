package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// Options selects which trace sections are emitted.
type Options struct {
	// PerCycle enables the per-cycle register and memory records.
	PerCycle bool `json:"per_cycle"`

	// Report enables the end-of-run summary.
	Report bool `json:"report"`
}

// DefaultOptions returns Options with every section enabled.
func DefaultOptions() *Options {
	return &Options{
		PerCycle: true,
		Report:   true,
	}
}

// LoadConfig loads trace Options from a JSON file. Fields absent from
// the file keep their defaults.
func LoadConfig(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace config file: %w", err)
	}

	opts := DefaultOptions()
	if err := json.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse trace config: %w", err)
	}
	return opts, nil
}

// SaveConfig writes the Options to a JSON file.
func (o *Options) SaveConfig(path string) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize trace config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trace config file: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/structgen/internal/cli/output"
	"github.com/leapstack-labs/structgen/internal/natsort"
	"github.com/leapstack-labs/structgen/internal/scan"
	"github.com/leapstack-labs/structgen/internal/structure"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Root == "" {
		errs = append(errs, fmt.Errorf("root is required"))
	}
	if _, err := structure.EncoderFor(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := natsort.ParseMixedOrder(c.MixedOrder); err != nil {
		errs = append(errs, err)
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}
	for word, rank := range c.Ordinals {
		if rank < 1 {
			errs = append(errs, fmt.Errorf("ordinal %q: rank must be at least 1, got %d", word, rank))
		}
	}
	if err := scan.ValidateIgnore(c.Ignore); err != nil {
		errs = append(errs, err)
	}
	if !output.ValidMode(c.OutputFormat) {
		errs = append(errs, fmt.Errorf("unknown output format %q", c.OutputFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateRoot checks that the root directory exists.
func (c *Config) ValidateRoot() error {
	info, err := os.Stat(c.Root)
	if os.IsNotExist(err) {
		return fmt.Errorf("root directory does not exist: %s\nHint: pass the directory holding your compounds as an argument", c.Root)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", c.Root)
	}
	return nil
}

// Comparator builds the part comparator described by the config.
func (c *Config) Comparator() (*natsort.Comparator, error) {
	mixed, err := natsort.ParseMixedOrder(c.MixedOrder)
	if err != nil {
		return nil, err
	}
	return natsort.New(natsort.WithOrdinals(c.Ordinals), natsort.WithMixedOrder(mixed)), nil
}

// Writer builds the structure writer described by the config.
func (c *Config) Writer() (*structure.Writer, error) {
	enc, err := structure.EncoderFor(c.Format)
	if err != nil {
		return nil, err
	}
	return &structure.Writer{Encoder: enc, FileName: c.FileName, OutputDir: c.OutputDir}, nil
}

// Package config carries the explorer's behavioural knobs as an explicit
// object handed to the query path at construction, instead of process-wide
// globals.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Explorer configures the search pipeline.
type Explorer struct {
	// PageSize is the fixed number of laws per result page.
	PageSize int `yaml:"pageSize"`
	// FacetJoinToken joins classification/tag name lists into the single
	// index field that exact-match highlighting splits apart again.
	FacetJoinToken string `yaml:"facetJoinToken"`
	// MinYear/MaxYear bound the selectable adoption-year range.
	MinYear int `yaml:"minYear"`
	MaxYear int `yaml:"maxYear"`
}

// DefaultExplorer returns the built-in configuration.
func DefaultExplorer() Explorer {
	return Explorer{
		PageSize:       10,
		FacetJoinToken: "; ",
		MinYear:        1945,
		MaxYear:        2026,
	}
}

// LoadExplorer reads a YAML configuration over the defaults. Fields absent
// from the document keep their default values.
func LoadExplorer(r io.Reader) (Explorer, error) {
	cfg := DefaultExplorer()

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Explorer{}, fmt.Errorf("failed to decode explorer config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Explorer{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c Explorer) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("pageSize must be positive, got %d", c.PageSize)
	}
	if c.FacetJoinToken == "" {
		return fmt.Errorf("facetJoinToken must not be empty")
	}
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("minYear %d exceeds maxYear %d", c.MinYear, c.MaxYear)
	}
	return nil
}

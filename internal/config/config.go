// Package config defines the run configuration and its validation.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Run is the top-level configuration for one load.
type Run struct {
	Storage Storage `json:"storage"`
	Inputs  Inputs  `json:"inputs"`

	// Job names the run for metrics tagging.
	Job string `json:"job"`
}

type Storage struct {
	// Kind selects the registered backend ("sqlite", "postgres", "mssql").
	Kind string `json:"kind"`

	// DSN is passed to the backend; ${VAR} references are expanded from
	// the environment.
	DSN string `json:"dsn"`
}

type Inputs struct {
	// Shops lists the per-branch XML files, in load order.
	Shops []string `json:"shops"`

	// Categories is the category-tree XML file.
	Categories string `json:"categories"`

	// Reviews is the reviews CSV file.
	Reviews string `json:"reviews"`
}

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding.
type Issue struct {
	Severity Severity
	Path     string
	Message  string
}

// Load decodes a Run from JSON.
func Load(r io.Reader) (Run, error) {
	var run Run
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&run); err != nil {
		return Run{}, fmt.Errorf("decode config: %w", err)
	}
	return run, nil
}

// LoadFile decodes a Run from the JSON file at path.
func LoadFile(path string) (Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return Run{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks a Run and returns every issue found. Errors make the run
// unstartable; warnings flag phases that will be skipped.
func Validate(run Run) []Issue {
	var issues []Issue

	if run.Storage.Kind == "" {
		issues = append(issues, Issue{SeverityError, "storage.kind", "must be set"})
	}
	if run.Storage.DSN == "" {
		issues = append(issues, Issue{SeverityError, "storage.dsn", "must be set"})
	}

	if len(run.Inputs.Shops) == 0 {
		issues = append(issues, Issue{SeverityError, "inputs.shops", "at least one shop file is required"})
	}
	for i, p := range run.Inputs.Shops {
		if p == "" {
			issues = append(issues, Issue{SeverityError, fmt.Sprintf("inputs.shops[%d]", i), "path is empty"})
		}
	}

	if run.Inputs.Categories == "" {
		issues = append(issues, Issue{SeverityWarning, "inputs.categories", "not set; category phase will be skipped"})
	}
	if run.Inputs.Reviews == "" {
		issues = append(issues, Issue{SeverityWarning, "inputs.reviews", "not set; review phase will be skipped"})
	}

	return issues
}

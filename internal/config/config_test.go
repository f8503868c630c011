package config

import (
	"strings"
	"testing"
)

func issueFor(issues []Issue, path string) (Issue, bool) {
	for _, i := range issues {
		if i.Path == path {
			return i, true
		}
	}
	return Issue{}, false
}

func TestLoad(t *testing.T) {
	t.Parallel()

	run, err := Load(strings.NewReader(`{
  "storage": {"kind": "sqlite", "dsn": "file:catalog.db"},
  "inputs": {
    "shops": ["data/leipzig.xml", "data/dresden.xml"],
    "categories": "data/categories.xml",
    "reviews": "data/reviews.csv"
  },
  "job": "nightly"
}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if run.Storage.Kind != "sqlite" || run.Storage.DSN != "file:catalog.db" {
		t.Errorf("storage: %+v", run.Storage)
	}
	if len(run.Inputs.Shops) != 2 || run.Inputs.Shops[1] != "data/dresden.xml" {
		t.Errorf("shops: %v", run.Inputs.Shops)
	}
	if run.Job != "nightly" {
		t.Errorf("job: %q", run.Job)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader(`{"storage": {"kind": "sqlite", "dsn": "x", "host": "h"}}`))
	if err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	t.Parallel()

	if _, err := Load(strings.NewReader(`{`)); err == nil {
		t.Fatal("truncated document accepted")
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile("testdata/absent.json"); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestValidateCompleteRun(t *testing.T) {
	t.Parallel()

	run := Run{
		Storage: Storage{Kind: "sqlite", DSN: "file:x.db"},
		Inputs: Inputs{
			Shops:      []string{"a.xml"},
			Categories: "c.xml",
			Reviews:    "r.csv",
		},
	}
	if issues := Validate(run); len(issues) != 0 {
		t.Errorf("issues: %+v", issues)
	}
}

func TestValidateMissingRequiredFields(t *testing.T) {
	t.Parallel()

	issues := Validate(Run{Inputs: Inputs{Shops: []string{"a.xml", ""}}})

	for _, path := range []string{"storage.kind", "storage.dsn", "inputs.shops[1]"} {
		issue, ok := issueFor(issues, path)
		if !ok {
			t.Errorf("no issue for %s", path)
			continue
		}
		if issue.Severity != SeverityError {
			t.Errorf("%s: severity %s, want error", path, issue.Severity)
		}
	}
}

func TestValidateSkippedPhasesAreWarnings(t *testing.T) {
	t.Parallel()

	run := Run{
		Storage: Storage{Kind: "sqlite", DSN: "x"},
		Inputs:  Inputs{Shops: []string{"a.xml"}},
	}
	issues := Validate(run)

	for _, path := range []string{"inputs.categories", "inputs.reviews"} {
		issue, ok := issueFor(issues, path)
		if !ok {
			t.Errorf("no issue for %s", path)
			continue
		}
		if issue.Severity != SeverityWarning {
			t.Errorf("%s: severity %s, want warning", path, issue.Severity)
		}
	}
	for _, i := range issues {
		if i.Severity == SeverityError {
			t.Errorf("unexpected error issue: %+v", i)
		}
	}
}

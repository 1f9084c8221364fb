package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateYAMLContent_AcceptsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("validate example config: %v", err)
	}
	if cfg.Workday.Hours != 8.0 {
		t.Fatalf("expected 8.0 workday hours, got %v", cfg.Workday.Hours)
	}
	if cfg.Workday.RoundingStep != 0.05 {
		t.Fatalf("expected 0.05 rounding step, got %v", cfg.Workday.RoundingStep)
	}
	if cfg.Report.Prefix != "monthly_report" {
		t.Fatalf("unexpected report prefix: %q", cfg.Report.Prefix)
	}
	if len(cfg.Activities) == 0 {
		t.Fatalf("expected default activities")
	}
}

func TestValidateYAMLContent_RejectsNonPositiveWorkday(t *testing.T) {
	t.Parallel()

	content := []byte(`workday:
  hours: 0
  rounding_step: 0.05
`)
	if _, err := ValidateYAMLContent(content); err == nil {
		t.Fatalf("expected validation error for zero workday hours")
	}
}

func TestValidateYAMLContent_RejectsRoundingStepAboveOne(t *testing.T) {
	t.Parallel()

	content := []byte(`workday:
  hours: 8
  rounding_step: 1.5
`)
	if _, err := ValidateYAMLContent(content); err == nil {
		t.Fatalf("expected validation error for rounding step above 1")
	}
}

func TestValidateYAMLContent_RejectsDuplicateActivity(t *testing.T) {
	t.Parallel()

	content := []byte(`workday:
  hours: 8
  rounding_step: 0.05
activities:
  - "Aufmaß"
  - "aufmaß"
`)
	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for duplicate activity")
	}
	if !strings.Contains(err.Error(), "duplicate activity") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsBlankEmployee(t *testing.T) {
	t.Parallel()

	content := []byte(`workday:
  hours: 8
  rounding_step: 0.05
employees:
  - "Anna"
  - "  "
`)
	if _, err := ValidateYAMLContent(content); err == nil {
		t.Fatalf("expected validation error for blank employee")
	}
}

func TestResolveStorageDir_UsesCollaborativeRoot(t *testing.T) {
	root := t.TempDir()
	t.Setenv("OneDrive", root)
	t.Setenv("OneDriveCommercial", "")
	t.Setenv("OneDriveConsumer", "")

	dir, err := ResolveStorageDir()
	if err != nil {
		t.Fatalf("resolve storage dir: %v", err)
	}
	if dir != filepath.Join(root, "Stunden") {
		t.Fatalf("unexpected storage dir: %s", dir)
	}

	// Second resolution must yield the same directory.
	again, err := ResolveStorageDir()
	if err != nil {
		t.Fatalf("resolve storage dir again: %v", err)
	}
	if again != dir {
		t.Fatalf("resolution not idempotent: %s != %s", again, dir)
	}
}

func TestResolveStorageDir_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("OneDrive", "")
	t.Setenv("OneDriveCommercial", "")
	t.Setenv("OneDriveConsumer", "")
	t.Setenv("HOME", home)

	dir, err := ResolveStorageDir()
	if err != nil {
		t.Fatalf("resolve storage dir: %v", err)
	}
	if dir != filepath.Join(home, "Stunden") {
		t.Fatalf("unexpected fallback dir: %s", dir)
	}
}

func TestDefaultDBPath(t *testing.T) {
	root := t.TempDir()
	t.Setenv("OneDrive", root)

	path, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default db path: %v", err)
	}
	if path != filepath.Join(root, "Stunden", "sitelog.db") {
		t.Fatalf("unexpected db path: %s", path)
	}
}

package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/stacks/internal/store"
)

// setupDoctorTest copies a fixture config into a temp directory and returns
// a DoctorService for it along with the copied path.
func setupDoctorTest(t *testing.T, fixtureName string) (*DoctorService, string) {
	t.Helper()

	fixture := filepath.Join("testdata", "doctor", fixtureName, "config.toml")
	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatalf("Test fixture not found: %s", fixture)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to copy test fixture: %v", err)
	}

	return NewDoctorService(path), path
}

func findIssue(report *DiagnosticReport, code string) *Issue {
	for i := range report.Issues {
		if report.Issues[i].Code == code {
			return &report.Issues[i]
		}
	}
	return nil
}

func TestDoctorService_Healthy(t *testing.T) {
	service, _ := setupDoctorTest(t, "healthy")

	report, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	if !report.Exists {
		t.Error("Expected Exists to be true")
	}
	if report.Summary.Errors != 0 || report.Summary.Warnings != 0 {
		t.Errorf("Expected a clean report, got %+v", report.Issues)
	}
}

func TestDoctorService_MissingFile(t *testing.T) {
	service := NewDoctorService(filepath.Join(t.TempDir(), "config.toml"))

	report, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if report.Exists {
		t.Error("Expected Exists to be false")
	}
	if len(report.Issues) != 0 {
		t.Errorf("Missing config should be healthy, got %+v", report.Issues)
	}
}

func TestDoctorService_Malformed(t *testing.T) {
	service, _ := setupDoctorTest(t, "malformed")

	report, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	issue := findIssue(report, CodeMalformedConfig)
	if issue == nil {
		t.Fatal("Expected MALFORMED_CONFIG issue")
	}
	if issue.Fixable {
		t.Error("Malformed TOML should not be auto-fixable")
	}
	if !report.HasErrors() {
		t.Error("Expected HasErrors")
	}
}

func TestDoctorService_MissingSchema_Fix(t *testing.T) {
	service, path := setupDoctorTest(t, "missing-schema")

	report, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if findIssue(report, CodeMissingSchema) == nil {
		t.Fatal("Expected MISSING_SCHEMA issue")
	}

	fixed, err := service.Fix(report)
	if err != nil {
		t.Fatalf("Fix failed: %v", err)
	}
	if fixed.Summary.Fixed != 1 {
		t.Errorf("Expected 1 fix, got %d", fixed.Summary.Fixed)
	}
	if fixed.HasErrors() {
		t.Errorf("Expected no errors after fix, got %+v", fixed.Issues)
	}

	// The store must now accept the file and keep the user's values
	cfg, err := store.NewConfigStoreAt(path).Load()
	if err != nil {
		t.Fatalf("Load after fix failed: %v", err)
	}
	if cfg.BaseCellSize != 30 || cfg.DefaultNumber != 24 {
		t.Errorf("Fix lost user values: %+v", cfg)
	}
}

func TestDoctorService_BadValues(t *testing.T) {
	service, _ := setupDoctorTest(t, "bad-values")

	report, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	for _, code := range []string{CodeInvalidCellSize, CodeDefaultOutOfRange, CodeInvalidPort} {
		issue := findIssue(report, code)
		if issue == nil {
			t.Errorf("Expected %s issue", code)
			continue
		}
		if issue.Severity != SeverityError || !issue.Fixable {
			t.Errorf("%s: expected fixable error, got %+v", code, issue)
		}
	}

	if issue := findIssue(report, CodeMinBelowFloor); issue == nil || issue.Severity != SeverityWarning {
		t.Errorf("Expected MIN_NUMBER_BELOW_FLOOR warning, got %+v", issue)
	}
	if report.Summary.Errors != 3 || report.Summary.Warnings != 1 {
		t.Errorf("Summary = %+v, want 3 errors and 1 warning", report.Summary)
	}
}

func TestDoctorService_BadValues_Fix(t *testing.T) {
	service, path := setupDoctorTest(t, "bad-values")

	report, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	fixed, err := service.Fix(report)
	if err != nil {
		t.Fatalf("Fix failed: %v", err)
	}
	if fixed.Summary.Fixed != 4 {
		t.Errorf("Expected 4 fixes, got %d", fixed.Summary.Fixed)
	}
	if len(fixed.Issues) != 0 {
		t.Errorf("Expected no remaining issues, got %+v", fixed.Issues)
	}

	cfg, err := store.NewConfigStoreAt(path).Load()
	if err != nil {
		t.Fatalf("Load after fix failed: %v", err)
	}
	if cfg.BaseCellSize != 26 {
		t.Errorf("BaseCellSize = %v, want 26", cfg.BaseCellSize)
	}
	if cfg.DefaultNumber != 200 {
		t.Errorf("DefaultNumber = %d, want clamped to 200", cfg.DefaultNumber)
	}
	if cfg.MinNumber != 2 {
		t.Errorf("MinNumber = %d, want 2", cfg.MinNumber)
	}
	if cfg.Serve.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Serve.Port)
	}

	// A second pass finds nothing
	again, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if len(again.Issues) != 0 {
		t.Errorf("Expected clean report after fix, got %+v", again.Issues)
	}
}

func TestDoctorService_UnknownKey(t *testing.T) {
	service, _ := setupDoctorTest(t, "unknown-key")

	report, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	issue := findIssue(report, CodeUnknownKey)
	if issue == nil {
		t.Fatal("Expected UNKNOWN_KEY issue")
	}
	if issue.Key != "base_cel_size" {
		t.Errorf("Key = %q, want base_cel_size", issue.Key)
	}
	if report.HasErrors() {
		t.Error("Unknown keys should only warn")
	}
}

func TestDoctorService_NewerSchemaNotFixable(t *testing.T) {
	service, path := setupDoctorTest(t, "newer-schema")

	report, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	issue := findIssue(report, CodeSchemaMismatch)
	if issue == nil {
		t.Fatal("Expected SCHEMA_MISMATCH issue")
	}
	if issue.Fixable {
		t.Error("A newer schema must not be downgraded")
	}

	before, _ := os.ReadFile(path)
	if _, err := service.Fix(report); err != nil {
		t.Fatalf("Fix failed: %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("Fix must not touch the file when nothing is fixable")
	}
}

func TestDoctorService_BadRange(t *testing.T) {
	service, _ := setupDoctorTest(t, "bad-range")

	report, err := service.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	issue := findIssue(report, CodeInvalidRange)
	if issue == nil {
		t.Fatal("Expected INVALID_NUMBER_RANGE issue")
	}
	if issue.Fixable {
		t.Error("A crossed range needs a human decision")
	}
	// The default is not reported separately while the range itself is broken
	if findIssue(report, CodeDefaultOutOfRange) != nil {
		t.Error("Did not expect DEFAULT_NUMBER_OUT_OF_RANGE alongside INVALID_NUMBER_RANGE")
	}
}

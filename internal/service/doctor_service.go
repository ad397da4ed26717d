package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/policy"
	"github.com/amterp/stacks/internal/version"
)

// IssueSeverity indicates how critical an issue is.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue codes for diagnostic results.
const (
	// File level (errors)
	CodeUnreadableConfig = "UNREADABLE_CONFIG"
	CodeMalformedConfig  = "MALFORMED_CONFIG"
	CodeMissingSchema    = "MISSING_SCHEMA"
	CodeSchemaMismatch   = "SCHEMA_MISMATCH"

	// Values that would stop stacks from starting (errors)
	CodeInvalidCellSize   = "INVALID_BASE_CELL_SIZE"
	CodeInvalidRange      = "INVALID_NUMBER_RANGE"
	CodeDefaultOutOfRange = "DEFAULT_NUMBER_OUT_OF_RANGE"
	CodeInvalidPort       = "INVALID_PORT"

	// Harmless but probably unintended (warnings)
	CodeMinBelowFloor = "MIN_NUMBER_BELOW_FLOOR"
	CodeUnknownKey    = "UNKNOWN_KEY"
)

// Issue represents a single diagnostic finding.
type Issue struct {
	Severity  IssueSeverity `json:"severity"`
	Code      string        `json:"code"`
	Key       string        `json:"key,omitempty"`
	Message   string        `json:"message"`
	Fixable   bool          `json:"fixable"`
	FixAction string        `json:"fix_action,omitempty"`
	FixError  string        `json:"fix_error,omitempty"` // Populated if fix was attempted but failed
}

// ReportSummary summarizes the diagnostic results.
type ReportSummary struct {
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Fixed     int `json:"fixed"`
	FixFailed int `json:"fix_failed,omitempty"`
}

// DiagnosticReport contains all diagnostic results.
type DiagnosticReport struct {
	Path    string        `json:"path"`
	Exists  bool          `json:"exists"`
	Issues  []Issue       `json:"issues"`
	Summary ReportSummary `json:"summary"`
}

// HasErrors returns true if there are any error-level issues.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

func (r *DiagnosticReport) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

func (r *DiagnosticReport) tally() {
	r.Summary.Errors, r.Summary.Warnings = 0, 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			r.Summary.Errors++
		} else {
			r.Summary.Warnings++
		}
	}
}

// DoctorService validates the config file.
type DoctorService struct {
	path string
}

// NewDoctorService creates a diagnostic service for the config at path.
func NewDoctorService(path string) *DoctorService {
	return &DoctorService{path: path}
}

// Diagnose checks the config file. A missing file is healthy: defaults apply.
func (s *DoctorService) Diagnose() (*DiagnosticReport, error) {
	report := &DiagnosticReport{
		Path:   s.path,
		Issues: []Issue{},
	}
	if s.path == "" {
		return nil, fmt.Errorf("config path is unknown")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return report, nil
		}
		report.Exists = true
		report.add(Issue{
			Severity: SeverityError,
			Code:     CodeUnreadableConfig,
			Message:  fmt.Sprintf("Cannot read config: %v", err),
		})
		report.tally()
		return report, nil
	}
	report.Exists = true

	cfg := model.Config{MaxNumber: model.DefaultMaxNumber}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		report.add(Issue{
			Severity:  SeverityError,
			Code:      CodeMalformedConfig,
			Message:   fmt.Sprintf("Invalid TOML: %v", err),
			FixAction: "Run 'stacks init --force' to start over",
		})
		report.tally()
		return report, nil
	}

	s.checkSchema(report, cfg.StacksSchema)
	for _, key := range md.Undecoded() {
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeUnknownKey,
			Key:      key.String(),
			Message:  fmt.Sprintf("Unknown key %q is ignored", key.String()),
		})
	}

	cfg.ApplyDefaults()
	s.checkValues(report, &cfg)

	report.tally()
	return report, nil
}

func (s *DoctorService) checkSchema(report *DiagnosticReport, schema string) {
	current := version.CurrentConfigSchema()
	switch {
	case schema == "":
		report.add(Issue{
			Severity:  SeverityError,
			Code:      CodeMissingSchema,
			Key:       "stacks_schema",
			Message:   fmt.Sprintf("Config has no schema version, current is %s", current),
			Fixable:   true,
			FixAction: fmt.Sprintf("Set stacks_schema = %q", current),
		})
	case schema != current:
		issue := Issue{
			Severity: SeverityError,
			Code:     CodeSchemaMismatch,
			Key:      "stacks_schema",
			Message:  fmt.Sprintf("Config has schema %s, current is %s", schema, current),
		}
		// Newer files may use fields this build doesn't know; don't downgrade them
		if found, err := version.ParseConfigVersion(schema); err == nil && found < version.CurrentConfigVersion {
			issue.Fixable = true
			issue.FixAction = fmt.Sprintf("Set stacks_schema = %q", current)
		} else {
			issue.FixAction = "Upgrade stacks"
		}
		report.add(issue)
	}
}

func (s *DoctorService) checkValues(report *DiagnosticReport, cfg *model.Config) {
	if err := policy.FromConfig(cfg).Validate(); err != nil {
		report.add(Issue{
			Severity:  SeverityError,
			Code:      CodeInvalidCellSize,
			Key:       "base_cell_size",
			Message:   fmt.Sprintf("base_cell_size %v must be a positive number", cfg.BaseCellSize),
			Fixable:   true,
			FixAction: fmt.Sprintf("Reset base_cell_size to %v", model.DefaultBaseCellSize),
		})
	}

	floor := cfg.MinNumber
	if floor < model.HardMinNumber {
		report.add(Issue{
			Severity:  SeverityWarning,
			Code:      CodeMinBelowFloor,
			Key:       "min_number",
			Message:   fmt.Sprintf("min_number %d is below %d and is treated as %d", cfg.MinNumber, model.HardMinNumber, model.HardMinNumber),
			Fixable:   true,
			FixAction: fmt.Sprintf("Set min_number to %d", model.HardMinNumber),
		})
		floor = model.HardMinNumber
	}

	if cfg.MaxNumber < 0 || (cfg.MaxNumber > 0 && cfg.MaxNumber < floor) {
		report.add(Issue{
			Severity:  SeverityError,
			Code:      CodeInvalidRange,
			Key:       "max_number",
			Message:   fmt.Sprintf("max_number %d is below min_number %d", cfg.MaxNumber, floor),
			FixAction: "Raise max_number, or set it to 0 for no ceiling",
		})
	} else if cfg.DefaultNumber < floor || (cfg.MaxNumber > 0 && cfg.DefaultNumber > cfg.MaxNumber) {
		report.add(Issue{
			Severity:  SeverityError,
			Code:      CodeDefaultOutOfRange,
			Key:       "default_number",
			Message:   fmt.Sprintf("default_number %d is outside %s", cfg.DefaultNumber, rangeString(floor, cfg.MaxNumber)),
			Fixable:   true,
			FixAction: fmt.Sprintf("Clamp default_number to %d", clamp(cfg.DefaultNumber, floor, cfg.MaxNumber)),
		})
	}

	if cfg.Serve.Port < 1 || cfg.Serve.Port > 65535 {
		report.add(Issue{
			Severity:  SeverityError,
			Code:      CodeInvalidPort,
			Key:       "serve.port",
			Message:   fmt.Sprintf("serve.port %d is not a valid TCP port", cfg.Serve.Port),
			Fixable:   true,
			FixAction: fmt.Sprintf("Reset serve.port to %d", model.DefaultServePort),
		})
	}
}

// Fix applies automatic fixes for issues that have deterministic solutions.
// Returns a new report showing remaining issues and what was fixed.
func (s *DoctorService) Fix(report *DiagnosticReport) (*DiagnosticReport, error) {
	var fixable []Issue
	remaining := []Issue{}
	for _, issue := range report.Issues {
		if issue.Fixable {
			fixable = append(fixable, issue)
		} else {
			remaining = append(remaining, issue)
		}
	}

	newReport := &DiagnosticReport{Path: report.Path, Exists: report.Exists}
	if len(fixable) == 0 {
		newReport.Issues = remaining
		newReport.tally()
		return newReport, nil
	}

	raw, err := readTOMLMap(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read config: %w", err)
	}

	// Resolve the effective range once so default_number is clamped against
	// the post-fix minimum.
	cfg := model.Config{MaxNumber: model.DefaultMaxNumber}
	if _, err := toml.Decode(tomlString(raw), &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	floor := max(cfg.MinNumber, model.HardMinNumber)

	for _, issue := range fixable {
		if err := applyFix(raw, issue, &cfg, floor); err != nil {
			issue.FixError = err.Error()
			remaining = append(remaining, issue)
			newReport.Summary.FixFailed++
			continue
		}
		newReport.Summary.Fixed++
	}

	if newReport.Summary.Fixed > 0 {
		if err := writeTOMLMap(s.path, raw); err != nil {
			return nil, fmt.Errorf("failed to write config: %w", err)
		}
	}

	newReport.Issues = remaining
	newReport.tally()
	return newReport, nil
}

func applyFix(raw map[string]any, issue Issue, cfg *model.Config, floor int) error {
	switch issue.Code {
	case CodeMissingSchema, CodeSchemaMismatch:
		raw["stacks_schema"] = version.CurrentConfigSchema()
	case CodeInvalidCellSize:
		raw["base_cell_size"] = model.DefaultBaseCellSize
	case CodeMinBelowFloor:
		raw["min_number"] = int64(model.HardMinNumber)
	case CodeDefaultOutOfRange:
		raw["default_number"] = int64(clamp(cfg.DefaultNumber, floor, cfg.MaxNumber))
	case CodeInvalidPort:
		serve, _ := raw["serve"].(map[string]any)
		if serve == nil {
			serve = map[string]any{}
			raw["serve"] = serve
		}
		serve["port"] = int64(model.DefaultServePort)
	default:
		return fmt.Errorf("no automatic fix for %s", issue.Code)
	}
	return nil
}

func tomlString(raw map[string]any) string {
	var b strings.Builder
	_ = toml.NewEncoder(&b).Encode(raw)
	return b.String()
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if hi > 0 && n > hi {
		return hi
	}
	return n
}

func rangeString(lo, hi int) string {
	if hi == 0 {
		return fmt.Sprintf("%d+", lo)
	}
	return fmt.Sprintf("%d–%d", lo, hi)
}

// Package doctor diagnoses a favs setup: whether the configuration holds up
// and whether the saved favorites can be reached and read.
package doctor

import "context"

// Status is the severity of a finding.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

var statusNames = [...]string{
	StatusPass: "pass",
	StatusWarn: "warn",
	StatusFail: "fail",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalText renders the status by name in JSON reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finding is one observation made by a check.
type Finding struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func Pass(label, detail string) Finding { return Finding{Label: label, Status: StatusPass, Detail: detail} }
func Warn(label, detail string) Finding { return Finding{Label: label, Status: StatusWarn, Detail: detail} }
func Fail(label, detail string) Finding { return Finding{Label: label, Status: StatusFail, Detail: detail} }

// Result groups the findings of one check.
type Result struct {
	Name     string    `json:"name"`
	Findings []Finding `json:"findings"`
}

func (r *Result) add(f ...Finding) {
	r.Findings = append(r.Findings, f...)
}

// Worst returns the most severe status among the findings.
func (r Result) Worst() Status {
	worst := StatusPass
	for _, f := range r.Findings {
		worst = max(worst, f.Status)
	}
	return worst
}

// Check inspects one part of the setup.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Tally counts findings by status.
type Tally struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

// Report is the outcome of a doctor run. A report is healthy when no
// finding failed; warnings do not count against it.
type Report struct {
	Healthy bool     `json:"healthy"`
	Summary Tally    `json:"summary"`
	Checks  []Result `json:"checks"`
}

// Run executes checks in order and tallies their findings.
func Run(ctx context.Context, checks ...Check) Report {
	report := Report{Checks: make([]Result, 0, len(checks))}

	for _, check := range checks {
		result := check.Run(ctx)
		for _, f := range result.Findings {
			switch f.Status {
			case StatusPass:
				report.Summary.Passed++
			case StatusWarn:
				report.Summary.Warned++
			case StatusFail:
				report.Summary.Failed++
			}
		}
		report.Checks = append(report.Checks, result)
	}

	report.Healthy = report.Summary.Failed == 0
	return report
}

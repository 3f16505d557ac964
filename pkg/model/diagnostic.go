package model

import "fmt"

// DiagnosticKind classifies a non-fatal problem recorded during a scan.
type DiagnosticKind string

const (
	DiagnosticDiscovery     DiagnosticKind = "discovery"      // A directory could not be listed
	DiagnosticSolutionParse DiagnosticKind = "solution_parse" // A .sln file could not be read or parsed
	DiagnosticProjectParse  DiagnosticKind = "project_parse"  // A project file could not be read or parsed
	DiagnosticCycle         DiagnosticKind = "cycle"          // A project reference chain revisits an ancestor
)

// Diagnostic describes a file or directory that could not be fully processed.
// Diagnostics never abort a scan; they accumulate alongside the result.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Path    string         `json:"path"`    // The file or directory involved
	Message string         `json:"message"` // Human-readable description
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Path, d.Message)
}

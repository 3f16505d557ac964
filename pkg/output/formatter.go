package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/cycles"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/model"
)

// PrintScanReport prints a nicely formatted summary of a discovery run with colors
func PrintScanReport(set *model.SolutionSet, diags []model.Diagnostic, projectCycles []cycles.ProjectCycle) {
	// Color definitions
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	// Header
	bold.Println("Solution Scan Report")
	bold.Println("====================")
	fmt.Printf("Start path: %s\n", set.StartPath)
	fmt.Printf("Solutions: %d\n", set.SolutionCount())
	fmt.Printf("Projects: %d\n", len(set.UniqueProjects()))
	fmt.Printf("Source files: %d\n", set.FileCount())
	fmt.Println()

	// Per-solution breakdown
	for _, sln := range set.Solutions {
		cyan.Printf("%s\n", sln.SolutionName)
		fmt.Printf("  Folder: %s\n", sln.FullPath)
		if len(sln.Projects) == 0 {
			yellow.Println("  (no projects)")
			continue
		}
		for _, p := range sln.Projects {
			fmt.Printf("  %s (%d files, %d child projects)\n",
				p.Name, len(p.CodeFiles), len(p.ChildProjects))
		}
	}
	fmt.Println()

	// Reference cycles
	if len(projectCycles) > 0 {
		red.Println("CIRCULAR PROJECT REFERENCES:")
		for _, c := range projectCycles {
			for _, p := range c.Projects {
				yellow.Printf("  %s\n", p)
			}
			fmt.Println()
		}
	}

	// Diagnostics
	if len(diags) == 0 {
		green.Println("No diagnostics: every file was fully processed")
		return
	}

	yellow.Printf("Diagnostics: %d item(s) could not be fully processed\n", len(diags))
	for _, d := range diags {
		fmt.Printf("  %s\n", d)
	}
}

// Package cycles reports circular project references in an assembled
// SolutionSet. The scanner truncates cycles during resolution; this package
// is the post-hoc report of which projects participate in them.
package cycles

import (
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/graph"
)

// ProjectCycle is a set of project files that reference each other in a loop.
type ProjectCycle struct {
	Projects []string `json:"projects"` // Project file paths in the cycle
}

// FindProjectCycles finds all reference cycles in the project graph,
// including projects that reference themselves.
func FindProjectCycles(pg *graph.ProjectGraph) []ProjectCycle {
	found := make([]ProjectCycle, 0)

	for _, path := range pg.SelfReferences() {
		found = append(found, ProjectCycle{Projects: []string{path}})
	}

	tarjan := newTarjanSCC(pg.Directed())
	for _, scc := range tarjan.findSCCs() {
		projects := make([]string, 0, len(scc))
		for _, id := range scc {
			if p := pg.Path(id); p != "" {
				projects = append(projects, p)
			}
		}
		if len(projects) > 1 {
			found = append(found, ProjectCycle{Projects: projects})
		}
	}

	return found
}

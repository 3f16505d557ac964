// Package graph builds a directed graph over the unique projects of a
// SolutionSet, with an edge for every parent-to-child project reference.
package graph

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/model"
)

// ProjectGraph is a directed reference graph keyed by project file path.
type ProjectGraph struct {
	graph     *simple.DirectedGraph
	ids       map[string]int64 // project path -> node ID
	paths     map[int64]string // node ID -> project path
	selfRefs  []string         // projects that reference themselves
	nextID    int64
	edgeCount int
}

// NewProjectGraph creates an empty project graph.
func NewProjectGraph() *ProjectGraph {
	return &ProjectGraph{
		graph: simple.NewDirectedGraph(),
		ids:   make(map[string]int64),
		paths: make(map[int64]string),
	}
}

// AddProject ensures a node exists for the given project path.
func (pg *ProjectGraph) AddProject(path string) {
	if _, exists := pg.ids[path]; exists {
		return
	}
	pg.ids[path] = pg.nextID
	pg.paths[pg.nextID] = path
	pg.graph.AddNode(simple.Node(pg.nextID))
	pg.nextID++
}

// AddReference adds a directed edge from parent to child, creating nodes as
// needed. A self-reference is recorded separately because the underlying
// graph rejects self-edges.
func (pg *ProjectGraph) AddReference(parent, child string) {
	pg.AddProject(parent)
	pg.AddProject(child)

	if parent == child {
		pg.selfRefs = append(pg.selfRefs, parent)
		return
	}

	from, to := pg.ids[parent], pg.ids[child]
	if !pg.graph.HasEdgeFromTo(from, to) {
		pg.graph.SetEdge(pg.graph.NewEdge(pg.graph.Node(from), pg.graph.Node(to)))
		pg.edgeCount++
	}
}

// Directed exposes the underlying gonum graph for traversal algorithms.
func (pg *ProjectGraph) Directed() *simple.DirectedGraph {
	return pg.graph
}

// Path returns the project path for a node ID.
func (pg *ProjectGraph) Path(id int64) string {
	return pg.paths[id]
}

// SelfReferences returns the paths of projects that reference themselves.
func (pg *ProjectGraph) SelfReferences() []string {
	return pg.selfRefs
}

// NodeCount returns the number of projects in the graph.
func (pg *ProjectGraph) NodeCount() int {
	return len(pg.ids)
}

// EdgeCount returns the number of distinct reference edges.
func (pg *ProjectGraph) EdgeCount() int {
	return pg.edgeCount
}

// References returns the edges that a project has to other projects.
func (pg *ProjectGraph) References(path string) []string {
	id, ok := pg.ids[path]
	if !ok {
		return nil
	}

	var refs []string
	iter := pg.graph.From(id)
	for iter.Next() {
		refs = append(refs, pg.paths[iter.Node().ID()])
	}
	return refs
}

// FromSolutionSet builds the reference graph of every unique project in the
// set. Because shared projects are single instances, each project
// contributes its edges exactly once.
func FromSolutionSet(set *model.SolutionSet) *ProjectGraph {
	pg := NewProjectGraph()

	for _, project := range set.UniqueProjects() {
		pg.AddProject(project.FullPath)
		for _, child := range project.ChildProjects {
			pg.AddReference(project.FullPath, child.FullPath)
		}
	}

	return pg
}

package graph

import (
	"sort"
	"testing"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/model"
)

func TestProjectGraph_AddReference(t *testing.T) {
	pg := NewProjectGraph()
	pg.AddReference("/a.csproj", "/b.csproj")
	pg.AddReference("/a.csproj", "/c.csproj")
	pg.AddReference("/a.csproj", "/b.csproj") // duplicate, ignored

	if pg.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", pg.NodeCount())
	}
	if pg.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", pg.EdgeCount())
	}

	refs := pg.References("/a.csproj")
	sort.Strings(refs)
	if len(refs) != 2 || refs[0] != "/b.csproj" || refs[1] != "/c.csproj" {
		t.Errorf("References(/a.csproj) = %v, want [/b.csproj /c.csproj]", refs)
	}
}

func TestProjectGraph_SelfReference(t *testing.T) {
	pg := NewProjectGraph()
	pg.AddReference("/a.csproj", "/a.csproj")

	if pg.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", pg.NodeCount())
	}
	if pg.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 (self refs tracked separately)", pg.EdgeCount())
	}
	if selfs := pg.SelfReferences(); len(selfs) != 1 || selfs[0] != "/a.csproj" {
		t.Errorf("SelfReferences() = %v, want [/a.csproj]", selfs)
	}
}

func TestFromSolutionSet(t *testing.T) {
	shared := &model.Project{FullPath: "/shared.csproj", ChildProjects: []*model.Project{}}
	a := &model.Project{FullPath: "/a.csproj", ChildProjects: []*model.Project{shared}}
	b := &model.Project{FullPath: "/b.csproj", ChildProjects: []*model.Project{shared}}

	set := &model.SolutionSet{
		Solutions: []*model.Solution{
			{Projects: []*model.Project{a, b}},
		},
	}

	pg := FromSolutionSet(set)
	if pg.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", pg.NodeCount())
	}
	if pg.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", pg.EdgeCount())
	}
	if refs := pg.References("/shared.csproj"); len(refs) != 0 {
		t.Errorf("References(/shared.csproj) = %v, want none", refs)
	}
}

func TestFromSolutionSet_CycleStub(t *testing.T) {
	// The scanner truncates a cycle with a stub that shares the real
	// project's path; the graph must still reconstruct the back edge.
	a := &model.Project{FullPath: "/a.csproj"}
	b := &model.Project{FullPath: "/b.csproj"}
	stubA := &model.Project{FullPath: "/a.csproj"}
	a.ChildProjects = []*model.Project{b}
	b.ChildProjects = []*model.Project{stubA}

	set := &model.SolutionSet{
		Solutions: []*model.Solution{
			{Projects: []*model.Project{a}},
		},
	}

	pg := FromSolutionSet(set)
	if pg.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2 (stub collapses onto real node)", pg.NodeCount())
	}
	if pg.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2 (a->b and b->a)", pg.EdgeCount())
	}
}

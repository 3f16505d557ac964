package cycles

import (
	"sort"
	"testing"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/graph"
)

func TestFindProjectCycles_None(t *testing.T) {
	pg := graph.NewProjectGraph()
	pg.AddReference("/a.csproj", "/b.csproj")
	pg.AddReference("/b.csproj", "/c.csproj")

	if got := FindProjectCycles(pg); len(got) != 0 {
		t.Errorf("FindProjectCycles() = %v, want none", got)
	}
}

func TestFindProjectCycles_TwoProjectLoop(t *testing.T) {
	pg := graph.NewProjectGraph()
	pg.AddReference("/a.csproj", "/b.csproj")
	pg.AddReference("/b.csproj", "/a.csproj")
	pg.AddReference("/a.csproj", "/lib.csproj") // not part of the loop

	got := FindProjectCycles(pg)
	if len(got) != 1 {
		t.Fatalf("FindProjectCycles() returned %d cycles, want 1: %v", len(got), got)
	}

	members := append([]string(nil), got[0].Projects...)
	sort.Strings(members)
	if len(members) != 2 || members[0] != "/a.csproj" || members[1] != "/b.csproj" {
		t.Errorf("cycle members = %v, want [/a.csproj /b.csproj]", members)
	}
}

func TestFindProjectCycles_SelfReference(t *testing.T) {
	pg := graph.NewProjectGraph()
	pg.AddReference("/a.csproj", "/a.csproj")

	got := FindProjectCycles(pg)
	if len(got) != 1 {
		t.Fatalf("FindProjectCycles() returned %d cycles, want 1", len(got))
	}
	if len(got[0].Projects) != 1 || got[0].Projects[0] != "/a.csproj" {
		t.Errorf("cycle = %v, want the self-referencing project alone", got[0])
	}
}

func TestFindProjectCycles_TwoIndependentLoops(t *testing.T) {
	pg := graph.NewProjectGraph()
	pg.AddReference("/a.csproj", "/b.csproj")
	pg.AddReference("/b.csproj", "/a.csproj")
	pg.AddReference("/x.csproj", "/y.csproj")
	pg.AddReference("/y.csproj", "/z.csproj")
	pg.AddReference("/z.csproj", "/x.csproj")

	got := FindProjectCycles(pg)
	if len(got) != 2 {
		t.Fatalf("FindProjectCycles() returned %d cycles, want 2: %v", len(got), got)
	}

	sizes := []int{len(got[0].Projects), len(got[1].Projects)}
	sort.Ints(sizes)
	if sizes[0] != 2 || sizes[1] != 3 {
		t.Errorf("cycle sizes = %v, want [2 3]", sizes)
	}
}

package model

// CodeFile represents a single source file owned by a project.
type CodeFile struct {
	FileName string   `json:"file_name"` // Just the file name, e.g. "Program.cs"
	FullPath string   `json:"full_path"` // Absolute path including the file name
	Language Language `json:"language"`  // Language tag, e.g. "CS"
}

// Project represents a parsed project file (.csproj, .vbproj, .fsproj) and
// everything it owns. Shared projects are deduplicated during a scan: if the
// same project file is referenced from several places, all of them point at
// one Project instance, so the overall structure is a DAG.
type Project struct {
	FullPath          string      `json:"full_path"`           // Absolute path to the project file
	ProjectFolderPath string      `json:"project_folder_path"` // Directory containing the project file
	Name              string      `json:"name"`                // File name without extension
	CodeFiles         []*CodeFile `json:"code_files"`          // Source files in declaration order
	ChildProjects     []*Project  `json:"child_projects"`      // Nested project references
}

// Solution represents a parsed .sln file and its top-level projects.
// Transitively referenced projects live under ChildProjects of these.
type Solution struct {
	FullPath     string     `json:"full_path"`     // Directory containing the .sln file
	SolutionName string     `json:"solution_name"` // File name, e.g. "MyApp.sln"
	Projects     []*Project `json:"projects"`
}

// SolutionSet is the root of one discovery run.
type SolutionSet struct {
	StartPath string      `json:"start_path"` // Directory the scan started from
	Solutions []*Solution `json:"solutions"`
}

// SolutionCount returns the number of solutions in the set.
func (ss *SolutionSet) SolutionCount() int {
	return len(ss.Solutions)
}

// UniqueProjects returns every distinct Project in the set, in first-seen
// order. Because shared projects are single instances, identity is pointer
// identity, not path equality.
func (ss *SolutionSet) UniqueProjects() []*Project {
	seen := make(map[*Project]bool)
	var result []*Project

	var visit func(p *Project)
	visit = func(p *Project) {
		if p == nil || seen[p] {
			return
		}
		seen[p] = true
		result = append(result, p)
		for _, child := range p.ChildProjects {
			visit(child)
		}
	}

	for _, sln := range ss.Solutions {
		for _, p := range sln.Projects {
			visit(p)
		}
	}
	return result
}

// FileCount returns the total number of code files across all unique projects.
func (ss *SolutionSet) FileCount() int {
	count := 0
	for _, p := range ss.UniqueProjects() {
		count += len(p.CodeFiles)
	}
	return count
}

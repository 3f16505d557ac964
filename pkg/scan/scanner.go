// Package scan drives a discovery run: it finds solution files under a start
// path, parses them, resolves every referenced project recursively, and
// assembles the resulting SolutionSet.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/finder"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/logging"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/model"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/msbuild"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/pathutil"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/sln"
)

// DefaultWorkers bounds the solution-parsing worker pool when no explicit
// worker count is configured.
const DefaultWorkers = 4

// Scanner performs discovery runs. A Scanner is cheap; create one per run.
type Scanner struct {
	workers int

	mu       sync.Mutex
	projects map[string]*model.Project // resolved absolute path -> shared instance
	diags    []model.Diagnostic
}

// NewScanner creates a Scanner. workers bounds the solution-parsing pool;
// values below 1 fall back to DefaultWorkers. Project resolution itself is
// serialized so that shared projects stay single instances.
func NewScanner(workers int) *Scanner {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Scanner{
		workers:  workers,
		projects: make(map[string]*model.Project),
	}
}

// Discover runs a full discovery from startPath with a default Scanner.
func Discover(ctx context.Context, startPath string) (*model.SolutionSet, []model.Diagnostic, error) {
	return NewScanner(0).Discover(ctx, startPath)
}

// Discover finds every solution under startPath and materializes the full
// hierarchy. startPath may be a directory or a single .sln file. The only
// fatal conditions are an invalid start path and context cancellation;
// everything else degrades to diagnostics.
func (s *Scanner) Discover(ctx context.Context, startPath string) (*model.SolutionSet, []model.Diagnostic, error) {
	absStart, err := filepath.Abs(startPath)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving start path: %w", err)
	}

	info, err := os.Stat(absStart)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid start path %q: %w", startPath, err)
	}

	var slnFiles []string
	switch {
	case info.IsDir():
		var diags []model.Diagnostic
		slnFiles, diags = finder.FindSolutionFiles(absStart)
		s.record(diags...)
	case sln.IsSolutionPath(absStart):
		slnFiles = []string{absStart}
	default:
		return nil, nil, fmt.Errorf("start path %q is neither a directory nor a .sln file", startPath)
	}

	logging.Info("discovered solution files", "start", absStart, "count", len(slnFiles))

	parsed, err := s.parseSolutions(ctx, slnFiles)
	if err != nil {
		return nil, nil, err
	}

	set := &model.SolutionSet{
		StartPath: absStart,
		Solutions: make([]*model.Solution, 0, len(parsed)),
	}

	for _, ps := range parsed {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		set.Solutions = append(set.Solutions, s.assembleSolution(ps))
	}

	logging.Info("scan complete",
		"solutions", set.SolutionCount(),
		"projects", len(set.UniqueProjects()),
		"files", set.FileCount(),
		"diagnostics", len(s.diags),
	)

	return set, s.diags, nil
}

// parsedSolution pairs a solution file with its extracted references.
type parsedSolution struct {
	path string
	refs []sln.ProjectRef
}

// parseSolutions reads and parses solution files over a bounded worker pool.
// Output order matches input order regardless of completion order.
func (s *Scanner) parseSolutions(ctx context.Context, paths []string) ([]parsedSolution, error) {
	results := make([]parsedSolution, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := s.workers
	if workers > len(paths) {
		workers = len(paths)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := paths[i]
				refs, err := sln.ParseFile(path)
				switch {
				case err != nil:
					s.record(model.Diagnostic{
						Kind:    model.DiagnosticSolutionParse,
						Path:    path,
						Message: err.Error(),
					})
				case len(refs) == 0:
					s.record(model.Diagnostic{
						Kind:    model.DiagnosticSolutionParse,
						Path:    path,
						Message: "no recognizable project references",
					})
				}
				results[i] = parsedSolution{path: path, refs: refs}
			}
		}()
	}

	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// assembleSolution resolves a parsed solution's top-level project references
// into a populated Solution.
func (s *Scanner) assembleSolution(ps parsedSolution) *model.Solution {
	slnDir := filepath.Dir(ps.path)
	solution := &model.Solution{
		FullPath:     slnDir,
		SolutionName: filepath.Base(ps.path),
		Projects:     make([]*model.Project, 0, len(ps.refs)),
	}

	for _, ref := range ps.refs {
		projPath := pathutil.Resolve(slnDir, ref.Path)
		trail := make(map[string]bool)
		solution.Projects = append(solution.Projects, s.resolveProject(projPath, trail))
	}

	return solution
}

// resolveProject returns the single Project instance for projPath, parsing
// it on first encounter. trail holds the paths on the active reference chain
// so that a reference back to an ancestor is truncated instead of recursed.
func (s *Scanner) resolveProject(projPath string, trail map[string]bool) *model.Project {
	s.mu.Lock()
	if p, ok := s.projects[projPath]; ok {
		s.mu.Unlock()
		return p
	}
	s.mu.Unlock()

	if trail[projPath] {
		s.record(model.Diagnostic{
			Kind:    model.DiagnosticCycle,
			Path:    projPath,
			Message: "project reference chain revisits this project; reference truncated",
		})
		return newProjectStub(projPath)
	}
	trail[projPath] = true
	defer delete(trail, projPath)

	parsed, err := msbuild.ParseFile(projPath)
	if err != nil {
		s.record(model.Diagnostic{
			Kind:    model.DiagnosticProjectParse,
			Path:    projPath,
			Message: err.Error(),
		})
		stub := newProjectStub(projPath)
		s.remember(projPath, stub)
		return stub
	}

	project := newProjectStub(projPath)
	project.CodeFiles = s.collectCodeFiles(projPath, parsed)

	for _, refPath := range parsed.ProjectRefs {
		childPath := pathutil.Resolve(project.ProjectFolderPath, refPath)
		project.ChildProjects = append(project.ChildProjects, s.resolveProject(childPath, trail))
	}

	s.remember(projPath, project)
	return project
}

// collectCodeFiles turns a parse result into classified CodeFiles. Declared
// entries that do not exist on disk are dropped; SDK-style projects without
// explicit items fall back to globbing the project directory.
func (s *Scanner) collectCodeFiles(projPath string, parsed *msbuild.Result) []*model.CodeFile {
	projDir := filepath.Dir(projPath)

	var paths []string
	if parsed.DefaultCompile {
		paths = finder.FindDefaultSources(projDir)
	} else {
		for _, rel := range parsed.SourceFiles {
			abs := pathutil.Resolve(projDir, rel)
			if info, err := os.Stat(abs); err != nil || info.IsDir() {
				logging.Debug("skipping missing source file", "project", projPath, "file", abs)
				continue
			}
			paths = append(paths, abs)
		}
	}

	files := make([]*model.CodeFile, 0, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		files = append(files, &model.CodeFile{
			FileName: name,
			FullPath: p,
			Language: model.ClassifyLanguage(name),
		})
	}
	return files
}

// record appends diagnostics under the scanner lock.
func (s *Scanner) record(diags ...model.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	s.mu.Lock()
	s.diags = append(s.diags, diags...)
	s.mu.Unlock()
}

// remember inserts a fully built project into the shared instance map.
func (s *Scanner) remember(projPath string, p *model.Project) {
	s.mu.Lock()
	s.projects[projPath] = p
	s.mu.Unlock()
}

// newProjectStub builds a Project with empty membership. Used both as the
// starting point for real projects and as the terminal entry for unreadable
// or cyclic references.
func newProjectStub(projPath string) *model.Project {
	base := filepath.Base(projPath)
	return &model.Project{
		FullPath:          projPath,
		ProjectFolderPath: filepath.Dir(projPath),
		Name:              strings.TrimSuffix(base, filepath.Ext(base)),
		CodeFiles:         []*model.CodeFile{},
		ChildProjects:     []*model.Project{},
	}
}

// Package finder locates solution and source files on disk.
package finder

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/model"
)

// skipDirs are directory names excluded from every walk: build outputs,
// package caches, and VCS/IDE metadata that never hold authored files.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	".vs":          true,
	".idea":        true,
	".vscode":      true,
	"bin":          true,
	"obj":          true,
	"packages":     true,
	".nuget":       true,
	"node_modules": true,
	"vendor":       true,
}

// FindSolutionFiles walks root recursively and returns the paths of all .sln
// files, sorted for deterministic output. Directories that cannot be listed
// are recorded as diagnostics and skipped; they never abort the walk.
func FindSolutionFiles(root string) ([]string, []model.Diagnostic) {
	var solutions []string
	var diags []model.Diagnostic

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			diags = append(diags, model.Diagnostic{
				Kind:    model.DiagnosticDiscovery,
				Path:    path,
				Message: err.Error(),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			// The walk root is exempt: a scan deliberately started inside a
			// directory named like a build-output dir must still work.
			if path != root && skipDirs[strings.ToLower(d.Name())] {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(d.Name()), ".sln") {
			solutions = append(solutions, path)
		}
		return nil
	})

	sort.Strings(solutions)
	return solutions, diags
}

// FindDefaultSources enumerates the source files an SDK-style project picks
// up implicitly: every .cs and .vb file under the project directory, minus
// the usual build-output directories. Paths are returned sorted.
func FindDefaultSources(projectDir string) []string {
	var sources []string

	_ = filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != projectDir && skipDirs[strings.ToLower(d.Name())] {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == ".cs" || ext == ".vb" {
			sources = append(sources, path)
		}
		return nil
	})

	sort.Strings(sources)
	return sources
}

// Package sln parses Visual Studio solution (.sln) files.
//
// The format is line-oriented: each referenced project appears on a line of
// the form
//
//	Project("{TYPE-GUID}") = "Name", "rel\path\App.csproj", "{PROJECT-GUID}"
//
// Only these lines are of interest; everything else (headers, global
// sections, nesting info) is ignored.
package sln

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ProjectRef is one project reference extracted from a solution file.
type ProjectRef struct {
	Name     string // Display name declared in the solution
	Path     string // Path to the project file, relative to the .sln, Windows separators possible
	TypeGUID string // Project type GUID, without braces
	GUID     string // Per-project GUID, without braces
}

// solutionFolderGUID marks virtual folder entries. They group projects in the
// IDE but reference no project file on disk.
const solutionFolderGUID = "2150E333-8FDC-42A3-9474-1A3956D46DE8"

var projectLineRegex = regexp.MustCompile(
	`^Project\("\{([^}]+)\}"\)\s*=\s*"([^"]+)"\s*,\s*"([^"]+)"\s*,\s*"\{([^}]+)\}"`)

// projectExtensions lists the project-file extensions a reference may point
// at to be considered a real, parseable project.
var projectExtensions = map[string]bool{
	".csproj": true,
	".vbproj": true,
	".fsproj": true,
}

// ParseFile reads a solution file and returns its project references in
// declaration order. A file that cannot be opened returns the read error;
// malformed lines inside a readable file are skipped silently.
func ParseFile(path string) ([]ProjectRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse scans solution text and extracts project references. Entries that
// are solution folders, or whose path does not name a recognized project
// file, are filtered out.
func Parse(r io.Reader) ([]ProjectRef, error) {
	var refs []ProjectRef

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		m := projectLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		ref := ProjectRef{
			TypeGUID: strings.ToUpper(m[1]),
			Name:     m[2],
			Path:     m[3],
			GUID:     strings.ToUpper(m[4]),
		}

		if ref.TypeGUID == solutionFolderGUID {
			continue
		}
		if !IsProjectPath(ref.Path) {
			continue
		}

		refs = append(refs, ref)
	}
	if err := scanner.Err(); err != nil {
		return refs, err
	}

	return refs, nil
}

// IsProjectPath reports whether path names a supported project file type.
// The extension match is case-insensitive and separator-agnostic.
func IsProjectPath(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")
	ext := strings.ToLower(filepath.Ext(path))
	return projectExtensions[ext]
}

// IsSolutionPath reports whether path names a solution file.
func IsSolutionPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sln")
}

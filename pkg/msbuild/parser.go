// Package msbuild parses MSBuild project files (.csproj, .vbproj, .fsproj).
//
// Only the small slice of the format needed for hierarchy discovery is
// understood: item-inclusion elements that declare source files, and
// ProjectReference elements that point at other project files. Conditional
// build logic, globs, and property expansion are not evaluated.
package msbuild

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/sln"
)

// Result holds everything extracted from one project file.
type Result struct {
	SDK            string   // Value of the Sdk attribute, empty for legacy projects
	SourceFiles    []string // Relative paths of declared source files, in declaration order
	ProjectRefs    []string // Relative paths of referenced project files, in declaration order
	DefaultCompile bool     // SDK-style project with no explicit Compile items; sources come from directory globbing
}

// IsSDK reports whether the project uses the SDK-style format, where source
// files are included implicitly unless declared.
func (r *Result) IsSDK() bool {
	return r.SDK != ""
}

// projectXML mirrors the subset of the MSBuild schema we read. Unqualified
// element names match both namespaced (legacy) and plain (SDK) documents.
type projectXML struct {
	XMLName    xml.Name       `xml:"Project"`
	SDK        string         `xml:"Sdk,attr"`
	ItemGroups []itemGroupXML `xml:"ItemGroup"`
}

type itemGroupXML struct {
	Compiles    []itemXML `xml:"Compile"`
	Contents    []itemXML `xml:"Content"`
	ProjectRefs []itemXML `xml:"ProjectReference"`
}

type itemXML struct {
	Include string `xml:"Include,attr"`
}

// ParseFile reads and parses one project file.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse extracts source files and project references from project XML.
// A Compile item that points at another project file counts as a project
// reference, not a source file. Non-literal paths (globs, property
// expansions) are skipped.
func Parse(data []byte) (*Result, error) {
	var doc projectXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse project XML: %w", err)
	}

	result := &Result{SDK: doc.SDK}

	for _, group := range doc.ItemGroups {
		for _, item := range append(group.Compiles, group.Contents...) {
			include := item.Include
			if !isLiteralPath(include) {
				continue
			}
			if sln.IsProjectPath(include) {
				result.ProjectRefs = append(result.ProjectRefs, include)
				continue
			}
			result.SourceFiles = append(result.SourceFiles, include)
		}
		for _, ref := range group.ProjectRefs {
			if !isLiteralPath(ref.Include) {
				continue
			}
			result.ProjectRefs = append(result.ProjectRefs, ref.Include)
		}
	}

	// SDK projects include sources implicitly when nothing is declared.
	if result.IsSDK() && len(result.SourceFiles) == 0 {
		result.DefaultCompile = true
	}

	return result, nil
}

// isLiteralPath reports whether include is a plain path. Wildcards and
// MSBuild property references are not expanded, so such entries are dropped.
func isLiteralPath(include string) bool {
	if include == "" {
		return false
	}
	return !strings.ContainsAny(include, "*?") && !strings.Contains(include, "$(")
}

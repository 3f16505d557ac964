// Package pathutil resolves the relative, often Windows-style paths found in
// solution and project files against a base directory.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Resolve joins ref against baseDir and returns a normalized path. The ref
// may use backslash separators and may contain ".." segments; resolution is
// purely lexical and never touches the filesystem, since referenced files
// are validated separately.
func Resolve(baseDir, ref string) string {
	ref = Normalize(ref)
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Clean(filepath.Join(baseDir, ref))
}

// Normalize converts backslash separators to the host separator and cleans
// the result without resolving it against any base.
func Normalize(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return filepath.FromSlash(path)
}

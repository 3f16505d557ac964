package pathutil

import (
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{
			name: "windows separators",
			base: "/repo/src",
			ref:  `App\App.csproj`,
			want: "/repo/src/App/App.csproj",
		},
		{
			name: "parent traversal",
			base: "/repo/src/App",
			ref:  `..\Lib\Lib.csproj`,
			want: "/repo/src/Lib/Lib.csproj",
		},
		{
			name: "already absolute",
			base: "/repo",
			ref:  "/other/Lib.csproj",
			want: "/other/Lib.csproj",
		},
		{
			name: "redundant segments",
			base: "/repo",
			ref:  "./a//b/../c.cs",
			want: "/repo/a/c.cs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.base, tt.ref)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolve_NonexistentPath(t *testing.T) {
	// Resolution is lexical: it must work for paths that do not exist
	got := Resolve("/no/such/dir", `ghost\Ghost.csproj`)
	want := filepath.FromSlash("/no/such/dir/ghost/Ghost.csproj")
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

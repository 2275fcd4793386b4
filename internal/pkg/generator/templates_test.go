package generator

import (
	"strings"
	"testing"

	"github.com/appforge-io/appforge/internal/pkg/treepath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeArchetypes(t *testing.T) {
	tests := []struct {
		archetype Archetype
		wantPaths []string
	}{
		{ArchetypeFrontend, []string{"/src", "/public", "/package.json", "/src/App.jsx"}},
		{ArchetypeAPI, []string{"/src", "/src/routes", "/src/server.js", "/src/routes/api.js", "/.env.example"}},
		{ArchetypeFullStack, []string{"/client", "/client/src", "/server", "/client/package.json", "/server/index.js", "/README.md"}},
		{ArchetypeBasic, []string{"/index.html", "/style.css", "/script.js", "/README.md"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.archetype), func(t *testing.T) {
			nodes := Synthesize(tt.archetype, "My App")
			require.NotEmpty(t, nodes)

			paths := map[string]bool{}
			for _, n := range nodes {
				paths[n.Path] = true
			}
			for _, want := range tt.wantPaths {
				assert.True(t, paths[want], "missing %s", want)
			}
		})
	}
}

// Every archetype must emit a tree where parents exist and precede their
// children, paths are unique, and names match the final path segment.
func TestSynthesizeTreeConsistency(t *testing.T) {
	for _, archetype := range []Archetype{ArchetypeFullStack, ArchetypeAPI, ArchetypeFrontend, ArchetypeBasic} {
		t.Run(string(archetype), func(t *testing.T) {
			nodes := Synthesize(archetype, "Consistency Check")

			seen := map[string]bool{}
			folders := map[string]bool{}
			for _, n := range nodes {
				assert.True(t, strings.HasPrefix(n.Path, "/"), "path %q not absolute", n.Path)
				assert.False(t, seen[n.Path], "duplicate path %q", n.Path)
				seen[n.Path] = true

				assert.Equal(t, treepath.Base(n.Path), n.Name)

				if p := treepath.ParentPath(n.Path); p != nil {
					assert.True(t, folders[*p], "node %q emitted before its parent %q", n.Path, *p)
				}
				if n.IsFolder {
					folders[n.Path] = true
					assert.Empty(t, n.Content, "folder %q has content", n.Path)
				}
			}
		})
	}
}

func TestSynthesizeEmbedsProjectName(t *testing.T) {
	nodes := Synthesize(ArchetypeFrontend, "Fitness Tracker!")

	var manifest, app string
	for _, n := range nodes {
		switch n.Path {
		case "/package.json":
			manifest = n.Content
		case "/src/App.jsx":
			app = n.Content
		}
	}

	// Manifests carry the canonical identifier, display files the raw name.
	assert.Contains(t, manifest, `"name": "fitness-tracker"`)
	assert.Contains(t, app, "Fitness Tracker!")
}

func TestSynthesizeDeterministic(t *testing.T) {
	a := Synthesize(ArchetypeFullStack, "Same App")
	b := Synthesize(ArchetypeFullStack, "Same App")
	assert.Equal(t, a, b)
}

package site

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larascope/larascope/internal/docs"
	"github.com/larascope/larascope/internal/project"
)

func fixtureResult() (*project.Project, *docs.Result) {
	p := project.Build(project.Meta{Name: "Blog", FrameworkVersion: "^11.0"},
		[]*project.ModelEntity{{Name: "Post", Timestamps: true}},
		[]*project.ControllerEntity{{Name: "PostController", Actions: []project.Action{{Name: "index"}}}},
		nil, nil, nil)
	res := &docs.Result{
		ERD:          docs.BuildERD(p),
		ClassModels:  docs.BuildClassDiagram(p, docs.ScopeModels),
		ClassFull:    docs.BuildClassDiagram(p, docs.ScopeFull),
		Sequences:    docs.BuildSequences(p, time.Now()),
		APIReference: docs.BuildAPIReference(p),
	}
	return p, res
}

func TestBuildWritesAllPages(t *testing.T) {
	p, res := fixtureResult()
	out := t.TempDir()

	err := Build(p, res, Config{OutputDir: out})
	require.NoError(t, err)

	for _, file := range []string{"index.html", "erd.html", "classes.html", "sequences.html", "api.html"} {
		raw, err := os.ReadFile(filepath.Join(out, file))
		require.NoError(t, err, file)
		assert.Contains(t, string(raw), "Blog", file)
	}
}

func TestBuildEmbedsDiagramSources(t *testing.T) {
	p, res := fixtureResult()
	out := t.TempDir()
	require.NoError(t, Build(p, res, Config{OutputDir: out}))

	erd, err := os.ReadFile(filepath.Join(out, "erd.html"))
	require.NoError(t, err)
	assert.Contains(t, string(erd), "erDiagram")
	assert.Contains(t, string(erd), `<pre class="mermaid">`)

	seq, err := os.ReadFile(filepath.Join(out, "sequences.html"))
	require.NoError(t, err)
	assert.Contains(t, string(seq), "sequenceDiagram")

	api, err := os.ReadFile(filepath.Join(out, "api.html"))
	require.NoError(t, err)
	assert.Contains(t, string(api), "API Reference")
}

func TestBuildStampsFooter(t *testing.T) {
	p, res := fixtureResult()
	out := t.TempDir()
	stamp := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Build(p, res, Config{OutputDir: out, GeneratedAt: stamp}))

	raw, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "2026-05-01T12:00:00Z")
}

func TestBuildWriteFailure(t *testing.T) {
	p, res := fixtureResult()
	target := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	err := Build(p, res, Config{OutputDir: target})
	assert.Error(t, err)
}

package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGeneratorWritesAllArtifactFamilies(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(Config{OutputDir: out}, nil)

	res, err := g.Generate(blogProject())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, path := range []string{
		res.ERDPath,
		res.ClassModelsPath,
		res.ClassFullPath,
		res.ClassExportPath,
		res.SequenceManifestPath,
		res.APIReferencePath,
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected artifact %s: %v", path, err)
		}
	}

	if len(res.Sequences) == 0 {
		t.Fatal("expected sequence artifacts")
	}
	for _, seq := range res.Sequences {
		path := filepath.Join(out, "diagrams", "sequences", seq.Filename)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected sequence artifact %s: %v", path, err)
		}
	}

	raw, err := os.ReadFile(res.ERDPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != res.ERD {
		t.Error("written ERD must match the result content")
	}
}

func TestGeneratorIdempotentDiagramText(t *testing.T) {
	p := blogProject()

	first, err := NewGenerator(Config{OutputDir: t.TempDir()}, nil).Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewGenerator(Config{OutputDir: t.TempDir()}, nil).Generate(p)
	if err != nil {
		t.Fatal(err)
	}

	if first.ERD != second.ERD {
		t.Error("ERD text must be byte-identical across runs")
	}
	if first.ClassModels != second.ClassModels || first.ClassFull != second.ClassFull {
		t.Error("class diagram text must be byte-identical across runs")
	}
	for i := range first.Sequences {
		if first.Sequences[i].Diagram != second.Sequences[i].Diagram {
			t.Error("sequence diagram text must be byte-identical across runs")
		}
	}
}

func TestGeneratorOutputWriteFailureIsFatal(t *testing.T) {
	out := t.TempDir()
	// Occupy the diagrams path with a file so MkdirAll fails.
	if err := os.WriteFile(filepath.Join(out, "diagrams"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewGenerator(Config{OutputDir: out}, nil).Generate(blogProject())
	if err == nil {
		t.Fatal("expected write failure to abort the run")
	}
	if !strings.Contains(err.Error(), "failed to") {
		t.Errorf("error should carry operation context, got %v", err)
	}
}

package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/larascope/larascope/internal/project"
)

// Config holds generation settings.
type Config struct {
	// OutputDir is the root directory all artifacts are written under.
	OutputDir string
}

// Result records every produced artifact, both its path on disk and
// its content, so the site builder and the CLI summary never re-read
// what was just written.
type Result struct {
	ERDPath string
	ERD     string

	ClassModelsPath string
	ClassModels     string
	ClassFullPath   string
	ClassFull       string
	ClassExportPath string

	Sequences            []Sequence
	SequenceManifestPath string

	APIReferencePath string
	APIReference     string
}

// Generator runs the four synthesizers over one project model and
// writes their artifacts.
type Generator struct {
	cfg    Config
	logger *zap.Logger
}

// NewGenerator creates a generator. A nil logger disables logging.
func NewGenerator(cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{cfg: cfg, logger: logger}
}

// Generate synthesizes and writes all four artifact families. The
// synthesizers are pure and touch disjoint output locations, so they
// run concurrently; the first write failure aborts the whole run and
// is returned as-is.
func (g *Generator) Generate(p *project.Project) (*Result, error) {
	res := &Result{}

	var eg errgroup.Group

	eg.Go(func() error {
		g.logger.Debug("synthesizing ERD")
		res.ERD = BuildERD(p)
		res.ERDPath = filepath.Join(g.cfg.OutputDir, "diagrams", "erd.mmd")
		return writeArtifact(res.ERDPath, []byte(res.ERD))
	})

	eg.Go(func() error {
		g.logger.Debug("synthesizing class diagrams")
		res.ClassModels = BuildClassDiagram(p, ScopeModels)
		res.ClassFull = BuildClassDiagram(p, ScopeFull)
		res.ClassModelsPath = filepath.Join(g.cfg.OutputDir, "diagrams", "class-models.mmd")
		res.ClassFullPath = filepath.Join(g.cfg.OutputDir, "diagrams", "class-full.mmd")
		res.ClassExportPath = filepath.Join(g.cfg.OutputDir, "data", "classes.json")

		if err := writeArtifact(res.ClassModelsPath, []byte(res.ClassModels)); err != nil {
			return err
		}
		if err := writeArtifact(res.ClassFullPath, []byte(res.ClassFull)); err != nil {
			return err
		}
		export, err := json.MarshalIndent(BuildClassExport(p), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal class export: %w", err)
		}
		return writeArtifact(res.ClassExportPath, export)
	})

	eg.Go(func() error {
		g.logger.Debug("synthesizing sequence diagrams")
		res.Sequences = BuildSequences(p, time.Now())
		for _, seq := range res.Sequences {
			path := filepath.Join(g.cfg.OutputDir, "diagrams", "sequences", seq.Filename)
			if err := writeArtifact(path, []byte(seq.Diagram)); err != nil {
				return err
			}
		}
		manifest, err := json.MarshalIndent(res.Sequences, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal sequence manifest: %w", err)
		}
		res.SequenceManifestPath = filepath.Join(g.cfg.OutputDir, "data", "sequences.json")
		return writeArtifact(res.SequenceManifestPath, manifest)
	})

	eg.Go(func() error {
		g.logger.Debug("synthesizing API reference")
		res.APIReference = BuildAPIReference(p)
		res.APIReferencePath = filepath.Join(g.cfg.OutputDir, "api", "reference.md")
		return writeArtifact(res.APIReferencePath, []byte(res.APIReference))
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.logger.Info("documentation artifacts written",
		zap.String("output", g.cfg.OutputDir),
		zap.Int("sequences", len(res.Sequences)))
	return res, nil
}

// writeArtifact creates the parent directory and writes one artifact.
func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Package site wraps generated artifacts into a small static,
// browsable HTML site. Diagram rendering itself stays in the browser:
// pages embed the Mermaid and Markdown sources as text and load the
// renderers from a CDN.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/larascope/larascope/internal/docs"
	"github.com/larascope/larascope/internal/project"
)

// Config holds site build settings.
type Config struct {
	// OutputDir is where the HTML pages are written; artifacts
	// produced by the docs generator live underneath it.
	OutputDir string

	// GeneratedAt stamps the page footers. The zero value means now.
	GeneratedAt time.Time
}

// page is the shared template payload.
type page struct {
	Title            string
	Active           string
	ProjectName      string
	FrameworkVersion string
	GeneratedAt      string

	Models      int
	Controllers int
	Endpoints   int

	ERD         string
	ClassModels string
	ClassFull   string
	Sequences   []docs.Sequence
	APIMarkdown string
}

// Build writes the index and the four artifact pages into the output
// root. Any write failure aborts immediately.
func Build(p *project.Project, res *docs.Result, cfg Config) error {
	tmpl, err := parseTemplates()
	if err != nil {
		return err
	}

	stamp := cfg.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}

	base := page{
		ProjectName:      p.Name,
		FrameworkVersion: p.FrameworkVersion,
		GeneratedAt:      stamp.UTC().Format(time.RFC3339),
		Models:           len(p.Models),
		Controllers:      len(p.Controllers),
		Endpoints:        len(p.Endpoints),
		ERD:              res.ERD,
		ClassModels:      res.ClassModels,
		ClassFull:        res.ClassFull,
		Sequences:        res.Sequences,
		APIMarkdown:      res.APIReference,
	}

	pages := []struct {
		file   string
		name   string
		title  string
		active string
	}{
		{"index.html", "index", "Overview", "index"},
		{"erd.html", "erd", "Entity-Relationship Diagram", "erd"},
		{"classes.html", "classes", "Class Diagrams", "classes"},
		{"sequences.html", "sequences", "Sequence Diagrams", "sequences"},
		{"api.html", "api", "API Reference", "api"},
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create site directory: %w", err)
	}

	for _, pg := range pages {
		data := base
		data.Title = pg.title
		data.Active = pg.active

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, pg.name, data); err != nil {
			return fmt.Errorf("failed to execute %s template: %w", pg.name, err)
		}
		path := filepath.Join(cfg.OutputDir, pg.file)
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return nil
}

func parseTemplates() (*template.Template, error) {
	tmpl := template.New("site")
	for _, src := range []string{layoutTemplate, indexTemplate, erdTemplate, classesTemplate, sequencesTemplate, apiTemplate} {
		var err error
		tmpl, err = tmpl.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse site template: %w", err)
		}
	}
	return tmpl, nil
}

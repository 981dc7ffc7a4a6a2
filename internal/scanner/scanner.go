// Package scanner walks a Laravel project root and collects the raw
// source units the extraction pipeline consumes. The root is always an
// explicit parameter; the scanner never changes the process working
// directory.
package scanner

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SourceUnit is one PHP file handed to the extractor.
type SourceUnit struct {
	Name string // base name without the .php suffix
	Path string // path relative to the project root
	Raw  string
}

// Snapshot is everything one run reads from disk: project identity
// plus the four ordered unit collections.
type Snapshot struct {
	ProjectName      string
	FrameworkVersion string

	Models      []SourceUnit
	Controllers []SourceUnit
	Services    []SourceUnit
	Routes      []SourceUnit
}

// Config overrides the conventional search paths, each relative to the
// project root.
type Config struct {
	ModelPaths      []string
	ControllerPaths []string
	ServicePaths    []string
	RoutePaths      []string
}

// skipDirs are directory names excluded from every walk.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"storage":      true,
	".git":         true,
}

// Scan reads a project snapshot from root. Missing search directories
// yield empty collections; an unreadable root is an error.
func Scan(root string, cfg Config) (*Snapshot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	snap := &Snapshot{}
	snap.ProjectName, snap.FrameworkVersion = readComposer(root)
	if snap.ProjectName == "" {
		abs, err := filepath.Abs(root)
		if err == nil {
			snap.ProjectName = filepath.Base(abs)
		} else {
			snap.ProjectName = filepath.Base(root)
		}
	}

	controllerPaths := cfg.ControllerPaths
	if len(controllerPaths) == 0 {
		controllerPaths = []string{filepath.Join("app", "Http", "Controllers")}
	}
	servicePaths := cfg.ServicePaths
	if len(servicePaths) == 0 {
		servicePaths = []string{filepath.Join("app", "Services")}
	}
	routePaths := cfg.RoutePaths
	if len(routePaths) == 0 {
		routePaths = []string{"routes"}
	}

	modelPaths := cfg.ModelPaths
	var modelExclude []string
	if len(modelPaths) == 0 {
		modelPaths = []string{filepath.Join("app", "Models")}
		// Pre-8 projects keep models directly under app/. The wider
		// walk must not swallow the controller and service territory.
		if !dirExists(root, modelPaths[0]) {
			modelPaths = []string{"app"}
			modelExclude = append([]string{filepath.Join("app", "Http")}, controllerPaths...)
			modelExclude = append(modelExclude, servicePaths...)
		}
	}

	if snap.Models, err = collect(root, modelPaths, modelExclude, isModelUnit); err != nil {
		return nil, err
	}
	if snap.Controllers, err = collect(root, controllerPaths, nil, nil); err != nil {
		return nil, err
	}
	if snap.Services, err = collect(root, servicePaths, nil, nil); err != nil {
		return nil, err
	}
	if snap.Routes, err = collect(root, routePaths, nil, nil); err != nil {
		return nil, err
	}

	return snap, nil
}

// collect walks each search path under root gathering .php units.
// exclude lists root-relative directories pruned from the walk; keep,
// when non-nil, filters units after reading.
func collect(root string, paths []string, exclude []string, keep func(SourceUnit) bool) ([]SourceUnit, error) {
	var units []SourceUnit
	for _, p := range paths {
		dir := filepath.Join(root, p)
		if !dirExists(root, p) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				if rel, err := filepath.Rel(root, path); err == nil {
					for _, ex := range exclude {
						if rel == ex {
							return filepath.SkipDir
						}
					}
				}
				return nil
			}
			if !strings.HasSuffix(d.Name(), ".php") {
				return nil
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			unit := SourceUnit{
				Name: strings.TrimSuffix(d.Name(), ".php"),
				Path: rel,
				Raw:  string(raw),
			}
			if keep != nil && !keep(unit) {
				return nil
			}
			units = append(units, unit)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
		}
	}
	return units, nil
}

// isModelUnit drops files under a model search path that declare no
// class, such as helpers.php or config returns that live under app/.
func isModelUnit(u SourceUnit) bool {
	return strings.Contains(u.Raw, "class ")
}

// composerFile is the subset of composer.json the scanner reads.
type composerFile struct {
	Name    string            `json:"name"`
	Require map[string]string `json:"require"`
}

// readComposer pulls the project display name and framework version
// out of composer.json. Both degrade to empty strings.
func readComposer(root string) (name, version string) {
	raw, err := os.ReadFile(filepath.Join(root, "composer.json"))
	if err != nil {
		return "", ""
	}
	var c composerFile
	if err := json.Unmarshal(raw, &c); err != nil {
		return "", ""
	}
	name = c.Name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = titleCase(name)
	return name, c.Require["laravel/framework"]
}

// titleCase upper-cases the first letter of each dash- or
// underscore-separated word: "blog-api" becomes "Blog Api".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func dirExists(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, rel))
	return err == nil && info.IsDir()
}

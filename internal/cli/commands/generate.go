package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/larascope/larascope/internal/cli/config"
	"github.com/larascope/larascope/internal/cli/ui"
	"github.com/larascope/larascope/internal/docs"
	"github.com/larascope/larascope/internal/extractor"
	"github.com/larascope/larascope/internal/project"
	"github.com/larascope/larascope/internal/scanner"
	"github.com/larascope/larascope/internal/site"
	"github.com/larascope/larascope/internal/watch"
)

var (
	generateOutput  string
	generateName    string
	generateWatch   bool
	generateVerbose bool
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [path]",
		Short: "Generate documentation for a Laravel project",
		Long: `Generate architecture documentation from Laravel source code.

The generate command scans the project's models, controllers, services,
and route files, builds a static model of the application, and writes:
  - diagrams/erd.mmd              entity-relationship diagram
  - diagrams/class-models.mmd     UML class diagram (models only)
  - diagrams/class-full.mmd       UML class diagram (all classes)
  - diagrams/sequences/*.mmd      per-controller-action sequence diagrams
  - data/classes.json             class structure export
  - data/sequences.json           sequence diagram manifest
  - api/reference.md              API reference from route declarations
  - *.html                        a browsable site wrapping the artifacts

No PHP is executed at any point; everything comes from pattern analysis
of the source text.

Examples:
  larascope generate
  larascope generate ~/code/my-shop
  larascope generate --output build/docs --name "My Shop"
  larascope generate --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default from larascope.yml, else \"docs\")")
	cmd.Flags().StringVar(&generateName, "name", "", "Project name (defaults to composer.json name)")
	cmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Watch for changes and regenerate")
	cmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Show pipeline stage logging")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)

	root, cfg, err := resolveProject(args)
	if err != nil {
		return err
	}
	outputDir := resolveOutput(root, cfg, generateOutput)

	logger := newPipelineLogger(generateVerbose)
	defer logger.Sync()

	// The spinner and stage logging write to the same stream; only one
	// of them runs.
	spinner := ui.NewSpinner(cmd.OutOrStdout(), ui.SpinnerOptions{Message: "Generating documentation...", NoColor: color.NoColor})
	if !generateVerbose {
		spinner.Start()
	}

	p, err := runPipeline(root, cfg, outputDir, logger)
	spinner.Stop()
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	successColor.Fprintf(cmd.OutOrStdout(), "✓ Documentation generated in %v\n", elapsed.Round(time.Millisecond))

	summary := ui.NewKeyValueTable(cmd.OutOrStdout(), false)
	summary.AddRow("Project", p.Name)
	summary.AddRow("Models", fmt.Sprintf("%d", len(p.Models)))
	summary.AddRow("Controllers", fmt.Sprintf("%d", len(p.Controllers)))
	summary.AddRow("Endpoints", fmt.Sprintf("%d", len(p.Endpoints)))
	summary.AddRow("Output", outputDir)
	summary.Render()

	if generateWatch {
		infoColor.Fprintln(cmd.OutOrStdout(), "Watching for changes...")
		return watchAndRegenerate(root, cfg, outputDir, logger, nil)
	}

	return nil
}

// resolveProject picks the project root from the optional path argument
// and loads its configuration. Without an argument the root is found by
// walking upward from the working directory.
func resolveProject(args []string) (string, *config.Config, error) {
	var root string
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve project path: %w", err)
		}
		root = abs
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		found, err := config.FindProjectRoot(cwd)
		if err != nil {
			return "", nil, err
		}
		root = found
	}

	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// resolveOutput applies the flag-over-config precedence and anchors
// relative paths at the project root.
func resolveOutput(root string, cfg *config.Config, flag string) string {
	out := cfg.Output
	if flag != "" {
		out = flag
	}
	if out == "" {
		out = "docs"
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(root, out)
	}
	return out
}

func newPipelineLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	return zap.NewNop()
}

// loadProject scans the project root and assembles the static model.
func loadProject(root string, cfg *config.Config, logger *zap.Logger) (*project.Project, error) {
	snap, err := scanner.Scan(root, scanConfig(cfg))
	if err != nil {
		return nil, err
	}
	logger.Debug("scan complete",
		zap.Int("models", len(snap.Models)),
		zap.Int("controllers", len(snap.Controllers)),
		zap.Int("services", len(snap.Services)),
		zap.Int("route_files", len(snap.Routes)))

	var models []*project.ModelEntity
	var relationships []project.Relationship
	for _, unit := range snap.Models {
		m, rels, ok := extractor.ExtractModel(unit.Raw)
		if !ok {
			continue
		}
		models = append(models, m)
		relationships = append(relationships, rels...)
	}

	var controllers []*project.ControllerEntity
	for _, unit := range snap.Controllers {
		if c, ok := extractor.ExtractController(unit.Raw); ok {
			controllers = append(controllers, c)
		}
	}

	var services []*project.ServiceEntity
	for _, unit := range snap.Services {
		if s, ok := extractor.ExtractService(unit.Raw); ok {
			services = append(services, s)
		}
	}

	var endpoints []project.Endpoint
	for _, unit := range snap.Routes {
		endpoints = append(endpoints, extractor.ExtractEndpoints(unit.Name, unit.Raw)...)
	}

	name := snap.ProjectName
	if cfg.ProjectName != "" {
		name = cfg.ProjectName
	}
	if generateName != "" {
		name = generateName
	}

	meta := project.Meta{Name: name, FrameworkVersion: snap.FrameworkVersion}
	p := project.Build(meta, models, controllers, services, relationships, endpoints)
	logger.Info("project model assembled",
		zap.String("project", p.Name),
		zap.Int("models", len(p.Models)),
		zap.Int("endpoints", len(p.Endpoints)))
	return p, nil
}

func scanConfig(cfg *config.Config) scanner.Config {
	return scanner.Config{
		ModelPaths:      cfg.Paths.Models,
		ControllerPaths: cfg.Paths.Controllers,
		ServicePaths:    cfg.Paths.Services,
		RoutePaths:      cfg.Paths.Routes,
	}
}

// runPipeline executes the full scan → extract → synthesize → site
// sequence once.
func runPipeline(root string, cfg *config.Config, outputDir string, logger *zap.Logger) (*project.Project, error) {
	p, err := loadProject(root, cfg, logger)
	if err != nil {
		return nil, err
	}

	generator := docs.NewGenerator(docs.Config{OutputDir: outputDir}, logger)
	result, err := generator.Generate(p)
	if err != nil {
		return nil, err
	}

	if err := site.Build(p, result, site.Config{OutputDir: outputDir}); err != nil {
		return nil, err
	}
	return p, nil
}

// watchAndRegenerate blocks, re-running the pipeline whenever a .php
// file under root changes. reload may be nil; when set, connected
// browsers are told to refresh after each successful run.
func watchAndRegenerate(root string, cfg *config.Config, outputDir string, logger *zap.Logger, reload *watch.ReloadServer) error {
	infoColor := color.New(color.FgCyan)
	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)

	watcher, err := watch.NewFileWatcher(root, []string{"*.php"}, func(files []string) error {
		infoColor.Printf("Change detected: %d files\n", len(files))

		if _, err := runPipeline(root, cfg, outputDir, logger); err != nil {
			errorColor.Printf("Regeneration error: %v\n", err)
			return err
		}

		successColor.Println("✓ Documentation regenerated")
		if reload != nil {
			reload.NotifyReload()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	// Block forever
	select {}
}

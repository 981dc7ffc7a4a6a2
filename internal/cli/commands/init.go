package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/larascope/larascope/internal/cli/config"
)

var initForce bool

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a larascope.yml configuration file",
		Long: `Create a larascope.yml in the project root with interactive prompts.

The configuration file is optional; without it, generate uses the
conventional Laravel paths and writes to docs/. Use init when the
project keeps its models or routes somewhere unusual, or to pin the
project name and server port.

Examples:
  larascope init
  larascope init ~/code/my-shop
  larascope init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing larascope.yml")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve project path: %w", err)
	}

	configPath := filepath.Join(abs, "larascope.yml")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if !config.InProject(abs) {
		infoColor.Fprintf(cmd.OutOrStdout(), "Note: %s does not look like a Laravel project yet\n", abs)
	}

	defaultName := defaultProjectName(abs)

	var projectName string
	if err := survey.AskOne(&survey.Input{
		Message: "Project name:",
		Default: defaultName,
	}, &projectName); err != nil {
		return err
	}

	var outputDir string
	if err := survey.AskOne(&survey.Input{
		Message: "Output directory:",
		Default: "docs",
	}, &outputDir, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var portStr string
	if err := survey.AskOne(&survey.Input{
		Message: "Preview server port:",
		Default: "8000",
	}, &portStr); err != nil {
		return err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", portStr)
	}

	content := renderConfig(projectName, outputDir, port)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	successColor.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", configPath)
	infoColor.Fprintln(cmd.OutOrStdout(), "Run 'larascope generate' to build the documentation")
	return nil
}

// renderConfig produces the larascope.yml body, with the path overrides
// left commented out as documentation of the defaults.
func renderConfig(name, output string, port int) string {
	return fmt.Sprintf(`project_name: %q
output: %q

serve:
  host: localhost
  port: %d

# Uncomment to override the conventional scan paths (relative to the
# project root).
#
# paths:
#   models:
#     - app/Models
#   controllers:
#     - app/Http/Controllers
#   services:
#     - app/Services
#   routes:
#     - routes
`, name, output, port)
}

func defaultProjectName(dir string) string {
	base := filepath.Base(dir)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "Laravel Project"
	}
	return base
}

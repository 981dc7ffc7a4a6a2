package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/larascope/larascope/internal/cli/ui"
	"github.com/larascope/larascope/internal/project"
)

// NewModelsCommand creates the models command
func NewModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models [path]",
		Short: "List the Eloquent models found in the project",
		Long: `Scan the project's model files and print a summary of each model.

Examples:
  larascope models
  larascope models ~/code/my-shop`,
		Args: cobra.MaximumNArgs(1),
		RunE: runModels,
	}
}

func runModels(cmd *cobra.Command, args []string) error {
	root, cfg, err := resolveProject(args)
	if err != nil {
		return err
	}

	p, err := loadProject(root, cfg, newPipelineLogger(false))
	if err != nil {
		return err
	}

	if len(p.Models) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No models found")
		return nil
	}

	ui.Header(cmd.OutOrStdout(), p.Name+" models", false)

	table := ui.NewTable(cmd.OutOrStdout(), []string{"Model", "Table", "Attributes", "Relations", "Flags"}, nil)
	for _, m := range p.Models {
		table.AddRow(
			m.Name,
			tableLabel(m),
			fmt.Sprintf("%d", len(m.Attributes)),
			fmt.Sprintf("%d", relationCount(p, m)),
			modelFlags(m),
		)
	}
	table.Render()

	return nil
}

// tableLabel shows the explicit $table value, or the conventional
// snake_case plural when the model relies on the framework default.
func tableLabel(m *project.ModelEntity) string {
	if m.Table != "" {
		return m.Table
	}
	return project.Snake(m.Name) + "s"
}

func relationCount(p *project.Project, m *project.ModelEntity) int {
	n := 0
	for _, r := range p.Relationships {
		if project.CanonicalKey(r.Source) == project.CanonicalKey(m.Name) {
			n++
		}
	}
	return n
}

func modelFlags(m *project.ModelEntity) string {
	var flags []string
	if m.SoftDeletes {
		flags = append(flags, "soft-deletes")
	}
	if !m.Timestamps {
		flags = append(flags, "no-timestamps")
	}
	if m.PrimaryKey != "id" {
		flags = append(flags, "pk:"+m.PrimaryKey)
	}
	return strings.Join(flags, ", ")
}

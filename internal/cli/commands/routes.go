package commands

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/larascope/larascope/internal/cli/ui"
	"github.com/larascope/larascope/internal/project"
)

// NewRoutesCommand creates the routes command
func NewRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes [path]",
		Short: "List the HTTP routes found in the project",
		Long: `Scan the project's route files and print every detected endpoint.

Resource registrations are expanded into their conventional actions,
so the table shows the same endpoints the API reference documents.

Examples:
  larascope routes
  larascope routes ~/code/my-shop`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRoutes,
	}
}

func runRoutes(cmd *cobra.Command, args []string) error {
	root, cfg, err := resolveProject(args)
	if err != nil {
		return err
	}

	p, err := loadProject(root, cfg, newPipelineLogger(false))
	if err != nil {
		return err
	}

	if len(p.Endpoints) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No routes found")
		return nil
	}

	ui.Header(cmd.OutOrStdout(), p.Name+" routes", false)

	table := ui.NewTable(cmd.OutOrStdout(), []string{"Method", "Path", "Handler", "Name", "Group"}, nil)
	for _, e := range p.Endpoints {
		table.AddRow(strings.Join(e.Methods, "|"), e.Path, handlerLabel(e.Handler), e.Name, e.Group)
	}
	table.Render()

	return nil
}

func handlerLabel(h project.Handler) string {
	if h.Closure {
		return "Closure"
	}
	if h.Controller == "" {
		return h.Action
	}
	return h.Controller + "@" + h.Action
}

package commands

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/larascope/larascope/internal/watch"
)

var (
	serveHost  string
	servePort  int
	serveWatch bool
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [path]",
		Short: "Serve the generated documentation locally",
		Long: `Start a local HTTP server for the generated documentation site.

The server serves the output directory as static files. With --watch,
the project is re-scanned whenever a .php file changes and connected
browsers reload automatically over the /ws websocket.

Examples:
  larascope serve
  larascope serve --port 8080
  larascope serve --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (default from larascope.yml, else localhost)")
	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to serve on (default from larascope.yml, else 8000)")
	cmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Documentation directory")
	cmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Watch for changes and regenerate")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	infoColor := color.New(color.FgCyan)
	errorColor := color.New(color.FgRed, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)

	root, cfg, err := resolveProject(args)
	if err != nil {
		return err
	}
	outputDir := resolveOutput(root, cfg, generateOutput)

	// The site must exist before it can be served
	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); os.IsNotExist(err) {
		errorColor.Fprintln(cmd.ErrOrStderr(), "Error: documentation site not found")
		infoColor.Fprintln(cmd.ErrOrStderr(), "Run 'larascope generate' first")
		return fmt.Errorf("documentation site not found in %s", outputDir)
	}

	host := cfg.Serve.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Serve.Port
	if servePort != 0 {
		port = servePort
	}

	reload := watch.NewReloadServer()
	defer reload.Close()

	router := chi.NewRouter()
	router.Get("/ws", reload.HandleWebSocket)
	router.Handle("/*", http.FileServer(http.Dir(outputDir)))

	addr := fmt.Sprintf("%s:%d", host, port)
	successColor.Fprintf(cmd.OutOrStdout(), "✓ Documentation server running at http://%s\n", addr)
	infoColor.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	if serveWatch {
		logger := newPipelineLogger(false)
		go func() {
			infoColor.Fprintln(cmd.OutOrStdout(), "Watching for changes...")
			watchAndRegenerate(root, cfg, outputDir, logger, reload)
		}()
	}

	return http.ListenAndServe(addr, router)
}

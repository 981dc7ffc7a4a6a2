package commands

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/larascope/larascope/internal/project"
)

func TestRoutesTable(t *testing.T) {
	color.NoColor = true
	root := writeFixtureProject(t)

	out, err := runCommand(t, "routes", root)
	if err != nil {
		t.Fatalf("routes: %v", err)
	}

	for _, want := range []string{
		"GET",
		"/posts",
		"/posts/{post}",
		"PostController@index",
		"PostController@show",
		"posts.show",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in routes output, got:\n%s", want, out)
		}
	}
}

func TestRoutesEmptyProject(t *testing.T) {
	color.NoColor = true
	root := t.TempDir()
	// A bare composer.json is enough to count as a project
	writeFile(t, root, "composer.json", `{"name": "acme/empty"}`)

	out, err := runCommand(t, "routes", root)
	if err != nil {
		t.Fatalf("routes: %v", err)
	}
	if !strings.Contains(out, "No routes found") {
		t.Errorf("expected empty-project notice, got %q", out)
	}
}

func TestHandlerLabel(t *testing.T) {
	tests := []struct {
		name    string
		handler project.Handler
		want    string
	}{
		{"controller action", project.Handler{Controller: "PostController", Action: "index"}, "PostController@index"},
		{"closure", project.Handler{Closure: true}, "Closure"},
		{"bare action", project.Handler{Action: "index"}, "index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handlerLabel(tt.handler); got != tt.want {
				t.Errorf("handlerLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

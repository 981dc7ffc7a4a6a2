package commands

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/larascope/larascope/internal/project"
)

func TestModelsTable(t *testing.T) {
	color.NoColor = true
	root := writeFixtureProject(t)

	out, err := runCommand(t, "models", root)
	if err != nil {
		t.Fatalf("models: %v", err)
	}

	for _, want := range []string{"User", "users", "Post", "posts"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in models output, got:\n%s", want, out)
		}
	}
}

func TestModelsEmptyProject(t *testing.T) {
	color.NoColor = true
	root := t.TempDir()
	writeFile(t, root, "composer.json", `{"name": "acme/empty"}`)

	out, err := runCommand(t, "models", root)
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	if !strings.Contains(out, "No models found") {
		t.Errorf("expected empty-project notice, got %q", out)
	}
}

func TestTableLabel(t *testing.T) {
	explicit := &project.ModelEntity{Name: "Post", Table: "blog_posts"}
	if got := tableLabel(explicit); got != "blog_posts" {
		t.Errorf("tableLabel = %q, want blog_posts", got)
	}

	conventional := &project.ModelEntity{Name: "UserProfile"}
	if got := tableLabel(conventional); got != "user_profiles" {
		t.Errorf("tableLabel = %q, want user_profiles", got)
	}
}

func TestModelFlags(t *testing.T) {
	m := &project.ModelEntity{Name: "Post", PrimaryKey: "uuid", SoftDeletes: true, Timestamps: false}
	got := modelFlags(m)

	for _, want := range []string{"soft-deletes", "no-timestamps", "pk:uuid"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected flag %q in %q", want, got)
		}
	}

	plain := &project.ModelEntity{Name: "Post", PrimaryKey: "id", Timestamps: true}
	if got := modelFlags(plain); got != "" {
		t.Errorf("expected no flags for conventional model, got %q", got)
	}
}

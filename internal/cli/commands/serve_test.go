package commands

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestServeRequiresGeneratedSite(t *testing.T) {
	color.NoColor = true
	root := writeFixtureProject(t)

	out, err := runCommand(t, "serve", root)
	if err == nil {
		t.Fatal("expected error when index.html is missing")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "larascope generate") {
		t.Errorf("expected hint to run generate, got %q", out)
	}
}

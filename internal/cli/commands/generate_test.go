package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

const fixtureUserModel = `<?php

namespace App\Models;

use Illuminate\Database\Eloquent\Model;

class User extends Model
{
    protected $fillable = ['name', 'email'];

    public function posts()
    {
        return $this->hasMany(Post::class);
    }
}
`

const fixturePostModel = `<?php

namespace App\Models;

use Illuminate\Database\Eloquent\Model;

class Post extends Model
{
    protected $fillable = ['title', 'body', 'published_at'];

    protected $casts = [
        'published_at' => 'datetime',
    ];

    public function user()
    {
        return $this->belongsTo(User::class);
    }
}
`

const fixtureController = `<?php

namespace App\Http\Controllers;

use App\Models\Post;

class PostController extends Controller
{
    public function index()
    {
        return Post::all();
    }

    public function show($id)
    {
        return Post::findOrFail($id);
    }
}
`

const fixtureRoutes = `<?php

use Illuminate\Support\Facades\Route;
use App\Http\Controllers\PostController;

Route::get('/posts', [PostController::class, 'index']);
Route::get('/posts/{post}', [PostController::class, 'show'])->name('posts.show');
`

const fixtureComposer = `{
    "name": "acme/blog",
    "require": {
        "laravel/framework": "^11.0"
    }
}
`

// writeFixtureProject lays out a minimal Laravel tree in a temp dir.
func writeFixtureProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"composer.json":                           fixtureComposer,
		"app/Models/User.php":                     fixtureUserModel,
		"app/Models/Post.php":                     fixturePostModel,
		"app/Http/Controllers/PostController.php": fixtureController,
		"routes/web.php":                          fixtureRoutes,
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	return root
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func resetCommandFlags() {
	generateOutput = ""
	generateName = ""
	generateWatch = false
	generateVerbose = false
	serveHost = ""
	servePort = 0
	serveWatch = false
	initForce = false
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetCommandFlags()

	var buf bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestGenerateWritesAllArtifacts(t *testing.T) {
	color.NoColor = true
	root := writeFixtureProject(t)

	out, err := runCommand(t, "generate", root)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	docsDir := filepath.Join(root, "docs")
	artifacts := []string{
		"diagrams/erd.mmd",
		"diagrams/class-models.mmd",
		"diagrams/class-full.mmd",
		"data/classes.json",
		"data/sequences.json",
		"api/reference.md",
		"index.html",
		"erd.html",
		"classes.html",
		"sequences.html",
		"api.html",
	}
	for _, rel := range artifacts {
		if _, err := os.Stat(filepath.Join(docsDir, rel)); err != nil {
			t.Errorf("expected artifact %s: %v", rel, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(docsDir, "diagrams", "sequences"))
	if err != nil {
		t.Fatalf("read sequences dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 sequence diagrams (index, show), got %d", len(entries))
	}

	if !strings.Contains(out, "Documentation generated") {
		t.Errorf("expected success message, got %q", out)
	}
	if !strings.Contains(out, "Blog") {
		t.Errorf("expected composer-derived project name in summary, got %q", out)
	}
}

func TestGenerateOutputFlag(t *testing.T) {
	color.NoColor = true
	root := writeFixtureProject(t)

	_, err := runCommand(t, "generate", root, "--output", "build/docs")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "build", "docs", "index.html")); err != nil {
		t.Errorf("expected site under build/docs: %v", err)
	}
}

func TestGenerateNameFlag(t *testing.T) {
	color.NoColor = true
	root := writeFixtureProject(t)

	out, err := runCommand(t, "generate", root, "--name", "Storefront")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "Storefront") {
		t.Errorf("expected overridden project name in summary, got %q", out)
	}
}

func TestGenerateERDContent(t *testing.T) {
	color.NoColor = true
	root := writeFixtureProject(t)

	if _, err := runCommand(t, "generate", root); err != nil {
		t.Fatalf("generate: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(root, "docs", "diagrams", "erd.mmd"))
	if err != nil {
		t.Fatalf("read erd: %v", err)
	}
	erd := string(raw)

	if !strings.Contains(erd, "erDiagram") {
		t.Error("expected erDiagram header")
	}
	if !strings.Contains(erd, "Post") || !strings.Contains(erd, "User") {
		t.Errorf("expected both models in ERD, got:\n%s", erd)
	}
	// belongsTo on Post plus hasMany on User both resolve
	if !strings.Contains(erd, "user_id") {
		t.Errorf("expected derived foreign key in ERD, got:\n%s", erd)
	}
}

func TestGenerateMissingProjectRoot(t *testing.T) {
	color.NoColor = true
	missing := filepath.Join(t.TempDir(), "nope")

	if _, err := runCommand(t, "generate", missing); err == nil {
		t.Fatal("expected error for missing project root")
	}
}

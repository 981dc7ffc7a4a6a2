package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanCollectsConventionalLayout(t *testing.T) {
	root := t.TempDir()

	writeFile(t, root, "composer.json", `{
  "name": "acme/blog-api",
  "require": {"php": "^8.2", "laravel/framework": "^11.0"}
}`)
	writeFile(t, root, "app/Models/Post.php", "<?php class Post {}")
	writeFile(t, root, "app/Models/helpers.php", "<?php function fmt() {}")
	writeFile(t, root, "app/Http/Controllers/PostController.php", "<?php class PostController {}")
	writeFile(t, root, "app/Services/Billing.php", "<?php class Billing {}")
	writeFile(t, root, "routes/web.php", "<?php Route::get('/', fn () => view('home'));")
	writeFile(t, root, "routes/api.php", "<?php")
	writeFile(t, root, "vendor/pkg/src/Model.php", "<?php class Vendored {}")
	writeFile(t, root, "app/Models/readme.txt", "not php")

	snap, err := Scan(root, Config{})
	require.NoError(t, err)

	assert.Equal(t, "Blog Api", snap.ProjectName)
	assert.Equal(t, "^11.0", snap.FrameworkVersion)

	require.Len(t, snap.Models, 1, "classless and non-php files are skipped")
	assert.Equal(t, "Post", snap.Models[0].Name)
	assert.Equal(t, filepath.Join("app", "Models", "Post.php"), snap.Models[0].Path)
	assert.Contains(t, snap.Models[0].Raw, "class Post")

	require.Len(t, snap.Controllers, 1)
	assert.Equal(t, "PostController", snap.Controllers[0].Name)

	require.Len(t, snap.Services, 1)
	assert.Equal(t, "Billing", snap.Services[0].Name)

	require.Len(t, snap.Routes, 2)
	names := []string{snap.Routes[0].Name, snap.Routes[1].Name}
	assert.ElementsMatch(t, []string{"web", "api"}, names)
}

func TestScanMissingDirectoriesAreEmptyNotErrors(t *testing.T) {
	root := t.TempDir()

	snap, err := Scan(root, Config{})
	require.NoError(t, err)
	assert.Empty(t, snap.Models)
	assert.Empty(t, snap.Controllers)
	assert.Empty(t, snap.Routes)
	assert.Equal(t, filepath.Base(root), snap.ProjectName)
}

func TestScanUnreadableRootIsError(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"), Config{})
	assert.Error(t, err)
}

func TestScanConfiguredPaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Domain/User.php", "<?php class User {}")

	snap, err := Scan(root, Config{ModelPaths: []string{"src/Domain"}})
	require.NoError(t, err)
	require.Len(t, snap.Models, 1)
	assert.Equal(t, "User", snap.Models[0].Name)
}

func TestScanLegacyModelFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/User.php", "<?php class User {}")

	snap, err := Scan(root, Config{})
	require.NoError(t, err)
	require.Len(t, snap.Models, 1)
	assert.Equal(t, "User", snap.Models[0].Name)
}

func TestScanLegacyFallbackSkipsControllersAndServices(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/User.php", "<?php class User {}")
	writeFile(t, root, "app/Http/Controllers/PostController.php", "<?php class PostController {}")
	writeFile(t, root, "app/Http/Requests/StorePostRequest.php", "<?php class StorePostRequest {}")
	writeFile(t, root, "app/Services/Billing.php", "<?php class Billing {}")

	snap, err := Scan(root, Config{})
	require.NoError(t, err)

	require.Len(t, snap.Models, 1, "the app/ walk must not swallow controllers or services")
	assert.Equal(t, "User", snap.Models[0].Name)

	require.Len(t, snap.Controllers, 1)
	assert.Equal(t, "PostController", snap.Controllers[0].Name)

	require.Len(t, snap.Services, 1)
	assert.Equal(t, "Billing", snap.Services[0].Name)
}

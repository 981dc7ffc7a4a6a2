package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		ref  string
		want string
	}{
		{"Post", "Post"},
		{"Post::class", "Post"},
		{`\App\Models\Post`, "Post"},
		{`App\Models\Post::class`, "Post"},
		{"'Post'", "Post"},
		{`"App\Models\Post"`, "Post"},
		{"  Post::class ", "Post"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DisplayName(c.ref), "ref %q", c.ref)
	}
}

func TestCanonicalKeyResolvesIndependentSpellings(t *testing.T) {
	refs := []string{"UserProfile", `\App\Models\UserProfile`, "UserProfile::class", "'userprofile'"}
	for _, ref := range refs {
		assert.Equal(t, "userprofile", CanonicalKey(ref))
	}
}

func TestSnake(t *testing.T) {
	assert.Equal(t, "user_profile", Snake("UserProfile"))
	assert.Equal(t, "post", Snake("Post"))
	assert.Equal(t, "already_snake", Snake("already_snake"))
}

func TestBuildInjectsDefaultPrimaryKey(t *testing.T) {
	m := &ModelEntity{Name: "Post", Attributes: []Attribute{{Name: "title", Type: "string"}}}
	p := Build(Meta{Name: "Blog"}, []*ModelEntity{m}, nil, nil, nil, nil)

	got, ok := p.Model("Post")
	require.True(t, ok)
	require.NotEmpty(t, got.Attributes)

	pks := 0
	for _, a := range got.Attributes {
		if a.PrimaryKey {
			pks++
		}
	}
	assert.Equal(t, 1, pks, "exactly one primary-key attribute")
	assert.Equal(t, Attribute{Name: "id", Type: "int", PrimaryKey: true}, got.Attributes[0])
	assert.Equal(t, "id", got.PrimaryKey)
}

func TestBuildKeepsExplicitPrimaryKey(t *testing.T) {
	m := &ModelEntity{
		Name:       "Session",
		PrimaryKey: "token",
		Attributes: []Attribute{{Name: "token", Type: "string", PrimaryKey: true}},
	}
	p := Build(Meta{}, []*ModelEntity{m}, nil, nil, nil, nil)

	got, _ := p.Model("Session")
	assert.Equal(t, "token", got.Attributes[0].Name)
	for _, a := range got.Attributes {
		if a.Name == "id" {
			t.Fatal("no id column should be injected over an explicit primary key")
		}
	}
}

func TestBuildResolvesNamespacedReferences(t *testing.T) {
	p := Build(Meta{},
		[]*ModelEntity{{Name: "Post"}},
		[]*ControllerEntity{{Name: "PostController"}},
		nil, nil, nil)

	_, ok := p.Model(`\App\Models\Post`)
	assert.True(t, ok)
	_, ok = p.Model("Post::class")
	assert.True(t, ok)
	_, ok = p.Controller("'PostController'")
	assert.True(t, ok)
	_, ok = p.Model("Missing")
	assert.False(t, ok)
}

func TestBuildFirstDeclarationWinsOnDuplicateKeys(t *testing.T) {
	a := &ModelEntity{Name: "Post", Table: "first"}
	b := &ModelEntity{Name: "post", Table: "second"}
	p := Build(Meta{}, []*ModelEntity{a, b}, nil, nil, nil, nil)

	require.Len(t, p.Models, 1)
	got, _ := p.Model("Post")
	assert.Equal(t, "first", got.Table)
}

func TestBuildRetainsUnresolvedRelationships(t *testing.T) {
	rel := Relationship{Source: "Post", Kind: HasMany, Name: "ghosts", Target: "Ghost::class"}
	p := Build(Meta{}, []*ModelEntity{{Name: "Post"}}, nil, nil, []Relationship{rel}, nil)

	require.Len(t, p.Relationships, 1)
	assert.Equal(t, "Ghost::class", p.Relationships[0].Target)
	_, ok := p.Model(p.Relationships[0].Target)
	assert.False(t, ok)
}

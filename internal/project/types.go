// Package project defines the normalized model of a scanned Laravel
// codebase: models, controllers, services, relationships, and HTTP
// endpoints. The model is assembled once per run and consumed
// read-only by the documentation synthesizers.
package project

// RelationKind identifies an Eloquent relationship builder method.
type RelationKind string

const (
	HasOne         RelationKind = "hasOne"
	HasMany        RelationKind = "hasMany"
	BelongsTo      RelationKind = "belongsTo"
	BelongsToMany  RelationKind = "belongsToMany"
	MorphTo        RelationKind = "morphTo"
	MorphOne       RelationKind = "morphOne"
	MorphMany      RelationKind = "morphMany"
	HasOneThrough  RelationKind = "hasOneThrough"
	HasManyThrough RelationKind = "hasManyThrough"
)

// Attribute is a single model attribute (a database column, as far as
// static analysis can tell).
type Attribute struct {
	Name       string
	Type       string
	PrimaryKey bool
	ForeignKey bool

	// References holds the canonical key of the model this attribute
	// points at; empty unless ForeignKey is set.
	References string

	// Inferred marks attributes that exist only because a relationship
	// implied them. Declared attributes keep it false even when a later
	// pass adds a foreign-key flag to them.
	Inferred bool
}

// Action is one method of a model, controller, or service class.
type Action struct {
	Name   string
	Params []Param
	Body   string
}

// Param is a declared action parameter with its optional type hint.
type Param struct {
	Name string
	Hint string
}

// ModelEntity describes one Eloquent model class.
type ModelEntity struct {
	Name       string
	Namespace  string
	Table      string // explicit $table value; empty when conventional
	PrimaryKey string // primary-key attribute name, "id" by default

	Attributes []Attribute
	Actions    []Action

	Timestamps  bool // true unless $timestamps = false
	SoftDeletes bool // true when the SoftDeletes trait is used
}

// ControllerEntity describes one HTTP controller class.
type ControllerEntity struct {
	Name      string
	Namespace string
	Actions   []Action
}

// ServiceEntity describes one application service class. Services share
// the controller shape and participate only in the full class diagram.
type ServiceEntity struct {
	Name      string
	Namespace string
	Actions   []Action
}

// Relationship records one relationship declaration found on a model.
// Target is kept exactly as written in the source; it may name a model
// that was never scanned, or be empty (a bare morphTo()), and such
// records stay in the model; resolution is each synthesizer's concern.
type Relationship struct {
	Source string
	Kind   RelationKind
	Name   string
	Target string
}

// Handler identifies what serves an endpoint: a controller action
// reference or an inline closure.
type Handler struct {
	Controller string // as written in the route file; empty for closures
	Action     string
	Closure    bool
}

// Origin records which extraction pass produced an endpoint.
type Origin string

const (
	OriginDirect      Origin = "direct"
	OriginResource    Origin = "resource"
	OriginAPIResource Origin = "apiResource"
)

// Endpoint is one HTTP route declaration. Duplicate (method, path)
// pairs are preserved as-is; they reflect repeated source declarations.
type Endpoint struct {
	Methods []string
	Path    string
	Handler Handler
	Name    string // ->name(...) tag when present
	Group   string // group/prefix label when one applied
	Source  string // route unit (file) the declaration came from
	Origin  Origin
}

// Project is the immutable aggregate built from all extracted facts.
type Project struct {
	Name             string
	FrameworkVersion string

	Models        []*ModelEntity
	Controllers   []*ControllerEntity
	Services      []*ServiceEntity
	Relationships []Relationship
	Endpoints     []Endpoint

	modelIndex      map[string]*ModelEntity
	controllerIndex map[string]*ControllerEntity
}

// Model resolves a model reference (raw, quoted, namespaced, or
// ::class form) to its entity.
func (p *Project) Model(ref string) (*ModelEntity, bool) {
	m, ok := p.modelIndex[CanonicalKey(ref)]
	return m, ok
}

// Controller resolves a controller reference to its entity.
func (p *Project) Controller(ref string) (*ControllerEntity, bool) {
	c, ok := p.controllerIndex[CanonicalKey(ref)]
	return c, ok
}

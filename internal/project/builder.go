package project

// Meta carries project-level identity supplied by the scanner.
type Meta struct {
	Name             string
	FrameworkVersion string
}

// Build assembles the immutable project model from per-unit facts.
// Models and controllers are indexed by canonical key; when two units
// declare the same key the first declaration wins. Every model without
// an explicit primary key gets the conventional int "id" injected at
// the head of its attribute list. Relationships and endpoints that
// name unknown targets are kept as-is.
func Build(meta Meta, models []*ModelEntity, controllers []*ControllerEntity, services []*ServiceEntity, relationships []Relationship, endpoints []Endpoint) *Project {
	p := &Project{
		Name:             meta.Name,
		FrameworkVersion: meta.FrameworkVersion,
		Services:         services,
		Relationships:    relationships,
		Endpoints:        endpoints,
		modelIndex:       make(map[string]*ModelEntity, len(models)),
		controllerIndex:  make(map[string]*ControllerEntity, len(controllers)),
	}

	for _, m := range models {
		key := CanonicalKey(m.Name)
		if _, dup := p.modelIndex[key]; dup {
			continue
		}
		ensurePrimaryKey(m)
		p.Models = append(p.Models, m)
		p.modelIndex[key] = m
	}

	for _, c := range controllers {
		key := CanonicalKey(c.Name)
		if _, dup := p.controllerIndex[key]; dup {
			continue
		}
		p.Controllers = append(p.Controllers, c)
		p.controllerIndex[key] = c
	}

	return p
}

// ensurePrimaryKey injects the conventional "id" column when no
// extracted attribute carries the primary-key flag.
func ensurePrimaryKey(m *ModelEntity) {
	if m.PrimaryKey == "" {
		m.PrimaryKey = "id"
	}
	for _, a := range m.Attributes {
		if a.PrimaryKey {
			return
		}
	}
	id := Attribute{Name: m.PrimaryKey, Type: "int", PrimaryKey: true}
	m.Attributes = append([]Attribute{id}, m.Attributes...)
}

// PrimaryKeyAttribute returns the model's primary-key attribute. Build
// guarantees one exists.
func (m *ModelEntity) PrimaryKeyAttribute() Attribute {
	for _, a := range m.Attributes {
		if a.PrimaryKey {
			return a
		}
	}
	return Attribute{Name: "id", Type: "int", PrimaryKey: true}
}

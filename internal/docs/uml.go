package docs

import (
	"fmt"
	"strings"

	"github.com/larascope/larascope/internal/project"
)

// Scope selects which entity kinds a class diagram includes.
type Scope string

const (
	// ScopeModels renders model classes only.
	ScopeModels Scope = "models"
	// ScopeFull adds controllers and services.
	ScopeFull Scope = "full"
)

// umlArrow maps the four structural relationship kinds to class-diagram
// edges; every other kind degrades to a plain directed edge.
var umlArrow = map[project.RelationKind]string{
	project.HasOne:        `"1" --> "0..1"`,
	project.HasMany:       `"1" --> "*"`,
	project.BelongsTo:     `"*" --> "1"`,
	project.BelongsToMany: `"*" --> "*"`,
}

// BuildClassDiagram renders a Mermaid classDiagram. Model classes list
// their declared attributes (relationship-derived columns excluded)
// and plain methods; relationship accessors appear only as edges.
// Controllers and services contribute stereotyped method-only classes.
func BuildClassDiagram(p *project.Project, scope Scope) string {
	var b strings.Builder
	b.WriteString("classDiagram\n")

	for _, m := range p.Models {
		fmt.Fprintf(&b, "    class %s {\n", m.Name)
		if m.Table != "" {
			fmt.Fprintf(&b, "        <<table: %s>>\n", m.Table)
		}
		for _, a := range m.Attributes {
			if a.Inferred {
				continue
			}
			fmt.Fprintf(&b, "        +%s %s\n", a.Type, a.Name)
		}
		for _, name := range plainMethods(p, m) {
			fmt.Fprintf(&b, "        +%s()\n", name)
		}
		b.WriteString("    }\n")
	}

	if scope == ScopeFull {
		for _, c := range p.Controllers {
			writeMethodClass(&b, c.Name, "controller", c.Actions)
		}
		for _, s := range p.Services {
			writeMethodClass(&b, s.Name, "service", s.Actions)
		}
	}

	for _, r := range p.Relationships {
		source, ok := p.Model(r.Source)
		if !ok {
			continue
		}
		target, ok := p.Model(r.Target)
		if !ok {
			continue
		}
		arrow, known := umlArrow[r.Kind]
		if !known {
			arrow = "-->"
		}
		fmt.Fprintf(&b, "    %s %s %s : %s\n", source.Name, arrow, target.Name, r.Name)
	}

	return b.String()
}

func writeMethodClass(b *strings.Builder, name, stereotype string, actions []project.Action) {
	fmt.Fprintf(b, "    class %s {\n", name)
	fmt.Fprintf(b, "        <<%s>>\n", stereotype)
	for _, a := range actions {
		fmt.Fprintf(b, "        +%s()\n", a.Name)
	}
	b.WriteString("    }\n")
}

// plainMethods returns the model's actions that are not relationship
// accessors, in declaration order.
func plainMethods(p *project.Project, m *project.ModelEntity) []string {
	accessor := make(map[string]bool)
	for _, r := range p.Relationships {
		if project.CanonicalKey(r.Source) == project.CanonicalKey(m.Name) {
			accessor[r.Name] = true
		}
	}
	var names []string
	for _, a := range m.Actions {
		if !accessor[a.Name] {
			names = append(names, a.Name)
		}
	}
	return names
}

// ClassExport is the machine-readable mirror of the class diagrams,
// written so the browser side can re-filter entities without
// re-running extraction.
type ClassExport struct {
	Project       string           `json:"project"`
	Entities      []ClassEntity    `json:"entities"`
	Relationships []ClassRelation  `json:"relationships"`
	Directories   []DirectoryGroup `json:"directories"`
}

// ClassEntity is one exported class.
type ClassEntity struct {
	Kind       string           `json:"kind"` // model, controller, service
	Name       string           `json:"name"`
	Namespace  string           `json:"namespace,omitempty"`
	Table      string           `json:"table,omitempty"`
	Attributes []ClassAttribute `json:"attributes,omitempty"`
	Methods    []string         `json:"methods,omitempty"`
}

// ClassAttribute is one exported model attribute.
type ClassAttribute struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	PrimaryKey bool   `json:"primaryKey,omitempty"`
	ForeignKey bool   `json:"foreignKey,omitempty"`
	References string `json:"references,omitempty"`
}

// ClassRelation is one exported relationship with its resolution
// status; unresolved edges are exported even though the diagrams drop
// them.
type ClassRelation struct {
	Source   string `json:"source"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Target   string `json:"target"`
	Resolved bool   `json:"resolved"`
}

// DirectoryGroup indexes entity names by namespace.
type DirectoryGroup struct {
	Namespace string   `json:"namespace"`
	Entities  []string `json:"entities"`
}

// BuildClassExport assembles the structured class export.
func BuildClassExport(p *project.Project) *ClassExport {
	export := &ClassExport{Project: p.Name}
	groups := make(map[string][]string)
	var order []string

	add := func(ns, name string) {
		if ns == "" {
			ns = "(root)"
		}
		if _, seen := groups[ns]; !seen {
			order = append(order, ns)
		}
		groups[ns] = append(groups[ns], name)
	}

	for _, m := range p.Models {
		entity := ClassEntity{
			Kind:      "model",
			Name:      m.Name,
			Namespace: m.Namespace,
			Table:     m.Table,
			Methods:   plainMethods(p, m),
		}
		for _, a := range m.Attributes {
			if a.Inferred {
				continue
			}
			entity.Attributes = append(entity.Attributes, ClassAttribute{
				Name:       a.Name,
				Type:       a.Type,
				PrimaryKey: a.PrimaryKey,
				ForeignKey: a.ForeignKey,
				References: a.References,
			})
		}
		export.Entities = append(export.Entities, entity)
		add(m.Namespace, m.Name)
	}
	for _, c := range p.Controllers {
		export.Entities = append(export.Entities, ClassEntity{
			Kind:      "controller",
			Name:      c.Name,
			Namespace: c.Namespace,
			Methods:   actionNames(c.Actions),
		})
		add(c.Namespace, c.Name)
	}
	for _, s := range p.Services {
		export.Entities = append(export.Entities, ClassEntity{
			Kind:      "service",
			Name:      s.Name,
			Namespace: s.Namespace,
			Methods:   actionNames(s.Actions),
		})
		add(s.Namespace, s.Name)
	}

	for _, r := range p.Relationships {
		_, sourceOK := p.Model(r.Source)
		_, targetOK := p.Model(r.Target)
		export.Relationships = append(export.Relationships, ClassRelation{
			Source:   project.DisplayName(r.Source),
			Kind:     string(r.Kind),
			Name:     r.Name,
			Target:   project.DisplayName(r.Target),
			Resolved: sourceOK && targetOK,
		})
	}

	for _, ns := range order {
		export.Directories = append(export.Directories, DirectoryGroup{Namespace: ns, Entities: groups[ns]})
	}
	return export
}

func actionNames(actions []project.Action) []string {
	var names []string
	for _, a := range actions {
		names = append(names, a.Name)
	}
	return names
}

// Package docs projects the assembled project model into
// documentation artifacts: a Mermaid entity-relationship diagram,
// class diagrams with a JSON export, per-action sequence diagrams with
// a manifest, and a Markdown API reference. Every synthesizer is a
// pure function of the immutable model; the Generator owns all I/O.
package docs

import (
	"fmt"
	"strings"

	"github.com/larascope/larascope/internal/project"
)

// erdCardinality maps a relationship kind to its Mermaid erDiagram
// symbol pair. Kinds outside the table degrade to an optional
// one-to-one.
var erdCardinality = map[project.RelationKind]string{
	project.HasOne:         "||--o|",
	project.HasMany:        "||--o{",
	project.BelongsTo:      "}o--||",
	project.BelongsToMany:  "}o--o{",
	project.MorphTo:        "}o..||",
	project.MorphOne:       "||..o|",
	project.MorphMany:      "||..o{",
	project.HasOneThrough:  "||..||",
	project.HasManyThrough: "||..|{",
}

// BuildERD renders the whole-project entity-relationship diagram. Each
// model contributes a column block: its primary key first, the
// remaining attributes in extraction order with key annotations, then
// the framework bookkeeping columns its flags imply. Relation lines
// appear only when both ends resolve to scanned models.
func BuildERD(p *project.Project) string {
	var b strings.Builder
	b.WriteString("erDiagram\n")

	for _, m := range p.Models {
		fmt.Fprintf(&b, "    %s {\n", m.Name)

		pk := m.PrimaryKeyAttribute()
		fmt.Fprintf(&b, "        %s %s PK\n", pk.Type, pk.Name)

		for _, a := range m.Attributes {
			if a.PrimaryKey {
				continue
			}
			writeColumn(&b, a)
		}
		if m.Timestamps {
			b.WriteString("        datetime created_at\n")
			b.WriteString("        datetime updated_at\n")
		}
		if m.SoftDeletes {
			b.WriteString("        datetime deleted_at\n")
		}
		b.WriteString("    }\n")
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
		symbol, known := erdCardinality[r.Kind]
		if !known {
			symbol = "|o--o|"
		}
		fmt.Fprintf(&b, "    %s %s %s : %s\n", source.Name, symbol, target.Name, r.Name)
	}

	return b.String()
}

func writeColumn(b *strings.Builder, a project.Attribute) {
	fmt.Fprintf(b, "        %s %s", a.Type, a.Name)
	if a.ForeignKey {
		fmt.Fprintf(b, " FK \"references %s\"", a.References)
	}
	b.WriteString("\n")
}

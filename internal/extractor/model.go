package extractor

import (
	"regexp"
	"strings"

	"github.com/larascope/larascope/internal/project"
)

var (
	fillablePattern   = regexp.MustCompile(`\$fillable\s*=\s*\[([^\]]*)\]`)
	castsPattern      = regexp.MustCompile(`\$casts\s*=\s*\[([^\]]*)\]`)
	castPairPattern   = regexp.MustCompile(`['"]([^'"]+)['"]\s*=>\s*['"]([^'"]+)['"]`)
	primaryKeyPattern = regexp.MustCompile(`\$primaryKey\s*=\s*['"]([^'"]+)['"]`)
	tablePattern      = regexp.MustCompile(`\$table\s*=\s*['"]([^'"]+)['"]`)
	timestampsPattern = regexp.MustCompile(`\$timestamps\s*=\s*(true|false)`)
	softDeletePattern = regexp.MustCompile(`\buse\s+SoftDeletes\b`)
	fkLiteralPattern  = regexp.MustCompile(`['"](\w+)_id['"]`)
)

// relationBuilders are the Eloquent relation-builder calls the
// extractor recognizes inside action bodies. The through variants are
// representable in the model but not pattern-matched here.
var relationBuilders = []project.RelationKind{
	project.HasOne,
	project.HasMany,
	project.BelongsTo,
	project.BelongsToMany,
	project.MorphTo,
	project.MorphOne,
	project.MorphMany,
}

var relationCallPattern = regexp.MustCompile(
	`\$this\s*->\s*(hasOne|hasMany|belongsTo|belongsToMany|morphTo|morphOne|morphMany)\s*\(([^)]*)\)`)

// castTypes maps declared cast keywords to canonical attribute types.
// Unrecognized keywords fall back to string.
var castTypes = map[string]string{
	"int":       "int",
	"integer":   "int",
	"float":     "float",
	"double":    "float",
	"decimal":   "float",
	"string":    "string",
	"bool":      "boolean",
	"boolean":   "boolean",
	"object":    "json",
	"array":     "json",
	"json":      "json",
	"date":      "datetime",
	"datetime":  "datetime",
	"timestamp": "datetime",
	"uuid":      "string",
}

// ExtractModel mines one model source unit into its entity plus the
// relationships its actions declare. The second return is false when
// the unit declares no class at all.
func ExtractModel(src string) (*project.ModelEntity, []project.Relationship, bool) {
	name, ok := className(src)
	if !ok {
		return nil, nil, false
	}

	m := &project.ModelEntity{
		Name:       name,
		Namespace:  namespaceOf(src),
		Timestamps: true,
		Actions:    segmentFunctions(src),
	}

	extractAttributes(m, src)
	rels := extractRelationships(m)
	extractForeignKeys(m, rels, src)
	return m, rels, true
}

// extractAttributes populates the attribute list from the fillable
// declaration and the cast map, then applies the name heuristic to
// anything still untyped and the explicit primary-key override last.
func extractAttributes(m *project.ModelEntity, src string) {
	if f := fillablePattern.FindStringSubmatch(src); f != nil {
		for _, field := range quotedStrings(f[1]) {
			upsertAttribute(m, field, "", false)
		}
	}

	for _, block := range castBlocks(m, src) {
		for _, pair := range castPairPattern.FindAllStringSubmatch(block, -1) {
			upsertAttribute(m, pair[1], castType(pair[2]), false)
		}
	}

	for i := range m.Attributes {
		if m.Attributes[i].Type == "" {
			m.Attributes[i].Type = heuristicType(m.Attributes[i].Name)
		}
	}

	if t := tablePattern.FindStringSubmatch(src); t != nil {
		m.Table = t[1]
	}
	if ts := timestampsPattern.FindStringSubmatch(src); ts != nil {
		m.Timestamps = ts[1] == "true"
	}
	m.SoftDeletes = softDeletePattern.MatchString(src)

	if pk := primaryKeyPattern.FindStringSubmatch(src); pk != nil {
		setPrimaryKey(m, pk[1])
	}
}

// castBlocks collects cast-map text from the $casts property and, on
// newer models, the casts() method's returned array.
func castBlocks(m *project.ModelEntity, src string) []string {
	var blocks []string
	if c := castsPattern.FindStringSubmatch(src); c != nil {
		blocks = append(blocks, c[1])
	}
	for _, a := range m.Actions {
		if a.Name == "casts" {
			blocks = append(blocks, a.Body)
		}
	}
	return blocks
}

// castType canonicalizes a declared cast keyword. Parameterized casts
// like "datetime:Y-m-d" match on the segment before the colon.
func castType(keyword string) string {
	if i := strings.Index(keyword, ":"); i >= 0 {
		keyword = keyword[:i]
	}
	if t, ok := castTypes[keyword]; ok {
		return t
	}
	return "string"
}

// heuristicType guesses a type from the attribute name alone, checked
// in fixed priority order.
func heuristicType(name string) string {
	switch {
	case name == "id" || strings.HasSuffix(name, "_id"):
		return "int"
	case containsAny(name, "email", "password", "uuid"):
		return "string"
	case containsAny(name, "date", "time"):
		return "datetime"
	case strings.HasPrefix(name, "is_") || strings.HasPrefix(name, "has_"):
		return "boolean"
	case containsAny(name, "count", "amount", "price", "total"):
		return "float"
	default:
		return "string"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// setPrimaryKey applies an explicit $primaryKey override: the named
// attribute becomes the primary key and the conventional "id" column
// loses the flag unless the override names it.
func setPrimaryKey(m *project.ModelEntity, name string) {
	m.PrimaryKey = name
	attr := upsertAttribute(m, name, "", false)
	if attr.Type == "" {
		// The heuristic pass has already run; an undeclared key named
		// here would otherwise stay typeless.
		attr.Type = heuristicType(name)
	}
	for i := range m.Attributes {
		switch m.Attributes[i].Name {
		case name:
			m.Attributes[i].PrimaryKey = true
		case "id":
			m.Attributes[i].PrimaryKey = false
		}
	}
}

// upsertAttribute adds an attribute or updates the existing entry of
// the same name. A non-empty typ overrides the stored type. The
// returned pointer stays valid only until the next append.
func upsertAttribute(m *project.ModelEntity, name, typ string, inferred bool) *project.Attribute {
	for i := range m.Attributes {
		if m.Attributes[i].Name == name {
			if typ != "" {
				m.Attributes[i].Type = typ
			}
			return &m.Attributes[i]
		}
	}
	m.Attributes = append(m.Attributes, project.Attribute{Name: name, Type: typ, Inferred: inferred})
	return &m.Attributes[len(m.Attributes)-1]
}

// extractRelationships scans each action body for the first
// relation-builder call and records it under the action's name. The
// target is kept exactly as written; a bare morphTo() yields an empty
// target that no synthesizer will resolve.
func extractRelationships(m *project.ModelEntity) []project.Relationship {
	var rels []project.Relationship
	for _, a := range m.Actions {
		call := relationCallPattern.FindStringSubmatch(a.Body)
		if call == nil {
			continue
		}
		args := splitArgs(call[2])
		var target string
		if len(args) > 0 {
			target = args[0]
		}
		rels = append(rels, project.Relationship{
			Source: m.Name,
			Kind:   project.RelationKind(call[1]),
			Name:   a.Name,
			Target: target,
		})
	}
	return rels
}

// splitArgs splits a flat argument list on commas, trimming space.
// Nested calls are not handled; the patterns only consume up to the
// first closing parenthesis anyway.
func splitArgs(raw string) []string {
	var args []string
	for _, a := range strings.Split(raw, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			args = append(args, a)
		}
	}
	return args
}

// extractForeignKeys derives implicit foreign-key attributes. Quoted
// "<word>_id" literals anywhere in the unit seed candidates; belongsTo
// relationships then overwrite them, so on a name collision the
// relationship-derived reference wins. Attributes that exist only
// because of this pass carry the inferred marker.
func extractForeignKeys(m *project.ModelEntity, rels []project.Relationship, src string) {
	for _, lit := range fkLiteralPattern.FindAllStringSubmatch(src, -1) {
		flagForeignKey(m, lit[1]+"_id", lit[1])
	}

	for _, r := range rels {
		if r.Kind != project.BelongsTo || r.Target == "" {
			continue
		}
		fk := project.Snake(project.DisplayName(r.Target)) + "_id"
		if explicit := belongsToForeignKey(m, r.Name); explicit != "" {
			fk = explicit
		}
		flagForeignKey(m, fk, project.CanonicalKey(r.Target))
	}
}

// belongsToForeignKey re-reads the relation call in the named action
// for an explicit quoted second argument.
func belongsToForeignKey(m *project.ModelEntity, action string) string {
	for _, a := range m.Actions {
		if a.Name != action {
			continue
		}
		call := relationCallPattern.FindStringSubmatch(a.Body)
		if call == nil {
			return ""
		}
		args := splitArgs(call[2])
		if len(args) >= 2 {
			return strings.Trim(args[1], `'"`)
		}
		return ""
	}
	return ""
}

// flagForeignKey upserts name as an int foreign-key column pointing at
// ref. Declared attributes gain the flag without the inferred marker.
func flagForeignKey(m *project.ModelEntity, name, ref string) {
	attr := upsertAttribute(m, name, "", true)
	if attr.Type == "" {
		attr.Type = "int"
	}
	attr.ForeignKey = true
	attr.References = ref
}

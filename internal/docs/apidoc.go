package docs

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/larascope/larascope/internal/project"
)

var (
	validatePattern = regexp.MustCompile(`->\s*validate\s*\(\s*(\[[\s\S]*?\])\s*\)`)
	jsonPattern     = regexp.MustCompile(`response\(\)\s*->\s*json|->\s*toJson\s*\(|json_encode\s*\(`)
)

// methodVerbs maps a primary HTTP method to the phrase the default
// endpoint description opens with.
var methodVerbs = map[string]string{
	"GET":     "Retrieve",
	"POST":    "Create",
	"PUT":     "Update",
	"PATCH":   "Update",
	"DELETE":  "Delete",
	"OPTIONS": "Inspect",
	"ANY":     "Handle",
}

// BuildAPIReference renders the Markdown API reference: project
// header, table of contents by route unit, then per-group summary
// tables and per-endpoint detail sections. Handlers that resolve to a
// scanned controller action gain parameter, validation, and
// response-shape annotations; unresolved handlers still render with
// their raw reference text.
func BuildAPIReference(p *project.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s API Reference\n\n", p.Name)
	if p.FrameworkVersion != "" {
		fmt.Fprintf(&b, "**Framework:** laravel/framework %s\n\n", p.FrameworkVersion)
	}
	fmt.Fprintf(&b, "**Endpoints:** %d\n\n", len(p.Endpoints))

	units := endpointUnits(p.Endpoints)
	if len(units) == 0 {
		b.WriteString("No route declarations were found.\n")
		return b.String()
	}

	b.WriteString("## Contents\n\n")
	for _, unit := range units {
		fmt.Fprintf(&b, "- [%s](#%s)\n", unit, anchor(unit))
	}
	b.WriteString("\n")

	for _, unit := range units {
		writeUnitSection(&b, p, unit)
	}

	return b.String()
}

// endpointUnits lists the distinct route units in first-seen order.
func endpointUnits(endpoints []project.Endpoint) []string {
	var units []string
	seen := make(map[string]bool)
	for _, ep := range endpoints {
		if !seen[ep.Source] {
			seen[ep.Source] = true
			units = append(units, ep.Source)
		}
	}
	return units
}

func writeUnitSection(b *strings.Builder, p *project.Project, unit string) {
	fmt.Fprintf(b, "## %s\n\n", unit)

	var groups []string
	grouped := make(map[string][]project.Endpoint)
	for _, ep := range p.Endpoints {
		if ep.Source != unit {
			continue
		}
		label := groupLabel(ep)
		if _, seen := grouped[label]; !seen {
			groups = append(groups, label)
		}
		grouped[label] = append(grouped[label], ep)
	}

	for _, label := range groups {
		fmt.Fprintf(b, "### %s\n\n", label)
		b.WriteString("| Method | Path | Handler | Name | Description |\n")
		b.WriteString("|--------|------|---------|------|-------------|\n")
		for _, ep := range grouped[label] {
			fmt.Fprintf(b, "| %s | `%s` | %s | %s | %s |\n",
				strings.Join(ep.Methods, ", "), ep.Path, handlerText(ep.Handler),
				orDash(ep.Name), describe(ep))
		}
		b.WriteString("\n")

		for _, ep := range grouped[label] {
			writeEndpointDetail(b, p, ep)
		}
	}
}

// groupLabel picks the section an endpoint files under: its explicit
// group tag, a label derived from its expansion origin, or "Other".
func groupLabel(ep project.Endpoint) string {
	if ep.Group != "" {
		return ep.Group
	}
	switch ep.Origin {
	case project.OriginResource:
		return "Resource"
	case project.OriginAPIResource:
		return "API Resource"
	default:
		return "Other"
	}
}

func writeEndpointDetail(b *strings.Builder, p *project.Project, ep project.Endpoint) {
	fmt.Fprintf(b, "#### %s %s\n\n", strings.Join(ep.Methods, "|"), ep.Path)
	fmt.Fprintf(b, "%s\n\n", describe(ep))
	fmt.Fprintf(b, "- **Handler:** %s\n", handlerText(ep.Handler))
	if ep.Name != "" {
		fmt.Fprintf(b, "- **Route name:** `%s`\n", ep.Name)
	}

	action, ok := resolveAction(p, ep.Handler)
	if ok {
		if len(action.Params) > 0 {
			b.WriteString("- **Parameters:**\n")
			for _, param := range action.Params {
				hint := param.Hint
				if hint == "" {
					hint = "mixed"
				}
				fmt.Fprintf(b, "  - `%s` (%s)\n", param.Name, hint)
			}
		}
		if rules := validatePattern.FindStringSubmatch(action.Body); rules != nil {
			b.WriteString("- **Validation:**\n\n")
			b.WriteString("```php\n")
			b.WriteString(strings.TrimSpace(rules[1]))
			b.WriteString("\n```\n")
		}
		if jsonPattern.MatchString(action.Body) {
			b.WriteString("- **Response:** returns JSON\n")
		}
	}
	b.WriteString("\n")
}

// resolveAction follows an endpoint handler to the scanned controller
// action it names, when both exist.
func resolveAction(p *project.Project, h project.Handler) (project.Action, bool) {
	if h.Closure || h.Controller == "" {
		return project.Action{}, false
	}
	c, ok := p.Controller(h.Controller)
	if !ok {
		return project.Action{}, false
	}
	for _, a := range c.Actions {
		if a.Name == h.Action {
			return a, true
		}
	}
	return project.Action{}, false
}

// describe derives the default description from the primary method and
// the trailing non-parameter path segment.
func describe(ep project.Endpoint) string {
	verb := methodVerbs[ep.Methods[0]]
	if verb == "" {
		verb = "Handle"
	}
	return fmt.Sprintf("%s %s", verb, subjectSegment(ep.Path))
}

// subjectSegment picks the last path segment that is not a "{...}"
// parameter; the root path reads as "root".
func subjectSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		s := segments[i]
		if s == "" || strings.HasPrefix(s, "{") {
			continue
		}
		return s
	}
	return "root"
}

func handlerText(h project.Handler) string {
	if h.Closure {
		return "_closure_"
	}
	return fmt.Sprintf("`%s@%s`", project.DisplayName(h.Controller), h.Action)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + s + "`"
}

// anchor mirrors how Markdown renderers slug a heading.
func anchor(heading string) string {
	s := strings.ToLower(heading)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

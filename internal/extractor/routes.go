package extractor

import (
	"regexp"
	"strings"

	"github.com/larascope/larascope/internal/project"
)

var (
	verbPattern        = regexp.MustCompile(`Route::(get|post|put|patch|delete|options|any)\s*\(\s*['"]([^'"]*)['"]\s*,`)
	resourcePattern    = regexp.MustCompile(`Route::(resource|apiResource)\s*\(\s*['"]([^'"]+)['"]\s*,\s*([\w\\]+?)(?:::class)?\s*[,)]`)
	arrayHandlerRe     = regexp.MustCompile(`\[\s*\\?([\w\\]+)::class\s*,\s*['"](\w+)['"]\s*\]`)
	stringHandlerRe    = regexp.MustCompile(`['"]([\w\\]+)@(\w+)['"]`)
	routeNameRe        = regexp.MustCompile(`->\s*name\s*\(\s*['"]([^'"]+)['"]`)
	onlyRe             = regexp.MustCompile(`->\s*only\s*\(\s*\[([^\]]*)\]`)
	exceptRe           = regexp.MustCompile(`->\s*except\s*\(\s*\[([^\]]*)\]`)
	prefixArrowRe      = regexp.MustCompile(`['"]prefix['"]\s*=>\s*['"]([^'"]+)['"]`)
	prefixCallRe       = regexp.MustCompile(`Route::prefix\s*\(\s*['"]([^'"]+)['"]`)
)

// resourceActions are the conventional endpoints one Route::resource
// declaration expands to, in framework order. apiResource drops the
// two form-display actions (create, edit).
var resourceActions = []struct {
	name    string
	methods []string
	suffix  string
	api     bool
}{
	{"index", []string{"GET"}, "", true},
	{"create", []string{"GET"}, "/create", false},
	{"store", []string{"POST"}, "", true},
	{"show", []string{"GET"}, "/{id}", true},
	{"edit", []string{"GET"}, "/{id}/edit", false},
	{"update", []string{"PUT", "PATCH"}, "/{id}", true},
	{"destroy", []string{"DELETE"}, "/{id}", true},
}

// ExtractEndpoints mines one route-declaration unit in four passes:
// direct verb declarations, resource expansion, API-resource
// expansion, and group/prefix labeling. Labeling is a whole-unit
// proximity heuristic: any prefix declared in the unit labels every
// endpoint of the unit whose path starts with it, without regard to
// lexical group scope.
func ExtractEndpoints(unitName, src string) []project.Endpoint {
	var endpoints []project.Endpoint
	endpoints = append(endpoints, extractDirectRoutes(unitName, src)...)
	endpoints = append(endpoints, extractResourceRoutes(unitName, src)...)
	labelGroups(src, endpoints)
	return endpoints
}

// extractDirectRoutes handles Route::<verb>(...) declarations. The
// statement is taken up to the next ";", enough to read an array or
// string handler and a trailing ->name(...) chain; anything else is
// recorded as a closure.
func extractDirectRoutes(unitName, src string) []project.Endpoint {
	var endpoints []project.Endpoint
	for _, loc := range verbPattern.FindAllStringSubmatchIndex(src, -1) {
		verb := src[loc[2]:loc[3]]
		path := src[loc[4]:loc[5]]
		stmt := statementAfter(src, loc[1])

		handler := project.Handler{Closure: true}
		if h := arrayHandlerRe.FindStringSubmatch(stmt); h != nil {
			handler = project.Handler{Controller: h[1], Action: h[2]}
		} else if h := stringHandlerRe.FindStringSubmatch(stmt); h != nil {
			handler = project.Handler{Controller: h[1], Action: h[2]}
		}

		ep := project.Endpoint{
			Methods: []string{strings.ToUpper(verb)},
			Path:    normalizePath(path),
			Handler: handler,
			Source:  unitName,
			Origin:  project.OriginDirect,
		}
		if n := routeNameRe.FindStringSubmatch(stmt); n != nil {
			ep.Name = n[1]
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints
}

// extractResourceRoutes expands Route::resource and Route::apiResource
// declarations into their conventional endpoints, honoring ->only and
// ->except filters.
func extractResourceRoutes(unitName, src string) []project.Endpoint {
	var endpoints []project.Endpoint
	for _, loc := range resourcePattern.FindAllStringSubmatchIndex(src, -1) {
		kind := src[loc[2]:loc[3]]
		base := src[loc[4]:loc[5]]
		controller := src[loc[6]:loc[7]]
		stmt := statementAfter(src, loc[1])

		apiOnly := kind == "apiResource"
		origin := project.OriginResource
		if apiOnly {
			origin = project.OriginAPIResource
		}

		include := actionFilter(onlyRe, stmt)
		exclude := actionFilter(exceptRe, stmt)

		for _, ra := range resourceActions {
			if apiOnly && !ra.api {
				continue
			}
			if include != nil && !include[ra.name] {
				continue
			}
			if exclude != nil && exclude[ra.name] {
				continue
			}
			endpoints = append(endpoints, project.Endpoint{
				Methods: ra.methods,
				Path:    normalizePath(base + ra.suffix),
				Handler: project.Handler{Controller: controller, Action: ra.name},
				Name:    base + "." + ra.name,
				Source:  unitName,
				Origin:  origin,
			})
		}
	}
	return endpoints
}

// actionFilter reads an ->only(...) or ->except(...) chain into a
// membership set, or nil when the chain is absent.
func actionFilter(re *regexp.Regexp, stmt string) map[string]bool {
	m := re.FindStringSubmatch(stmt)
	if m == nil {
		return nil
	}
	set := make(map[string]bool)
	for _, name := range quotedStrings(m[1]) {
		set[name] = true
	}
	return set
}

// labelGroups applies every prefix declared in the unit to the
// endpoints whose path starts with it. First declared match wins.
func labelGroups(src string, endpoints []project.Endpoint) {
	var prefixes []string
	for _, m := range prefixArrowRe.FindAllStringSubmatch(src, -1) {
		prefixes = append(prefixes, m[1])
	}
	for _, m := range prefixCallRe.FindAllStringSubmatch(src, -1) {
		prefixes = append(prefixes, m[1])
	}

	for _, prefix := range prefixes {
		label := strings.Trim(prefix, "/")
		normalized := normalizePath(label)
		for i := range endpoints {
			if endpoints[i].Group != "" {
				continue
			}
			if endpoints[i].Path == normalized || strings.HasPrefix(endpoints[i].Path, normalized+"/") {
				endpoints[i].Group = label
			}
		}
	}
}

// statementAfter returns the source text from offset to the next ";",
// or to the end of the unit.
func statementAfter(src string, offset int) string {
	rest := src[offset:]
	if i := strings.Index(rest, ";"); i >= 0 {
		return rest[:i]
	}
	return rest
}

// normalizePath reduces a declared path to a single leading slash and
// no trailing slash.
func normalizePath(p string) string {
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	if p == "//" {
		return "/"
	}
	return p
}

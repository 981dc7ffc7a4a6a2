// Package extractor mines structural facts out of raw PHP source text
// using regular-expression pattern matching and brace counting. It is
// deliberately not a parser: a unit that matches no pattern simply
// contributes no facts, and string or comment contents are not treated
// specially. The heuristics model Laravel conventions (Eloquent models,
// HTTP controllers, route files).
package extractor

import (
	"regexp"
	"strings"

	"github.com/larascope/larascope/internal/project"
)

var (
	classPattern     = regexp.MustCompile(`\bclass\s+(\w+)`)
	namespacePattern = regexp.MustCompile(`\bnamespace\s+([\w\\]+)\s*;`)
	functionPattern  = regexp.MustCompile(`\bfunction\s+(\w+)\s*\(([^)]*)\)`)
)

// className returns the first declared class name in the unit.
func className(src string) (string, bool) {
	m := classPattern.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// namespaceOf returns the declared namespace, or "" when absent.
func namespaceOf(src string) string {
	m := namespacePattern.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return m[1]
}

// segmentFunctions splits a unit into its function declarations. Each
// signature match is paired with its `{...}` body captured by brace
// counting; abstract or interface methods that end in ";" get an empty
// body.
func segmentFunctions(src string) []project.Action {
	var actions []project.Action
	for _, loc := range functionPattern.FindAllStringSubmatchIndex(src, -1) {
		name := src[loc[2]:loc[3]]
		rawParams := src[loc[4]:loc[5]]
		body := captureBody(src, loc[1])
		actions = append(actions, project.Action{
			Name:   name,
			Params: parseParams(rawParams),
			Body:   body,
		})
	}
	return actions
}

// captureBody returns the text between the first "{" after offset and
// its balancing "}". An unbalanced body runs to the end of the unit.
func captureBody(src string, offset int) string {
	i := offset
	for i < len(src) {
		switch src[i] {
		case '{':
			depth := 0
			for j := i; j < len(src); j++ {
				switch src[j] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						return src[i+1 : j]
					}
				}
			}
			return src[i+1:]
		case ';':
			// Signature without a body.
			return ""
		}
		i++
	}
	return ""
}

// parseParams splits a raw parameter list into (hint, name) pairs.
// Defaults are dropped; a parameter without a "$" variable is skipped.
func parseParams(raw string) []project.Param {
	var params []project.Param
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.Index(part, "="); i >= 0 {
			part = strings.TrimSpace(part[:i])
		}
		fields := strings.Fields(part)
		var hint, name string
		for _, f := range fields {
			if strings.HasPrefix(f, "&") {
				f = f[1:]
			}
			if strings.HasPrefix(f, "$") {
				name = strings.TrimPrefix(f, "$")
			} else if hint == "" && f != "" {
				hint = f
			}
		}
		if name == "" {
			continue
		}
		params = append(params, project.Param{Name: name, Hint: hint})
	}
	return params
}

// quotedStrings returns every single- or double-quoted literal in s,
// in source order, quotes stripped.
var quotedPattern = regexp.MustCompile(`['"]([^'"]*)['"]`)

func quotedStrings(s string) []string {
	var out []string
	for _, m := range quotedPattern.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

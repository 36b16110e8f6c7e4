package scenedsl

import "regexp"

// templateVar matches `{{name}}` (optional surrounding whitespace),
// grounded on
// original_source/flex_layout_render_test/src/parser/template.rs's
// simple_regex fast path. The Rust original falls through to a
// Handlebars engine for anything beyond a bare variable reference; no
// templating library appears anywhere else in the retrieval pack, and
// spec.md §9's recovered feature is explicitly "variable substitution",
// not a general template language, so sceneforge implements only the
// regex substitution stage.
var templateVar = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Substitute replaces every `{{name}}` occurrence in raw with vars[name].
// A reference to an undefined name is left verbatim, matching the
// original's "preserve the original syntax so the caller can tell it
// apart from a resolved value" behavior.
func Substitute(raw string, vars map[string]string) string {
	if len(vars) == 0 {
		return raw
	}
	return templateVar.ReplaceAllStringFunc(raw, func(match string) string {
		sub := templateVar.FindStringSubmatch(match)
		name := sub[1]
		if v, ok := vars[name]; ok {
			return v
		}
		return match
	})
}

// ListVars returns the distinct variable names referenced in raw, in
// first-appearance order — backs the CLI's --list-vars flag (spec.md
// §6).
func ListVars(raw string) []string {
	matches := templateVar.FindAllStringSubmatch(raw, -1)
	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

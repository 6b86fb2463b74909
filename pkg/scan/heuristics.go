package scan

import (
	"regexp"
	"strings"
	"unicode"
)

// The extraction heuristics live here as named, overridable predicates.
// They are approximations (the scanner never resolves an identifier to
// its declaration) and keeping them out of the scan logic lets accuracy
// be tuned without touching it.

// IsComponentName reports whether an identifier names a component.
var IsComponentName = func(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

// StateHookNames are the callee names counted as state hooks.
var StateHookNames = []string{"useState"}

// EffectHookNames are the callee names analyzed as effects.
var EffectHookNames = []string{"useEffect", "useLayoutEffect"}

// MemoHookNames are the callee names whose first-argument span suppresses
// expensive-operation findings.
var MemoHookNames = []string{"useMemo", "useCallback"}

// IsSetterName reports whether an identifier follows the state-setter
// naming convention: `set` followed by an uppercase letter. A naming
// heuristic, not an identity proof.
var IsSetterName = func(name string) bool {
	return len(name) > 3 && strings.HasPrefix(name, "set") && unicode.IsUpper(rune(name[3]))
}

// IsProviderTag reports whether a JSX tag name is the value-holding element
// of a context construct.
var IsProviderTag = func(tag string) bool {
	return strings.HasSuffix(tag, ".Provider") || strings.HasSuffix(tag, "Provider")
}

// SkippedProps are attribute names never reported for inline creation.
var SkippedProps = map[string]bool{
	"key": true,
	"ref": true,
}

// SpreadIdentifiers are parameter names recognized as prop objects when
// spread into a JSX tag, in addition to the component's own parameter name.
var SpreadIdentifiers = map[string]bool{
	"props":      true,
	"rest":       true,
	"restProps":  true,
	"otherProps": true,
}

var setterCallRe = regexp.MustCompile(`\bset[A-Z]\w*\s*\(`)

// countSetterCalls counts setter-convention call sites in text.
func countSetterCalls(text string) int {
	n := 0
	for _, m := range setterCallRe.FindAllString(text, -1) {
		name := strings.TrimSpace(strings.TrimSuffix(m, "("))
		if IsSetterName(name) {
			n++
		}
	}
	return n
}

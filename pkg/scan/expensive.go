package scan

import (
	"regexp"
	"sort"
)

// Tracked expensive-operation patterns. Each produces a call span so the
// rule engine can test containment against memo-hook argument spans.
var (
	jsonCallRe  = regexp.MustCompile(`\bJSON\.(parse|stringify)\s*\(`)
	sortCallRe  = regexp.MustCompile(`\.sort\s*\(`)
	newRegExpRe = regexp.MustCompile(`\bnew\s+RegExp\s*\(`)
	filterRe    = regexp.MustCompile(`\.filter\s*\(`)
)

// FindExpensiveCalls locates tracked expensive operations inside the
// component body: serialize/deserialize, in-place sorts, regex
// construction, and filter-then-map chains.
func FindExpensiveCalls(src string, comp ComponentRecord) []ExpensiveCall {
	bodyText := src[comp.Body.Start : comp.Body.End+1]
	offset := comp.Body.Start

	var calls []ExpensiveCall

	for _, m := range jsonCallRe.FindAllStringSubmatchIndex(bodyText, -1) {
		op := "JSON." + bodyText[m[2]:m[3]]
		if c, ok := callAt(src, offset+m[0], offset+m[1]-1, op, comp.Name); ok {
			calls = append(calls, c)
		}
	}
	for _, m := range sortCallRe.FindAllStringIndex(bodyText, -1) {
		if c, ok := callAt(src, offset+m[0], offset+m[1]-1, ".sort", comp.Name); ok {
			calls = append(calls, c)
		}
	}
	for _, m := range newRegExpRe.FindAllStringIndex(bodyText, -1) {
		if c, ok := callAt(src, offset+m[0], offset+m[1]-1, "new RegExp", comp.Name); ok {
			calls = append(calls, c)
		}
	}
	calls = append(calls, filterMapChains(src, bodyText, offset, comp.Name)...)

	sort.SliceStable(calls, func(i, j int) bool { return calls[i].Span.Start < calls[j].Span.Start })
	return calls
}

// callAt builds an ExpensiveCall whose span runs from the pattern start to
// the matching close of the call's argument list.
func callAt(src string, start, openParen int, op, component string) (ExpensiveCall, bool) {
	end, err := MatchDelimiter(src, openParen)
	if err != nil {
		return ExpensiveCall{}, false
	}
	return ExpensiveCall{
		Component: component,
		Op:        op,
		Line:      LineAt(src, start),
		Span:      BracketSpan{Start: start, End: end},
	}, true
}

// filterMapChains finds `.filter(...)` immediately followed by `.map(`,
// which iterates the array twice per render.
func filterMapChains(src, bodyText string, offset int, component string) []ExpensiveCall {
	var calls []ExpensiveCall
	for _, m := range filterRe.FindAllStringIndex(bodyText, -1) {
		start := offset + m[0]
		filterClose, err := MatchDelimiter(src, offset+m[1]-1)
		if err != nil {
			continue
		}
		k := skipSpaces(src, filterClose+1)
		if k+4 > len(src) || src[k:k+4] != ".map" {
			continue
		}
		mapParen := skipSpaces(src, k+4)
		if mapParen >= len(src) || src[mapParen] != '(' {
			continue
		}
		mapClose, err := MatchDelimiter(src, mapParen)
		if err != nil {
			continue
		}
		calls = append(calls, ExpensiveCall{
			Component: component,
			Op:        ".filter().map",
			Line:      LineAt(src, start),
			Span:      BracketSpan{Start: start, End: mapClose},
		})
	}
	return calls
}

package scan

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// function Name(...), optionally exported, optionally async.
	funcDeclRe = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+(?:default\s+)?)?(?:async\s+)?function\s+([A-Z]\w*)\s*\(`)
	// const Name = ... / const Name: FC<Props> = ...; the right-hand side
	// is inspected separately for a function shape.
	arrowDeclRe = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+(?:default\s+)?)?(?:const|let|var)\s+([A-Z]\w*)\s*(?::[^=\n]*)?=\s*`)

	identRe     = regexp.MustCompile(`^[A-Za-z_$][\w$]*`)
	spreadInTag = regexp.MustCompile(`<[A-Z][\w.]*[^>]*?\{\s*\.\.\.([A-Za-z_$][\w$]*)\s*\}`)
)

// FindComponents returns the ordered sequence of component definitions
// recognized in src. Constructs the heuristics cannot delimit (unterminated
// spans, unusual parameter shapes) are silently skipped; under-reporting is
// preferred over failing the file.
func FindComponents(src string) []ComponentRecord {
	var comps []ComponentRecord

	for _, m := range funcDeclRe.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		if !IsComponentName(name) {
			continue
		}
		parenIdx := m[1] - 1 // the regex ends at the opening paren
		if rec, ok := buildFunctionComponent(src, name, m[0], parenIdx); ok {
			comps = append(comps, rec)
		}
	}

	for _, m := range arrowDeclRe.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		if !IsComponentName(name) {
			continue
		}
		if rec, ok := buildArrowComponent(src, name, m[0], m[1]); ok {
			comps = append(comps, rec)
		}
	}

	sort.SliceStable(comps, func(i, j int) bool {
		if comps[i].StartLine != comps[j].StartLine {
			return comps[i].StartLine < comps[j].StartLine
		}
		return comps[i].Name < comps[j].Name
	})
	return comps
}

// buildFunctionComponent handles `function Name(params) { ... }`.
func buildFunctionComponent(src, name string, declStart, parenIdx int) (ComponentRecord, bool) {
	params, parenClose, err := splitTopLevel(src, parenIdx)
	if err != nil {
		return ComponentRecord{}, false
	}
	braceIdx := strings.IndexByte(src[parenClose+1:], '{')
	if braceIdx < 0 {
		return ComponentRecord{}, false
	}
	body, err := MatchSpan(src, parenClose+1+braceIdx)
	if err != nil {
		return ComponentRecord{}, false
	}
	return finishComponent(src, name, declStart, params, BlockBody, body), true
}

// buildArrowComponent handles `const Name = (params) => body` and
// `const Name = function (params) { ... }`.
func buildArrowComponent(src, name string, declStart, rhsStart int) (ComponentRecord, bool) {
	j := skipSpaces(src, rhsStart)
	if j >= len(src) {
		return ComponentRecord{}, false
	}
	if hasWordAt(src, j, "async") {
		j = skipSpaces(src, j+len("async"))
	}

	if hasWordAt(src, j, "function") {
		parenIdx := strings.IndexByte(src[j:], '(')
		if parenIdx < 0 {
			return ComponentRecord{}, false
		}
		return buildFunctionComponent(src, name, declStart, j+parenIdx)
	}

	var params []BracketSpan
	var afterParams int
	switch {
	case src[j] == '(':
		var err error
		var parenClose int
		params, parenClose, err = splitTopLevel(src, j)
		if err != nil {
			return ComponentRecord{}, false
		}
		afterParams = parenClose + 1
	default:
		// Single-parameter arrow without parens: `props => ...`.
		loc := identRe.FindStringIndex(src[j:])
		if loc == nil {
			return ComponentRecord{}, false
		}
		params = []BracketSpan{{Start: j, End: j + loc[1] - 1}}
		afterParams = j + loc[1]
	}

	// Only whitespace or a return-type annotation may sit between the
	// parameter list and `=>`. Anything else, a `(` continuing a call or a
	// `.` of a member access, means the right-hand side is a call
	// expression (useMemo, React.memo) and not a function expression.
	arrowIdx := skipSpaces(src, afterParams)
	if arrowIdx >= len(src) {
		return ComponentRecord{}, false
	}
	if src[arrowIdx] == ':' {
		window := src[arrowIdx:min(arrowIdx+160, len(src))]
		rel := strings.Index(window, "=>")
		if rel < 0 || strings.ContainsAny(window[:rel], ";({") {
			return ComponentRecord{}, false
		}
		arrowIdx += rel
	}
	if !strings.HasPrefix(src[arrowIdx:], "=>") {
		return ComponentRecord{}, false
	}

	bodyStart := skipSpaces(src, arrowIdx+2)
	if bodyStart >= len(src) {
		return ComponentRecord{}, false
	}

	if src[bodyStart] == '{' {
		body, err := MatchSpan(src, bodyStart)
		if err != nil {
			return ComponentRecord{}, false
		}
		return finishComponent(src, name, declStart, params, BlockBody, body), true
	}

	body, ok := expressionBodySpan(src, bodyStart)
	if !ok {
		return ComponentRecord{}, false
	}
	return finishComponent(src, name, declStart, params, ExpressionBody, body), true
}

// expressionBodySpan delimits an implicit-return arrow body. A
// parenthesized body ends at the matching paren; otherwise the expression
// runs to the first top-level `;` or newline.
func expressionBodySpan(src string, start int) (BracketSpan, bool) {
	if src[start] == '(' {
		sp, err := MatchSpan(src, start)
		if err != nil {
			return BracketSpan{}, false
		}
		return sp, true
	}
	lx := newLexer(src, start)
	for lx.pos < len(src) {
		ev := lx.step()
		if ev.kind == evCode && lx.depth() == 0 && (ev.char == ';' || ev.char == '\n') {
			sp, ok := trimSpan(src, BracketSpan{Start: start, End: ev.index - 1})
			return sp, ok
		}
	}
	sp, ok := trimSpan(src, BracketSpan{Start: start, End: len(src) - 1})
	return sp, ok
}

// finishComponent derives prop, state-hook and spread facts from the body.
func finishComponent(src, name string, declStart int, params []BracketSpan, kind BodyKind, body BracketSpan) ComponentRecord {
	rec := ComponentRecord{
		Name:      name,
		StartLine: LineAt(src, declStart),
		EndLine:   LineAt(src, body.End),
		BodyKind:  kind,
		Body:      body,
	}

	bodyText := src[body.Start : body.End+1]
	paramIdent, restNames := extractPropNames(src, params, &rec)

	// Plain-identifier parameter: fall back to distinct props.X accesses.
	if !rec.PropCountKnown && paramIdent != "" {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(paramIdent) + `\.([A-Za-z_$][\w$]*)`)
		seen := map[string]bool{}
		for _, pm := range re.FindAllStringSubmatch(bodyText, -1) {
			if !seen[pm[1]] {
				seen[pm[1]] = true
				rec.PropNames = append(rec.PropNames, pm[1])
			}
		}
		if len(rec.PropNames) > 0 {
			rec.PropCount = len(rec.PropNames)
			rec.PropCountKnown = true
		}
	}

	rec.StateHookCount = countStateHooks(bodyText)
	rec.UsesPropSpread = detectPropSpread(bodyText, paramIdent, restNames)
	return rec
}

// extractPropNames fills PropNames/PropCount from a destructuring pattern
// and returns the plain parameter identifier (if any) plus rest names.
func extractPropNames(src string, params []BracketSpan, rec *ComponentRecord) (paramIdent string, restNames []string) {
	if len(params) == 0 {
		rec.PropCountKnown = true
		return "", nil
	}
	first, ok := trimSpan(src, params[0])
	if !ok {
		rec.PropCountKnown = true
		return "", nil
	}

	if src[first.Start] != '{' {
		// Plain identifier, possibly type-annotated.
		text := src[first.Start : first.End+1]
		if colon := strings.IndexByte(text, ':'); colon >= 0 {
			text = text[:colon]
		}
		return strings.TrimSpace(text), nil
	}

	keys, _, err := splitTopLevel(src, first.Start)
	if err != nil {
		return "", nil
	}
	for _, k := range keys {
		entry := strings.TrimSpace(src[k.Start : k.End+1])
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, "...") {
			rest := identRe.FindString(entry[3:])
			if rest != "" {
				restNames = append(restNames, rest)
			}
			continue
		}
		// Each top-level key counts as one prop; nested patterns and
		// defaults contribute only their key.
		key := entry
		if cut := strings.IndexAny(entry, ":="); cut >= 0 {
			key = entry[:cut]
		}
		key = strings.TrimSpace(key)
		if key != "" {
			rec.PropNames = append(rec.PropNames, key)
		}
	}
	rec.PropCount = len(rec.PropNames)
	rec.PropCountKnown = true
	return "", restNames
}

// countStateHooks counts call sites of the configured state-hook names.
func countStateHooks(bodyText string) int {
	if len(StateHookNames) == 0 {
		return 0
	}
	quoted := make([]string, len(StateHookNames))
	for i, n := range StateHookNames {
		quoted[i] = regexp.QuoteMeta(n)
	}
	re := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\s*[<(]`)
	return len(re.FindAllString(bodyText, -1))
}

// detectPropSpread looks for `{...ident}` inside a JSX tag where ident is
// the component's parameter or a conventional rest-props name.
func detectPropSpread(bodyText, paramIdent string, restNames []string) bool {
	for _, m := range spreadInTag.FindAllStringSubmatch(bodyText, -1) {
		name := m[1]
		if name == paramIdent || SpreadIdentifiers[name] {
			return true
		}
		for _, r := range restNames {
			if name == r {
				return true
			}
		}
	}
	return false
}

func skipSpaces(src string, i int) int {
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	return i
}

// hasWordAt reports whether word appears at i followed by a non-identifier
// character.
func hasWordAt(src string, i int, word string) bool {
	if !strings.HasPrefix(src[i:], word) {
		return false
	}
	j := i + len(word)
	if j >= len(src) {
		return false
	}
	c := src[j]
	return !(c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'))
}

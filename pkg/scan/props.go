package scan

import (
	"regexp"
	"strings"
)

var (
	jsxAttrRe = regexp.MustCompile(`([A-Za-z_][\w-]*)\s*=\s*\{`)
	tagNameRe = regexp.MustCompile(`^[A-Za-z][\w.]*`)
	newExprRe = regexp.MustCompile(`^new\s+[A-Za-z_$][\w.$]*`)
)

// FindPropExpressions locates JSX attributes with expression values inside
// the component body and classifies each value's leading token. Attributes
// sharing a line are reported in left-to-right source order.
func FindPropExpressions(src string, comp ComponentRecord) []PropExpression {
	var props []PropExpression
	bodyText := src[comp.Body.Start : comp.Body.End+1]
	code := codeMask(bodyText)

	for _, m := range jsxAttrRe.FindAllStringSubmatchIndex(bodyText, -1) {
		if !code[m[2]] {
			continue // attribute-shaped text inside a string or comment
		}
		nameStart := comp.Body.Start + m[2]
		nameEnd := comp.Body.Start + m[3]
		openBrace := comp.Body.Start + m[1] - 1

		propName := src[nameStart:nameEnd]
		if SkippedProps[propName] {
			continue
		}

		tag, ok := enclosingTag(src, comp.Body.Start, nameStart, code)
		if !ok {
			continue
		}

		span, err := MatchSpan(src, openBrace)
		if err != nil {
			// Unterminated value: skip this attribute, keep scanning.
			continue
		}

		kind := classifyValue(src, span)
		if propName == "value" && IsProviderTag(tag) {
			kind = KindContextValue
		}

		eq := strings.IndexByte(src[nameEnd:openBrace+1], '=')
		props = append(props, PropExpression{
			Component: comp.Name,
			PropName:  propName,
			TagName:   tag,
			Line:      LineAt(src, nameEnd+eq),
			ValueSpan: span,
			Kind:      kind,
		})
	}
	return props
}

// codeMask lexes bodyText once and marks which byte offsets sit in plain
// code, so the tag walk can ignore `<` and `>` inside strings and comments.
func codeMask(bodyText string) []bool {
	mask := make([]bool, len(bodyText))
	lx := newLexer(bodyText, 0)
	for lx.pos < len(bodyText) {
		ev := lx.step()
		if ev.kind != evSkip {
			mask[ev.index] = true
		}
	}
	return mask
}

// enclosingTag walks backwards from an attribute site to the nearest `<`,
// skipping bytes the mask marks as string or comment content. A `>` in
// between (other than the `>` of an arrow) means the site is not inside an
// opening tag, so `x = {` assignments in plain code are rejected.
func enclosingTag(src string, lowerBound, attrStart int, code []bool) (string, bool) {
	for i := attrStart - 1; i >= lowerBound; i-- {
		if !code[i-lowerBound] {
			continue
		}
		switch src[i] {
		case '>':
			if i > 0 && src[i-1] == '=' {
				continue // arrow, not a tag close
			}
			return "", false
		case '<':
			rest := src[i+1:]
			if strings.HasPrefix(rest, "/") {
				return "", false
			}
			name := tagNameRe.FindString(rest)
			if name == "" {
				return "", false
			}
			return name, true
		}
	}
	return "", false
}

// classifyValue categorizes the trimmed expression inside a `{...}`
// attribute value by its leading token.
func classifyValue(src string, valueSpan BracketSpan) ValueKind {
	inner, ok := trimSpan(src, BracketSpan{Start: valueSpan.Start + 1, End: valueSpan.End - 1})
	if !ok {
		return KindOther
	}
	text := src[inner.Start : inner.End+1]

	switch text[0] {
	case '{':
		return KindObjectLiteral
	case '[':
		return KindArrayLiteral
	}
	if newExprRe.MatchString(text) {
		return KindNewExpr
	}
	if isFunctionExpression(text) {
		return KindFunctionExpr
	}
	return KindOther
}

// isFunctionExpression recognizes `function` expressions, parenthesized
// arrow parameter lists followed by `=>`, and bare single-parameter arrows.
func isFunctionExpression(text string) bool {
	if hasWordAt(text, 0, "async") {
		text = text[skipSpaces(text, len("async")):]
		if text == "" {
			return false
		}
	}
	if hasWordAt(text, 0, "function") {
		return true
	}
	if text[0] == '(' {
		close, err := MatchDelimiter(text, 0)
		if err != nil {
			return false
		}
		rest := strings.TrimSpace(text[close+1:])
		// Allow a return-type annotation between params and arrow.
		if arrow := strings.Index(rest, "=>"); arrow >= 0 && !strings.ContainsAny(rest[:arrow], ";{}") {
			return true
		}
		return false
	}
	if loc := identRe.FindStringIndex(text); loc != nil {
		rest := strings.TrimSpace(text[loc[1]:])
		return strings.HasPrefix(rest, "=>")
	}
	return false
}

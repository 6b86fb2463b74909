package scan

import (
	"regexp"
	"strings"
)

// FindHookCalls locates tracked hook invocations in the component body.
// Effects get full argument analysis; memo hooks contribute their
// first-argument span for expensive-operation suppression; state and
// context hooks are recorded as call sites only.
func FindHookCalls(src string, comp ComponentRecord) []HookCall {
	re := hookCallRegexp()
	bodyText := src[comp.Body.Start : comp.Body.End+1]

	var calls []HookCall
	for _, m := range re.FindAllStringSubmatchIndex(bodyText, -1) {
		name := bodyText[m[2]:m[3]]
		openParen := comp.Body.Start + m[1] - 1
		callStart := comp.Body.Start + m[0]

		hc := HookCall{
			Component: comp.Name,
			HookName:  name,
			Line:      LineAt(src, callStart),
		}

		if IsEffectHook(name) || IsMemoHook(name) {
			args, _, err := splitTopLevel(src, openParen)
			if err != nil || len(args) == 0 {
				// Unterminated or empty call: treat as unrecognized.
				continue
			}
			cb, ok := trimSpan(src, args[0])
			if !ok {
				continue
			}
			hc.CallbackSpan = cb

			if IsEffectHook(name) {
				hc.IsAsyncCallback = hasWordAt(src, cb.Start, "async")
				hc.HasDependencyArray = len(args) >= 2
				if hc.HasDependencyArray {
					if deps, ok := trimSpan(src, args[1]); ok {
						if src[deps.Start] == '[' {
							if sp, err := MatchSpan(src, deps.Start); err == nil {
								deps = sp
							}
						}
						hc.DepsSpan = &deps
					}
				}
				hc.SetStateCallCount = countSetterCalls(src[cb.Start : cb.End+1])
			}
		}

		calls = append(calls, hc)
	}
	return calls
}

// MemoSpans returns the first-argument spans of memo-hook calls, the
// containment targets for expensive-operation suppression.
func MemoSpans(calls []HookCall) []BracketSpan {
	var spans []BracketSpan
	for _, hc := range calls {
		if IsMemoHook(hc.HookName) && hc.CallbackSpan.Len() > 0 {
			spans = append(spans, hc.CallbackSpan)
		}
	}
	return spans
}

func hookCallRegexp() *regexp.Regexp {
	names := make([]string, 0, len(EffectHookNames)+len(MemoHookNames)+len(StateHookNames)+1)
	for _, group := range [][]string{EffectHookNames, MemoHookNames, StateHookNames} {
		for _, n := range group {
			names = append(names, regexp.QuoteMeta(n))
		}
	}
	names = append(names, "useContext")
	return regexp.MustCompile(`\b(` + strings.Join(names, "|") + `)\s*\(`)
}

// IsEffectHook reports whether name is a tracked effect hook.
func IsEffectHook(name string) bool {
	for _, n := range EffectHookNames {
		if n == name {
			return true
		}
	}
	return false
}

// IsMemoHook reports whether name is a tracked memo hook.
func IsMemoHook(name string) bool {
	for _, n := range MemoHookNames {
		if n == name {
			return true
		}
	}
	return false
}

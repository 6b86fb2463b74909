package rules

import (
	"fmt"
	"sort"

	"github.com/gnana997/renderaudit/pkg/scan"
)

// softInlineProps are props whose inline-creation findings are downgraded
// or skipped: style objects are common enough to rate a warning instead of
// an error, and className/children function values are almost never real
// handler props.
var softInlineProps = map[string]Severity{
	"style": SeverityWarning,
}

var skippedFunctionProps = map[string]bool{
	"className": true,
	"children":  true,
}

// Engine evaluates the rule table against per-component facts.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(th Thresholds) *Engine {
	return &Engine{thresholds: th}
}

// Evaluate maps one component's fact set to an ordered sequence of
// findings: ascending line, then context > inline > effect > expensive >
// complexity within a line.
func (e *Engine) Evaluate(f Facts) []Finding {
	var findings []Finding
	findings = append(findings, e.propFindings(f)...)
	findings = append(findings, e.effectFindings(f)...)
	findings = append(findings, e.expensiveFindings(f)...)
	findings = append(findings, e.complexityFindings(f)...)

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return CategoryOf(findings[i].Type) < CategoryOf(findings[j].Type)
	})
	return findings
}

func (e *Engine) propFindings(f Facts) []Finding {
	var out []Finding
	for _, p := range f.Props {
		base := Finding{
			Line:      p.Line,
			File:      f.File,
			Prop:      p.PropName,
			Component: f.Component.Name,
		}

		switch p.Kind {
		case scan.KindContextValue:
			base.Type = TypeContextValue
			base.Severity = SeverityError
			base.Message = fmt.Sprintf("'%s' value is created inline; every consumer re-renders on each parent render", p.TagName)
			base.Suggestion = "Wrap with useMemo: const value = useMemo(() => ({ ... }), [deps])"

		case scan.KindObjectLiteral:
			base.Type = TypeInlineObject
			base.Severity = SeverityError
			if sev, ok := softInlineProps[p.PropName]; ok {
				base.Severity = sev
			}
			base.Message = fmt.Sprintf("Inline object in prop '%s' creates a new reference every render", p.PropName)
			base.Suggestion = fmt.Sprintf("Extract to a variable outside render, or useMemo if dynamic: const %sValue = useMemo(() => ({ ... }), [deps])", p.PropName)

		case scan.KindArrayLiteral:
			base.Type = TypeInlineArray
			base.Severity = SeverityError
			base.Message = fmt.Sprintf("Inline array in prop '%s' creates a new reference every render", p.PropName)
			base.Suggestion = fmt.Sprintf("Extract to a constant or useMemo: const %sValue = useMemo(() => [...], [deps])", p.PropName)

		case scan.KindNewExpr:
			base.Type = TypeInlineNew
			base.Severity = SeverityError
			base.Message = fmt.Sprintf("Constructor call in prop '%s' creates a new instance every render", p.PropName)
			base.Suggestion = "Move to useMemo: const inst = useMemo(() => new X(...), [])"

		case scan.KindFunctionExpr:
			if skippedFunctionProps[p.PropName] {
				continue
			}
			base.Type = TypeInlineFunction
			base.Severity = SeverityWarning
			base.Message = fmt.Sprintf("Inline function in prop '%s' creates a new reference every render", p.PropName)
			base.Suggestion = "Extract to useCallback: const handler = useCallback((...) => { ... }, [deps])"

		default:
			continue
		}
		out = append(out, base)
	}
	return out
}

func (e *Engine) effectFindings(f Facts) []Finding {
	var out []Finding
	for _, hc := range f.Hooks {
		if !scan.IsEffectHook(hc.HookName) {
			continue
		}
		if hc.IsAsyncCallback {
			out = append(out, Finding{
				Type:       TypeAsyncEffect,
				Severity:   SeverityError,
				Line:       hc.Line,
				File:       f.File,
				Component:  f.Component.Name,
				Message:    fmt.Sprintf("%s callback is async and returns a Promise instead of a cleanup function", hc.HookName),
				Suggestion: "Define the async fn inside: useEffect(() => { const fn = async () => { ... }; fn(); }, [deps])",
			})
		}
		switch {
		case hc.SetStateCallCount >= 1 && !hc.HasDependencyArray:
			out = append(out, Finding{
				Type:       TypeEffectNoDeps,
				Severity:   SeverityError,
				Line:       hc.Line,
				File:       f.File,
				Component:  f.Component.Name,
				Message:    fmt.Sprintf("%s calls setState with no dependency array, causing an infinite re-render loop", hc.HookName),
				Suggestion: "Add a dependency array: useEffect(() => { ... }, [deps])",
			})
		case hc.SetStateCallCount >= e.thresholds.CascadingSetState:
			out = append(out, Finding{
				Type:       TypeEffectCascading,
				Severity:   SeverityWarning,
				Line:       hc.Line,
				File:       f.File,
				Component:  f.Component.Name,
				Message:    fmt.Sprintf("%s makes %d setState calls, cascading re-renders", hc.HookName, hc.SetStateCallCount),
				Suggestion: "Batch with useReducer or combine into a single state object",
			})
		}
	}
	return out
}

func (e *Engine) expensiveFindings(f Facts) []Finding {
	memoSpans := scan.MemoSpans(f.Hooks)

	var out []Finding
	for _, call := range f.Expensive {
		if containedInAny(call.Span, memoSpans) {
			continue
		}
		out = append(out, Finding{
			Type:       TypeExpensiveOp,
			Severity:   SeverityWarning,
			Line:       call.Line,
			File:       f.File,
			Component:  f.Component.Name,
			Message:    fmt.Sprintf("%s runs in the render body on every render", call.Op),
			Suggestion: expensiveSuggestion(call.Op),
		})
	}
	return out
}

func containedInAny(span scan.BracketSpan, outers []scan.BracketSpan) bool {
	for _, o := range outers {
		if o.Contains(span) {
			return true
		}
	}
	return false
}

func expensiveSuggestion(op string) string {
	switch op {
	case ".sort":
		return "Memoize: useMemo(() => [...items].sort(...), [items])"
	case "new RegExp":
		return "Move to module scope or useMemo"
	case ".filter().map":
		return "Memoize the filtered result: useMemo(() => items.filter(...), [items])"
	default:
		return fmt.Sprintf("Wrap with useMemo: useMemo(() => %s(...), [deps])", op)
	}
}

func (e *Engine) complexityFindings(f Facts) []Finding {
	c := f.Component
	th := e.thresholds
	var out []Finding

	lines := c.LineCount()
	switch {
	case lines > th.LargeComponentWarn:
		out = append(out, e.complexityFinding(f, TypeLargeComponent, SeverityWarning,
			fmt.Sprintf("Component '%s' is %d lines; consider splitting", c.Name, lines),
			"Extract sub-components, custom hooks, or utilities"))
	case lines > th.LargeComponentInfo:
		out = append(out, e.complexityFinding(f, TypeLargeComponent, SeverityInfo,
			fmt.Sprintf("Component '%s' is %d lines, approaching the split threshold", c.Name, lines),
			"Consider extracting custom hooks or sub-components"))
	}

	// No finding when the parameter shape gave no prop-count evidence.
	if c.PropCountKnown {
		switch {
		case c.PropCount > th.PropsWarn:
			out = append(out, e.complexityFinding(f, TypeTooManyProps, SeverityWarning,
				fmt.Sprintf("Component '%s' has %d props; its API is too complex", c.Name, c.PropCount),
				"Group related props, use composition, or split the component"))
		case c.PropCount > th.PropsInfo:
			out = append(out, e.complexityFinding(f, TypeTooManyProps, SeverityInfo,
				fmt.Sprintf("Component '%s' has %d props", c.Name, c.PropCount),
				"Consider grouping related props"))
		}
	}

	switch {
	case c.StateHookCount > th.StateHooksWarn:
		out = append(out, e.complexityFinding(f, TypeTooManyState, SeverityWarning,
			fmt.Sprintf("Component '%s' has %d state hooks; state is excessive", c.Name, c.StateHookCount),
			"Combine with useReducer or extract into a custom hook"))
	case c.StateHookCount > th.StateHooksInfo:
		out = append(out, e.complexityFinding(f, TypeTooManyState, SeverityInfo,
			fmt.Sprintf("Component '%s' has %d state hooks", c.Name, c.StateHookCount),
			"Consider combining related state"))
	}

	if c.UsesPropSpread {
		out = append(out, e.complexityFinding(f, TypePropSpreading, SeverityInfo,
			fmt.Sprintf("Component '%s' spreads props into a child tag, forwarding unknown re-render triggers", c.Name),
			"Destructure and pass only the props the child needs"))
	}
	return out
}

func (e *Engine) complexityFinding(f Facts, ftype string, sev Severity, msg, suggestion string) Finding {
	return Finding{
		Type:       ftype,
		Severity:   sev,
		Line:       f.Component.StartLine,
		File:       f.File,
		Component:  f.Component.Name,
		Message:    msg,
		Suggestion: suggestion,
	}
}

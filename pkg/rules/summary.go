package rules

// Summary holds per-file finding counts by category.
type Summary struct {
	InlineCreations int `json:"inline_creations"`
	ContextIssues   int `json:"context_issues"`
	EffectIssues    int `json:"effect_issues"`
	ExpensiveOps    int `json:"expensive_ops"`
	Complexity      int `json:"complexity"`
	TotalIssues     int `json:"total_issues"`
}

// BuildSummary counts findings by category.
func BuildSummary(findings []Finding) Summary {
	var s Summary
	for _, f := range findings {
		switch CategoryOf(f.Type) {
		case CategoryContext:
			s.ContextIssues++
		case CategoryInline:
			s.InlineCreations++
		case CategoryEffect:
			s.EffectIssues++
		case CategoryExpensive:
			s.ExpensiveOps++
		default:
			s.Complexity++
		}
	}
	s.TotalIssues = len(findings)
	return s
}

// Add accumulates other into s.
func (s *Summary) Add(other Summary) {
	s.InlineCreations += other.InlineCreations
	s.ContextIssues += other.ContextIssues
	s.EffectIssues += other.EffectIssues
	s.ExpensiveOps += other.ExpensiveOps
	s.Complexity += other.Complexity
	s.TotalIssues += other.TotalIssues
}

// RuleInfo describes one rule for the rule catalog.
type RuleInfo struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Catalog lists every rule the engine can emit, in category order.
func Catalog() []RuleInfo {
	return []RuleInfo{
		{TypeContextValue, SeverityError, "Context provider value created inline; every consumer re-renders per parent render"},
		{TypeInlineObject, SeverityError, "Inline object literal passed as a prop creates a new reference every render"},
		{TypeInlineArray, SeverityError, "Inline array literal passed as a prop creates a new reference every render"},
		{TypeInlineNew, SeverityError, "Constructor call in a prop creates a new instance every render"},
		{TypeInlineFunction, SeverityWarning, "Inline function passed as a prop creates a new reference every render"},
		{TypeAsyncEffect, SeverityError, "Effect callback is async and returns a Promise instead of a cleanup function"},
		{TypeEffectNoDeps, SeverityError, "Effect calls setState with no dependency array"},
		{TypeEffectCascading, SeverityWarning, "Effect makes three or more setState calls"},
		{TypeExpensiveOp, SeverityWarning, "Expensive operation in the render body outside useMemo"},
		{TypeLargeComponent, SeverityWarning, "Component exceeds the line-count threshold"},
		{TypeTooManyProps, SeverityWarning, "Component takes more props than the threshold"},
		{TypeTooManyState, SeverityWarning, "Component holds more state hooks than the threshold"},
		{TypePropSpreading, SeverityInfo, "Props spread into a child tag forward unknown re-render triggers"},
	}
}

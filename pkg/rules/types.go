// Package rules maps the facts extracted from one component to
// severity-tagged findings. The engine is a pure function of its input:
// it always computes info-severity findings, leaving strict-mode filtering
// to the reporter.
package rules

import "github.com/gnana997/renderaudit/pkg/scan"

// Severity classifies how actionable a finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding type identifiers.
const (
	TypeInlineObject     = "inline-object"
	TypeInlineArray      = "inline-array"
	TypeInlineFunction   = "inline-function"
	TypeInlineNew        = "inline-new"
	TypeContextValue     = "context-value"
	TypeAsyncEffect      = "async-effect"
	TypeEffectNoDeps     = "effect-no-deps"
	TypeEffectCascading  = "effect-cascading-setstate"
	TypeExpensiveOp      = "expensive-render-op"
	TypeLargeComponent   = "large-component"
	TypeTooManyProps     = "too-many-props"
	TypeTooManyState     = "too-many-state"
	TypePropSpreading    = "prop-spreading"
)

// Finding is one classified observation about a component.
type Finding struct {
	Type       string   `json:"type"`
	Severity   Severity `json:"severity"`
	Line       int      `json:"line"`
	File       string   `json:"file"`
	Prop       string   `json:"prop,omitempty"`
	Component  string   `json:"component,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion"`
}

// Category groups finding types for ordering and summary counting.
type Category int

const (
	CategoryContext Category = iota
	CategoryInline
	CategoryEffect
	CategoryExpensive
	CategoryComplexity
)

// CategoryOf returns the category of a finding type. Unknown types sort
// with complexity, last.
func CategoryOf(findingType string) Category {
	switch findingType {
	case TypeContextValue:
		return CategoryContext
	case TypeInlineObject, TypeInlineArray, TypeInlineFunction, TypeInlineNew:
		return CategoryInline
	case TypeAsyncEffect, TypeEffectNoDeps, TypeEffectCascading:
		return CategoryEffect
	case TypeExpensiveOp:
		return CategoryExpensive
	default:
		return CategoryComplexity
	}
}

// Thresholds hold the component-complexity limits.
type Thresholds struct {
	LargeComponentWarn int
	LargeComponentInfo int
	PropsWarn          int
	PropsInfo          int
	StateHooksWarn     int
	StateHooksInfo     int
	CascadingSetState  int
}

// DefaultThresholds returns the stock limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LargeComponentWarn: 250,
		LargeComponentInfo: 150,
		PropsWarn:          10,
		PropsInfo:          7,
		StateHooksWarn:     5,
		StateHooksInfo:     3,
		CascadingSetState:  3,
	}
}

// Facts is the complete extracted fact set for one component. The engine
// never looks outside it, so components evaluate independently.
type Facts struct {
	File      string
	Component scan.ComponentRecord
	Props     []scan.PropExpression
	Hooks     []scan.HookCall
	Expensive []scan.ExpensiveCall
}

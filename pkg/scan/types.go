// Package scan turns raw JSX/TSX source text into structured facts about
// React components: component boundaries, prop value expressions, hook
// calls, and expensive render operations. It works on plain text with a
// string/comment-aware balanced-delimiter scanner instead of a full parser,
// so every boundary it reports is a heuristic, not a proof.
package scan

import "errors"

// ErrUnterminatedSpan is returned when the delimiter scanner reaches end of
// text with an open delimiter still on the stack. Callers skip the construct
// being extracted and keep scanning the rest of the file.
var ErrUnterminatedSpan = errors.New("unterminated span: end of text with open delimiter")

// BracketSpan is an index range into the raw source text, inclusive of the
// opening and matching closing delimiter.
type BracketSpan struct {
	Start int
	End   int
}

// Contains reports whether other lies entirely within s.
func (s BracketSpan) Contains(other BracketSpan) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Len returns the number of bytes covered by the span.
func (s BracketSpan) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start + 1
}

// BodyKind distinguishes brace-delimited component bodies from
// implicit-return arrow bodies.
type BodyKind int

const (
	// BlockBody is a `{ ... }` function body.
	BlockBody BodyKind = iota
	// ExpressionBody is an implicit-return arrow body: `=> (<expr>)` or
	// `=> <expr>` with no braces.
	ExpressionBody
)

// ComponentRecord describes one recognized component definition.
// Immutable after extraction; identity is (Name, StartLine).
type ComponentRecord struct {
	Name      string
	StartLine int
	EndLine   int
	// PropNames holds the top-level destructured parameter keys, or the
	// distinct props.X member names when the parameter is a plain
	// identifier. Order follows source order.
	PropNames []string
	PropCount int
	// PropCountKnown is false when the parameter shape gave no evidence of
	// a prop count. Absence of evidence must not become a complexity
	// finding.
	PropCountKnown  bool
	StateHookCount  int
	UsesPropSpread  bool
	BodyKind        BodyKind
	Body            BracketSpan
}

// LineCount returns the number of source lines the component spans.
func (c ComponentRecord) LineCount() int {
	return c.EndLine - c.StartLine + 1
}

// ValueKind is the coarse syntactic category of a JSX attribute expression.
type ValueKind string

const (
	KindObjectLiteral ValueKind = "object-literal"
	KindArrayLiteral  ValueKind = "array-literal"
	KindFunctionExpr  ValueKind = "function-expression"
	KindNewExpr       ValueKind = "new-expression"
	// KindContextValue is the escalated category for the `value` prop of a
	// context provider tag. It takes precedence over the generic kinds.
	KindContextValue ValueKind = "context-value"
	KindOther        ValueKind = "other"
)

// PropExpression is one JSX attribute whose value is an expression
// (not a string literal).
type PropExpression struct {
	Component string
	PropName  string
	// TagName is the JSX element owning the attribute, e.g. "Child" or
	// "ThemeContext.Provider".
	TagName string
	// Line is the line of the attribute's `=`, not the line of the closing
	// delimiter of a multi-line value.
	Line      int
	ValueSpan BracketSpan
	Kind      ValueKind
}

// HookCall is one recognized hook invocation inside a component body.
type HookCall struct {
	Component string
	HookName  string
	Line      int
	// IsAsyncCallback is true iff the token immediately preceding the
	// callback's parameter list is the `async` keyword. Effects only.
	IsAsyncCallback bool
	// HasDependencyArray is false when the call has exactly one argument.
	HasDependencyArray bool
	DepsSpan           *BracketSpan
	// CallbackSpan covers the first argument. For useMemo/useCallback it is
	// the containment target that suppresses expensive-operation findings.
	CallbackSpan BracketSpan
	// SetStateCallCount counts setter-convention call sites strictly inside
	// CallbackSpan. Effects only; zero for other hooks.
	SetStateCallCount int
}

// ExpensiveCall is a call site matching a tracked expensive-operation
// pattern in a component body.
type ExpensiveCall struct {
	Component string
	Op        string
	Line      int
	Span      BracketSpan
}

package scan

import (
	"fmt"
	"strings"
)

// lexMode is the lexical region the scanner is currently inside.
type lexMode int

const (
	modeCode lexMode = iota
	modeSingleQuote
	modeDoubleQuote
	modeTemplate
	modeLineComment
	modeBlockComment
)

// delimFrame is one open delimiter on the scanner stack. template frames
// mark a `${` expression inside a template literal; popping one returns the
// scanner to template mode instead of code mode.
type delimFrame struct {
	closer   byte
	template bool
}

type eventKind int

const (
	evSkip eventKind = iota // consumed inside a string/comment, or multi-byte token
	evCode                  // plain code byte
	evOpen                  // delimiter pushed
	evClose                 // delimiter popped (matched)
)

type event struct {
	kind  eventKind
	index int
	char  byte
}

// lexer is the shared scanning primitive. Every "find the end of this
// expression" operation in the package goes through it, so string, template
// and comment handling is consistent everywhere.
type lexer struct {
	src   string
	pos   int
	mode  lexMode
	stack []delimFrame
}

func newLexer(src string, pos int) *lexer {
	return &lexer{src: src, pos: pos}
}

func (lx *lexer) depth() int { return len(lx.stack) }

// step consumes one lexical unit at the current position and reports what
// happened there. Multi-byte units (escapes, `${`, `*/`, `//`, `/*`) are
// consumed whole.
func (lx *lexer) step() event {
	i := lx.pos
	c := lx.src[i]

	switch lx.mode {
	case modeLineComment:
		if c == '\n' {
			lx.mode = modeCode
		}
		lx.pos++
		return event{evSkip, i, c}

	case modeBlockComment:
		if c == '*' && i+1 < len(lx.src) && lx.src[i+1] == '/' {
			lx.mode = modeCode
			lx.pos += 2
			return event{evSkip, i, c}
		}
		lx.pos++
		return event{evSkip, i, c}

	case modeSingleQuote, modeDoubleQuote:
		if c == '\\' {
			lx.pos += 2
			return event{evSkip, i, c}
		}
		if (lx.mode == modeSingleQuote && c == '\'') || (lx.mode == modeDoubleQuote && c == '"') {
			lx.mode = modeCode
		}
		lx.pos++
		return event{evSkip, i, c}

	case modeTemplate:
		if c == '\\' {
			lx.pos += 2
			return event{evSkip, i, c}
		}
		if c == '`' {
			lx.mode = modeCode
			lx.pos++
			return event{evSkip, i, c}
		}
		if c == '$' && i+1 < len(lx.src) && lx.src[i+1] == '{' {
			lx.stack = append(lx.stack, delimFrame{closer: '}', template: true})
			lx.mode = modeCode
			lx.pos += 2
			return event{evOpen, i, c}
		}
		lx.pos++
		return event{evSkip, i, c}
	}

	// modeCode
	switch c {
	case '/':
		if i+1 < len(lx.src) {
			switch lx.src[i+1] {
			case '/':
				lx.mode = modeLineComment
				lx.pos += 2
				return event{evSkip, i, c}
			case '*':
				lx.mode = modeBlockComment
				lx.pos += 2
				return event{evSkip, i, c}
			}
		}
	case '\'':
		lx.mode = modeSingleQuote
		lx.pos++
		return event{evSkip, i, c}
	case '"':
		lx.mode = modeDoubleQuote
		lx.pos++
		return event{evSkip, i, c}
	case '`':
		lx.mode = modeTemplate
		lx.pos++
		return event{evSkip, i, c}
	case '{', '[', '(':
		lx.stack = append(lx.stack, delimFrame{closer: closerOf(c)})
		lx.pos++
		return event{evOpen, i, c}
	case '}', ']', ')':
		if n := len(lx.stack); n > 0 && lx.stack[n-1].closer == c {
			fr := lx.stack[n-1]
			lx.stack = lx.stack[:n-1]
			if fr.template {
				lx.mode = modeTemplate
			}
			lx.pos++
			return event{evClose, i, c}
		}
		// A closer with no matching opener is treated as plain code; the
		// caller decides whether that matters.
	}
	lx.pos++
	return event{evCode, i, c}
}

func closerOf(open byte) byte {
	switch open {
	case '{':
		return '}'
	case '[':
		return ']'
	default:
		return ')'
	}
}

func isOpener(c byte) bool {
	return c == '{' || c == '[' || c == '('
}

// MatchDelimiter returns the index of the delimiter matching the opener at
// start, counting only delimiters outside string, template-literal and
// comment regions. Returns ErrUnterminatedSpan when end-of-text is reached
// with the stack still open.
func MatchDelimiter(src string, start int) (int, error) {
	if start < 0 || start >= len(src) || !isOpener(src[start]) {
		return 0, fmt.Errorf("no opening delimiter at index %d", start)
	}
	lx := newLexer(src, start)
	for lx.pos < len(src) {
		ev := lx.step()
		if ev.kind == evClose && lx.depth() == 0 {
			return ev.index, nil
		}
	}
	return 0, ErrUnterminatedSpan
}

// MatchSpan is MatchDelimiter returning a BracketSpan inclusive of both
// delimiters.
func MatchSpan(src string, start int) (BracketSpan, error) {
	end, err := MatchDelimiter(src, start)
	if err != nil {
		return BracketSpan{}, err
	}
	return BracketSpan{Start: start, End: end}, nil
}

// splitTopLevel splits a delimited list (the opener sits at open) at its
// depth-1 commas. It returns one raw span per argument (not trimmed, not
// including the delimiters) and the index of the closing delimiter. A
// trailing comma does not produce an empty final argument.
func splitTopLevel(src string, open int) ([]BracketSpan, int, error) {
	if open < 0 || open >= len(src) || !isOpener(src[open]) {
		return nil, 0, fmt.Errorf("no opening delimiter at index %d", open)
	}
	lx := newLexer(src, open)
	lx.step() // consume the opener

	var args []BracketSpan
	argStart := lx.pos
	for lx.pos < len(src) {
		ev := lx.step()
		switch {
		case ev.kind == evClose && lx.depth() == 0:
			if strings.TrimSpace(src[argStart:ev.index]) != "" {
				args = append(args, BracketSpan{Start: argStart, End: ev.index - 1})
			}
			return args, ev.index, nil
		case ev.kind == evCode && ev.char == ',' && lx.depth() == 1:
			args = append(args, BracketSpan{Start: argStart, End: ev.index - 1})
			argStart = ev.index + 1
		}
	}
	return nil, 0, ErrUnterminatedSpan
}

// trimSpan shrinks a raw span to its non-whitespace extent. Returns false
// when the span is empty or all whitespace.
func trimSpan(src string, sp BracketSpan) (BracketSpan, bool) {
	start, end := sp.Start, sp.End
	for start <= end && isSpace(src[start]) {
		start++
	}
	for end >= start && isSpace(src[end]) {
		end--
	}
	if start > end {
		return BracketSpan{}, false
	}
	return BracketSpan{Start: start, End: end}, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// LineAt returns the 1-indexed line number of byte position pos.
func LineAt(src string, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	return strings.Count(src[:pos], "\n") + 1
}

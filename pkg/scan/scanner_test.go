package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchDelimiter_Nested(t *testing.T) {
	src := `{ a: { b: [1, 2, (3)] } }`
	end, err := MatchDelimiter(src, 0)
	require.NoError(t, err)
	assert.Equal(t, len(src)-1, end)
}

func TestMatchDelimiter_BracketsInsideStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"single quotes", `{ label: 'not } a close' }`},
		{"double quotes", `{ label: "not } a close" }`},
		{"template literal", "{ label: `not } a close` }"},
		{"escaped quote", `{ label: 'it\'s } fine' }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := MatchDelimiter(tt.src, 0)
			require.NoError(t, err)
			assert.Equal(t, len(tt.src)-1, end, "should match the final brace")
		})
	}
}

func TestMatchDelimiter_BracketsInsideComments(t *testing.T) {
	src := "{\n  // ignore }\n  /* also } ignored */\n  x: 1\n}"
	end, err := MatchDelimiter(src, 0)
	require.NoError(t, err)
	assert.Equal(t, len(src)-1, end)
}

func TestMatchDelimiter_TemplateExpression(t *testing.T) {
	// The `${}` expression contains a real closing brace inside an object
	// literal; only the sentinel pop may return the scanner to template mode.
	src := "{ msg: `count: ${fmt({ n: 1 })} items` }"
	end, err := MatchDelimiter(src, 0)
	require.NoError(t, err)
	assert.Equal(t, len(src)-1, end)
}

func TestMatchDelimiter_BraceInTemplateTextIgnored(t *testing.T) {
	src := "{ msg: `literal } brace` }"
	end, err := MatchDelimiter(src, 0)
	require.NoError(t, err)
	assert.Equal(t, len(src)-1, end)
}

func TestMatchDelimiter_Unterminated(t *testing.T) {
	_, err := MatchDelimiter(`{ a: [1, 2 }`, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnterminatedSpan)

	_, err = MatchDelimiter(`( open forever`, 0)
	assert.ErrorIs(t, err, ErrUnterminatedSpan)
}

func TestMatchDelimiter_NotAnOpener(t *testing.T) {
	_, err := MatchDelimiter(`abc`, 0)
	assert.Error(t, err)

	_, err = MatchDelimiter(`{}`, 5)
	assert.Error(t, err)
}

func TestMatchDelimiter_Deterministic(t *testing.T) {
	src := `{ fn: (a, b) => ({ [a]: b }) }`
	first, err := MatchDelimiter(src, 0)
	require.NoError(t, err)
	second, err := MatchDelimiter(src, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMatchSpan(t *testing.T) {
	src := `useMemo(() => x, [x])`
	sp, err := MatchSpan(src, strings.IndexByte(src, '('))
	require.NoError(t, err)
	assert.Equal(t, strings.IndexByte(src, '('), sp.Start)
	assert.Equal(t, len(src)-1, sp.End)
	assert.Equal(t, len(src)-7, sp.Len())
}

func TestSplitTopLevel_Arguments(t *testing.T) {
	src := `fn(() => { a(1, 2); }, [x, y], "a,b")`
	open := strings.IndexByte(src, '(')
	args, close, err := splitTopLevel(src, open)
	require.NoError(t, err)
	assert.Equal(t, len(src)-1, close)
	require.Len(t, args, 3)

	text := func(sp BracketSpan) string { return strings.TrimSpace(src[sp.Start : sp.End+1]) }
	assert.Equal(t, "() => { a(1, 2); }", text(args[0]))
	assert.Equal(t, "[x, y]", text(args[1]))
	assert.Equal(t, `"a,b"`, text(args[2]))
}

func TestSplitTopLevel_Empty(t *testing.T) {
	args, close, err := splitTopLevel(`fn()`, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, close)
	assert.Empty(t, args)
}

func TestSplitTopLevel_DestructuringKeys(t *testing.T) {
	src := `{ a, b = { x: 1 }, ...rest }`
	args, _, err := splitTopLevel(src, 0)
	require.NoError(t, err)
	require.Len(t, args, 3)
	assert.Equal(t, "b = { x: 1 }", strings.TrimSpace(src[args[1].Start:args[1].End+1]))
	assert.Equal(t, "...rest", strings.TrimSpace(src[args[2].Start:args[2].End+1]))
}

func TestSplitTopLevel_TrailingComma(t *testing.T) {
	src := `fn(a, b,)`
	args, close, err := splitTopLevel(src, 2)
	require.NoError(t, err)
	assert.Equal(t, len(src)-1, close)
	require.Len(t, args, 2)
	assert.Equal(t, "b", strings.TrimSpace(src[args[1].Start:args[1].End+1]))
}

func TestSplitTopLevel_Unterminated(t *testing.T) {
	_, _, err := splitTopLevel(`fn(a, b`, 2)
	assert.ErrorIs(t, err, ErrUnterminatedSpan)
}

func TestTrimSpan(t *testing.T) {
	src := "  hello \n"
	sp, ok := trimSpan(src, BracketSpan{Start: 0, End: len(src) - 1})
	require.True(t, ok)
	assert.Equal(t, "hello", src[sp.Start:sp.End+1])

	_, ok = trimSpan("   ", BracketSpan{Start: 0, End: 2})
	assert.False(t, ok)
}

func TestLineAt(t *testing.T) {
	src := "a\nb\nc"
	assert.Equal(t, 1, LineAt(src, 0))
	assert.Equal(t, 2, LineAt(src, 2))
	assert.Equal(t, 3, LineAt(src, 4))
	assert.Equal(t, 3, LineAt(src, 99), "positions past the end clamp to the last line")
}

func TestBracketSpan_Contains(t *testing.T) {
	outer := BracketSpan{Start: 10, End: 50}
	assert.True(t, outer.Contains(BracketSpan{Start: 10, End: 50}))
	assert.True(t, outer.Contains(BracketSpan{Start: 20, End: 30}))
	assert.False(t, outer.Contains(BracketSpan{Start: 5, End: 30}))
	assert.False(t, outer.Contains(BracketSpan{Start: 20, End: 60}))
}

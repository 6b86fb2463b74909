package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanHooks(t *testing.T, src string) []HookCall {
	t.Helper()
	comps := FindComponents(src)
	require.Len(t, comps, 1)
	return FindHookCalls(src, comps[0])
}

func hookAt(t *testing.T, calls []HookCall, name string, line int) HookCall {
	t.Helper()
	for _, hc := range calls {
		if hc.HookName == name && hc.Line == line {
			return hc
		}
	}
	t.Fatalf("no %s call on line %d", name, line)
	return HookCall{}
}

func TestFindHookCalls_EffectShapes(t *testing.T) {
	src := `function Loader({ id }) {
  const [data, setData] = useState(null);

  useEffect(async () => {
    await fetchData(id);
  }, [id]);

  useEffect(() => {
    setData(compute(id));
  });

  useEffect(() => {
    subscribe(id);
  }, [id]);

  return <div>{data}</div>;
}
`
	calls := scanHooks(t, src)

	async := hookAt(t, calls, "useEffect", 4)
	assert.True(t, async.IsAsyncCallback)
	assert.True(t, async.HasDependencyArray)
	require.NotNil(t, async.DepsSpan)
	assert.Equal(t, "[id]", src[async.DepsSpan.Start:async.DepsSpan.End+1])

	noDeps := hookAt(t, calls, "useEffect", 8)
	assert.False(t, noDeps.IsAsyncCallback)
	assert.False(t, noDeps.HasDependencyArray)
	assert.Nil(t, noDeps.DepsSpan)
	assert.Equal(t, 1, noDeps.SetStateCallCount)

	clean := hookAt(t, calls, "useEffect", 12)
	assert.True(t, clean.HasDependencyArray)
	assert.Equal(t, 0, clean.SetStateCallCount)
}

func TestFindHookCalls_SetStateScopedToCallback(t *testing.T) {
	src := `function Counter() {
  const [n, setN] = useState(0);
  const [m, setM] = useState(0);

  useEffect(() => {
    setN(1);
  }, []);

  const bump = () => setM(m + 1);
  return <button onClick={bump}>{n}</button>;
}
`
	calls := scanHooks(t, src)
	effect := hookAt(t, calls, "useEffect", 5)
	assert.Equal(t, 1, effect.SetStateCallCount,
		"setter calls outside the effect callback do not count")
}

func TestFindHookCalls_CascadingSetState(t *testing.T) {
	src := `function Sync({ user }) {
  useEffect(() => {
    setName(user.name);
    setEmail(user.email);
    setPhone(user.phone);
  }, [user]);
  return <div />;
}
`
	calls := scanHooks(t, src)
	effect := hookAt(t, calls, "useEffect", 2)
	assert.Equal(t, 3, effect.SetStateCallCount)
}

func TestFindHookCalls_MemoAndState(t *testing.T) {
	src := `function Report({ raw }) {
  const parsed = useMemo(() => JSON.parse(raw), [raw]);
  const onPick = useCallback((x) => pick(x), []);
  const theme = useContext(ThemeContext);
  const [open, setOpen] = useState(false);
  return <div className={theme}>{parsed}</div>;
}
`
	calls := scanHooks(t, src)
	require.Len(t, calls, 4)

	memo := hookAt(t, calls, "useMemo", 2)
	assert.Equal(t, "() => JSON.parse(raw)", src[memo.CallbackSpan.Start:memo.CallbackSpan.End+1])

	spans := MemoSpans(calls)
	assert.Len(t, spans, 2, "useMemo and useCallback both contribute suppression spans")

	// State and context hooks are call sites only.
	state := hookAt(t, calls, "useState", 5)
	assert.Equal(t, 0, state.SetStateCallCount)
	assert.Equal(t, BracketSpan{}, state.CallbackSpan)
}

func TestFindHookCalls_LayoutEffect(t *testing.T) {
	src := `function Meter() {
  useLayoutEffect(() => {
    measure();
  }, []);
  return <div className="meter" />;
}
`
	calls := scanHooks(t, src)
	effect := hookAt(t, calls, "useLayoutEffect", 2)
	assert.True(t, effect.HasDependencyArray)
}

func TestFindHookCalls_BareReferenceNotACall(t *testing.T) {
	src := "function Solo() {\n" +
		"  const label = `x${useEffect}`;\n" +
		"  return <div className={label} />;\n" +
		"}\n"
	calls := scanHooks(t, src)
	for _, hc := range calls {
		assert.NotEqual(t, "useEffect", hc.HookName,
			"a bare hook reference is not a call")
	}
}

func TestFindHookCalls_TrailingCommaIsNotADependencyArray(t *testing.T) {
	src := `function Feed({ id }) {
  useEffect(() => {
    setItems(load(id));
  },);
  return null;
}
`
	calls := scanHooks(t, src)
	require.Len(t, calls, 1)

	hc := calls[0]
	assert.False(t, hc.HasDependencyArray)
	assert.Nil(t, hc.DepsSpan)
	assert.Equal(t, 1, hc.SetStateCallCount)
}

func TestIsEffectAndMemoHook(t *testing.T) {
	assert.True(t, IsEffectHook("useEffect"))
	assert.True(t, IsEffectHook("useLayoutEffect"))
	assert.False(t, IsEffectHook("useMemo"))
	assert.True(t, IsMemoHook("useMemo"))
	assert.True(t, IsMemoHook("useCallback"))
	assert.False(t, IsMemoHook("useEffect"))
}

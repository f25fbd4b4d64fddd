package lua

import (
	"bytes"
	"errors"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	state, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { _ = state.Close() })
	return state
}

func TestStateDoString(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", v)
	}

	if err := state.DoString(`this is not lua`); err == nil {
		t.Error("DoString() with a syntax error should fail")
	}
}

func TestStateSandbox(t *testing.T) {
	state := newTestState(t)

	removed := []string{"dofile", "loadfile", "load", "loadstring", "require", "module", "io", "os", "debug"}
	for _, name := range removed {
		if v := state.GetGlobal(name); v != glua.LNil {
			t.Errorf("global %s = %v, want nil", name, v)
		}
	}

	for _, name := range []string{"string", "table", "math", "print", "pairs"} {
		if v := state.GetGlobal(name); v == glua.LNil {
			t.Errorf("global %s missing", name)
		}
	}
}

func TestStatePrint(t *testing.T) {
	var out bytes.Buffer
	state := newTestState(t, WithOutput(&out))

	if err := state.DoString(`print("total", 19)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := out.String(); got != "total\t19\n" {
		t.Errorf("print output = %q, want %q", got, "total\t19\n")
	}
}

func TestStateTimeout(t *testing.T) {
	state := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("DoString() = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := state.DoString(`y = 3`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateCallLimit(t *testing.T) {
	state := newTestState(t, WithCallLimit(10))
	state.RegisterModule("host", map[string]glua.LGFunction{
		"noop": func(*glua.LState) int { return 0 },
	})

	if err := state.DoString(`for i = 1, 10 do host.noop() end`); err != nil {
		t.Fatalf("DoString() within limit error = %v", err)
	}

	err := state.DoString(`for i = 1, 11 do host.noop() end`)
	if !errors.Is(err, ErrCallLimit) {
		t.Errorf("DoString() = %v, want ErrCallLimit", err)
	}
	if got := state.Sandbox().CallCount(); got != 11 {
		t.Errorf("CallCount() = %d, want 11", got)
	}
}

func TestStateCall(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`function add(a, b) return a + b, "sum" end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	results, err := state.Call("add", glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(results) != 2 || results[0] != glua.LNumber(5) || results[1] != glua.LString("sum") {
		t.Errorf("Call() = %v, want [5 sum]", results)
	}

	state.SetGlobal("notfn", glua.LString("x"))
	if _, err := state.Call("notfn"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(notfn) = %v, want ErrNotFunction", err)
	}
	if _, err := state.Call("missing"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(missing) = %v, want ErrNotFunction", err)
	}
}

func TestStateClose(t *testing.T) {
	state, _ := NewState()

	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close = %v, want ErrStateClosed", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNil {
		t.Errorf("GetGlobal() after Close = %v, want nil", v)
	}
}

func TestBridge(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	lv := ToLuaValue(L, map[string]any{
		"name":  "calc",
		"count": 3,
		"ok":    true,
		"keys":  []string{"1", "+"},
		"skip":  struct{}{},
	})
	tbl, ok := lv.(*glua.LTable)
	if !ok {
		t.Fatalf("ToLuaValue(map) = %T, want table", lv)
	}
	if tbl.RawGetString("name") != glua.LString("calc") {
		t.Errorf("name = %v", tbl.RawGetString("name"))
	}
	if tbl.RawGetString("skip") != glua.LNil {
		t.Errorf("skip = %v, want nil", tbl.RawGetString("skip"))
	}

	back, ok := ToGoValue(tbl).(map[string]any)
	if !ok {
		t.Fatalf("ToGoValue(table) = %T, want map", ToGoValue(tbl))
	}
	if back["count"] != int64(3) || back["ok"] != true {
		t.Errorf("ToGoValue() = %v", back)
	}
	if ToGoValue(glua.LNumber(2.5)) != 2.5 {
		t.Errorf("ToGoValue(2.5) = %v", ToGoValue(glua.LNumber(2.5)))
	}
}

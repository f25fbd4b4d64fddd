package engine

import (
	"errors"
	"testing"
)

func applyAll(t *testing.T, s State, inputs ...Input) (State, error) {
	t.Helper()
	var err error
	for _, in := range inputs {
		s, err = Apply(s, in)
	}
	return s, err
}

func digits(s string) []Input {
	inputs := make([]Input, 0, len(s))
	for _, r := range s {
		inputs = append(inputs, DigitInput(r))
	}
	return inputs
}

func TestClear(t *testing.T) {
	states := []State{
		NewState(),
		{Current: "42", Previous: "7", Operation: OpAdd},
		{Current: DivideByZeroMessage, Complete: true},
		{Current: "3.5", Complete: true},
	}

	for _, s := range states {
		got, err := Apply(s, ClearInput)
		if err != nil {
			t.Fatalf("Apply(%v, clear) error: %v", s, err)
		}
		if !got.IsReset() {
			t.Errorf("Apply(%v, clear) = %v, expected reset state", s, got)
		}
		twice, _ := Apply(got, ClearInput)
		if twice != got {
			t.Errorf("clear twice = %v, expected %v", twice, got)
		}
	}
}

func TestAppendDigit_Sequences(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"7", "7"},
		{"123", "123"},
		{"0007", "7"},
		{"0.5", "0.5"},
		{".5", "0.5"},
		{"10.05", "10.05"},
		{"123456789012", "123456789012"},
		{"12345678901.2", "12345678901.2"},
		{"0", "0"},
	}

	for _, tt := range tests {
		s, err := applyAll(t, NewState(), digits(tt.input)...)
		if err != nil {
			t.Errorf("digits %q: unexpected error %v", tt.input, err)
		}
		if s.Current != tt.expected {
			t.Errorf("digits %q: Current = %q, expected %q", tt.input, s.Current, tt.expected)
		}
	}
}

func TestAppendDigit_DuplicateDecimal(t *testing.T) {
	s, err := applyAll(t, NewState(), digits("1..")...)
	if !errors.Is(err, ErrDuplicateDecimal) {
		t.Fatalf("expected ErrDuplicateDecimal, got %v", err)
	}
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("expected error to wrap ErrInvalidEntry")
	}
	if s.Current != "1." {
		t.Errorf("Current = %q, expected %q", s.Current, "1.")
	}
}

func TestAppendDigit_MaxDigits(t *testing.T) {
	tests := []struct {
		entered  string
		expected string
	}{
		{"1234567890123", "123456789012"},
		{"12345678901.23", "12345678901.2"},
		{"999999999999.", "999999999999."},
	}

	for _, tt := range tests {
		s, err := applyAll(t, NewState(), digits(tt.entered)...)
		if s.Current != tt.expected {
			t.Errorf("digits %q: Current = %q, expected %q", tt.entered, s.Current, tt.expected)
		}
		if CountDigits(tt.entered) > MaxDigits && !errors.Is(err, ErrMaxDigits) {
			t.Errorf("digits %q: expected ErrMaxDigits, got %v", tt.entered, err)
		}
	}
}

func TestAppendDigit_FreshStartAfterResult(t *testing.T) {
	done := State{Current: "19", Complete: true}

	s, err := AppendDigit(done, '5')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Current != "5" || s.Complete {
		t.Errorf("AppendDigit after result = %v, expected current 5 and not complete", s)
	}

	s, _ = AppendDigit(done, '.')
	if s.Current != "0." {
		t.Errorf("AppendDigit('.') after result = %q, expected %q", s.Current, "0.")
	}

	errState := State{Current: DivideByZeroMessage, Complete: true}
	s, _ = AppendDigit(errState, '8')
	if s.Current != "8" {
		t.Errorf("AppendDigit after error = %q, expected %q", s.Current, "8")
	}
}

func TestAppendDigit_InvalidRune(t *testing.T) {
	s := State{Current: "12"}
	got, err := AppendDigit(s, 'a')
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if got != s {
		t.Errorf("state changed on invalid rune: %v", got)
	}
}

func TestScenario_Addition(t *testing.T) {
	inputs := append(digits("12"), OperatorInput(OpAdd))
	inputs = append(inputs, digits("7")...)
	inputs = append(inputs, EqualsInput)

	s, err := applyAll(t, NewState(), inputs...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Current != "19" {
		t.Errorf("12 + 7 = %q, expected %q", s.Current, "19")
	}
	if !s.Complete || s.Pending() || s.Previous != "" {
		t.Errorf("state after equals = %v", s)
	}
}

func TestScenario_DivideByZero(t *testing.T) {
	inputs := append(digits("5"), OperatorInput(OpDivide))
	inputs = append(inputs, digits("0")...)
	inputs = append(inputs, EqualsInput)

	s, err := applyAll(t, NewState(), inputs...)
	if !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}
	if s.Current != DivideByZeroMessage {
		t.Errorf("Current = %q, expected %q", s.Current, DivideByZeroMessage)
	}
	if !s.Complete {
		t.Error("expected Complete after divide by zero")
	}
	if s.Previous != "" || s.Pending() {
		t.Errorf("expected pending operation cleared, got %v", s)
	}
	if s.Phase() != PhaseErrorShown {
		t.Errorf("Phase() = %v, expected %v", s.Phase(), PhaseErrorShown)
	}
}

func TestCalculate_Operations(t *testing.T) {
	tests := []struct {
		prev     string
		op       Operation
		cur      string
		expected string
	}{
		{"2", OpPower, "10", "1024"},
		{"12", OpAdd, "7", "19"},
		{"3", OpSubtract, "10", "-7"},
		{"6", OpMultiply, "7", "42"},
		{"10", OpDivide, "4", "2.5"},
		{"1", OpDivide, "3", "0.3333333333"},
		{"2", OpDivide, "3", "0.6666666667"},
		{"0.1", OpAdd, "0.2", "0.3"},
		{"1234567.891", OpMultiply, "1", "1234567.891"},
		{"7.5", OpModulo, "2", "1.5"},
		{"-7", OpModulo, "3", "-1"},
		{"7", OpModulo, "-3", "1"},
		{"0", OpMultiply, "-1", "0"},
		{"10", OpPower, "20", "100000000000000000000"},
		{"2", OpPower, "70", "1.1805916207174113e+21"},
		{"0", OpPower, "-1", "Infinity"},
		{"5", OpModulo, "0", "NaN"},
		{"1.", OpAdd, "1", "2"},
	}

	for _, tt := range tests {
		s := State{Previous: tt.prev, Operation: tt.op, Current: tt.cur}
		got, err := Calculate(s)
		if err != nil {
			t.Errorf("%s %s %s: unexpected error %v", tt.prev, tt.op, tt.cur, err)
			continue
		}
		if got.Current != tt.expected {
			t.Errorf("%s %s %s = %q, expected %q", tt.prev, tt.op, tt.cur, got.Current, tt.expected)
		}
		if !got.Complete || got.Pending() {
			t.Errorf("%s %s %s: state = %v, expected completed", tt.prev, tt.op, tt.cur, got)
		}
	}
}

func TestCalculate_NoOp(t *testing.T) {
	states := []State{
		NewState(),
		{Current: "5", Previous: "abc", Operation: OpAdd},
		{Current: DivideByZeroMessage, Previous: "2", Operation: OpAdd},
		{Current: "5", Previous: "3", Operation: Operation("?")},
	}

	for _, s := range states {
		got, err := Calculate(s)
		if err != nil {
			t.Errorf("Calculate(%v) error: %v", s, err)
		}
		if got != s {
			t.Errorf("Calculate(%v) = %v, expected unchanged", s, got)
		}
	}
}

func TestChooseOperation_Chaining(t *testing.T) {
	inputs := append(digits("2"), OperatorInput(OpAdd))
	inputs = append(inputs, digits("3")...)
	inputs = append(inputs, OperatorInput(OpMultiply))
	inputs = append(inputs, digits("4")...)
	inputs = append(inputs, EqualsInput)

	s, err := applyAll(t, NewState(), inputs...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Current != "20" {
		t.Errorf("2 + 3 × 4 = %q, expected %q (left to right)", s.Current, "20")
	}
}

func TestChooseOperation_Twice(t *testing.T) {
	start, _ := applyAll(t, NewState(), DigitInput('5'), OperatorInput(OpAdd))

	twice, err := ChooseOperation(start, OpMultiply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	evaluated, _ := Calculate(start)
	expected, _ := ChooseOperation(evaluated, OpMultiply)

	if twice != expected {
		t.Errorf("ChooseOperation twice = %v, expected %v", twice, expected)
	}
	if twice.Previous != "5" || twice.Operation != OpMultiply || twice.Current != "0" || twice.Complete {
		t.Errorf("unexpected state %v", twice)
	}
}

func TestChooseOperation_AfterResult(t *testing.T) {
	s := State{Current: "19", Complete: true}
	got, err := ChooseOperation(s, OpSubtract)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := State{Current: "0", Previous: "19", Operation: OpSubtract}
	if got != expected {
		t.Errorf("ChooseOperation after result = %v, expected %v", got, expected)
	}
}

func TestChooseOperation_ChainedDivideByZero(t *testing.T) {
	s := State{Previous: "8", Operation: OpDivide, Current: "0"}
	got, err := ChooseOperation(s, OpAdd)
	if !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}
	expected := State{Current: "0", Previous: DivideByZeroMessage, Operation: OpAdd}
	if got != expected {
		t.Errorf("ChooseOperation after divide by zero = %v, expected %v", got, expected)
	}
}

func TestEngine_ChainedDivideByZero(t *testing.T) {
	var signals []Signal
	e := New(WithNotifier(NotifierFunc(func(sig Signal) { signals = append(signals, sig) })))

	inputs := []Input{DigitInput('5'), OperatorInput(OpDivide), DigitInput('0')}
	for _, in := range inputs {
		if err := e.Apply(in); err != nil {
			t.Fatalf("Apply(%v) error: %v", in, err)
		}
	}
	if err := e.Apply(OperatorInput(OpAdd)); !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("Apply(+) = %v, expected ErrDivideByZero", err)
	}

	expected := State{Current: "0", Previous: DivideByZeroMessage, Operation: OpAdd}
	if got := e.State(); got != expected {
		t.Errorf("State() = %v, expected %v", got, expected)
	}
	if len(signals) != 1 || signals[0].Kind != SignalDivideByZero {
		t.Errorf("signals = %v, expected one divide-by-zero signal", signals)
	}
}

func TestChooseOperation_ChainedKeepsEntryOpen(t *testing.T) {
	s := State{Previous: "1", Operation: OpAdd, Current: "2"}
	got, err := ChooseOperation(s, OpAdd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Complete {
		t.Errorf("Complete = true after chained operator, expected false")
	}
	if got = DeleteLast(got); got.Previous != "3" || got.Operation != OpAdd {
		t.Errorf("DeleteLast after chain = %v, expected pending 3 +", got)
	}
}

func TestChooseOperation_Unknown(t *testing.T) {
	s := State{Current: "4"}
	got, err := ChooseOperation(s, Operation("&"))
	if !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("expected ErrUnknownOperation, got %v", err)
	}
	if got != s {
		t.Errorf("state changed: %v", got)
	}
}

func TestDeleteLast(t *testing.T) {
	tests := []struct {
		state    State
		expected State
	}{
		{State{Current: "123"}, State{Current: "12"}},
		{State{Current: "5"}, State{Current: "0"}},
		{State{Current: "0"}, State{Current: "0"}},
		{State{Current: "1.", Previous: "2", Operation: OpAdd}, State{Current: "1", Previous: "2", Operation: OpAdd}},
		{State{Current: "19", Complete: true}, NewState()},
		{State{Current: DivideByZeroMessage, Complete: true}, NewState()},
	}

	for _, tt := range tests {
		got := DeleteLast(tt.state)
		if got != tt.expected {
			t.Errorf("DeleteLast(%v) = %v, expected %v", tt.state, got, tt.expected)
		}
	}
}

func TestParseOperation(t *testing.T) {
	tests := []struct {
		symbol   string
		expected Operation
		wantErr  bool
	}{
		{"+", OpAdd, false},
		{"-", OpSubtract, false},
		{"×", OpMultiply, false},
		{"*", OpMultiply, false},
		{"÷", OpDivide, false},
		{"/", OpDivide, false},
		{"%", OpModulo, false},
		{"^", OpPower, false},
		{"", OpNone, true},
		{"x", OpNone, true},
	}

	for _, tt := range tests {
		got, err := ParseOperation(tt.symbol)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOperation(%q) error = %v, wantErr %v", tt.symbol, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("ParseOperation(%q) = %q, expected %q", tt.symbol, got, tt.expected)
		}
	}
}

func TestState_Phase(t *testing.T) {
	tests := []struct {
		state    State
		expected Phase
	}{
		{NewState(), PhaseEnteringFirst},
		{State{Current: "12"}, PhaseEnteringFirst},
		{State{Current: "0", Previous: "12", Operation: OpAdd}, PhaseOperatorSelected},
		{State{Current: "7", Previous: "12", Operation: OpAdd}, PhaseEnteringSecond},
		{State{Current: "19", Complete: true}, PhaseResultShown},
		{State{Current: DivideByZeroMessage, Complete: true}, PhaseErrorShown},
	}

	for _, tt := range tests {
		if got := tt.state.Phase(); got != tt.expected {
			t.Errorf("%v.Phase() = %v, expected %v", tt.state, got, tt.expected)
		}
	}
}

func TestEngine_Signals(t *testing.T) {
	var got []Signal
	e := New(
		WithSessionID("session-1"),
		WithNotifier(NotifierFunc(func(sig Signal) { got = append(got, sig) })),
	)

	_ = e.AppendDigit('1')
	_ = e.AppendDigit('.')
	if err := e.AppendDigit('.'); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry, got %v", err)
	}
	_ = e.ChooseOperation(OpAdd)
	_ = e.AppendDigit('2')
	_ = e.Calculate()
	_ = e.Calculate()
	_ = e.ChooseOperation(OpDivide)
	if err := e.Calculate(); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
	e.Clear()

	expected := []SignalKind{SignalInvalidInput, SignalResult, SignalDivideByZero, SignalCleared}
	if len(got) != len(expected) {
		t.Fatalf("got %d signals, expected %d: %v", len(got), len(expected), got)
	}
	for i, kind := range expected {
		if got[i].Kind != kind {
			t.Errorf("signal %d = %v, expected %v", i, got[i].Kind, kind)
		}
		if got[i].SessionID != "session-1" {
			t.Errorf("signal %d session = %q", i, got[i].SessionID)
		}
	}
	if got[1].State.Current != "3" {
		t.Errorf("result signal state = %q, expected %q", got[1].State.Current, "3")
	}
	if !e.State().IsReset() {
		t.Errorf("State() = %v, expected reset", e.State())
	}
}

func TestEngine_ChainedResultSignal(t *testing.T) {
	var kinds []SignalKind
	e := New(WithNotifier(NotifierFunc(func(sig Signal) { kinds = append(kinds, sig.Kind) })))

	_ = e.AppendDigit('4')
	_ = e.ChooseOperation(OpMultiply)
	_ = e.AppendDigit('5')
	_ = e.ChooseOperation(OpSubtract)

	if len(kinds) != 1 || kinds[0] != SignalResult {
		t.Errorf("signals = %v, expected one result", kinds)
	}
	if s := e.State(); s.Previous != "20" || s.Operation != OpSubtract {
		t.Errorf("state = %v, expected previous 20 with pending subtract", s)
	}
}

func TestEngine_SessionID(t *testing.T) {
	a, b := New(), New()
	if a.SessionID() == "" || a.SessionID() == b.SessionID() {
		t.Errorf("expected distinct non-empty session IDs, got %q and %q", a.SessionID(), b.SessionID())
	}
}

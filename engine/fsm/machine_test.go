package fsm

import (
	"reflect"
	"testing"
	"time"
)

const (
	stIdle StateID = iota + 2
	stActive
	stRunA
	stRunB
	stDone
)

const (
	evGo Event = iota + 1
	evSwap
	evStop
	evRestart
)

type trace struct {
	log   []string
	ready bool
}

func (tr *trace) rec(s string) ActionFunc[*trace] {
	return func(ctx *trace) { ctx.log = append(ctx.log, s) }
}

func build(t *testing.T, tr *trace) *Machine[*trace] {
	t.Helper()
	m := NewMachine[*trace]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(stIdle, "Idle", StateRoot)
	m.AddState(stActive, "Active", StateRoot)
	m.AddState(stRunA, "RunA", stActive)
	m.AddState(stRunB, "RunB", stActive)
	m.AddState(stDone, "Done", StateRoot)

	for _, id := range []StateID{StateRoot, stIdle, stActive, stRunA, stRunB, stDone} {
		name := m.nodes[id].Name
		m.OnEnter(id, tr.rec("+"+name))
		m.OnExit(id, tr.rec("-"+name))
	}

	m.AddTransition(stIdle, Transition[*trace]{TargetID: stRunA, Event: evGo})
	m.AddTransition(stRunA, Transition[*trace]{TargetID: stRunB, Event: evSwap})
	m.AddTransition(stRunB, Transition[*trace]{TargetID: stDone, Guard: func(c *trace) bool { return c.ready }})
	m.AddTransition(stActive, Transition[*trace]{TargetID: stDone, Event: evStop})
	m.AddTransition(StateRoot, Transition[*trace]{TargetID: stRunA, Event: evRestart})
	m.SetInitial(stIdle)

	if err := m.CompilePaths(); err != nil {
		t.Fatalf("CompilePaths: %v", err)
	}
	if err := m.Init(tr); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m
}

func TestInitEntersFromRoot(t *testing.T) {
	tr := &trace{}
	m := build(t, tr)
	if want := []string{"+Root", "+Idle"}; !reflect.DeepEqual(tr.log, want) {
		t.Errorf("log = %v, want %v", tr.log, want)
	}
	if m.CurrentName() != "Idle" {
		t.Errorf("current = %s", m.CurrentName())
	}
}

func TestTransitionThroughLCA(t *testing.T) {
	tr := &trace{}
	m := build(t, tr)
	tr.log = nil

	m.HandleEvent(tr, evGo)
	if want := []string{"-Idle", "+Active", "+RunA"}; !reflect.DeepEqual(tr.log, want) {
		t.Errorf("go: log = %v, want %v", tr.log, want)
	}

	tr.log = nil
	m.HandleEvent(tr, evSwap)
	if want := []string{"-RunA", "+RunB"}; !reflect.DeepEqual(tr.log, want) {
		t.Errorf("swap: log = %v, want %v", tr.log, want)
	}
	if !m.In(stActive) || m.In(stIdle) {
		t.Error("In() does not reflect the active path")
	}
}

func TestEventBubblesToParent(t *testing.T) {
	tr := &trace{}
	m := build(t, tr)
	m.HandleEvent(tr, evGo)
	tr.log = nil

	if !m.HandleEvent(tr, evStop) {
		t.Fatal("parent transition not taken")
	}
	if want := []string{"-RunA", "-Active", "+Done"}; !reflect.DeepEqual(tr.log, want) {
		t.Errorf("log = %v, want %v", tr.log, want)
	}
	if m.HandleEvent(tr, evSwap) {
		t.Error("unrelated event should not be handled")
	}
}

func TestTickGuardAndTime(t *testing.T) {
	tr := &trace{}
	m := build(t, tr)
	m.HandleEvent(tr, evGo)
	m.HandleEvent(tr, evSwap)

	if m.Update(tr, 100*time.Millisecond) {
		t.Error("guarded tick transition fired early")
	}
	if m.TimeInState() != 100*time.Millisecond {
		t.Errorf("TimeInState = %v", m.TimeInState())
	}
	tr.ready = true
	if !m.Update(tr, time.Millisecond) || m.Current() != stDone {
		t.Errorf("tick transition not taken, current=%s", m.CurrentName())
	}
	if m.TimeInState() != 0 {
		t.Error("TimeInState not reset on transition")
	}
}

func TestSelfTransitionReenters(t *testing.T) {
	tr := &trace{}
	m := build(t, tr)
	m.HandleEvent(tr, evGo)
	tr.log = nil

	m.HandleEvent(tr, evRestart)
	if want := []string{"-RunA", "+RunA"}; !reflect.DeepEqual(tr.log, want) {
		t.Errorf("log = %v, want %v", tr.log, want)
	}
}

func TestCompileErrors(t *testing.T) {
	m := NewMachine[*trace]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(stIdle, "Idle", 99)
	if err := m.CompilePaths(); err == nil {
		t.Error("expected missing parent error")
	}

	m = NewMachine[*trace]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddTransition(StateRoot, Transition[*trace]{TargetID: 42, Event: evGo})
	if err := m.CompilePaths(); err == nil {
		t.Error("expected missing target error")
	}
	if err := m.Init(&trace{}); err == nil {
		t.Error("Init must fail before a successful compile")
	}
}

package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates an empty FSM
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters the initial state, running OnEnter from Root down to it
func (m *Machine[T]) Init(ctx T) error {
	if !m.compiled {
		return fmt.Errorf("FSM paths not compiled")
	}
	node, ok := m.nodes[m.initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.initialID)
	}

	m.activeID = m.initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, fn := range m.nodes[id].OnEnter {
			fn(ctx)
		}
	}
	return nil
}

// Update advances time in state and evaluates tick transitions, leaf first then bubbling up
func (m *Machine[T]) Update(ctx T, dt time.Duration) bool {
	if m.activeID == StateNone {
		return false
	}
	m.timeInState += dt
	return m.fire(ctx, EventTick)
}

// HandleEvent routes an external event from the leaf up to the root
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, ev Event) bool {
	if m.activeID == StateNone || ev == EventTick {
		return false
	}
	return m.fire(ctx, ev)
}

func (m *Machine[T]) fire(ctx T, ev Event) bool {
	currID := m.activeID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != ev {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs the state change through the lowest common ancestor
// A transition to the active leaf exits and re-enters it
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: transition to unknown state ID %d", targetID))
	}

	currentPath := m.activePath
	targetPath := targetNode.Path

	lcaIndex := -1
	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}
	if targetID == m.activeID {
		lcaIndex = len(targetPath) - 2
	}

	// Exit: current leaf up to LCA, exclusive
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		for _, fn := range m.nodes[currentPath[i]].OnExit {
			fn(ctx)
		}
	}

	// State is committed before OnEnter so actions observe the new leaf
	m.activeID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)
	m.transitions++

	// Enter: LCA exclusive down to target
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, fn := range m.nodes[targetPath[i]].OnEnter {
			fn(ctx)
		}
	}
}

// Current returns the active leaf
func (m *Machine[T]) Current() StateID {
	return m.activeID
}

// CurrentName returns the active leaf name, empty before Init
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeID]; ok {
		return node.Name
	}
	return ""
}

// In reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) In(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// TimeInState returns time accumulated by Update since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// Transitions returns the count of transitions taken
func (m *Machine[T]) Transitions() uint64 {
	return m.transitions
}

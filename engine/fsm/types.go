package fsm

import "time"

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Event is an external trigger; 0 is reserved for tick transitions
type Event int

// EventTick marks a transition evaluated on every Update
const EventTick Event = 0

// Machine is a generic hierarchical finite state machine with a single active leaf
// T is the context passed to actions and guards
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes     map[StateID]*Node[T]
	initialID StateID
	compiled  bool

	// Runtime state
	activeID    StateID
	timeInState time.Duration
	activePath  []StateID // Root -> ... -> Leaf

	transitions uint64
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from Root to this node, used for LCA lookup
	Path []StateID

	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    Event        // EventTick = evaluated on Update
	Guard    GuardFunc[T] // nil = always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)

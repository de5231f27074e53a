package terminal

import (
	"github.com/gdamore/tcell/v2"
)

// ActionKind is what the host should do with an input event
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionStart
	ActionQuit
	ActionLevel
	ActionResize
	ActionToggleDebug
)

// Action is a translated input event; Level is set for ActionLevel
type Action struct {
	Kind  ActionKind
	Level int
}

// Translate maps a tcell event to a host action without side effects
func Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Action{Kind: ActionResize}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return Action{Kind: ActionQuit}
		case tcell.KeyEnter:
			return Action{Kind: ActionStart}
		case tcell.KeyF3:
			return Action{Kind: ActionToggleDebug}
		case tcell.KeyRune:
			r := ev.Rune()
			switch {
			case r == 'c' && ev.Modifiers()&tcell.ModCtrl != 0:
				return Action{Kind: ActionQuit}
			case r == 'q' || r == 'Q':
				return Action{Kind: ActionQuit}
			case r == ' ':
				return Action{Kind: ActionStart}
			case r == 'd' || r == 'D':
				return Action{Kind: ActionToggleDebug}
			case r >= '1' && r <= '9':
				return Action{Kind: ActionLevel, Level: int(r - '0')}
			}
		}
	}
	return Action{}
}

// HandleEvent applies view-local effects of an event and returns the action for the host
// The start handler runs without the view lock held so it may call into the engine
func (v *View) HandleEvent(ev tcell.Event) Action {
	a := Translate(ev)
	switch a.Kind {
	case ActionResize:
		v.screen.Sync()
		w, h := v.screen.Size()
		v.Resize(w, h)
	case ActionToggleDebug:
		v.ToggleDebug()
	case ActionStart:
		v.mu.Lock()
		fn := v.hud.onStart
		visible := v.hud.startVisible
		v.mu.Unlock()
		if fn != nil && visible {
			fn()
		}
	}
	return a
}

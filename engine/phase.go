package engine

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/spokedu77-ops/flowrunner/audio"
	"github.com/spokedu77-ops/flowrunner/engine/fsm"
	"github.com/spokedu77-ops/flowrunner/parameter"
)

// Session states
const (
	StateWaiting fsm.StateID = iota + 2
	StateSession
	StateIntro
	StateCountdown
	StatePlaying
	StateResting
	StateIntertitle
	StateFinished
	StateDisposed
)

const (
	evStart fsm.Event = iota + 1
	evIntroDone
	evCountdownDone
	evLevelEnd
	evRestDone
	evIntertitleDone
	evJump
	evDispose
)

// countdownSteps are shown one CountdownStep apart before play resumes
var countdownSteps = [...]string{"3", "2", "1"}

func newPhaseMachine() (*fsm.Machine[*Engine], error) {
	m := fsm.NewMachine[*Engine]()

	m.AddState(fsm.StateRoot, "Root", fsm.StateNone)
	m.AddState(StateWaiting, "Waiting", fsm.StateRoot)
	m.AddState(StateSession, "Session", fsm.StateRoot)
	m.AddState(StateIntro, "Intro", StateSession)
	m.AddState(StateCountdown, "Countdown", StateSession)
	m.AddState(StatePlaying, "Playing", StateSession)
	m.AddState(StateResting, "Resting", StateSession)
	m.AddState(StateIntertitle, "Intertitle", StateSession)
	m.AddState(StateFinished, "Finished", fsm.StateRoot)
	m.AddState(StateDisposed, "Disposed", fsm.StateRoot)

	m.OnEnter(StateWaiting, (*Engine).enterWaiting)
	m.OnEnter(StateSession, (*Engine).enterSession)
	m.OnEnter(StateIntro, (*Engine).enterIntro)
	m.OnExit(StateIntro, (*Engine).exitIntro)
	m.OnEnter(StateCountdown, (*Engine).enterCountdown)
	m.OnEnter(StatePlaying, (*Engine).enterPlaying)
	m.OnExit(StatePlaying, (*Engine).exitPlaying)
	m.OnEnter(StateResting, (*Engine).enterResting)
	m.OnEnter(StateIntertitle, (*Engine).enterIntertitle)
	m.OnEnter(StateFinished, (*Engine).enterFinished)
	m.OnEnter(StateDisposed, (*Engine).enterDisposed)

	nextIs := func(kind SlotKind) fsm.GuardFunc[*Engine] {
		return func(e *Engine) bool {
			return e.timeline.At(e.sim.Game.LevelIndex).Kind == kind
		}
	}

	m.AddTransition(StateWaiting, fsm.Transition[*Engine]{TargetID: StateIntro, Event: evStart})
	m.AddTransition(StateIntro, fsm.Transition[*Engine]{TargetID: StateCountdown, Event: evIntroDone})
	m.AddTransition(StateCountdown, fsm.Transition[*Engine]{TargetID: StatePlaying, Event: evCountdownDone})
	m.AddTransition(StatePlaying, fsm.Transition[*Engine]{TargetID: StateResting, Event: evLevelEnd, Guard: nextIs(SlotRest)})
	m.AddTransition(StatePlaying, fsm.Transition[*Engine]{TargetID: StateFinished, Event: evLevelEnd, Guard: nextIs(SlotEnd)})
	m.AddTransition(StatePlaying, fsm.Transition[*Engine]{TargetID: StatePlaying, Event: evLevelEnd})
	m.AddTransition(StateResting, fsm.Transition[*Engine]{TargetID: StateIntertitle, Event: evRestDone})
	m.AddTransition(StateIntertitle, fsm.Transition[*Engine]{TargetID: StateCountdown, Event: evIntertitleDone})
	m.AddTransition(fsm.StateRoot, fsm.Transition[*Engine]{TargetID: StateDisposed, Event: evDispose})
	m.AddTransition(fsm.StateRoot, fsm.Transition[*Engine]{
		TargetID: StatePlaying,
		Event:    evJump,
		Guard:    func(e *Engine) bool { return !e.disposed },
	})

	m.SetInitial(StateWaiting)
	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	return m, nil
}

// after schedules a phase event on the cancellable registry
func (e *Engine) after(d time.Duration, ev fsm.Event) {
	e.timeouts.After(d, func() {
		e.machine.HandleEvent(e, ev)
	})
}

func (e *Engine) enterWaiting() {
	e.sim.Game.Phase = PhaseWaiting
	e.ui.SetIntroTitle(parameter.IntroTitle)
	e.ui.SetIntroVisible(true)
	e.ui.SetStartVisible(true)
	e.ui.SetCountdown("", false)
	e.ui.SetProgress(0)
}

func (e *Engine) enterSession() {
	e.sim.Game.Phase = PhasePlaying
	e.ui.SetStartVisible(false)
}

func (e *Engine) enterIntro() {
	e.sim.Game.Resting = true
	e.ui.SetIntroTitle(parameter.IntroTitle)
	e.ui.SetIntroVisible(true)
	e.after(parameter.IntroDuration, evIntroDone)
}

func (e *Engine) exitIntro() {
	e.ui.SetIntroVisible(false)
}

func (e *Engine) enterCountdown() {
	e.sim.Game.Resting = true
	e.sim.Game.MovementActive = false
	e.countdownStep(0)
}

// countdownStep shows step i of 3-2-1 and chains the next one, ending with GO
func (e *Engine) countdownStep(i int) {
	if i < len(countdownSteps) {
		e.ui.SetCountdown(countdownSteps[i], true)
		e.audio.Play(audio.SoundCountdown)
		e.timeouts.After(parameter.CountdownStep, func() { e.countdownStep(i + 1) })
		return
	}
	e.ui.SetCountdown(parameter.GoText, true)
	e.audio.Play(audio.SoundGo)
	e.timeouts.After(parameter.GoDuration, func() {
		e.ui.SetCountdown("", false)
		e.machine.HandleEvent(e, evCountdownDone)
	})
}

// enterPlaying begins the level slot at LevelIndex, stepping past a finished rest slot
func (e *Engine) enterPlaying() {
	g := &e.sim.Game
	if e.timeline.At(g.LevelIndex).Kind == SlotRest {
		g.LevelIndex++
	}
	slot := e.timeline.At(g.LevelIndex)
	if slot.Kind == SlotLevel {
		g.Level = parameter.ClampLevel(slot.Level)
	}
	spec := parameter.Level(g.Level)

	g.Phase = PhasePlaying
	g.LevelTime = 0
	g.MovementActive = true
	g.Resting = false
	g.Speed = spec.Speed
	e.sim.Track.SpawnedInLevel = 0
	e.sim.Beat.Armed = false

	e.obstacles.SetGoldBudget(spec.GoldBudget)
	e.ui.SetCountdown("", false)
	e.ui.SetLevelNumber(strconv.Itoa(g.Level))
	e.ui.SetLevelTag(spec.Tag, spec.TagStyle)
	e.showInstruction(spec.Instruction, spec.InstructionStyle, parameter.InstructionDuration)

	e.log.WithFields(logrus.Fields{"level": g.Level, "index": g.LevelIndex}).Info("level started")
}

func (e *Engine) exitPlaying() {
	e.sim.Game.MovementActive = false
	e.sim.Beat.Armed = false
	e.sim.Camera.Ducking = false
}

// enterResting counts the rest slot down on the wall clock, one tick per RestTick
func (e *Engine) enterResting() {
	g := &e.sim.Game
	g.Resting = true
	g.MovementActive = false

	d := e.timeline.At(g.LevelIndex).Duration
	e.restLeft = int(d / parameter.RestTick)
	e.ui.SetLevelTag(parameter.RestMessage, "tag-rest")
	e.ui.SetCountdown(strconv.Itoa(e.restLeft), true)
	e.showInstruction(parameter.RestMessage, "info", parameter.InstructionDuration)
	e.log.WithField("seconds", e.restLeft).Info("rest started")
	e.restTick()
}

func (e *Engine) restTick() {
	if e.restLeft <= 0 {
		e.machine.HandleEvent(e, evRestDone)
		return
	}
	e.timeouts.After(parameter.RestTick, func() {
		e.restLeft--
		e.ui.SetCountdown(strconv.Itoa(e.restLeft), true)
		e.restTick()
	})
}

func (e *Engine) enterIntertitle() {
	next := e.timeline.At(e.sim.Game.LevelIndex + 1)
	level := parameter.ClampLevel(next.Level)
	e.ui.SetCountdown("LEVEL "+strconv.Itoa(level), true)
	e.audio.Play(audio.SoundWhoosh)
	e.after(parameter.IntertitleDuration, evIntertitleDone)
}

func (e *Engine) enterFinished() {
	g := &e.sim.Game
	g.Phase = PhaseFinished
	g.MovementActive = false
	g.Resting = false

	e.audio.StopMusic()
	e.ui.SetCountdown("", false)
	e.ui.SetProgress(100)
	e.ui.SetIntroTitle(parameter.EndTitle)
	e.ui.SetIntroVisible(true)
	e.showInstruction(parameter.EndMessage, "info", 0)
	e.log.WithFields(logrus.Fields{"coins": e.sim.Coins, "game_time": g.GameTime}).Info("session finished")
}

func (e *Engine) enterDisposed() {
	g := &e.sim.Game
	g.Phase = PhaseFinished
	g.MovementActive = false
	g.Resting = false
}

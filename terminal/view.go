package terminal

import (
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/spokedu77-ops/flowrunner/scene"
)

// speedLine is an ambient streak animated by the view itself
type speedLine struct {
	x   float64
	age int
}

// speedLineFrames is how many renders a streak stays visible
const speedLineFrames = 8

// View is a tcell HUD and scene
// Port methods may be called from the engine while it holds its own lock; View never calls back
// into the engine except through the start handler, which HandleEvent runs unlocked
type View struct {
	mu     sync.Mutex
	screen tcell.Screen
	mode   ColorMode

	width, height int
	showDebug     bool

	hud hudState

	segments map[uint64]scene.SegmentView
	hazards  map[uint64]scene.HazardView
	lines    []speedLine
	player   mgl64.Vec3
	camera   scene.CameraPose
	visuals  scene.Visuals
	backdrop RGB
	frames   uint64
	disposed bool
}

type hudState struct {
	progress         float64
	levelNumber      string
	levelTag         string
	tagStyle         string
	instruction      string
	instrStyle       string
	instrVisible     bool
	introVisible     bool
	introTitle       string
	startVisible     bool
	countdown        string
	countdownVisible bool
	flash            float64
	debug            string
	onStart          func()
}

// NewView draws on an initialized screen
func NewView(screen tcell.Screen, mode ColorMode) *View {
	w, h := screen.Size()
	return &View{
		screen:   screen,
		mode:     mode,
		width:    w,
		height:   h,
		segments: make(map[uint64]scene.SegmentView),
		hazards:  make(map[uint64]scene.HazardView),
		backdrop: RGB{12, 12, 24},
	}
}

// SetDebugVisible toggles the bottom status line
func (v *View) SetDebugVisible(on bool) {
	v.mu.Lock()
	v.showDebug = on
	v.mu.Unlock()
}

// ToggleDebug flips the bottom status line
func (v *View) ToggleDebug() {
	v.mu.Lock()
	v.showDebug = !v.showDebug
	v.mu.Unlock()
}

// HUD port

func (v *View) SetProgress(p float64) {
	v.mu.Lock()
	v.hud.progress = p
	v.mu.Unlock()
}

func (v *View) SetLevelNumber(s string) {
	v.mu.Lock()
	v.hud.levelNumber = s
	v.mu.Unlock()
}

func (v *View) SetLevelTag(label, style string) {
	v.mu.Lock()
	v.hud.levelTag, v.hud.tagStyle = label, style
	v.mu.Unlock()
}

func (v *View) ShowInstruction(text, style string) {
	v.mu.Lock()
	v.hud.instruction, v.hud.instrStyle = text, style
	v.hud.instrVisible = true
	v.mu.Unlock()
}

func (v *View) HideInstruction() {
	v.mu.Lock()
	v.hud.instrVisible = false
	v.mu.Unlock()
}

func (v *View) SetIntroVisible(on bool) {
	v.mu.Lock()
	v.hud.introVisible = on
	v.mu.Unlock()
}

func (v *View) SetIntroTitle(s string) {
	v.mu.Lock()
	v.hud.introTitle = s
	v.mu.Unlock()
}

func (v *View) SetStartVisible(on bool) {
	v.mu.Lock()
	v.hud.startVisible = on
	v.mu.Unlock()
}

func (v *View) SetCountdown(text string, visible bool) {
	v.mu.Lock()
	v.hud.countdown, v.hud.countdownVisible = text, visible
	v.mu.Unlock()
}

func (v *View) SetFlashOpacity(f float64) {
	v.mu.Lock()
	v.hud.flash = f
	v.mu.Unlock()
}

func (v *View) SetDebugStatus(s string) {
	v.mu.Lock()
	v.hud.debug = s
	v.mu.Unlock()
}

func (v *View) OnStart(fn func()) {
	v.mu.Lock()
	v.hud.onStart = fn
	v.mu.Unlock()
}

// Scene port

func (v *View) SpawnSegment(s scene.SegmentView) {
	v.mu.Lock()
	v.segments[s.ID] = s
	v.mu.Unlock()
}

func (v *View) MoveSegment(id uint64, pos mgl64.Vec3) {
	v.mu.Lock()
	if s, ok := v.segments[id]; ok {
		s.Pos = pos
		v.segments[id] = s
	}
	v.mu.Unlock()
}

func (v *View) DestroySegment(id uint64) {
	v.mu.Lock()
	delete(v.segments, id)
	v.mu.Unlock()
}

func (v *View) SpawnHazard(h scene.HazardView) {
	v.mu.Lock()
	v.hazards[h.ID] = h
	v.mu.Unlock()
}

func (v *View) MoveHazard(id uint64, pos mgl64.Vec3) {
	v.mu.Lock()
	if h, ok := v.hazards[id]; ok {
		h.Pos = pos
		v.hazards[id] = h
	}
	v.mu.Unlock()
}

func (v *View) DestroyHazard(id uint64) {
	v.mu.Lock()
	delete(v.hazards, id)
	v.mu.Unlock()
}

func (v *View) SpawnSpeedLine(pos mgl64.Vec3) {
	v.mu.Lock()
	v.lines = append(v.lines, speedLine{x: pos.X()})
	v.mu.Unlock()
}

func (v *View) SetPlayer(pos mgl64.Vec3) {
	v.mu.Lock()
	v.player = pos
	v.mu.Unlock()
}

func (v *View) SetCamera(pose scene.CameraPose) {
	v.mu.Lock()
	v.camera = pose
	v.mu.Unlock()
}

func (v *View) SetVisuals(vis scene.Visuals) {
	v.mu.Lock()
	v.visuals = vis
	v.mu.Unlock()
}

func (v *View) SetBackground(img image.Image) {
	if img == nil {
		return
	}
	c := AverageColor(img).Scale(0.35)
	v.mu.Lock()
	v.backdrop = c
	v.mu.Unlock()
}

func (v *View) Resize(width, height int) {
	v.mu.Lock()
	v.width, v.height = width, height
	v.mu.Unlock()
}

// Render composes the frame and shows it
func (v *View) Render() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}
	v.frames++
	v.draw()
	v.screen.Show()
}

// Dispose drops every view; the screen itself belongs to the host
func (v *View) Dispose() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.disposed = true
	clear(v.segments)
	clear(v.hazards)
	v.lines = nil
}

// SegmentCount returns the number of live segment views
func (v *View) SegmentCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.segments)
}

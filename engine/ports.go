package engine

import (
	"context"
	"time"

	"github.com/spokedu77-ops/flowrunner/asset"
	"github.com/spokedu77-ops/flowrunner/audio"
)

// UI is the host's HUD; the engine only writes to it, except for the start callback
type UI interface {
	SetProgress(percent float64)
	SetLevelNumber(text string)
	SetLevelTag(label, style string)
	ShowInstruction(text, style string)
	HideInstruction()
	SetIntroVisible(visible bool)
	SetIntroTitle(text string)
	SetStartVisible(visible bool)
	SetCountdown(text string, visible bool)
	SetFlashOpacity(opacity float64)
	SetDebugStatus(line string)

	// OnStart registers the start button handler
	OnStart(fn func())
}

// Audio is the audio engine as seen by the flow engine
// *audio.Engine implements it
type Audio interface {
	Start() error
	Stop()
	Running() bool
	Now() float64
	Play(s audio.Sound) bool
	PlayAt(s audio.Sound, when float64) bool
	Scheduled() uint64
	PlayTrack(t *audio.Track) error
	PlayDrumLoop(bpm int) error
	StopMusic()
	MusicPlaying() bool
}

// Loader fetches session assets
// *asset.Loader implements it
type Loader interface {
	Load(ctx context.Context, req asset.Request) (asset.Result, error)
}

// Obstacles owns hazards attached to segments
// Segments are referenced by id only; a hazard never outlives ReleaseBridge of its segment
type Obstacles interface {
	Bind(h Hooks)
	TrySpawnUfo(level int, seg *Segment) bool
	ShouldSpawnBox(level int) bool
	AttachBoxToBridge(seg *Segment, level int)
	Update(dt60, speed float64, level int, playerZ, cameraX float64)
	SetGoldBudget(n int)
	ReleaseBridge(id uint64)
	Dispose()
	Smashed() int
	Passed() int
}

// Hooks are engine callbacks invoked by the obstacle manager from inside Update
type Hooks struct {
	OnFlash           func()
	OnCameraTilt      func(amount float64)
	OnPunch           func()
	OnCoin            func()
	OnShowInstruction func(text, style string, d time.Duration)
	OnUfoSpawned      func()
	OnUfoDuckStart    func()
	OnUfoPassed       func()
}

type nopUI struct{}

func (nopUI) SetProgress(float64)            {}
func (nopUI) SetLevelNumber(string)          {}
func (nopUI) SetLevelTag(string, string)     {}
func (nopUI) ShowInstruction(string, string) {}
func (nopUI) HideInstruction()               {}
func (nopUI) SetIntroVisible(bool)           {}
func (nopUI) SetIntroTitle(string)           {}
func (nopUI) SetStartVisible(bool)           {}
func (nopUI) SetCountdown(string, bool)      {}
func (nopUI) SetFlashOpacity(float64)        {}
func (nopUI) SetDebugStatus(string)          {}
func (nopUI) OnStart(func())                 {}

type nopObstacles struct{}

func (nopObstacles) Bind(Hooks)                                     {}
func (nopObstacles) TrySpawnUfo(int, *Segment) bool                 { return false }
func (nopObstacles) ShouldSpawnBox(int) bool                        { return false }
func (nopObstacles) AttachBoxToBridge(*Segment, int)                {}
func (nopObstacles) Update(float64, float64, int, float64, float64) {}
func (nopObstacles) SetGoldBudget(int)                              {}
func (nopObstacles) ReleaseBridge(uint64)                           {}
func (nopObstacles) Dispose()                                       {}
func (nopObstacles) Smashed() int                                   { return 0 }
func (nopObstacles) Passed() int                                    { return 0 }

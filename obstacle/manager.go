// Package obstacle places boxes and UFOs on track segments and resolves their encounters with the player
package obstacle

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/spokedu77-ops/flowrunner/engine"
	"github.com/spokedu77-ops/flowrunner/parameter"
	"github.com/spokedu77-ops/flowrunner/scene"
)

type hazard struct {
	id     uint64
	kind   scene.HazardKind
	bridge uint64 // owning segment id
	pos    mgl64.Vec3
	ttl    float64 // coins only, seconds

	ducking bool
	passed  bool
}

// Manager implements engine.Obstacles
type Manager struct {
	scene scene.Scene
	rng   *rand.Rand
	log   logrus.FieldLogger
	hooks engine.Hooks

	hazards []*hazard
	spawned []*hazard // created during Update, merged after the sweep
	sweep   bool
	nextID  uint64
	gold    int
	hinted  map[scene.HazardKind]bool

	smashed int
	passed  int
}

var _ engine.Obstacles = (*Manager)(nil)

// NewManager creates a manager drawing random decisions from rng
func NewManager(sc scene.Scene, rng *rand.Rand, log logrus.FieldLogger) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		scene:  sc,
		rng:    rng,
		log:    log,
		hinted: make(map[scene.HazardKind]bool),
	}
}

// Bind installs the engine callbacks
func (m *Manager) Bind(h engine.Hooks) {
	m.hooks = h
}

// TrySpawnUfo attaches a UFO when the level allows it, no UFO is airborne and the segment
// is past the level's safe lead-in
func (m *Manager) TrySpawnUfo(level int, seg *engine.Segment) bool {
	level = parameter.ClampLevel(level)
	if level < parameter.UfoMinLevel || seg == nil || seg.IndexInLevel < parameter.UfoSafeSegments {
		return false
	}
	if m.count(scene.HazardUfo) > 0 {
		return false
	}
	if m.rng.Float64() >= parameter.Level(level).UfoChance {
		return false
	}

	pos := mgl64.Vec3{
		parameter.LaneX(seg.Lane),
		parameter.UfoHeight,
		seg.Z - seg.Length*parameter.UfoPosition,
	}
	m.spawn(scene.HazardUfo, seg.ID, pos)
	m.call(m.hooks.OnUfoSpawned)
	m.hint(scene.HazardUfo, parameter.UfoHint, parameter.UfoHintStyle)
	return true
}

// ShouldSpawnBox rolls the level's box odds
func (m *Manager) ShouldSpawnBox(level int) bool {
	level = parameter.ClampLevel(level)
	if level < parameter.BoxMinLevel {
		return false
	}
	return m.rng.Float64() < parameter.Level(level).BoxChance
}

// AttachBoxToBridge places a box on the segment body in the segment's lane
func (m *Manager) AttachBoxToBridge(seg *engine.Segment, level int) {
	if seg == nil {
		return
	}
	pos := mgl64.Vec3{
		parameter.LaneX(seg.Lane),
		0,
		seg.Z - seg.Length*parameter.BoxPosition,
	}
	m.spawn(scene.HazardBox, seg.ID, pos)
	m.hint(scene.HazardBox, parameter.BoxHint, parameter.BoxHintStyle)
}

// Update moves hazards with the track and resolves encounters
// dt60 is dt in 60fps frames; hazards travel speed*dt60/60 per call
func (m *Manager) Update(dt60, speed float64, level int, playerZ, cameraX float64) {
	dt := dt60 / parameter.ReferenceFPS
	step := speed * dt

	m.sweep = true
	live := m.hazards[:0]
	for _, h := range m.hazards {
		h.pos[2] += step
		keep := true

		switch h.kind {
		case scene.HazardBox:
			if h.pos[2] >= playerZ && math.Abs(h.pos[0]-cameraX) < parameter.LaneWidth/2 {
				m.smash(h)
				keep = false
			}
		case scene.HazardUfo:
			keep = m.updateUfo(h, playerZ)
		case scene.HazardCoin:
			h.ttl -= dt
			h.pos[1] += parameter.CoinRise * dt
			keep = h.ttl > 0
		}

		if !keep {
			m.scene.DestroyHazard(h.id)
			continue
		}
		m.scene.MoveHazard(h.id, h.pos)
		live = append(live, h)
	}
	for i := len(live); i < len(m.hazards); i++ {
		m.hazards[i] = nil
	}
	m.hazards = append(live, m.spawned...)
	m.spawned = m.spawned[:0]
	m.sweep = false
}

func (m *Manager) updateUfo(h *hazard, playerZ float64) bool {
	ahead := playerZ - h.pos[2]
	if !h.ducking && ahead >= 0 && ahead <= parameter.UfoDuckDistance {
		h.ducking = true
		m.call(m.hooks.OnUfoDuckStart)
	}
	if !h.passed && h.pos[2] > playerZ {
		h.passed = true
		m.passed++
		m.call(m.hooks.OnUfoPassed)
		if m.hooks.OnCameraTilt != nil {
			m.hooks.OnCameraTilt(parameter.UfoPassTilt)
		}
	}
	return h.pos[2] <= playerZ+parameter.UfoRemoveDistance
}

// smash resolves a box reaching the player, paying a coin while budget remains
func (m *Manager) smash(h *hazard) {
	m.smashed++
	m.call(m.hooks.OnPunch)
	m.call(m.hooks.OnFlash)
	if m.gold > 0 {
		m.gold--
		m.call(m.hooks.OnCoin)
		coin := m.spawn(scene.HazardCoin, h.bridge, h.pos.Add(mgl64.Vec3{0, 1, 0}))
		coin.ttl = parameter.CoinLifetime
	}
	m.log.WithFields(logrus.Fields{"bridge": h.bridge, "gold_left": m.gold}).Debug("box smashed")
}

// SetGoldBudget sets the coins available from smashed boxes
func (m *Manager) SetGoldBudget(n int) {
	m.gold = max(0, n)
}

// ReleaseBridge removes every hazard owned by a segment
func (m *Manager) ReleaseBridge(id uint64) {
	live := m.hazards[:0]
	for _, h := range m.hazards {
		if h.bridge == id {
			m.scene.DestroyHazard(h.id)
			continue
		}
		live = append(live, h)
	}
	for i := len(live); i < len(m.hazards); i++ {
		m.hazards[i] = nil
	}
	m.hazards = live
}

// Dispose removes every hazard from the scene
func (m *Manager) Dispose() {
	for _, h := range m.hazards {
		m.scene.DestroyHazard(h.id)
	}
	m.hazards = nil
}

// Count returns the live hazards of a kind
func (m *Manager) Count(kind scene.HazardKind) int {
	return m.count(kind)
}

// Gold returns the remaining coin budget
func (m *Manager) Gold() int {
	return m.gold
}

// Smashed returns the number of boxes smashed
func (m *Manager) Smashed() int {
	return m.smashed
}

// Passed returns the number of UFOs that went behind the player
func (m *Manager) Passed() int {
	return m.passed
}

func (m *Manager) count(kind scene.HazardKind) int {
	n := 0
	for _, h := range m.hazards {
		if h.kind == kind {
			n++
		}
	}
	return n
}

func (m *Manager) spawn(kind scene.HazardKind, bridge uint64, pos mgl64.Vec3) *hazard {
	m.nextID++
	h := &hazard{id: m.nextID, kind: kind, bridge: bridge, pos: pos}
	if m.sweep {
		m.spawned = append(m.spawned, h)
	} else {
		m.hazards = append(m.hazards, h)
	}
	m.scene.SpawnHazard(scene.HazardView{ID: h.id, Kind: kind, Pos: pos})
	return h
}

// hint shows a banner the first time a hazard kind appears
func (m *Manager) hint(kind scene.HazardKind, text, style string) {
	if m.hinted[kind] {
		return
	}
	m.hinted[kind] = true
	if m.hooks.OnShowInstruction != nil {
		m.hooks.OnShowInstruction(text, style, parameter.HintDuration)
	}
}

func (m *Manager) call(fn func()) {
	if fn != nil {
		fn()
	}
}

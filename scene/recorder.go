package scene

import (
	"image"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Recorder is an in-memory Scene that tracks live views and counts calls
// Used headless and in tests
type Recorder struct {
	mu sync.Mutex

	Segments map[uint64]SegmentView
	Hazards  map[uint64]HazardView

	SpeedLines  int
	Renders     int
	Player      mgl64.Vec3
	Camera      CameraPose
	Visuals     Visuals
	Background  image.Image
	Width       int
	Height      int
	Disposed    bool
	SegmentLog  []uint64 // spawn order
	DestroyLog  []uint64
	HazardSpawn int
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{
		Segments: make(map[uint64]SegmentView),
		Hazards:  make(map[uint64]HazardView),
	}
}

func (r *Recorder) SpawnSegment(v SegmentView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Segments[v.ID] = v
	r.SegmentLog = append(r.SegmentLog, v.ID)
}

func (r *Recorder) MoveSegment(id uint64, pos mgl64.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.Segments[id]; ok {
		v.Pos = pos
		r.Segments[id] = v
	}
}

func (r *Recorder) DestroySegment(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Segments, id)
	r.DestroyLog = append(r.DestroyLog, id)
}

func (r *Recorder) SpawnHazard(v HazardView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Hazards[v.ID] = v
	r.HazardSpawn++
}

func (r *Recorder) MoveHazard(id uint64, pos mgl64.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.Hazards[id]; ok {
		v.Pos = pos
		r.Hazards[id] = v
	}
}

func (r *Recorder) DestroyHazard(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Hazards, id)
}

func (r *Recorder) SpawnSpeedLine(mgl64.Vec3) {
	r.mu.Lock()
	r.SpeedLines++
	r.mu.Unlock()
}

func (r *Recorder) SetPlayer(pos mgl64.Vec3) {
	r.mu.Lock()
	r.Player = pos
	r.mu.Unlock()
}

func (r *Recorder) SetCamera(pose CameraPose) {
	r.mu.Lock()
	r.Camera = pose
	r.mu.Unlock()
}

func (r *Recorder) SetVisuals(v Visuals) {
	r.mu.Lock()
	r.Visuals = v
	r.mu.Unlock()
}

func (r *Recorder) SetBackground(img image.Image) {
	r.mu.Lock()
	r.Background = img
	r.mu.Unlock()
}

func (r *Recorder) Resize(width, height int) {
	r.mu.Lock()
	r.Width, r.Height = width, height
	r.mu.Unlock()
}

func (r *Recorder) Render() {
	r.mu.Lock()
	r.Renders++
	r.mu.Unlock()
}

func (r *Recorder) Dispose() {
	r.mu.Lock()
	r.Disposed = true
	r.mu.Unlock()
}

// SegmentCount returns the number of live segment views
func (r *Recorder) SegmentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Segments)
}

// HazardCount returns the number of live hazard views
func (r *Recorder) HazardCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Hazards)
}

// RenderCount returns how many frames were rendered
func (r *Recorder) RenderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Renders
}

// SegmentIDs returns live segment ids in ascending order
func (r *Recorder) SegmentIDs() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint64, 0, len(r.Segments))
	for id := range r.Segments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var _ Scene = (*Recorder)(nil)

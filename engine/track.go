package engine

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spokedu77-ops/flowrunner/parameter"
	"github.com/spokedu77-ops/flowrunner/scene"
)

// world bundles the collaborators touched by subsystem updates
type world struct {
	scene     scene.Scene
	obstacles Obstacles
	rng       *rand.Rand
}

func segmentPos(seg *Segment) mgl64.Vec3 {
	return mgl64.Vec3{parameter.LaneX(seg.Lane), 0, seg.Z}
}

// spawnSegment appends one segment behind the last spawned one
// The first segment of an empty track is forced to the player's Z in the center lane and never carries a hazard
func spawnSegment(sim *Sim, w world) *Segment {
	level := parameter.ClampLevel(sim.Game.Level)
	spec := parameter.Level(level)

	sim.Track.NextID++
	seg := &Segment{
		ID:           sim.Track.NextID,
		Length:       parameter.SegmentLength,
		PadDepth:     parameter.SegmentPadDepth,
		IndexInLevel: sim.Track.SpawnedInLevel,
	}

	forced := len(sim.Track.Segments) == 0
	if forced {
		seg.Lane = parameter.CenterLane
		seg.Z = parameter.PlayerZ
	} else {
		last := sim.Track.Segments[len(sim.Track.Segments)-1]
		seg.Lane = w.rng.IntN(parameter.LaneCount)
		seg.Z = last.Z - (last.Length + last.PadDepth + spec.Gap)
	}

	sim.Track.SpawnedInLevel++
	sim.Track.Segments = append(sim.Track.Segments, seg)
	w.scene.SpawnSegment(scene.SegmentView{
		ID:       seg.ID,
		Lane:     seg.Lane,
		Pos:      segmentPos(seg),
		Length:   seg.Length,
		PadDepth: seg.PadDepth,
	})

	if forced {
		return seg
	}
	// Flying hazard takes priority over a ground hazard on the same segment
	if level >= 4 && w.obstacles.TrySpawnUfo(level, seg) {
		seg.HasHazard = true
	} else if level >= 3 && w.obstacles.ShouldSpawnBox(level) {
		w.obstacles.AttachBoxToBridge(seg, level)
		seg.HasHazard = true
	}
	return seg
}

// fillTrack spawns at most one segment while fewer than MaxSegments exist
func fillTrack(sim *Sim, w world) bool {
	if len(sim.Track.Segments) >= parameter.MaxSegments {
		return false
	}
	spawnSegment(sim, w)
	return true
}

// advanceTrack moves every segment toward the player and prunes those past the level's prune distance
func advanceTrack(sim *Sim, w world, dt float64) (pruned int) {
	step := sim.Game.Speed * dt
	prune := parameter.PlayerZ + parameter.Level(sim.Game.Level).PruneDistance

	live := sim.Track.Segments[:0]
	for _, seg := range sim.Track.Segments {
		seg.Z += step
		if seg.Tail() > prune {
			releaseSegment(sim, w, seg)
			pruned++
			continue
		}
		w.scene.MoveSegment(seg.ID, segmentPos(seg))
		live = append(live, seg)
	}
	clearTail(sim.Track.Segments, len(live))
	sim.Track.Segments = live
	return pruned
}

// clearTail drops references left behind an in-place filter
func clearTail(s []*Segment, n int) {
	for i := n; i < len(s); i++ {
		s[i] = nil
	}
}

func releaseSegment(sim *Sim, w world, seg *Segment) {
	if seg.ID == sim.Track.ActiveID {
		sim.Track.ActiveID = 0
	}
	seg.Active = false
	w.obstacles.ReleaseBridge(seg.ID)
	w.scene.DestroySegment(seg.ID)
}

// clearTrack releases every segment and its hazards
func clearTrack(sim *Sim, w world) {
	for _, seg := range sim.Track.Segments {
		releaseSegment(sim, w, seg)
	}
	clearTail(sim.Track.Segments, 0)
	sim.Track.Segments = sim.Track.Segments[:0]
	sim.Track.ActiveID = 0
}

func findSegment(sim *Sim, id uint64) *Segment {
	if id == 0 {
		return nil
	}
	for _, seg := range sim.Track.Segments {
		if seg.ID == id {
			return seg
		}
	}
	return nil
}

// updateActive re-validates the known active segment or scans for a new one
func updateActive(sim *Sim) *Segment {
	if seg := findSegment(sim, sim.Track.ActiveID); seg != nil {
		if seg.Straddles(parameter.PlayerZ) {
			return seg
		}
		seg.Active = false
		sim.Track.ActiveID = 0
	}
	for _, seg := range sim.Track.Segments {
		if seg.Straddles(parameter.PlayerZ) {
			seg.Active = true
			sim.Track.ActiveID = seg.ID
			return seg
		}
	}
	return nil
}

// nextAfter returns the segment spawned right after id
func nextAfter(sim *Sim, id uint64) *Segment {
	var next *Segment
	for _, seg := range sim.Track.Segments {
		if seg.ID > id && (next == nil || seg.ID < next.ID) {
			next = seg
		}
	}
	return next
}

// jumpTriggered reports whether the player crossed the active segment's jump trigger
// The trigger sits PadDepth*JumpTriggerRatio before the pad and fires once per segment id
func jumpTriggered(sim *Sim, active *Segment) bool {
	if active == nil || !sim.Game.MovementActive || sim.Jump.Jumping {
		return false
	}
	if active.ID == sim.Jump.LastJumpBridgeID {
		return false
	}
	threshold := active.Length - active.PadDepth*parameter.JumpTriggerRatio
	return active.Rel(parameter.PlayerZ) >= threshold
}

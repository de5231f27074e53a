package parameter

// Track geometry
// Z grows toward the camera; segments spawn at negative Z and travel toward PlayerZ
const (
	// LevelCount is the number of playable difficulty stages
	LevelCount = 4

	// LaneCount is the number of discrete lateral positions
	LaneCount = 3

	// CenterLane is the lane of the forced first segment
	CenterLane = 1

	// LaneWidth is the lateral distance between adjacent lane centers
	LaneWidth = 3.0

	// PlayerZ is the fixed world Z of the player
	PlayerZ = 0.0

	// SegmentLength is the length of a segment's main body
	SegmentLength = 24.0

	// SegmentPadDepth is the landing runway appended past the body
	SegmentPadDepth = 6.0

	// JumpTriggerRatio positions the jump trigger PadDepth*ratio before the pad starts
	JumpTriggerRatio = 0.5

	// MaxSegments is the number of live segments kept ahead of the player
	MaxSegments = 3

	// PadDrop lowers ground height while the player runs over a pad
	PadDrop = 0.15
)

// LevelSpec holds every per-level tunable
type LevelSpec struct {
	Speed         float64 // world units per second
	Gap           float64 // empty distance between consecutive segments
	JumpHeight    float64
	JumpDuration  float64 // seconds
	PruneDistance float64 // distance past the player before a segment is removed
	BoxChance     float64 // ground hazard probability per segment
	UfoChance     float64 // flying hazard probability per segment
	Rounds        int     // beat rounds that make up the level slot
	GoldBudget    int     // coins available from smashed boxes

	Tag              string
	TagStyle         string
	Instruction      string
	InstructionStyle string
}

// Levels is indexed by level-1; use Level() to read with clamping
var Levels = [LevelCount]LevelSpec{
	{
		Speed: 18, Gap: 9, JumpHeight: 2.2, JumpDuration: 1.00, PruneDistance: 30,
		Rounds: 8,
		Tag: "WARM UP", TagStyle: "tag-calm",
		Instruction: "Follow the beat", InstructionStyle: "info",
	},
	{
		Speed: 21, Gap: 8, JumpHeight: 2.0, JumpDuration: 0.81, PruneDistance: 30,
		Rounds: 8,
		Tag: "GROOVE", TagStyle: "tag-warm",
		Instruction: "Faster!", InstructionStyle: "info",
	},
	{
		Speed: 24, Gap: 7, JumpHeight: 1.8, JumpDuration: 0.67, PruneDistance: 34,
		BoxChance: 0.35, Rounds: 10, GoldBudget: 6,
		Tag: "PUNCH", TagStyle: "tag-hot",
		Instruction: "Punch the boxes", InstructionStyle: "warn",
	},
	{
		Speed: 27, Gap: 6, JumpHeight: 1.6, JumpDuration: 0.56, PruneDistance: 38,
		BoxChance: 0.45, UfoChance: 0.35, Rounds: 10, GoldBudget: 8,
		Tag: "STORM", TagStyle: "tag-max",
		Instruction: "Duck under the UFOs", InstructionStyle: "alert",
	},
}

// MinSpeed and MaxSpeed bound the normalized speed used for FOV and speed lines
const (
	MinSpeed = 18.0
	MaxSpeed = 27.0
)

// ClampLevel forces a level number into [1, LevelCount]
func ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > LevelCount {
		return LevelCount
	}
	return level
}

// Level returns the spec for a level number, clamped
func Level(level int) LevelSpec {
	return Levels[ClampLevel(level)-1]
}

// LaneX returns the world X of a lane center, lanes outside [0, LaneCount) are clamped
func LaneX(lane int) float64 {
	if lane < 0 {
		lane = 0
	} else if lane >= LaneCount {
		lane = LaneCount - 1
	}
	return float64(lane-CenterLane) * LaneWidth
}

// NormalizedSpeed maps speed into [0,1] between MinSpeed and MaxSpeed
func NormalizedSpeed(speed float64) float64 {
	n := (speed - MinSpeed) / (MaxSpeed - MinSpeed)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

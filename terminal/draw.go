package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/spokedu77-ops/flowrunner/parameter"
	"github.com/spokedu77-ops/flowrunner/scene"
)

// Projection of the top-down view
const (
	viewAhead     = 90.0 // world units shown above the player
	colsPerUnit   = 3.0  // at the reference FOV
	referenceFOV  = 70.0
	laneFill      = 0.4 // share of the lane width drawn as track
	rowsPerHeight = 1.5 // rows the player glyph rises per unit of jump
)

// Glyphs
const (
	glyphBody   = '▓'
	glyphPad    = '░'
	glyphBox    = '■'
	glyphUfo    = '◊'
	glyphCoin   = '$'
	glyphLine   = '│'
	glyphPlayer = '▲'
	glyphDuck   = '▼'
	glyphGrain  = '·'
	glyphBar    = '█'
)

var laneColors = [parameter.LaneCount]RGB{
	{70, 160, 255},
	{180, 120, 255},
	{255, 110, 170},
}

var hazardColors = map[scene.HazardKind]RGB{
	scene.HazardBox:  {255, 150, 50},
	scene.HazardUfo:  {120, 255, 140},
	scene.HazardCoin: {255, 220, 60},
}

// layout is the frame geometry derived from the screen size and camera
type layout struct {
	width, height int
	trackTop      int
	trackBottom   int
	playerRow     int
	centerCol     int
	rowsPerUnit   float64
	colsPerUnit   float64
	camX          float64
	tilt          float64
}

func (v *View) layout() layout {
	l := layout{
		width:       v.width,
		height:      v.height,
		trackTop:    2,
		trackBottom: v.height - 2,
		centerCol:   v.width / 2,
		camX:        v.camera.Pos.X(),
		tilt:        v.camera.Tilt,
	}
	l.playerRow = l.trackBottom - 2
	if l.playerRow <= l.trackTop {
		l.playerRow = l.trackTop + 1
	}
	l.rowsPerUnit = float64(l.playerRow-l.trackTop) / viewAhead
	fov := v.camera.FOV
	if fov <= 0 {
		fov = referenceFOV
	}
	l.colsPerUnit = colsPerUnit * referenceFOV / fov
	return l
}

// row maps a world Z onto a screen row; Z ahead of the player is above it
func (l layout) row(z float64) int {
	return l.playerRow + int(math.Round((z-parameter.PlayerZ)*l.rowsPerUnit))
}

// col maps a world X onto a screen column, skewed by camera roll
func (l layout) col(x float64, row int) int {
	skew := l.tilt * float64(l.playerRow-row)
	return l.centerCol + int(math.Round((x-l.camX)*l.colsPerUnit+skew))
}

func (l layout) inTrack(row int) bool {
	return row >= l.trackTop && row < l.trackBottom
}

// draw composes the whole frame; caller holds mu
func (v *View) draw() {
	if v.width <= 0 || v.height <= 0 {
		return
	}
	l := v.layout()

	v.drawBackdrop(l)
	v.drawSegments(l)
	v.drawHazards(l)
	v.drawSpeedLines(l)
	v.drawPlayer(l)
	v.drawHUD(l)
}

func (v *View) style(fg, bg RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(v.mode.Color(fg)).Background(v.mode.Color(bg))
}

// background returns the track backdrop with the flash mixed in
func (v *View) background() RGB {
	return v.backdrop.Mix(RGB{255, 255, 255}, v.hud.flash*0.6)
}

func (v *View) drawBackdrop(l layout) {
	bg := v.background()
	v.screen.Fill(' ', v.style(bg, bg))

	edge := int(v.visuals.Vignette * 4)
	dark := bg.Scale(0.4)
	grain := int(v.visuals.Grain * 3)
	for y := l.trackTop; y < l.trackBottom; y++ {
		for x := 0; x < l.width; x++ {
			switch {
			case x < edge || x >= l.width-edge:
				v.screen.SetContent(x, y, ' ', nil, v.style(dark, dark))
			case grain > 0 && grainHash(x, y, v.frames)%97 < uint64(grain):
				v.screen.SetContent(x, y, glyphGrain, nil, v.style(bg.Scale(1.8), bg))
			}
		}
	}
}

func grainHash(x, y int, frame uint64) uint64 {
	return uint64(x)*73856093 ^ uint64(y)*19349663 ^ frame*83492791
}

func (v *View) drawSegments(l layout) {
	bg := v.background()
	pulse := 0.8 + 0.2*math.Min(v.visuals.BeatPulse, 1.5)
	half := parameter.LaneWidth * laneFill

	for _, s := range v.segments {
		front := s.Pos.Z()
		padStart := front - s.Length
		back := padStart - s.PadDepth
		color := laneColors[clampLane(s.Lane)].Scale(pulse)

		for y := max(l.row(back), l.trackTop); y <= min(l.row(front), l.trackBottom-1); y++ {
			// World Z at this row decides body or pad
			z := parameter.PlayerZ + float64(y-l.playerRow)/l.rowsPerUnit
			glyph, fg := glyphBody, color
			if z < padStart {
				glyph, fg = glyphPad, color.Scale(0.7)
			}
			for x := l.col(s.Pos.X()-half, y); x <= l.col(s.Pos.X()+half, y); x++ {
				if x >= 0 && x < l.width {
					v.screen.SetContent(x, y, glyph, nil, v.style(fg, bg))
				}
			}
		}
	}
}

func clampLane(lane int) int {
	return min(max(lane, 0), parameter.LaneCount-1)
}

func (v *View) drawHazards(l layout) {
	bg := v.background()
	for _, h := range v.hazards {
		y := l.row(h.Pos.Z())
		if !l.inTrack(y) {
			continue
		}
		x := l.col(h.Pos.X(), y)
		if x < 0 || x >= l.width {
			continue
		}
		glyph := glyphBox
		switch h.Kind {
		case scene.HazardUfo:
			glyph = glyphUfo
		case scene.HazardCoin:
			glyph = glyphCoin
		}
		v.screen.SetContent(x, y, glyph, nil, v.style(hazardColors[h.Kind], bg).Bold(true))
	}
}

// drawSpeedLines advances and draws the ambient streaks
func (v *View) drawSpeedLines(l layout) {
	bg := v.background()
	step := float64(l.playerRow-l.trackTop) / speedLineFrames
	live := v.lines[:0]
	for _, s := range v.lines {
		y := l.trackTop + int(float64(s.age)*step)
		x := l.col(s.x, y)
		if x >= 0 && x < l.width && l.inTrack(y) {
			v.screen.SetContent(x, y, glyphLine, nil, v.style(bg.Mix(RGB{255, 255, 255}, 0.5), bg))
		}
		s.age++
		if s.age < speedLineFrames {
			live = append(live, s)
		}
	}
	v.lines = live
}

func (v *View) drawPlayer(l layout) {
	y := l.playerRow - int(math.Round(v.player.Y()*rowsPerHeight))
	if y < l.trackTop {
		y = l.trackTop
	}
	x := l.col(v.player.X(), l.playerRow)
	glyph := glyphPlayer
	if v.player.Y() == 0 && v.camera.Pos.Y() < parameter.CameraHeight-parameter.DuckDepth/2 {
		glyph = glyphDuck
	}
	if x >= 0 && x < l.width {
		v.screen.SetContent(x, y, glyph, nil, v.style(RGB{255, 255, 255}, v.background()).Bold(true))
	}
}

func (v *View) drawHUD(l layout) {
	bar := v.style(RGB{230, 230, 230}, RGB{0, 0, 0})
	for x := 0; x < l.width; x++ {
		v.screen.SetContent(x, 0, ' ', nil, bar)
		v.screen.SetContent(x, 1, ' ', nil, bar)
	}

	col := 1
	if v.hud.levelNumber != "" {
		col = v.text(col, 0, "LEVEL "+v.hud.levelNumber, bar.Bold(true)) + 2
	}
	if v.hud.levelTag != "" {
		v.text(col, 0, v.hud.levelTag, bar.Foreground(v.mode.Color(StyleColor(v.hud.tagStyle))))
	}
	v.drawProgress(l, bar)

	if v.hud.instrVisible && v.hud.instruction != "" {
		fg := v.mode.Color(StyleColor(v.hud.instrStyle))
		v.centered(1, v.hud.instruction, bar.Foreground(fg).Bold(true))
	}

	mid := l.trackTop + (l.trackBottom-l.trackTop)/3
	if v.hud.introVisible && v.hud.introTitle != "" {
		v.centered(mid-2, strings.Join(strings.Split(v.hud.introTitle, ""), " "), bar.Bold(true))
	}
	if v.hud.startVisible {
		v.centered(mid, "[ ENTER ] start", bar.Reverse(true))
	}
	if v.hud.countdownVisible && v.hud.countdown != "" {
		v.centered(mid+2, " "+v.hud.countdown+" ", bar.Bold(true).Reverse(true))
	}

	if v.showDebug && v.hud.debug != "" {
		v.text(0, l.height-1, truncate(v.hud.debug, l.width), bar.Dim(true))
	}
}

func (v *View) drawProgress(l layout, style tcell.Style) {
	const cells = 20
	label := fmt.Sprintf(" %3.0f%%", v.hud.progress)
	start := l.width - cells - len(label) - 3
	if start < 0 {
		return
	}
	filled := int(math.Round(v.hud.progress / 100 * cells))
	v.screen.SetContent(start, 0, '[', nil, style)
	for i := 0; i < cells; i++ {
		r := '-'
		if i < filled {
			r = glyphBar
		}
		v.screen.SetContent(start+1+i, 0, r, nil, style)
	}
	v.screen.SetContent(start+1+cells, 0, ']', nil, style)
	v.text(start+2+cells, 0, label, style)
}

// text writes s from column x and returns the column after it
func (v *View) text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= 0 && x < v.width && y >= 0 && y < v.height {
			v.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}

func (v *View) centered(y int, s string, style tcell.Style) {
	n := len([]rune(s))
	v.text((v.width-n)/2, y, s, style)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

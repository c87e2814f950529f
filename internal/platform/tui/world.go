package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/feeders"
	"github.com/vovakirdan/backyard-skies/internal/resources"
	"github.com/vovakirdan/backyard-skies/internal/session"
	"github.com/vovakirdan/backyard-skies/internal/species"
	"github.com/vovakirdan/backyard-skies/internal/terrain"
)

// A terminal cell is roughly twice as tall as it is wide.
const (
	unitsPerCol = 1.0
	unitsPerRow = 2.0
	hudRows     = 3
)

// camera is a top-down view centered on the bird with its heading up.
type camera struct {
	pos            core.Vec3
	fwdX, fwdZ     float64
	rightX, rightZ float64
	cx, cy         int
}

func newCamera(pos core.Vec3, rotation float64, w, h int) camera {
	return camera{
		pos:    pos,
		fwdX:   math.Sin(rotation),
		fwdZ:   math.Cos(rotation),
		rightX: math.Cos(rotation),
		rightZ: -math.Sin(rotation),
		cx:     w / 2,
		cy:     h * 2 / 3,
	}
}

// project maps a world position to a screen cell.
func (c camera) project(p core.Vec3) (int, int) {
	dx, dz := p.X-c.pos.X, p.Z-c.pos.Z
	side := dx*c.rightX + dz*c.rightZ
	ahead := dx*c.fwdX + dz*c.fwdZ
	return c.cx + int(math.Round(side/unitsPerCol)), c.cy - int(math.Round(ahead/unitsPerRow))
}

// unproject maps a screen cell back to the ground.
func (c camera) unproject(sx, sy int) (x, z float64) {
	side := float64(sx-c.cx) * unitsPerCol
	ahead := float64(c.cy-sy) * unitsPerRow
	return c.pos.X + side*c.rightX + ahead*c.fwdX, c.pos.Z + side*c.rightZ + ahead*c.fwdZ
}

var birdColors = map[species.ID]core.Color{
	species.Cardinal: core.ColorBrightRed,
	species.Tanager:  core.ColorRed,
	species.Bunting:  core.ColorBrightBlue,
	species.Starling: core.ColorMagenta,
}

// drawWorld renders the map area of a running session.
func drawWorld(scr *core.Screen, snap session.Snapshot, suburb *terrain.Suburb, now float64) {
	mapH := scr.Height() - hudRows
	if mapH < 3 {
		return
	}
	cam := newCamera(snap.Position, snap.Rotation, scr.Width(), mapH)

	drawGround(scr, cam, mapH, suburb)

	for _, f := range snap.Feeders {
		x, y := cam.project(f.Position)
		if y < 0 || y >= mapH {
			continue
		}
		glyph, color := 'F', core.ColorYellow
		if f.Kind == feeders.KindBirdbath {
			glyph, color = 'o', core.ColorCyan
		}
		if f.Locked(snap.Now) {
			color = core.ColorGray
		}
		scr.Set(x, y, glyph, color)
		if f.HasCat {
			scr.Set(x+1, y, 'c', core.ColorOrange)
		}
	}

	drawEagle(scr, cam, snap, mapH)

	birdColor, ok := birdColors[snap.Species.ID]
	if !ok {
		birdColor = core.ColorBrightRed
	}
	glyph := '^'
	switch {
	case snap.State == session.StateDying:
		glyph = 'x'
	case snap.State.Perched():
		glyph = 'v'
	case snap.IsFlapping && int(now*10)%2 == 0:
		glyph = 'W'
	}
	scr.Set(cam.cx, cam.cy, glyph, birdColor)

	// The shadow trails further below the bird as it climbs.
	if snap.State == session.StateFlight {
		shadow := int(snap.Position.Y / 8)
		scr.Set(cam.cx, cam.cy+1+shadow/2, '·', core.ColorGray)
	}
}

func drawGround(scr *core.Screen, cam camera, mapH int, suburb *terrain.Suburb) {
	var houses []terrain.House
	var trees []terrain.Tree
	if suburb != nil {
		ccx, ccz := terrain.ChunkCoords(cam.pos.X, cam.pos.Z)
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				c := suburb.Chunk(ccx+dx, ccz+dz)
				houses = append(houses, c.Houses...)
				trees = append(trees, c.Trees...)
			}
		}
	}

	for sy := 0; sy < mapH; sy++ {
		for sx := 0; sx < scr.Width(); sx++ {
			x, z := cam.unproject(sx, sy)
			r, color := groundRune(x, z, houses, trees)
			scr.Set(sx, sy, r, color)
		}
	}
}

func groundRune(x, z float64, houses []terrain.House, trees []terrain.Tree) (rune, core.Color) {
	for _, h := range houses {
		if math.Abs(x-h.X) < h.W/2 && math.Abs(z-h.Z) < h.D/2 {
			return '█', core.ColorBrown
		}
	}
	for _, t := range trees {
		dx, dz := x-t.X, z-t.Z
		if dx*dx+dz*dz < 4 {
			return '♣', core.ColorGreen
		}
	}
	ix, iz := int64(math.Floor(x/3)), int64(math.Floor(z/3))
	if (ix*73856093^iz*19349663)%13 == 0 {
		return '"', core.ColorGreen
	}
	return ' ', core.ColorDefault
}

// drawEagle places the eagle on a line closing in from behind the bird.
func drawEagle(scr *core.Screen, cam camera, snap session.Snapshot, mapH int) {
	e := snap.Eagle
	if !e.Active() || snap.State != session.StateFlight {
		return
	}
	var dist float64
	switch {
	case e.DodgeOpen():
		dist = 2
	case e.AltitudeHunt:
		dist = 2 + math.Max(e.Timer, 0)*4
	default:
		dist = 2 + math.Max(e.Timer, 0)*6
	}
	x := cam.cx - int(dist*0.7)
	y := cam.cy + int(dist*0.35)
	if y >= mapH {
		y = mapH - 1
	}
	scr.Set(x, y, 'M', core.ColorBrightYellow)
}

// drawHUD renders the status rows under the map. Key help is rendered
// below the screen buffer.
func drawHUD(scr *core.Screen, snap session.Snapshot) {
	top := scr.Height() - hudRows
	if top < 0 {
		top = 0
	}
	w := scr.Width()
	scr.DrawHLine(0, top, w, ' ', core.ColorDefault)
	scr.DrawHLine(0, top+1, w, ' ', core.ColorDefault)
	scr.DrawHLine(0, top+2, w, ' ', core.ColorDefault)

	attrs := snap.Species.Attributes
	x := 0
	for _, g := range []struct {
		label    string
		val, max float64
		status   resources.Status
	}{
		{"FOOD", snap.Food, attrs.MaxFood, snap.FoodStatus},
		{"WATER", snap.Water, attrs.MaxWater, snap.WaterStatus},
		{"STAMINA", snap.Stamina, attrs.Stamina, snap.StaminaStatus},
	} {
		scr.DrawText(x, top, g.label, core.ColorWhite)
		x += len(g.label) + 1
		scr.DrawBar(x, top, 12, g.val/g.max, gradeColor(g.status))
		x += 14
	}

	status := fmt.Sprintf("ALT %4.1f  SCORE %d  %.2f km  %s  %s",
		snap.Position.Y, snap.Points, snap.Distance, clockText(snap.Elapsed), snap.Species.Name)
	scr.DrawText(0, top+1, status, core.ColorWhite)

	text, color := threatLine(snap)
	scr.DrawText(0, top+2, text, color)
}

func gradeColor(s resources.Status) core.Color {
	switch s {
	case resources.StatusCritical:
		return core.ColorBrightRed
	case resources.StatusWarning:
		return core.ColorBrightYellow
	}
	return core.ColorBrightGreen
}

// threatLine picks the single most urgent message for the HUD.
func threatLine(snap session.Snapshot) (string, core.Color) {
	e := snap.Eagle
	switch {
	case snap.Paused:
		return "PAUSED  (p to resume)", core.ColorBrightYellow
	case snap.State == session.StateDying:
		return fmt.Sprintf("%s  %s", snap.DeathReason.Message(), progressDots(snap.DyingProgress)), core.ColorBrightRed
	case snap.State == session.StateFlight && e.AltitudeHunt:
		return fmt.Sprintf("!! TOO HIGH - EAGLE HUNTING  descend  %.1fs", math.Max(e.Timer, 0)), core.ColorBrightRed
	case snap.State == session.StateFlight && e.DodgeOpen() && e.NearCeiling:
		return fmt.Sprintf("!! EAGLE DIVING - FLAP FLAP FLAP  %d taps", e.DodgeTaps), core.ColorBrightRed
	case snap.State == session.StateFlight && e.DodgeOpen():
		return "!! EAGLE DIVING - TURN HARD", core.ColorBrightRed
	case snap.State == session.StateFlight && e.Warning:
		return "! Eagle overhead", core.ColorBrightYellow
	case snap.Threat == session.ThreatCat:
		return fmt.Sprintf("!! CAT STALKING  %3.0f%%  fly away!", snap.ThreatMeter), core.ColorBrightRed
	case snap.State.Perched():
		verb := "Feeding"
		if snap.State == session.StateDrinking {
			verb = "Drinking"
		}
		if snap.CanFlyAway {
			return verb + "...  space to fly away", core.ColorBrightGreen
		}
		return verb + "...", core.ColorGreen
	}
	return hintText(snap.Hints), core.ColorCyan
}

var arrows = []rune("↑↗→↘↓↙←↖")

func hintText(hints []session.Hint) string {
	out := ""
	for _, h := range hints {
		i := int(math.Round(h.Bearing/(math.Pi/4))) % 8
		if i < 0 {
			i += 8
		}
		label := "feeder"
		if h.Feeder.Kind == feeders.KindBirdbath {
			label = "bath"
		}
		out += fmt.Sprintf("%s %c %.0fm   ", label, arrows[i], h.Distance)
	}
	return out
}

func progressDots(p float64) string {
	n := int(core.ClampF(p, 0, 1) * 5)
	dots := []rune("·····")
	for i := 0; i < n; i++ {
		dots[i] = '●'
	}
	return string(dots)
}

func clockText(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

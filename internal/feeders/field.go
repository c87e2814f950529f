package feeders

import (
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
)

// Terrain answers whether a ground position is blocked by scenery.
type Terrain interface {
	Obstructed(x, z float64) bool
}

// Field is the working set of feeders. It is owned by a single session and is
// not safe for concurrent use.
type Field struct {
	cfg     config.FeederConfig
	terrain Terrain
	rng     *rand.Rand

	feeders []Feeder
	nextID  int
}

// NewField creates an empty field. A nil terrain never obstructs.
func NewField(cfg config.FeederConfig, terrain Terrain, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Field{
		cfg:     cfg,
		terrain: terrain,
		rng:     rng,
	}
}

// Generate replaces the field with the initial layout around center.
// Ids keep counting from the previous generation.
func (fl *Field) Generate(center core.Vec3) {
	fl.feeders = fl.feeders[:0]

	for i := 0; i < fl.cfg.InitialFeeders; i++ {
		if pos, ok := fl.initialPosition(center); ok {
			fl.add(pos, KindFeeder, fl.rng.Float64() < fl.cfg.InitialCatFeeder)
		}
	}
	for i := 0; i < fl.cfg.InitialBirdbaths; i++ {
		if pos, ok := fl.initialPosition(center); ok {
			fl.add(pos, KindBirdbath, fl.rng.Float64() < fl.cfg.InitialCatBirdbath)
		}
	}
}

func (fl *Field) initialPosition(center core.Vec3) (core.Vec3, bool) {
	for attempt := 0; attempt < fl.cfg.InitialAttempts; attempt++ {
		spread := fl.cfg.InitialSpread
		if attempt >= fl.cfg.WideSpreadAfter {
			spread *= fl.cfg.WideSpreadFactor
		}
		x := center.X + (fl.rng.Float64()-0.5)*spread
		z := center.Z + (fl.rng.Float64()-0.5)*spread
		if fl.free(x, z) {
			return core.V3(x, 0, z), true
		}
	}
	return core.Vec3{}, false
}

// Cull drops feeders beyond the despawn radius and returns how many went.
func (fl *Field) Cull(pos core.Vec3) int {
	before := len(fl.feeders)
	fl.feeders = slices.DeleteFunc(fl.feeders, func(f Feeder) bool {
		return core.HorizontalDist(f.Position, pos) >= fl.cfg.DespawnRadius
	})
	return before - len(fl.feeders)
}

// NearbyCount returns how many feeders lie within the nearby radius.
func (fl *Field) NearbyCount(pos core.Vec3) int {
	n := 0
	for _, f := range fl.feeders {
		if core.HorizontalDist(f.Position, pos) < fl.cfg.NearbyRadius {
			n++
		}
	}
	return n
}

// SpawnNearby tops the field up to the nearby target and returns how many
// feeders were added. A missing feeder is skipped after SpawnAttempts
// rejected candidates.
func (fl *Field) SpawnNearby(pos core.Vec3) int {
	missing := fl.cfg.NearbyTarget - fl.NearbyCount(pos)
	spawned := 0
	band := fl.cfg.SpawnMaxDistance - fl.cfg.SpawnMinDistance

	for s := 0; s < missing; s++ {
		for attempt := 0; attempt < fl.cfg.SpawnAttempts; attempt++ {
			angle := fl.rng.Float64() * 2 * math.Pi
			dist := fl.cfg.SpawnMinDistance + fl.rng.Float64()*band
			x := pos.X + math.Sin(angle)*dist
			z := pos.Z + math.Cos(angle)*dist
			if !fl.free(x, z) {
				continue
			}

			kind := KindFeeder
			if fl.rng.Float64() < fl.cfg.BirdbathProbability {
				kind = KindBirdbath
			}
			fl.add(core.V3(x, 0, z), kind, fl.rng.Float64() < fl.cfg.CatProbability)
			spawned++
			break
		}
	}
	return spawned
}

// Refresh culls distant feeders and spawns replacements near pos.
func (fl *Field) Refresh(pos core.Vec3) (culled, spawned int) {
	culled = fl.Cull(pos)
	spawned = fl.SpawnNearby(pos)
	return culled, spawned
}

// Place adds a feeder at an exact position without spacing or terrain checks.
// It exists for scripted layouts.
func (fl *Field) Place(pos core.Vec3, kind Kind, hasCat bool) Feeder {
	pos.Y = 0
	return fl.add(pos, kind, hasCat)
}

// Lock locks feeder id until the given time. It reports whether the feeder
// is still in the field.
func (fl *Field) Lock(id int, until time.Time) bool {
	for i := range fl.feeders {
		if fl.feeders[i].ID == id {
			fl.feeders[i].LockedUntil = until
			return true
		}
	}
	return false
}

// Available reports whether f can be landed on at now.
func Available(f Feeder, now time.Time) bool {
	return !f.Locked(now)
}

// LandingCandidate returns the first unlocked feeder the bird at pos is close
// enough to land on.
func (fl *Field) LandingCandidate(pos core.Vec3, now time.Time) (Feeder, bool) {
	for _, f := range fl.feeders {
		if !Available(f, now) {
			continue
		}
		if core.HorizontalDist(pos, f.Position) < fl.cfg.LandingRadius &&
			pos.Y < f.Position.Y+fl.cfg.LandingHeight {
			return f, true
		}
	}
	return Feeder{}, false
}

// Nearest returns the closest unlocked feeder to pos, limited to the given
// kinds when any are passed.
func (fl *Field) Nearest(pos core.Vec3, now time.Time, kinds ...Kind) (Feeder, bool) {
	var (
		best  Feeder
		found bool
		bestD = math.Inf(1)
	)
	for _, f := range fl.feeders {
		if !Available(f, now) {
			continue
		}
		if len(kinds) > 0 && !slices.Contains(kinds, f.Kind) {
			continue
		}
		if d := core.HorizontalDistSq(pos, f.Position); d < bestD {
			best, bestD, found = f, d, true
		}
	}
	return best, found
}

// Get returns the feeder with the given id.
func (fl *Field) Get(id int) (Feeder, bool) {
	for _, f := range fl.feeders {
		if f.ID == id {
			return f, true
		}
	}
	return Feeder{}, false
}

// All returns a copy of the working set.
func (fl *Field) All() []Feeder {
	return slices.Clone(fl.feeders)
}

// Len returns the number of feeders in the field.
func (fl *Field) Len() int {
	return len(fl.feeders)
}

func (fl *Field) add(pos core.Vec3, kind Kind, hasCat bool) Feeder {
	f := Feeder{
		ID:       fl.nextID,
		Position: pos,
		Kind:     kind,
		HasCat:   hasCat,
	}
	fl.nextID++
	fl.feeders = append(fl.feeders, f)
	return f
}

// free reports whether a feeder may go at (x, z).
func (fl *Field) free(x, z float64) bool {
	if fl.terrain != nil && fl.terrain.Obstructed(x, z) {
		return false
	}
	minSq := fl.cfg.MinSpacing * fl.cfg.MinSpacing
	p := core.V3(x, 0, z)
	for _, f := range fl.feeders {
		if core.HorizontalDistSq(f.Position, p) < minSq {
			return false
		}
	}
	return true
}

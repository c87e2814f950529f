// Package feeders maintains the working set of feeders and birdbaths around
// the player.
package feeders

import (
	"math"
	"time"

	"github.com/vovakirdan/backyard-skies/internal/core"
)

// Kind distinguishes food feeders from birdbaths.
type Kind int

const (
	KindFeeder Kind = iota
	KindBirdbath
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindBirdbath {
		return "birdbath"
	}
	return "feeder"
}

// Feeder is one landable object. Position.Y is always 0.
type Feeder struct {
	ID          int
	Position    core.Vec3
	Kind        Kind
	HasCat      bool
	LockedUntil time.Time // zero means never locked
}

// Locked reports whether the feeder is still locked out at now.
func (f Feeder) Locked(now time.Time) bool {
	return !f.LockedUntil.IsZero() && f.LockedUntil.After(now)
}

// Perch offsets put the bird on the tray or basin rim, facing the camera.
var perchOffsets = map[Kind]core.Vec3{
	KindFeeder:   {X: 0, Y: 1.85, Z: 0.9},
	KindBirdbath: {X: 0, Y: 2.35, Z: 1.1},
}

// Perch returns the landing pose for f.
func Perch(f Feeder) (core.Vec3, float64) {
	off := perchOffsets[f.Kind]
	return core.V3(f.Position.X+off.X, f.Position.Y+off.Y, f.Position.Z+off.Z), math.Pi
}

package terrain

// Park-Miller minimal standard generator. The layout of every chunk depends
// on the exact draw sequence, so the generator is kept local rather than
// swapped for math/rand.
const (
	lcgMultiplier = 16807
	lcgModulus    = 2147483647
)

type lcg struct {
	s int64
}

func newLCG(seed int64) *lcg {
	return &lcg{s: seed}
}

// next returns a value in [0, 1).
func (g *lcg) next() float64 {
	g.s = (g.s * lcgMultiplier) % lcgModulus
	return float64(g.s-1) / (lcgModulus - 1)
}

// skip discards n draws used only for cosmetic attributes.
func (g *lcg) skip(n int) {
	for i := 0; i < n; i++ {
		g.next()
	}
}

// Package terrain generates the suburban obstruction map that feeders must
// avoid. The world is split into square chunks; each chunk's houses and trees
// are derived from its coordinates alone, so any position can be queried
// without generating the whole map.
package terrain

import (
	"math"
	"sync"
)

const (
	// ChunkSize is the edge length of one chunk in world units.
	ChunkSize = 45

	housesPerChunk = 3
	treesPerChunk  = 5

	// Obstacle footprints include the yard fence around a house and the
	// canopy around a tree.
	houseFenceW  = 8
	houseFenceD  = 10
	treeRadiusSq = 16

	maxCachedChunks = 512
)

// House is a house footprint in world coordinates.
type House struct {
	X, Z float64
	W, D float64
	H    float64
}

// Tree is a tree trunk position in world coordinates.
type Tree struct {
	X, Z   float64
	Height float64
}

// Chunk is the generated content of one chunk.
type Chunk struct {
	CX, CZ   int
	HasRoadZ bool
	Houses   []House
	Trees    []Tree
}

type chunkKey struct{ cx, cz int }

// Suburb is a seeded, lazily generated suburb. It is safe for concurrent use.
type Suburb struct {
	seed int64

	mu     sync.Mutex
	chunks map[chunkKey]*Chunk
}

// NewSuburb creates a suburb. Seed 0 yields the reference layout.
func NewSuburb(seed int64) *Suburb {
	return &Suburb{
		seed:   seed,
		chunks: make(map[chunkKey]*Chunk),
	}
}

// ChunkCoords returns the chunk containing the world position.
func ChunkCoords(x, z float64) (int, int) {
	return int(math.Floor(x / ChunkSize)), int(math.Floor(z / ChunkSize))
}

// Chunk returns the content of chunk (cx, cz), generating it on first use.
func (s *Suburb) Chunk(cx, cz int) *Chunk {
	key := chunkKey{cx, cz}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.chunks[key]; ok {
		return c
	}
	if len(s.chunks) >= maxCachedChunks {
		clear(s.chunks)
	}
	c := generateChunk(cx, cz, s.seed)
	s.chunks[key] = c
	return c
}

// Obstructed reports whether (x, z) falls inside a house yard or under a tree
// canopy. Neighbouring chunks are checked because footprints cross chunk
// borders.
func (s *Suburb) Obstructed(x, z float64) bool {
	cx, cz := ChunkCoords(x, z)
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			c := s.Chunk(cx+dx, cz+dz)
			for _, h := range c.Houses {
				hw := (h.W + houseFenceW) / 2
				hd := (h.D + houseFenceD) / 2
				if math.Abs(x-h.X) < hw && math.Abs(z-h.Z) < hd {
					return true
				}
			}
			for _, t := range c.Trees {
				tx, tz := x-t.X, z-t.Z
				if tx*tx+tz*tz < treeRadiusSq {
					return true
				}
			}
		}
	}
	return false
}

// Open never obstructs. Used when no terrain is wired.
type Open struct{}

// Obstructed always returns false.
func (Open) Obstructed(x, z float64) bool { return false }

// chunkSeed reduces modulo the generator modulus, which leaves the draw
// sequence unchanged and keeps the first multiplication inside int64.
func chunkSeed(cx, cz int, seed int64) int64 {
	v := int64(cx)*73856093 + int64(cz)*19349663 + seed%lcgModulus
	if v < 0 {
		v = -v
	}
	v = (v + 1) % lcgModulus
	if v == 0 {
		v = 1
	}
	return v
}

func generateChunk(cx, cz int, seed int64) *Chunk {
	rng := newLCG(chunkSeed(cx, cz, seed))
	c := &Chunk{CX: cx, CZ: cz}

	// Grass patches and mow stripes are cosmetic but consume draws.
	rng.skip(5 * 6)
	rng.skip(4 * 7)

	c.HasRoadZ = abs(cx)%2 == 0

	ox := float64(cx) * ChunkSize
	oz := float64(cz) * ChunkSize

	if c.HasRoadZ {
		// Intersection: one house per quadrant.
		for qi := 0; qi < 4; qi++ {
			sx, sz := 1.0, 1.0
			if qi >= 2 {
				sx = -1
			}
			if qi%2 != 0 {
				sz = -1
			}
			x := sx * (6 + rng.next()*5)
			z := sz * (6 + rng.next()*5)
			c.Houses = append(c.Houses, nextHouse(rng, ox+x, oz+z))
		}
	} else {
		for i := 0; i < housesPerChunk; i++ {
			side := 1.0
			if i%2 != 0 {
				side = -1
			}
			x := (float64(i)/housesPerChunk-0.5)*ChunkSize*0.8 + (rng.next()-0.5)*4
			z := side * (6 + rng.next()*5)
			c.Houses = append(c.Houses, nextHouse(rng, ox+x, oz+z))
		}
	}

	for i := 0; i < treesPerChunk; i++ {
		x := (rng.next() - 0.5) * ChunkSize
		z := (rng.next() - 0.5) * ChunkSize
		height := 3 + rng.next()*4
		rng.skip(1) // species
		c.Trees = append(c.Trees, Tree{X: ox + x, Z: oz + z, Height: height})
	}

	return c
}

// nextHouse draws the size of a house placed at (x, z).
func nextHouse(rng *lcg, x, z float64) House {
	w := 3.5 + rng.next()*2
	h := 2.8 + rng.next()*1.5
	d := 3.5 + rng.next()*2
	rng.skip(5) // roof, wall, fence, patio, model
	return House{X: x, Z: z, W: w, D: d, H: h}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

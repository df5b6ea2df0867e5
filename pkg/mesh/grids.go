package mesh

import "github.com/go-gl/mathgl/mgl64"

// GridSizeForLevel returns the per-corner grid resolution at a subdivision
// level: (2^(level-1))+1 samples per side, matching the grid layout where
// sample (0,0) sits on the base vertex and (1,1) on the face center.
// Level 0 has a single sample.
func GridSizeForLevel(level int) int {
	if level <= 0 {
		return 1
	}
	return (1 << (level - 1)) + 1
}

// Grid holds the displacement samples and optional paint-mask values for one
// face corner at the grid set's level. Samples are row-major, index y*size+x.
type Grid struct {
	Displacement []mgl64.Vec3
	Mask         []float64
}

// GridSet is the displacement storage for a whole mesh: one Grid per face
// corner, all at the same level. It plays the buffer-provider role: the
// reshape engine reads and writes through the slices it hands out but never
// allocates mesh-level storage itself.
type GridSet struct {
	level    int
	withMask bool
	grids    []Grid
}

// NewGridSet allocates numGrids zeroed grids at the given level.
func NewGridSet(numGrids, level int, withMask bool) *GridSet {
	s := &GridSet{withMask: withMask}
	s.alloc(numGrids, level)
	return s
}

func (s *GridSet) alloc(numGrids, level int) {
	size := GridSizeForLevel(level)
	s.level = level
	s.grids = make([]Grid, numGrids)
	for i := range s.grids {
		s.grids[i].Displacement = make([]mgl64.Vec3, size*size)
		if s.withMask {
			s.grids[i].Mask = make([]float64, size*size)
		}
	}
}

// Level returns the subdivision level the grids are allocated for.
func (s *GridSet) Level() int { return s.level }

// GridSize returns the per-side sample count at the current level.
func (s *GridSet) GridSize() int { return GridSizeForLevel(s.level) }

// NumGrids returns the number of grids in the set.
func (s *GridSet) NumGrids() int { return len(s.grids) }

// Displacement returns the backing displacement slice of one grid.
func (s *GridSet) Displacement(grid int) []mgl64.Vec3 {
	return s.grids[grid].Displacement
}

// Mask returns the backing mask slice of one grid, or nil if the set was
// allocated without masks.
func (s *GridSet) Mask(grid int) []float64 {
	return s.grids[grid].Mask
}

// EnsureLevel guarantees storage sized for the given level. Growing (or
// shrinking) reallocates zeroed buffers; content at the previous level is
// dropped, so callers snapshot first when old data matters. Same level is a
// no-op.
func (s *GridSet) EnsureLevel(level int) {
	if level == s.level {
		return
	}
	s.alloc(len(s.grids), level)
}

// Clone returns a deep copy sharing no storage with the receiver.
func (s *GridSet) Clone() *GridSet {
	c := &GridSet{level: s.level, withMask: s.withMask, grids: make([]Grid, len(s.grids))}
	for i := range s.grids {
		c.grids[i].Displacement = append([]mgl64.Vec3(nil), s.grids[i].Displacement...)
		if s.grids[i].Mask != nil {
			c.grids[i].Mask = append([]float64(nil), s.grids[i].Mask...)
		}
	}
	return c
}

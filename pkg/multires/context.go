package multires

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/multires/pkg/subdiv"
)

// Context owns the lookup tables and level metadata of one reshape
// operation. It is built once per operation, read by every pass, and freed
// with Close. A Context is not safe for concurrent use.
type Context struct {
	topo  Topology
	grids GridStore

	eval     subdiv.Evaluator
	ownsEval bool

	reshape LevelInfo
	top     LevelInfo

	numGrids int

	// Flat index tables, immutable after construction.
	faceFirstGrid  []int // per face, +1 sentinel
	gridToFace     []int // per grid
	facePTexOffset []int // per face, +1 sentinel
	ptexFirstGrid  []int // per ptex face, +1 sentinel

	// Snapshot of displacement/mask taken before editing; nil until
	// StoreOriginalGrids (or the subdivide construction path) runs.
	orig *origGrids

	log  *zap.Logger
	opID string
}

type origGrids struct {
	level int
	size  int
	displ [][]mgl64.Vec3
	mask  [][]float64
}

// Option configures optional context behavior.
type Option func(*Context)

// WithLogger attaches a logger for diagnostics. The default is a no-op
// logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// NewContext builds a context for reshaping the given mesh at
// settings.Level, propagating up to settings.TopLevel. The context takes
// ownership of the evaluator and closes it on Close; on error ownership
// does not transfer and the caller still holds the evaluator. The grid
// store is grown to the top level.
func NewContext(topo Topology, grids GridStore, eval subdiv.Evaluator, settings Settings, opts ...Option) (*Context, error) {
	c, err := newContext(topo, grids, eval, settings, true, opts)
	if err != nil {
		return nil, err
	}
	// Validate the store before growing it, so a failed construction
	// leaves the caller's grid data untouched.
	if grids.NumGrids() != c.numGrids {
		return nil, fmt.Errorf("%w: store has %d grids, base mesh needs %d",
			ErrBadTopology, grids.NumGrids(), c.numGrids)
	}
	grids.EnsureLevel(settings.TopLevel)
	if err := c.checkStore(); err != nil {
		return nil, err
	}
	c.logCreated("object")
	return c, nil
}

// NewContextFromGridSource builds a context whose reshape level is the
// source's level, propagating to topLevel. The evaluator is borrowed: it
// stays alive after Close. Fails if the source topology is incompatible
// with the base mesh.
func NewContextFromGridSource(topo Topology, grids GridStore, eval subdiv.Evaluator, src GridSource, topLevel int, opts ...Option) (*Context, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil grid source", ErrBadTopology)
	}
	settings := Settings{Level: src.Level(), TopLevel: topLevel}
	c, err := newContext(topo, grids, eval, settings, false, opts)
	if err != nil {
		return nil, err
	}
	if src.NumGrids() != c.numGrids {
		return nil, fmt.Errorf("%w: source has %d grids, base mesh needs %d",
			ErrBadTopology, src.NumGrids(), c.numGrids)
	}
	if grids.NumGrids() != c.numGrids {
		return nil, fmt.Errorf("%w: store has %d grids, base mesh needs %d",
			ErrBadTopology, grids.NumGrids(), c.numGrids)
	}
	grids.EnsureLevel(topLevel)
	if err := c.checkStore(); err != nil {
		return nil, err
	}
	c.logCreated("grid source")
	return c, nil
}

// NewContextFromSubdivide builds a context for pure up-sampling: the
// reshape level is whatever the store currently holds and the store is
// grown to topLevel. Existing grid data is snapshotted as the original
// before the growth drops it, so AssignFromOrigDisplacement can carry it
// over. The context takes ownership of the evaluator; on error ownership
// does not transfer and the caller still holds the evaluator.
func NewContextFromSubdivide(topo Topology, grids GridStore, eval subdiv.Evaluator, topLevel int, opts ...Option) (*Context, error) {
	settings := Settings{Level: grids.Level(), TopLevel: topLevel}
	c, err := newContext(topo, grids, eval, settings, true, opts)
	if err != nil {
		return nil, err
	}
	if grids.NumGrids() != c.numGrids {
		return nil, fmt.Errorf("%w: store has %d grids, base mesh needs %d",
			ErrBadTopology, grids.NumGrids(), c.numGrids)
	}
	c.StoreOriginalGrids()
	grids.EnsureLevel(topLevel)
	if err := c.checkStore(); err != nil {
		return nil, err
	}
	c.logCreated("subdivide")
	return c, nil
}

func newContext(topo Topology, grids GridStore, eval subdiv.Evaluator, settings Settings, ownsEval bool, opts []Option) (*Context, error) {
	if topo == nil || topo.FaceCount() == 0 {
		return nil, ErrNoBaseMesh
	}
	if grids == nil || eval == nil {
		return nil, ErrNoBaseMesh
	}
	if settings.Level < 1 || settings.Level > settings.TopLevel {
		return nil, fmt.Errorf("%w: reshape %d, top %d", ErrInvalidLevel, settings.Level, settings.TopLevel)
	}

	c := &Context{
		topo:     topo,
		grids:    grids,
		eval:     eval,
		ownsEval: ownsEval,
		reshape:  LevelInfo{Level: settings.Level, GridSize: gridSizeForLevel(settings.Level)},
		top:      LevelInfo{Level: settings.TopLevel, GridSize: gridSizeForLevel(settings.TopLevel)},
		log:      zap.NewNop(),
		opID:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.buildIndexTables(); err != nil {
		return nil, err
	}
	return c, nil
}

// buildIndexTables derives the face/grid/ptex mappings from the topology.
// One grid per face corner; quad faces share a single ptex face, every
// other face gets one ptex face per corner.
func (c *Context) buildIndexTables() error {
	numFaces := c.topo.FaceCount()
	c.faceFirstGrid = make([]int, numFaces+1)
	c.facePTexOffset = make([]int, numFaces+1)

	gridIndex, ptexIndex := 0, 0
	for f := 0; f < numFaces; f++ {
		n := c.topo.CornerCount(f)
		if n < 3 {
			return fmt.Errorf("%w: face %d has %d corners", ErrBadTopology, f, n)
		}
		c.faceFirstGrid[f] = gridIndex
		c.facePTexOffset[f] = ptexIndex
		gridIndex += n
		if n == 4 {
			ptexIndex++
		} else {
			ptexIndex += n
		}
	}
	c.faceFirstGrid[numFaces] = gridIndex
	c.facePTexOffset[numFaces] = ptexIndex
	c.numGrids = gridIndex

	c.gridToFace = make([]int, c.numGrids)
	c.ptexFirstGrid = make([]int, ptexIndex+1)
	for f := 0; f < numFaces; f++ {
		n := c.topo.CornerCount(f)
		first := c.faceFirstGrid[f]
		for corner := 0; corner < n; corner++ {
			c.gridToFace[first+corner] = f
		}
		if n == 4 {
			c.ptexFirstGrid[c.facePTexOffset[f]] = first
		} else {
			for corner := 0; corner < n; corner++ {
				c.ptexFirstGrid[c.facePTexOffset[f]+corner] = first + corner
			}
		}
	}
	c.ptexFirstGrid[ptexIndex] = c.numGrids
	return nil
}

// checkStore validates that the grid store matches the derived tables.
func (c *Context) checkStore() error {
	if c.grids.NumGrids() != c.numGrids {
		return fmt.Errorf("%w: store has %d grids, base mesh needs %d",
			ErrBadTopology, c.grids.NumGrids(), c.numGrids)
	}
	if c.grids.Level() != c.top.Level {
		return fmt.Errorf("%w: store at level %d, top level is %d",
			ErrLevelMismatch, c.grids.Level(), c.top.Level)
	}
	return nil
}

func (c *Context) logCreated(path string) {
	c.log.Debug("reshape context created",
		zap.String("op", c.opID),
		zap.String("path", path),
		zap.Int("faces", c.topo.FaceCount()),
		zap.Int("grids", c.numGrids),
		zap.Int("reshape_level", c.reshape.Level),
		zap.Int("top_level", c.top.Level),
	)
}

// Close releases the context. The evaluator is closed only if the context
// owns it; caller-owned buffers are never freed. Safe on a nil or partially
// constructed context.
func (c *Context) Close() {
	if c == nil {
		return
	}
	if c.ownsEval && c.eval != nil {
		c.eval.Close()
	}
	c.eval = nil
	c.orig = nil
}

// NumGrids returns the total grid count of the base mesh.
func (c *Context) NumGrids() int { return c.numGrids }

// Reshape returns the level displacement is being assigned at.
func (c *Context) Reshape() LevelInfo { return c.reshape }

// Top returns the highest stored level propagation targets.
func (c *Context) Top() LevelInfo { return c.top }

// OperationID returns the identifier attached to this operation's logs.
func (c *Context) OperationID() string { return c.opID }

// StoreOriginalGrids snapshots the destination displacement and mask
// buffers at their current level, so high-frequency detail can be recovered
// after the reshape-level data changes.
func (c *Context) StoreOriginalGrids() {
	level := c.grids.Level()
	size := gridSizeForLevel(level)
	o := &origGrids{
		level: level,
		size:  size,
		displ: make([][]mgl64.Vec3, c.grids.NumGrids()),
		mask:  make([][]float64, c.grids.NumGrids()),
	}
	for g := 0; g < c.grids.NumGrids(); g++ {
		o.displ[g] = append([]mgl64.Vec3(nil), c.grids.Displacement(g)...)
		if m := c.grids.Mask(g); m != nil {
			o.mask[g] = append([]float64(nil), m...)
		}
	}
	c.orig = o
	c.log.Debug("original grids stored", zap.String("op", c.opID), zap.Int("level", level))
}

// HasOriginal reports whether an original snapshot is available.
func (c *Context) HasOriginal() bool { return c.orig != nil }

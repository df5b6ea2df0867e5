// Package main is the entry point for gridprobe, a small inspection tool
// for the multires reshape engine: it builds a reshape context over a
// built-in surface and prints its index tables, coordinate conversions and
// tangent frames.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/multires/internal/config"
	"github.com/Faultbox/multires/internal/logger"
	"github.com/Faultbox/multires/pkg/mesh"
	"github.com/Faultbox/multires/pkg/multires"
	"github.com/Faultbox/multires/pkg/subdiv"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("probe failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	m, eval, err := buildSurface(cfg.Surface)
	if err != nil {
		return err
	}

	numGrids := 0
	for f := 0; f < m.FaceCount(); f++ {
		numGrids += m.CornerCount(f)
	}
	grids := mesh.NewGridSet(numGrids, cfg.Levels.Top, false)

	settings := multires.Settings{Level: cfg.Levels.Reshape, TopLevel: cfg.Levels.Top}
	ctx, err := multires.NewContext(m, grids, eval, settings, multires.WithLogger(log))
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	defer ctx.Close()

	log.Info("context ready",
		zap.String("shape", cfg.Surface.Shape),
		zap.Int("faces", m.FaceCount()),
		zap.Int("grids", ctx.NumGrids()),
		zap.Int("reshape_level", ctx.Reshape().Level),
		zap.Int("top_level", ctx.Top().Level),
	)

	printTables(ctx, m)
	printProbes(ctx)
	return probeReshape(ctx, grids)
}

// buildSurface constructs the base mesh and limit evaluator for a shape
// name.
func buildSurface(sc config.SurfaceConfig) (*mesh.Mesh, subdiv.Evaluator, error) {
	switch sc.Shape {
	case "plane":
		m := mesh.Quad(sc.Size)
		return m, subdiv.NewPatchEvaluator(m, m.Coords), nil
	case "cube":
		m := mesh.Cube(sc.Size)
		return m, subdiv.NewPatchEvaluator(m, m.Coords), nil
	case "sphere":
		m := mesh.Cube(sc.Size)
		inner := subdiv.NewPatchEvaluator(m, m.Coords)
		return m, subdiv.NewSphereEvaluator(inner, mgl64.Vec3{}, sc.Size*0.5), nil
	default:
		return nil, nil, fmt.Errorf("unknown shape %q", sc.Shape)
	}
}

func printTables(ctx *multires.Context, m *mesh.Mesh) {
	fmt.Printf("grids: %d  reshape: level %d (%dx%d)  top: level %d (%dx%d)\n",
		ctx.NumGrids(),
		ctx.Reshape().Level, ctx.Reshape().GridSize, ctx.Reshape().GridSize,
		ctx.Top().Level, ctx.Top().GridSize, ctx.Top().GridSize)

	for grid := 0; grid < ctx.NumGrids(); grid++ {
		face := ctx.GridToFace(grid)
		fmt.Printf("grid %3d  face %3d corner %d  ptex %3d  vertex %3d\n",
			grid, face, ctx.GridToCorner(grid), ctx.GridToPTexIndex(grid),
			m.FaceVertex(face, ctx.GridToCorner(grid)))
	}
}

// printProbes walks a few sample points of grid 0 through the coordinate
// conversions and tangent-frame assembly.
func printProbes(ctx *multires.Context) {
	probes := [][2]float64{{0, 0}, {0.5, 0}, {1, 1}, {0.25, 0.75}}
	for _, uv := range probes {
		gc := multires.GridCoord{GridIndex: 0, U: uv[0], V: uv[1]}
		pc := ctx.GridCoordToPTex(gc)
		p, tm := ctx.EvaluateLimitAtGrid(gc)
		normal := tm.Col(2)
		fmt.Printf("grid(%g,%g) -> ptex %d (%.4g,%.4g)  limit (%.4g,%.4g,%.4g)  normal (%.4g,%.4g,%.4g)\n",
			uv[0], uv[1], pc.PTexFaceIndex, pc.U, pc.V,
			p.X(), p.Y(), p.Z(), normal.X(), normal.Y(), normal.Z())
	}
}

// probeReshape runs one displacement round trip: bump every reshape-level
// sample along the surface normal, propagate to the top level and report
// the resulting surface.
func probeReshape(ctx *multires.Context, grids *mesh.GridSet) error {
	const bump = 0.1

	ctx.StoreOriginalGrids()

	r := ctx.Reshape().GridSize
	for grid := 0; grid < ctx.NumGrids(); grid++ {
		for y := 0; y < r; y++ {
			for x := 0; x < r; x++ {
				gc := multires.GridCoord{
					GridIndex: grid,
					U:         float64(x) / float64(r-1),
					V:         float64(y) / float64(r-1),
				}
				elem := ctx.GridElementForGridCoord(gc)
				elem.Displacement[2] += bump
			}
		}
	}

	if err := ctx.SmoothWithDetails(); err != nil {
		return err
	}

	final := ctx.FinalPositions()
	minD, maxD := 0.0, 0.0
	for grid := 0; grid < grids.NumGrids(); grid++ {
		for i, p := range final[grid] {
			gc := gridCoordForSample(grid, i, ctx.Top().GridSize)
			limit, _ := ctx.EvaluateLimitAtGrid(gc)
			d := p.Sub(limit).Len()
			if grid == 0 && i == 0 {
				minD, maxD = d, d
			}
			if d < minD {
				minD = d
			}
			if d > maxD {
				maxD = d
			}
		}
	}
	fmt.Printf("bumped %g along normal: surface offset min %.4g max %.4g over %d grids\n",
		bump, minD, maxD, grids.NumGrids())
	return nil
}

func gridCoordForSample(grid, index, size int) multires.GridCoord {
	return multires.GridCoord{
		GridIndex: grid,
		U:         float64(index%size) / float64(size-1),
		V:         float64(index/size) / float64(size-1),
	}
}

package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGridSizeForLevel(t *testing.T) {
	cases := []struct{ level, size int }{
		{0, 1},
		{1, 2},
		{2, 3},
		{3, 5},
		{4, 9},
	}
	for _, c := range cases {
		if got := GridSizeForLevel(c.level); got != c.size {
			t.Errorf("GridSizeForLevel(%d) = %d, want %d", c.level, got, c.size)
		}
	}
}

func TestGridSetEnsureLevel(t *testing.T) {
	s := NewGridSet(4, 2, true)
	if s.GridSize() != 3 {
		t.Fatalf("level 2 grid size = %d, want 3", s.GridSize())
	}
	if len(s.Displacement(0)) != 9 || len(s.Mask(0)) != 9 {
		t.Fatalf("unexpected buffer sizes at level 2")
	}

	s.Displacement(0)[0] = mgl64.Vec3{1, 2, 3}
	s.EnsureLevel(2) // no-op
	if s.Displacement(0)[0] != (mgl64.Vec3{1, 2, 3}) {
		t.Error("EnsureLevel at same level must preserve data")
	}

	s.EnsureLevel(3)
	if s.GridSize() != 5 {
		t.Fatalf("level 3 grid size = %d, want 5", s.GridSize())
	}
	if len(s.Displacement(0)) != 25 {
		t.Fatalf("level 3 buffer size = %d, want 25", len(s.Displacement(0)))
	}
	if s.Displacement(0)[0] != (mgl64.Vec3{}) {
		t.Error("EnsureLevel to a new level must zero buffers")
	}
}

func TestGridSetClone(t *testing.T) {
	s := NewGridSet(2, 2, true)
	s.Displacement(1)[4] = mgl64.Vec3{0, 0, 7}
	s.Mask(1)[4] = 0.5

	c := s.Clone()
	if c.Displacement(1)[4] != (mgl64.Vec3{0, 0, 7}) || c.Mask(1)[4] != 0.5 {
		t.Fatal("clone did not copy data")
	}

	c.Displacement(1)[4] = mgl64.Vec3{}
	if s.Displacement(1)[4] == (mgl64.Vec3{}) {
		t.Error("clone shares displacement storage with original")
	}
}

func TestGridSetWithoutMask(t *testing.T) {
	s := NewGridSet(1, 1, false)
	if s.Mask(0) != nil {
		t.Error("mask buffer allocated for maskless set")
	}
}

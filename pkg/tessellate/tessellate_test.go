package tessellate_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/chazu/fidgo/pkg/design"
	"github.com/chazu/fidgo/pkg/kernel"
	"github.com/chazu/fidgo/pkg/kernel/sdfx"
	"github.com/chazu/fidgo/pkg/shape"
	"github.com/chazu/fidgo/pkg/tessellate"
	"github.com/chazu/fidgo/pkg/tree"
)

const testDepth = 5

func TestSingleSphere(t *testing.T) {
	d := design.New()
	d.AddPart("ball", shape.Sphere(10))

	res, err := tessellate.Tessellate(context.Background(), d, sdfx.New(), testDepth)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(res.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(res.Meshes))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	m := res.Meshes[0]
	if m.PartName != "ball" {
		t.Errorf("PartName = %q, want %q", m.PartName, "ball")
	}
	if m.TriangleCount() == 0 {
		t.Fatal("expected triangles")
	}
	lo, hi := m.Extent()
	for i := 0; i < 3; i++ {
		if math.Abs(float64(lo[i])+10) > 1 || math.Abs(float64(hi[i])-10) > 1 {
			t.Errorf("axis %d extent = [%f, %f], want about [-10, 10]", i, lo[i], hi[i])
		}
	}
}

func TestPartsKeepOrder(t *testing.T) {
	d := design.New()
	d.AddPart("left", shape.Translate(shape.Box(2, 2, 2), -5, 0, 0))
	d.AddPart("right", shape.Translate(shape.Sphere(1), 5, 0, 0))
	d.AddPart("top", shape.Translate(shape.Cylinder(1, 2), 0, 0, 5))

	res, err := tessellate.Tessellate(context.Background(), d, sdfx.New(), testDepth)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	want := []string{"left", "right", "top"}
	if len(res.Meshes) != len(want) {
		t.Fatalf("expected %d meshes, got %d", len(want), len(res.Meshes))
	}
	for i, m := range res.Meshes {
		if m.PartName != want[i] {
			t.Errorf("mesh %d PartName = %q, want %q", i, m.PartName, want[i])
		}
	}

	// The placement is carried by the shape itself.
	lo, hi := res.Meshes[1].Extent()
	if cx := (lo[0] + hi[0]) / 2; math.Abs(float64(cx)-5) > 0.2 {
		t.Errorf("right part center x = %f, want about 5", cx)
	}
}

func TestEmptyDesign(t *testing.T) {
	res, err := tessellate.Tessellate(context.Background(), design.New(), sdfx.New(), testDepth)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(res.Meshes) != 0 {
		t.Errorf("expected no meshes, got %d", len(res.Meshes))
	}

	res, err = tessellate.Tessellate(context.Background(), nil, sdfx.New(), testDepth)
	if err != nil || len(res.Meshes) != 0 {
		t.Errorf("nil design: res=%v err=%v", res, err)
	}
}

func TestEmptyBoundsPartGivesEmptyMesh(t *testing.T) {
	d := design.New()
	d.AddPart("gap", shape.Intersection(shape.Sphere(1), shape.Translate(shape.Sphere(1), 5, 0, 0)))

	res, err := tessellate.Tessellate(context.Background(), d, sdfx.New(), testDepth)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if !res.Meshes[0].IsEmpty() {
		t.Error("expected an empty mesh for a part with empty bounds")
	}
	if res.Meshes[0].PartName != "gap" {
		t.Errorf("PartName = %q", res.Meshes[0].PartName)
	}
}

func TestInfiniteBoundsWarning(t *testing.T) {
	d := design.New()
	d.AddPart("ball", shape.Sphere(0.5))
	d.AddPart("rod", shape.Circle(0.5))

	res, err := tessellate.Tessellate(context.Background(), d, sdfx.New(), testDepth)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(res.Warnings))
	}
	w := res.Warnings[0]
	if w.Part != "rod" {
		t.Errorf("warning part = %q, want rod", w.Part)
	}
	if w.Substituted.ZMin != -1 || w.Substituted.ZMax != 1 {
		t.Errorf("substituted z = [%f, %f], want [-1, 1]", w.Substituted.ZMin, w.Substituted.ZMax)
	}
	if res.Meshes[1].IsEmpty() {
		t.Error("infinite part should still be meshed")
	}
}

// failingMesher fails on every request.
type failingMesher struct{ calls atomic.Int32 }

var errMesh = errors.New("mesher exploded")

func (m *failingMesher) Mesh(*tree.Node, kernel.Request) (*kernel.Mesh, error) {
	m.calls.Add(1)
	return nil, errMesh
}

func TestMesherErrorPropagates(t *testing.T) {
	d := design.New()
	d.AddPart("a", shape.Sphere(1))
	d.AddPart("b", shape.Sphere(2))

	_, err := tessellate.Tessellate(context.Background(), d, &failingMesher{}, testDepth)
	if !errors.Is(err, errMesh) {
		t.Fatalf("expected mesher error, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	d := design.New()
	d.AddPart("a", shape.Sphere(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &failingMesher{}
	_, err := tessellate.Tessellate(ctx, d, m, testDepth)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.calls.Load() != 0 {
		t.Errorf("mesher called %d times after cancel", m.calls.Load())
	}
}

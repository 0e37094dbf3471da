package design

import (
	"testing"

	"github.com/chazu/fidgo/pkg/shape"
)

func TestNewDesignIsEmpty(t *testing.T) {
	d := New()
	if d.PartCount() != 0 {
		t.Fatalf("PartCount() = %d, want 0", d.PartCount())
	}
	if d.Lookup("anything") != nil {
		t.Error("Lookup on empty design should return nil")
	}
	errs, warnings := d.Validate()
	if len(errs) != 0 || len(warnings) != 0 {
		t.Errorf("empty design: errs=%v warnings=%v", errs, warnings)
	}
}

func TestAddPartKeepsOrder(t *testing.T) {
	d := New()
	names := []string{"lid", "base", "knob"}
	for i, n := range names {
		d.AddPart(n, shape.Sphere(float64(i+1)))
	}
	parts := d.Parts()
	if len(parts) != len(names) {
		t.Fatalf("Parts() len = %d, want %d", len(parts), len(names))
	}
	for i, p := range parts {
		if p.Name != names[i] {
			t.Errorf("Parts()[%d] = %q, want %q", i, p.Name, names[i])
		}
	}
	if got := d.MustLookup("base").Shape.Eval(0, 0, 0); got != -2 {
		t.Errorf("base eval at origin = %f, want -2", got)
	}

	// Parts returns a copy.
	parts[0] = nil
	if d.Parts()[0] == nil {
		t.Error("mutating Parts() result changed the design")
	}
}

func TestMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLookup of a missing part should panic")
		}
	}()
	New().MustLookup("missing")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		build     func(d *Design)
		wantCodes []string
		wantWarn  []string
	}{
		{
			name:  "valid",
			build: func(d *Design) { d.AddPart("ball", shape.Sphere(1)) },
		},
		{
			name:      "empty name",
			build:     func(d *Design) { d.AddPart("", shape.Sphere(1)) },
			wantCodes: []string{CodeEmptyName},
		},
		{
			name: "duplicate",
			build: func(d *Design) {
				d.AddPart("a", shape.Sphere(1))
				d.AddPart("a", shape.Box(1, 1, 1))
			},
			wantCodes: []string{CodeDuplicateName},
		},
		{
			name: "empty bounds",
			build: func(d *Design) {
				d.AddPart("gap", shape.Intersection(shape.Sphere(1), shape.Translate(shape.Sphere(1), 5, 0, 0)))
			},
			wantWarn: []string{CodeEmptyBounds},
		},
		{
			name:      "unsafe name",
			build:     func(d *Design) { d.AddPart("/../../escaped", shape.Sphere(1)) },
			wantCodes: []string{CodeUnsafeName},
		},
		{
			name:      "name with separator",
			build:     func(d *Design) { d.AddPart(`legs\front`, shape.Sphere(1)) },
			wantCodes: []string{CodeUnsafeName},
		},
		{
			name:      "missing expression",
			build:     func(d *Design) { d.AddPart("blank", shape.Shape{}) },
			wantCodes: []string{CodeMissingExpr},
		},
		{
			name:     "infinite bounds warn",
			build:    func(d *Design) { d.AddPart("disc", shape.Circle(1)) },
			wantWarn: []string{CodeInfiniteBound},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			tt.build(d)
			errs, warnings := d.Validate()
			checkCodes(t, "errors", errs, tt.wantCodes)
			checkCodes(t, "warnings", warnings, tt.wantWarn)
		})
	}
}

func checkCodes(t *testing.T, kind string, got []ValidationError, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want codes %v", kind, got, want)
	}
	for i := range want {
		if got[i].Code != want[i] {
			t.Errorf("%s[%d].Code = %s, want %s", kind, i, got[i].Code, want[i])
		}
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Code: CodeEmptyBounds, Message: "bad", Part: "p"}
	if got := e.Error(); got != "EMPTY_BOUNDS: bad (part: p)" {
		t.Errorf("Error() = %q", got)
	}
	e.Part = ""
	if got := e.Error(); got != "EMPTY_BOUNDS: bad" {
		t.Errorf("Error() = %q", got)
	}
}

package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/fidgo/pkg/design"
	"github.com/chazu/fidgo/pkg/shape"
	"github.com/chazu/fidgo/pkg/vmath"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpShape wraps a shape.Shape so it can flow between builtins.
type sexpShape struct {
	shape shape.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %s %s)", s.shape.Exactness, s.shape.Bounds)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpVec wraps a real vmath.Vector.
type sexpVec struct {
	vec vmath.Vector
}

func (v *sexpVec) SexpString(ps *zygo.PrintState) string {
	return v.vec.String()
}
func (v *sexpVec) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toFloats extracts exactly len(names) numbers, naming the failing one.
func toFloats(fn string, args []zygo.Sexp, names ...string) ([]float64, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("%s requires %d arguments (%s), got %d",
			fn, len(names), strings.Join(names, ", "), len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, names[i], err)
		}
		out[i] = f
	}
	return out, nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toShape extracts a shape.Shape from a sexpShape.
func toShape(s zygo.Sexp) (shape.Shape, error) {
	if sh, ok := s.(*sexpShape); ok {
		return sh.shape, nil
	}
	return shape.Shape{}, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// toShapes extracts shapes from args, flattening lists and arrays so that
// (union (list a b) c) works like (union a b c).
func toShapes(fn string, args []zygo.Sexp) ([]shape.Shape, error) {
	var out []shape.Shape
	for i, a := range args {
		switch a.(type) {
		case *zygo.SexpPair, *zygo.SexpArray:
			items, err := sexpListToSlice(a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", fn, i, err)
			}
			inner, err := toShapes(fn, items)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		default:
			s, err := toShape(a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", fn, i, err)
			}
			out = append(out, s)
		}
	}
	return out, nil
}

// toVec extracts a vector from a sexpVec.
func toVec(s zygo.Sexp) (vmath.Vector, error) {
	if v, ok := s.(*sexpVec); ok {
		return v.vec, nil
	}
	return vmath.Vector{}, fmt.Errorf("expected vec2 or vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// placed applies an optional :at vector to a freshly built primitive.
func placed(fn string, s shape.Shape, pa kwArgs) (zygo.Sexp, error) {
	if v, ok := pa.kw["at"]; ok {
		vec, err := toVec(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: at: %w", fn, err)
		}
		if s, err = shape.TranslateVec(s, vec); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: at: %w", fn, err)
		}
	}
	return &sexpShape{shape: s}, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinFunc is the signature zygomys expects for Go builtins.
type builtinFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// primitive builds a builtin for a shape constructor taking fixed numeric
// arguments plus an optional :at placement.
func primitive(fn string, build func(v []float64) shape.Shape, names ...string) builtinFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		v, err := toFloats(fn, pa.positional, names...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return placed(fn, build(v), pa)
	}
}

// nary builds a builtin folding one or more shapes with a balanced
// combinator.
func nary(fn string, fold func(...shape.Shape) (shape.Shape, error)) builtinFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		shapes, err := toShapes(fn, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := fold(shapes...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
		}
		return &sexpShape{shape: s}, nil
	}
}

// registerBuiltins installs the shape builtins into a zygomys environment.
// defpart adds parts to d as the script runs.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens and kebab-case names are recognizable.
func registerBuiltins(env *zygo.Zlisp, d *design.Design) {

	// (sphere r), (box lx ly lz), (circle r), (rectangle lx ly),
	// (torus major minor), (cylinder r h); each takes an optional :at vec.
	env.AddFunction("sphere", primitive("sphere", func(v []float64) shape.Shape {
		return shape.Sphere(v[0])
	}, "radius"))
	env.AddFunction("box", primitive("box", func(v []float64) shape.Shape {
		return shape.Box(v[0], v[1], v[2])
	}, "x", "y", "z"))
	env.AddFunction("circle", primitive("circle", func(v []float64) shape.Shape {
		return shape.Circle(v[0])
	}, "radius"))
	env.AddFunction("rectangle", primitive("rectangle", func(v []float64) shape.Shape {
		return shape.Rectangle(v[0], v[1])
	}, "x", "y"))
	env.AddFunction("torus", primitive("torus", func(v []float64) shape.Shape {
		return shape.Torus(v[0], v[1])
	}, "major", "minor"))
	env.AddFunction("cylinder", primitive("cylinder", func(v []float64) shape.Shape {
		return shape.Cylinder(v[0], v[1])
	}, "radius", "height"))

	// (union a b ...), (intersection a b ...), (xor a b ...)
	env.AddFunction("union", nary("union", shape.UnionAll))
	env.AddFunction("intersection", nary("intersection", shape.IntersectionAll))
	env.AddFunction("xor", nary("xor", shape.XorAll))

	// -----------------------------------------------------------------------
	// (difference base tool ...)
	// -----------------------------------------------------------------------
	env.AddFunction("difference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		shapes, err := toShapes("difference", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(shapes) == 0 {
			return zygo.SexpNull, fmt.Errorf("difference requires a base shape")
		}
		return &sexpShape{shape: shape.DifferenceAll(shapes[0], shapes[1:]...)}, nil
	})

	// -----------------------------------------------------------------------
	// (move shape (vec3 1 2 3))
	// -----------------------------------------------------------------------
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("move requires a shape and an offset vector")
		}
		s, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: shape: %w", err)
		}
		v, err := toVec(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: offset: %w", err)
		}
		moved, err := shape.TranslateVec(s, v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		return &sexpShape{shape: moved}, nil
	})

	// -----------------------------------------------------------------------
	// (expand shape k), (extrude-z shape h)
	// -----------------------------------------------------------------------
	env.AddFunction("expand", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return shapeAndNumber("expand", args, shape.Expand)
	})
	env.AddFunction("extrude_z", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return shapeAndNumber("extrude-z", args, shape.ExtrudeZ)
	})

	// -----------------------------------------------------------------------
	// (revolve-z profile)
	// -----------------------------------------------------------------------
	env.AddFunction("revolve_z", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("revolve-z requires exactly 1 argument, got %d", len(args))
		}
		s, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("revolve-z: %w", err)
		}
		return &sexpShape{shape: shape.RevolveZ(s)}, nil
	})

	// -----------------------------------------------------------------------
	// (vec2 1 2), (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toFloats("vec2", args, "x", "y")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec{vec: vmath.Vec2(v[0], v[1])}, nil
	})
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toFloats("vec3", args, "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec{vec: vmath.Vec3(v[0], v[1], v[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (defpart "name" shape)
	// -----------------------------------------------------------------------
	env.AddFunction("defpart", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defpart requires a name and a shape expression")
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: name: %w", err)
		}
		s, err := toShape(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: %w", err)
		}
		d.AddPart(partName, s)
		return args[1], nil
	})

	// -----------------------------------------------------------------------
	// (part "name")
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}
		p := d.Lookup(partName)
		if p == nil {
			return zygo.SexpNull, fmt.Errorf("part: no part named %q", partName)
		}
		return &sexpShape{shape: p.Shape}, nil
	})
}

func shapeAndNumber(fn string, args []zygo.Sexp, op func(shape.Shape, float64) shape.Shape) (zygo.Sexp, error) {
	if len(args) != 2 {
		return zygo.SexpNull, fmt.Errorf("%s requires a shape and a number", fn)
	}
	s, err := toShape(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: shape: %w", fn, err)
	}
	k, err := toFloat64(args[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
	}
	return &sexpShape{shape: op(s, k)}, nil
}

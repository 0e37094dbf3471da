package design

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validation codes.
const (
	CodeEmptyName     = "EMPTY_NAME"
	CodeDuplicateName = "DUPLICATE_NAME"
	CodeUnsafeName    = "UNSAFE_NAME"
	CodeMissingExpr   = "MISSING_EXPRESSION"
	CodeEmptyBounds   = "EMPTY_BOUNDS"
	CodeInfiniteBound = "NON_FINITE_BOUNDS"
)

// ValidationError is one problem found by Validate.
type ValidationError struct {
	Code    string
	Message string
	Part    string
}

func (e ValidationError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("%s: %s (part: %s)", e.Code, e.Message, e.Part)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// SafePartName reports whether name can be used as a single file name
// component: local, and free of path separators on any platform.
func SafePartName(name string) bool {
	return filepath.IsLocal(name) && !strings.ContainsAny(name, `/\`)
}

// Validate checks every part. Errors prevent meshing; warnings do not.
// A part whose bounds are empty is only a warning: it meshes to nothing.
func (d *Design) Validate() (errs, warnings []ValidationError) {
	seen := make(map[string]bool)
	for i, p := range d.parts {
		switch {
		case p.Name == "":
			errs = append(errs, ValidationError{
				Code:    CodeEmptyName,
				Message: fmt.Sprintf("part %d has no name", i),
			})
		case seen[p.Name]:
			errs = append(errs, ValidationError{
				Code:    CodeDuplicateName,
				Message: "part name defined more than once",
				Part:    p.Name,
			})
		case !SafePartName(p.Name):
			errs = append(errs, ValidationError{
				Code:    CodeUnsafeName,
				Message: "part name must be a plain file name without path separators",
				Part:    p.Name,
			})
		}
		seen[p.Name] = true

		if p.Shape.Expr == nil {
			errs = append(errs, ValidationError{
				Code:    CodeMissingExpr,
				Message: "part has no distance field",
				Part:    p.Name,
			})
			continue
		}
		if p.Shape.Bounds.IsEmpty() {
			warnings = append(warnings, ValidationError{
				Code:    CodeEmptyBounds,
				Message: fmt.Sprintf("bounding box %s is empty; the part meshes to nothing", p.Shape.Bounds),
				Part:    p.Name,
			})
		} else if !p.Shape.Bounds.IsFinite() {
			warnings = append(warnings, ValidationError{
				Code:    CodeInfiniteBound,
				Message: fmt.Sprintf("bounding box %s is not finite; meshing will truncate it", p.Shape.Bounds),
				Part:    p.Name,
			})
		}
	}
	return errs, warnings
}

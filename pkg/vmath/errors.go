package vmath

import (
	"errors"
	"fmt"
)

// ErrVector is wrapped by every structural error in this package.
var ErrVector = errors.New("vector error")

var (
	// ErrArity is returned when a vector is built from fewer than 2 or more
	// than 4 components.
	ErrArity = fmt.Errorf("%w: vectors need 2 to 4 components", ErrVector)
	// ErrType is returned when a component is neither real nor symbolic.
	ErrType = fmt.Errorf("%w: components must be real or symbolic", ErrVector)
	// ErrLengthMismatch is returned by elementwise operations on vectors of
	// different lengths.
	ErrLengthMismatch = fmt.Errorf("%w: vector lengths differ", ErrVector)
	// ErrCrossProduct is returned when a cross product involves a vector
	// whose length is not 3.
	ErrCrossProduct = fmt.Errorf("%w: cross product needs two vec3", ErrVector)
	// ErrSwizzle is returned for swizzle letters outside a vector's axes.
	ErrSwizzle = fmt.Errorf("%w: invalid swizzle", ErrVector)
	// ErrNonIntegerPower is returned when a symbolic value is raised to a
	// power that is not an integer constant.
	ErrNonIntegerPower = fmt.Errorf("%w: symbolic power needs an integer exponent", ErrVector)
)

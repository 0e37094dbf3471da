// Package shape composes distance-field expressions into solids. Every
// Shape carries a conservative bounding box and records whether its field
// is an exact Euclidean distance or only a sign-correct bound, and every
// combinator derives both for its result.
//
// Primitives are exact. Union of exact shapes stays exact while their
// bounds stay apart; intersection, difference, xor and revolution yield
// bound fields. ExtrudeZ spans z in [0, h].
package shape

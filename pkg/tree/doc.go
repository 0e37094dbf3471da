// Package tree is the symbolic expression graph that implicit shapes are
// written in. Nodes are immutable and shared by pointer; the three axis
// variables are process-wide singletons. Graphs can be evaluated point-wise
// (Compile, Eval), rewritten (RemapXYZ), and serialized to and from a
// line-oriented text format (WriteVM, ParseVM).
package tree

// Package vmath is a GLSL-flavoured scalar and vector algebra whose values
// may be plain numbers, symbolic expression nodes, or a mix of both.
//
// Every operation dispatches on the operand domains: real operands are
// computed immediately, symbolic operands build new nodes in the expression
// graph, and real operands meeting symbolic ones are promoted to constants.
// Because symbolic expressions are evaluated later at arbitrarily many
// points, comparisons and boolean logic never branch at construction time;
// they are encoded arithmetically (see Compare, LessThan, LessEqual).
package vmath

// Package expr rebuilds disassembly-time expressions from their postfix
// element stream and renders them as parenthesized C infix text.
package expr

import (
	"errors"
	"fmt"

	"guardgen/internal/sleigh"
)

var (
	// ErrMalformed reports a postfix stream that does not reduce to exactly
	// one node.
	ErrMalformed = errors.New("malformed expression")

	// ErrUnsupportedValue reports a value kind with no rendering rule.
	ErrUnsupportedValue = errors.New("unsupported value kind")
)

// UnsupportedValueError names the value kind that could not be rendered.
type UnsupportedValueError struct {
	Kind sleigh.ValueKind
	Ref  int
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported value kind %s (ref %d): not yet implemented", e.Kind, e.Ref)
}

func (e *UnsupportedValueError) Is(target error) bool {
	return target == ErrUnsupportedValue
}

// Node is an expression tree node.
type Node interface {
	node()
}

func (*Binary) node() {}
func (*Unary) node()  {}
func (*Value) node()  {}

// Binary applies Op to Left and Right.
type Binary struct {
	Op    sleigh.Op
	Left  Node
	Right Node
}

// Unary applies Op to Operand.
type Unary struct {
	Op      sleigh.UnaryOp
	Operand Node
}

// Value is a leaf read.
type Value struct {
	Scope sleigh.ReadScope
}

// Build reconstructs the tree of a postfix element stream. For a binary
// operator the first pop is the right operand.
func Build(elems []sleigh.ExprElement) (Node, error) {
	if len(elems) == 0 {
		return nil, fmt.Errorf("%w: empty element stream", ErrMalformed)
	}

	stack := make([]Node, 0, len(elems))
	pop := func() Node {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n
	}

	for i, e := range elems {
		switch {
		case e.Value != nil:
			stack = append(stack, &Value{Scope: *e.Value})
		case e.Unary != nil:
			if len(stack) < 1 {
				return nil, fmt.Errorf("%w: %s at element %d has no operand", ErrMalformed, e.Unary, i)
			}
			stack = append(stack, &Unary{Op: *e.Unary, Operand: pop()})
		case e.Op != nil:
			if len(stack) < 2 {
				return nil, fmt.Errorf("%w: %s at element %d needs 2 operands, have %d",
					ErrMalformed, e.Op, i, len(stack))
			}
			right := pop()
			left := pop()
			stack = append(stack, &Binary{Op: *e.Op, Left: left, Right: right})
		default:
			return nil, fmt.Errorf("%w: element %d is empty", ErrMalformed, i)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d nodes left on the stack", ErrMalformed, len(stack))
	}
	return stack[0], nil
}

// Leaves counts the value nodes of n.
func Leaves(n Node) int {
	switch n := n.(type) {
	case *Binary:
		return Leaves(n.Left) + Leaves(n.Right)
	case *Unary:
		return Leaves(n.Operand)
	case *Value:
		return 1
	}
	return 0
}

// Translate builds and renders a postfix element stream.
func Translate(elems []sleigh.ExprElement) (string, error) {
	n, err := Build(elems)
	if err != nil {
		return "", err
	}
	return Render(n)
}

package expr

import (
	"fmt"
	"strconv"
	"strings"

	"guardgen/internal/sleigh"
)

// And and Or render as && and ||.
var binarySymbols = map[sleigh.Op]string{
	sleigh.OpAdd: "+",
	sleigh.OpSub: "-",
	sleigh.OpMul: "*",
	sleigh.OpDiv: "/",
	sleigh.OpAnd: "&&",
	sleigh.OpOr:  "||",
	sleigh.OpXor: "^",
	sleigh.OpAsr: ">>>",
	sleigh.OpLsl: "<<",
}

var unarySymbols = map[sleigh.UnaryOp]string{
	sleigh.UnaryNegation:   "-",
	sleigh.UnaryComplement: "~",
}

// Symbol returns the emitted text of a binary operator.
func Symbol(op sleigh.Op) string {
	if s, ok := binarySymbols[op]; ok {
		return s
	}
	return op.String()
}

// UnarySymbol returns the emitted text of a unary operator.
func UnarySymbol(op sleigh.UnaryOp) string {
	if s, ok := unarySymbols[op]; ok {
		return s
	}
	return op.String()
}

// Render writes n as infix text. Only integer literals are renderable.
func Render(n Node) (string, error) {
	var sb strings.Builder
	if err := render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func render(sb *strings.Builder, n Node) error {
	switch n := n.(type) {
	case *Binary:
		sb.WriteByte('(')
		if err := render(sb, n.Left); err != nil {
			return err
		}
		sb.WriteString(") ")
		sb.WriteString(Symbol(n.Op))
		sb.WriteString(" (")
		if err := render(sb, n.Right); err != nil {
			return err
		}
		sb.WriteByte(')')
	case *Unary:
		sb.WriteString(UnarySymbol(n.Op))
		sb.WriteByte('(')
		if err := render(sb, n.Operand); err != nil {
			return err
		}
		sb.WriteByte(')')
	case *Value:
		if n.Scope.Kind != sleigh.ValueInteger {
			return &UnsupportedValueError{Kind: n.Scope.Kind, Ref: n.Scope.Ref}
		}
		sb.WriteString(Hex(n.Scope.Int))
	default:
		return fmt.Errorf("%w: unexpected node %T", ErrMalformed, n)
	}
	return nil
}

// Hex formats v as 0x<hex>, or -0x<hex> for negative values.
func Hex(v int64) string {
	if v < 0 {
		return "-0x" + strconv.FormatUint(-uint64(v), 16)
	}
	return "0x" + strconv.FormatUint(uint64(v), 16)
}

package sleigh

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// CmpOp is a comparison used by pattern verifications.
type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpGt
	CmpLe
	CmpGe
)

var cmpOpNames = []string{
	CmpEq: "eq",
	CmpNe: "ne",
	CmpLt: "lt",
	CmpGt: "gt",
	CmpLe: "le",
	CmpGe: "ge",
}

// Op is a binary operator of the disassembly expression language.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpAnd
	OpOr
	OpXor
	OpAsr // arithmetic shift right
	OpLsl // logical shift left
)

var opNames = []string{
	OpAdd: "add",
	OpSub: "sub",
	OpMul: "mul",
	OpDiv: "div",
	OpAnd: "and",
	OpOr:  "or",
	OpXor: "xor",
	OpAsr: "asr",
	OpLsl: "lsl",
}

// UnaryOp is a unary operator of the disassembly expression language.
type UnaryOp uint8

const (
	UnaryNegation   UnaryOp = iota // arithmetic negation
	UnaryComplement                // bitwise complement
)

var unaryOpNames = []string{
	UnaryNegation:   "negation",
	UnaryComplement: "complement",
}

// ValueKind identifies what a ReadScope reads.
type ValueKind uint8

const (
	ValueInteger ValueKind = iota
	ValueContext
	ValueTokenField
	ValueInstStart
	ValueInstNext
	ValueLocal
)

var valueKindNames = []string{
	ValueInteger:    "integer",
	ValueContext:    "context",
	ValueTokenField: "token_field",
	ValueInstStart:  "inst_start",
	ValueInstNext:   "inst_next",
	ValueLocal:      "local",
}

// VerificationKind tags the variants of Verification.
type VerificationKind uint8

const (
	VerifyContextCheck VerificationKind = iota
	VerifyTableBuild
	VerifyTokenFieldCheck
	VerifySubPattern
)

var verificationKindNames = []string{
	VerifyContextCheck:    "context_check",
	VerifyTableBuild:      "table_build",
	VerifyTokenFieldCheck: "token_field_check",
	VerifySubPattern:      "sub_pattern",
}

// BlockKind says how the verifications of a block combine.
type BlockKind uint8

const (
	BlockAnd BlockKind = iota
	BlockOr
)

var blockKindNames = []string{
	BlockAnd: "and",
	BlockOr:  "or",
}

// DisplayKind tags the variants of DisplayElement.
type DisplayKind uint8

const (
	DisplayMnemonic DisplayKind = iota
	DisplayLiteral
	DisplaySpace
	DisplayTable
	DisplayTokenField
	DisplayVarnode
	DisplayContext
	DisplayInstStart
	DisplayInstNext
	DisplayDisassembly
)

var displayKindNames = []string{
	DisplayMnemonic:    "mnemonic",
	DisplayLiteral:     "literal",
	DisplaySpace:       "space",
	DisplayTable:       "table",
	DisplayTokenField:  "token_field",
	DisplayVarnode:     "varnode",
	DisplayContext:     "context",
	DisplayInstStart:   "inst_start",
	DisplayInstNext:    "inst_next",
	DisplayDisassembly: "disassembly",
}

func enumString[T ~uint8](names []string, v T, what string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s<%d>", what, uint8(v))
}

func parseEnum[T ~uint8](names []string, text []byte, what string) (T, error) {
	for i, name := range names {
		if name == string(text) {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, text)
}

func enumSchema(names []string) *jsonschema.Schema {
	enum := make([]any, len(names))
	for i, name := range names {
		enum[i] = name
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}

func (op CmpOp) String() string               { return enumString(cmpOpNames, op, "CmpOp") }
func (op CmpOp) MarshalText() ([]byte, error) { return []byte(op.String()), nil }
func (op *CmpOp) UnmarshalText(b []byte) (err error) {
	*op, err = parseEnum[CmpOp](cmpOpNames, b, "comparison")
	return err
}
func (CmpOp) JSONSchema() *jsonschema.Schema { return enumSchema(cmpOpNames) }

func (op Op) String() string               { return enumString(opNames, op, "Op") }
func (op Op) MarshalText() ([]byte, error) { return []byte(op.String()), nil }
func (op *Op) UnmarshalText(b []byte) (err error) {
	*op, err = parseEnum[Op](opNames, b, "operator")
	return err
}
func (Op) JSONSchema() *jsonschema.Schema { return enumSchema(opNames) }

func (op UnaryOp) String() string               { return enumString(unaryOpNames, op, "UnaryOp") }
func (op UnaryOp) MarshalText() ([]byte, error) { return []byte(op.String()), nil }
func (op *UnaryOp) UnmarshalText(b []byte) (err error) {
	*op, err = parseEnum[UnaryOp](unaryOpNames, b, "unary operator")
	return err
}
func (UnaryOp) JSONSchema() *jsonschema.Schema { return enumSchema(unaryOpNames) }

func (k ValueKind) String() string               { return enumString(valueKindNames, k, "ValueKind") }
func (k ValueKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *ValueKind) UnmarshalText(b []byte) (err error) {
	*k, err = parseEnum[ValueKind](valueKindNames, b, "value kind")
	return err
}
func (ValueKind) JSONSchema() *jsonschema.Schema { return enumSchema(valueKindNames) }

func (k VerificationKind) String() string {
	return enumString(verificationKindNames, k, "VerificationKind")
}
func (k VerificationKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *VerificationKind) UnmarshalText(b []byte) (err error) {
	*k, err = parseEnum[VerificationKind](verificationKindNames, b, "verification kind")
	return err
}
func (VerificationKind) JSONSchema() *jsonschema.Schema { return enumSchema(verificationKindNames) }

func (k BlockKind) String() string               { return enumString(blockKindNames, k, "BlockKind") }
func (k BlockKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *BlockKind) UnmarshalText(b []byte) (err error) {
	*k, err = parseEnum[BlockKind](blockKindNames, b, "block kind")
	return err
}
func (BlockKind) JSONSchema() *jsonschema.Schema { return enumSchema(blockKindNames) }

func (k DisplayKind) String() string               { return enumString(displayKindNames, k, "DisplayKind") }
func (k DisplayKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *DisplayKind) UnmarshalText(b []byte) (err error) {
	*k, err = parseEnum[DisplayKind](displayKindNames, b, "display element kind")
	return err
}
func (DisplayKind) JSONSchema() *jsonschema.Schema { return enumSchema(displayKindNames) }

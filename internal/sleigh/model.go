// Package sleigh holds the in-memory instruction-set model consumed by the
// guard code generator: tables, token fields, varnodes and the constructors
// of the root instruction table, with their patterns and display templates.
//
// The model is produced elsewhere (a SLEIGH front end) and handed over as a
// YAML or JSON document; this package only loads and validates it. Nothing
// here is mutated after Load returns.
package sleigh

import (
	"errors"
	"fmt"
)

// ErrUnknownID is returned when a lookup id is outside the model.
var ErrUnknownID = errors.New("unknown id")

type (
	TableID      int
	TokenFieldID int
	VarnodeID    int
)

// Sleigh is a parsed instruction-set description.
type Sleigh struct {
	Name             string       `yaml:"name" json:"name" jsonschema:"title=Name,description=Processor name"`
	InstructionTable TableID      `yaml:"instruction_table" json:"instruction_table" jsonschema:"description=Index of the root instruction table"`
	Tables           []Table      `yaml:"tables" json:"tables"`
	TokenFields      []TokenField `yaml:"token_fields" json:"token_fields"`
	Varnodes         []Varnode    `yaml:"varnodes,omitempty" json:"varnodes,omitempty"`
}

// Table is a named set of constructors.
type Table struct {
	Name         string        `yaml:"name" json:"name"`
	Constructors []Constructor `yaml:"constructors,omitempty" json:"constructors,omitempty"`
}

// TokenField is a named bit range of an instruction token.
type TokenField struct {
	Name  string `yaml:"name" json:"name"`
	Token string `yaml:"token,omitempty" json:"token,omitempty"`
	LSB   int    `yaml:"lsb" json:"lsb"`
	MSB   int    `yaml:"msb" json:"msb"`
}

// Varnode is a named storage location, such as a context register.
type Varnode struct {
	Name string `yaml:"name" json:"name"`
}

// Constructor is one encoding variant of a table.
type Constructor struct {
	Display Display `yaml:"display" json:"display"`
	Pattern Pattern `yaml:"pattern" json:"pattern"`
}

// Mnemonic returns the display mnemonic, or "" when the constructor has none.
func (c *Constructor) Mnemonic() string {
	return c.Display.Mnemonic
}

// Display is a constructor's display template. The first element is
// reserved for the mnemonic.
type Display struct {
	Mnemonic string           `yaml:"mnemonic,omitempty" json:"mnemonic,omitempty"`
	Elements []DisplayElement `yaml:"elements,omitempty" json:"elements,omitempty"`
}

// DisplayElement is one item of a display template. Which of the reference
// fields is meaningful depends on Kind.
type DisplayElement struct {
	Kind       DisplayKind  `yaml:"kind" json:"kind"`
	Literal    string       `yaml:"literal,omitempty" json:"literal,omitempty"`
	Table      TableID      `yaml:"table,omitempty" json:"table,omitempty"`
	TokenField TokenFieldID `yaml:"token_field,omitempty" json:"token_field,omitempty"`
	Varnode    VarnodeID    `yaml:"varnode,omitempty" json:"varnode,omitempty"`
}

func (e DisplayElement) String() string {
	switch e.Kind {
	case DisplayLiteral:
		return fmt.Sprintf("Literal(%q)", e.Literal)
	case DisplayTable:
		return fmt.Sprintf("Table(%d)", e.Table)
	case DisplayTokenField:
		return fmt.Sprintf("TokenField(%d)", e.TokenField)
	case DisplayVarnode, DisplayContext:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Varnode)
	default:
		return e.Kind.String()
	}
}

// Pattern is an ordered list of blocks combined by logical AND.
type Pattern struct {
	Blocks []Block `yaml:"blocks,omitempty" json:"blocks,omitempty"`
}

// Block groups verifications either conjunctively or disjunctively.
type Block struct {
	Kind          BlockKind      `yaml:"kind" json:"kind"`
	Verifications []Verification `yaml:"verifications,omitempty" json:"verifications,omitempty"`
}

// Verification is one guard condition of a block.
//
//	context_check:     Context, Compare
//	table_build:       Table, optional Compare
//	token_field_check: Field, Compare
//	sub_pattern:       Pattern
type Verification struct {
	Kind    VerificationKind `yaml:"kind" json:"kind"`
	Context VarnodeID        `yaml:"context,omitempty" json:"context,omitempty"`
	Table   TableID          `yaml:"table,omitempty" json:"table,omitempty"`
	Field   TokenFieldID     `yaml:"field,omitempty" json:"field,omitempty"`
	Compare *Comparison      `yaml:"compare,omitempty" json:"compare,omitempty"`
	Pattern *Pattern         `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Comparison is an operator and a postfix value expression.
type Comparison struct {
	Op    CmpOp         `yaml:"op" json:"op"`
	Value []ExprElement `yaml:"value" json:"value"`
}

// ExprElement is one item of a postfix disassembly expression. Exactly one
// field is set.
type ExprElement struct {
	Value *ReadScope `yaml:"value,omitempty" json:"value,omitempty"`
	Op    *Op        `yaml:"op,omitempty" json:"op,omitempty"`
	Unary *UnaryOp   `yaml:"unary,omitempty" json:"unary,omitempty"`
}

// ReadScope is a value read by a disassembly expression. Int holds the
// literal for ValueInteger; Ref indexes the varnode, token field or local
// variable for the other kinds.
type ReadScope struct {
	Kind ValueKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Int  int64     `yaml:"int,omitempty" json:"int,omitempty"`
	Ref  int       `yaml:"ref,omitempty" json:"ref,omitempty"`
}

func (e ExprElement) String() string {
	switch {
	case e.Value != nil && e.Value.Kind == ValueInteger:
		return fmt.Sprintf("%d", e.Value.Int)
	case e.Value != nil:
		return fmt.Sprintf("%s(%d)", e.Value.Kind, e.Value.Ref)
	case e.Op != nil:
		return e.Op.String()
	case e.Unary != nil:
		return e.Unary.String()
	}
	return "<empty>"
}

// Int returns an expression element pushing the literal v.
func Int(v int64) ExprElement {
	return ExprElement{Value: &ReadScope{Kind: ValueInteger, Int: v}}
}

// Read returns an expression element pushing a non-literal value.
func Read(kind ValueKind, ref int) ExprElement {
	return ExprElement{Value: &ReadScope{Kind: kind, Ref: ref}}
}

// Bin returns an expression element applying a binary operator.
func Bin(op Op) ExprElement {
	return ExprElement{Op: &op}
}

// Un returns an expression element applying a unary operator.
func Un(op UnaryOp) ExprElement {
	return ExprElement{Unary: &op}
}

// Table looks up a table by id.
func (s *Sleigh) Table(id TableID) (*Table, error) {
	if id < 0 || int(id) >= len(s.Tables) {
		return nil, fmt.Errorf("table %d: %w", id, ErrUnknownID)
	}
	return &s.Tables[id], nil
}

// TokenField looks up a token field by id.
func (s *Sleigh) TokenField(id TokenFieldID) (*TokenField, error) {
	if id < 0 || int(id) >= len(s.TokenFields) {
		return nil, fmt.Errorf("token field %d: %w", id, ErrUnknownID)
	}
	return &s.TokenFields[id], nil
}

// Varnode looks up a varnode by id.
func (s *Sleigh) Varnode(id VarnodeID) (*Varnode, error) {
	if id < 0 || int(id) >= len(s.Varnodes) {
		return nil, fmt.Errorf("varnode %d: %w", id, ErrUnknownID)
	}
	return &s.Varnodes[id], nil
}

// Instructions returns the root instruction table.
func (s *Sleigh) Instructions() (*Table, error) {
	return s.Table(s.InstructionTable)
}

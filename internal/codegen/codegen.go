// Package codegen compiles instruction-set constructors into C guard code
// for a hand-written disassembler: one commented if-statement per
// constructor that checks its encoding, sets the instruction id and
// formats its operands.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"guardgen/internal/expr"
	"guardgen/internal/idmap"
	"guardgen/internal/sleigh"
)

var cmpSymbols = map[sleigh.CmpOp]string{
	sleigh.CmpEq: "==",
	sleigh.CmpNe: "!=",
	sleigh.CmpLt: "<",
	sleigh.CmpGt: ">",
	sleigh.CmpLe: "<=",
	sleigh.CmpGe: ">=",
}

// CmpSymbol returns the C comparison operator for op.
func CmpSymbol(op sleigh.CmpOp) string {
	if s, ok := cmpSymbols[op]; ok {
		return s
	}
	return op.String()
}

// Target names the C-side conventions of the emitted code.
type Target struct {
	// Name prefixes instruction ids: <Name>_<MNEMONIC>.
	Name string
	// Inst is the decoded-instruction variable.
	Inst string
	// TraceMacro receives the mnemonic string.
	TraceMacro string
	// OperandsMacro receives the operand format and arguments.
	OperandsMacro string
}

// V850 is the target of the V850 disassembler.
var V850 = Target{
	Name:          "V850",
	Inst:          "inst",
	TraceMacro:    "INSTR",
	OperandsMacro: "OPERANDS",
}

// ConstructorError locates a fatal error inside one constructor.
type ConstructorError struct {
	Mnemonic string
	Where    string
	Err      error
}

func (e *ConstructorError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("%s: %v", e.Mnemonic, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Mnemonic, e.Where, e.Err)
}

func (e *ConstructorError) Unwrap() error {
	return e.Err
}

// Result describes one generated constructor.
type Result struct {
	Mnemonic     string
	Placeholders []Fragment
}

// Generator renders constructors of one model. It keeps no state between
// constructors and is safe for concurrent use.
type Generator struct {
	model  *sleigh.Sleigh
	ids    *idmap.Mapper
	target Target
	logger *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTarget overrides the V850 target conventions.
func WithTarget(t Target) Option {
	return func(g *Generator) { g.target = t }
}

// WithLogger sets the logger for placeholder warnings and progress.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New returns a Generator for model using ids to name fields and tables.
func New(model *sleigh.Sleigh, ids *idmap.Mapper, opts ...Option) *Generator {
	g := &Generator{
		model:  model,
		ids:    ids,
		target: V850,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) comparison(lhs string, cmp *sleigh.Comparison) (string, error) {
	value, err := expr.Translate(cmp.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s (%s)", lhs, CmpSymbol(cmp.Op), value), nil
}

// Verification renders one verification. Context checks and sub-patterns
// come back as placeholders.
func (g *Generator) Verification(v *sleigh.Verification) (Fragment, error) {
	switch v.Kind {
	case sleigh.VerifyTokenFieldCheck:
		f, err := g.model.TokenField(v.Field)
		if err != nil {
			return Fragment{}, err
		}
		if v.Compare == nil {
			return Fragment{}, fmt.Errorf("token field %s: missing comparison", f.Name)
		}
		text, err := g.comparison(g.ids.Raw(f.Name), v.Compare)
		if err != nil {
			return Fragment{}, fmt.Errorf("token field %s: %w", f.Name, err)
		}
		return Supported(text), nil

	case sleigh.VerifyTableBuild:
		t, err := g.model.Table(v.Table)
		if err != nil {
			return Fragment{}, err
		}
		if v.Compare == nil {
			return Supported(g.ids.Raw(t.Name)), nil
		}
		text, err := g.comparison(g.ids.ID(t.Name), v.Compare)
		if err != nil {
			return Fragment{}, fmt.Errorf("table %s: %w", t.Name, err)
		}
		return Supported(text), nil

	case sleigh.VerifyContextCheck:
		return Placeholder(ReasonContextCheck), nil

	case sleigh.VerifySubPattern:
		return Placeholder(ReasonSubPattern), nil
	}
	return Fragment{}, fmt.Errorf("unknown verification kind %s", v.Kind)
}

// Condition renders the guard of c: each And block as a parenthesized
// conjunction of its non-empty fragments, blocks joined by &&. Or blocks
// add no text and are reported as placeholders. A constructor without any
// condition text is guarded by "true".
func (g *Generator) Condition(c *sleigh.Constructor) (string, []Fragment, error) {
	var (
		blocks       []string
		placeholders []Fragment
	)
	for bi := range c.Pattern.Blocks {
		b := &c.Pattern.Blocks[bi]
		if b.Kind == sleigh.BlockOr {
			g.logger.Warn("or block not translated", "mnemonic", c.Mnemonic(), "block", bi)
			placeholders = append(placeholders, Fragment{Reason: ReasonOrBlock})
			continue
		}

		var parts []string
		for vi := range b.Verifications {
			frag, err := g.Verification(&b.Verifications[vi])
			if err != nil {
				return "", nil, err
			}
			if frag.IsPlaceholder() {
				g.logger.Warn("verification not translated", "mnemonic", c.Mnemonic(), "reason", frag.Reason)
				placeholders = append(placeholders, frag)
			}
			if frag.Text != "" {
				parts = append(parts, frag.Text)
			}
		}
		if len(parts) > 0 {
			blocks = append(blocks, "("+strings.Join(parts, " && ")+")")
		}
	}

	if len(blocks) == 0 {
		return "true", placeholders, nil
	}
	return strings.Join(blocks, " && "), placeholders, nil
}

type operand struct {
	format string
	arg    string
}

// Operands renders the operand directive of c from its display template,
// skipping the leading mnemonic element. ok is false when there is nothing
// after the mnemonic.
func (g *Generator) Operands(c *sleigh.Constructor) (format, args string, ok bool, err error) {
	elems := c.Display.Elements
	if len(elems) < 2 {
		return "", "", false, nil
	}

	var (
		fb  strings.Builder
		arg []string
	)
	for _, e := range elems[1:] {
		op, err := g.operand(c, e)
		if err != nil {
			return "", "", false, err
		}
		fb.WriteString(op.format)
		if op.arg != "" {
			arg = append(arg, op.arg)
		}
	}
	return fb.String(), strings.Join(arg, ", "), true, nil
}

func (g *Generator) operand(c *sleigh.Constructor, e sleigh.DisplayElement) (operand, error) {
	switch e.Kind {
	case sleigh.DisplayTable:
		t, err := g.model.Table(e.Table)
		if err != nil {
			return operand{}, err
		}
		return operand{g.ids.Format(t.Name), g.ids.ID(t.Name)}, nil
	case sleigh.DisplayTokenField:
		f, err := g.model.TokenField(e.TokenField)
		if err != nil {
			return operand{}, err
		}
		return operand{g.ids.Format(f.Name), g.ids.ID(f.Name)}, nil
	case sleigh.DisplayLiteral:
		return operand{format: escapeFormat(e.Literal)}, nil
	case sleigh.DisplaySpace:
		return operand{format: " "}, nil
	}
	g.logger.Warn("display element rendered verbatim", "mnemonic", c.Mnemonic(), "element", e.String())
	return operand{format: escapeFormat(e.String())}, nil
}

var formatEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `%`, `%%`)

// escapeFormat makes literal display text safe inside a C printf format.
func escapeFormat(s string) string {
	return formatEscaper.Replace(s)
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// InstructionID returns the id constant of mnemonic, e.g. V850_ADDF_S.
// Characters that cannot appear in a C identifier become underscores.
func (t Target) InstructionID(mnemonic string) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		}
		return '_'
	}, mnemonic)
	return t.Name + "_" + id
}

// Constructor writes the guard code of c to w. Nothing is written when an
// error is returned.
func (g *Generator) Constructor(w io.Writer, c *sleigh.Constructor) (Result, error) {
	mnemonic := c.Mnemonic()
	res := Result{Mnemonic: mnemonic}
	if mnemonic == "" {
		return res, &ConstructorError{Mnemonic: "<unnamed>", Err: errors.New("constructor has no mnemonic")}
	}

	cond, placeholders, err := g.Condition(c)
	if err != nil {
		return res, &ConstructorError{Mnemonic: mnemonic, Where: "condition", Err: err}
	}
	res.Placeholders = placeholders

	format, args, hasOperands, err := g.Operands(c)
	if err != nil {
		return res, &ConstructorError{Mnemonic: mnemonic, Where: "operands", Err: err}
	}

	quoted := literalEscaper.Replace(mnemonic)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// %s\n", quoted)
	fmt.Fprintf(&buf, "if (%s) {\n", cond)
	fmt.Fprintf(&buf, "\t%s->id = %s;\n", g.target.Inst, g.target.InstructionID(mnemonic))
	fmt.Fprintf(&buf, "\t%s(\"%s\");\n", g.target.TraceMacro, quoted)
	if hasOperands {
		if args == "" {
			fmt.Fprintf(&buf, "\t%s(\"%s\");\n", g.target.OperandsMacro, format)
		} else {
			fmt.Fprintf(&buf, "\t%s(\"%s\", %s);\n", g.target.OperandsMacro, format, args)
		}
	}
	buf.WriteString("\treturn true;\n")
	buf.WriteString("}\n")

	g.logger.Debug("generated", "mnemonic", mnemonic, "placeholders", len(placeholders))
	if _, err := w.Write(buf.Bytes()); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", mnemonic, err)
	}
	return res, nil
}

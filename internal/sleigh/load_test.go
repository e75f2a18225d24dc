package sleigh

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTestdata(t *testing.T) {
	s, err := Load("testdata/v850.yaml")
	require.NoError(t, err)

	assert.Equal(t, "V850", s.Name)
	tbl, err := s.Instructions()
	require.NoError(t, err)
	require.Len(t, tbl.Constructors, 4)

	addf := tbl.Constructors[0]
	assert.Equal(t, "addf.s", addf.Mnemonic())
	require.Len(t, addf.Pattern.Blocks, 1)
	v := addf.Pattern.Blocks[0].Verifications[1]
	assert.Equal(t, VerifyTokenFieldCheck, v.Kind)
	assert.Equal(t, TokenFieldID(3), v.Field)
	require.NotNil(t, v.Compare)
	assert.Equal(t, CmpEq, v.Compare.Op)
	assert.Equal(t, []ExprElement{Int(0x460)}, v.Compare.Value)

	trfsr := tbl.Constructors[2]
	value := trfsr.Pattern.Blocks[0].Verifications[0].Compare.Value
	assert.Equal(t, []ExprElement{Int(0x200), Int(0x7f), Bin(OpAdd)}, value)

	cmovf := tbl.Constructors[3]
	assert.Equal(t, BlockOr, cmovf.Pattern.Blocks[1].Kind)
}

func TestDecodeJSON(t *testing.T) {
	doc := `{
  "name": "tiny",
  "instruction_table": 0,
  "token_fields": [{"name": "reg4", "lsb": 17, "msb": 20}],
  "tables": [{"name": "instruction", "constructors": [{
    "display": {"mnemonic": "nop", "elements": [{"kind": "mnemonic"}]},
    "pattern": {"blocks": [{"kind": "and", "verifications": [
      {"kind": "token_field_check", "field": 0,
       "compare": {"op": "ge", "value": [{"value": {"int": 10}}, {"unary": "negation"}]}}
    ]}]}
  }]}]
}`
	s, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	v := s.Tables[0].Constructors[0].Pattern.Blocks[0].Verifications[0]
	assert.Equal(t, CmpGe, v.Compare.Op)
	assert.Equal(t, []ExprElement{Int(10), Un(UnaryNegation)}, v.Compare.Value)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty document",
			doc:  "",
			want: "empty model document",
		},
		{
			name: "unknown field",
			doc:  "name: x\nbogus: 1\n",
			want: "bogus",
		},
		{
			name: "unknown operator",
			doc: `
instruction_table: 0
tables:
  - name: instruction
    constructors:
      - pattern:
          blocks:
            - kind: and
              verifications:
                - kind: table_build
                  table: 0
                  compare: {op: spaceship, value: []}
`,
			want: `unknown comparison "spaceship"`,
		},
		{
			name: "missing instruction table",
			doc:  "instruction_table: 3\ntables: [{name: a}]\n",
			want: "instruction table",
		},
		{
			name: "dangling token field",
			doc: `
instruction_table: 0
tables:
  - name: instruction
    constructors:
      - display:
          mnemonic: bad
          elements: [{kind: mnemonic}, {kind: token_field, token_field: 9}]
`,
			want: "instruction[0] bad: display element 1: token field 9",
		},
		{
			name: "element with two fields",
			doc: `
instruction_table: 0
token_fields: [{name: f}]
tables:
  - name: instruction
    constructors:
      - pattern:
          blocks:
            - kind: and
              verifications:
                - kind: token_field_check
                  field: 0
                  compare: {op: eq, value: [{value: {int: 1}, op: add}]}
`,
			want: "sets 2 fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLookupUnknownID(t *testing.T) {
	s := &Sleigh{Tables: []Table{{Name: "instruction"}}}

	_, err := s.Table(1)
	assert.True(t, errors.Is(err, ErrUnknownID))
	_, err = s.TokenField(0)
	assert.True(t, errors.Is(err, ErrUnknownID))
	_, err = s.Varnode(-1)
	assert.True(t, errors.Is(err, ErrUnknownID))

	tbl, err := s.Instructions()
	require.NoError(t, err)
	assert.Equal(t, "instruction", tbl.Name)
}

func TestEnumText(t *testing.T) {
	b, err := OpAsr.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "asr", string(b))

	var k DisplayKind
	require.NoError(t, k.UnmarshalText([]byte("token_field")))
	assert.Equal(t, DisplayTokenField, k)

	assert.Equal(t, "Op<42>", Op(42).String())
}

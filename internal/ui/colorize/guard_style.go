package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// GuardDark colors generated guard code: accessors teal, hex literals pink,
// placeholder markers stand out as errors.
var GuardDark = styles.Register(chroma.MustNewStyle("guard-dark", chroma.StyleEntries{
	chroma.Text:           "#FFFFFF",
	chroma.Background:     "bg:#1e1e1e",
	chroma.Comment:        "#7F848E",
	chroma.CommentSingle:  "#7F848E",
	chroma.CommentPreproc: "#FFFFFF",

	chroma.Keyword:      "#C678DD",
	chroma.Name:         "#7C9C9D",
	chroma.NameFunction: "#FFD700",
	chroma.NameBuiltin:  "#7C9C9D",

	chroma.LiteralNumber:        "#FF5F87",
	chroma.LiteralNumberHex:     "#FF5F87",
	chroma.LiteralNumberInteger: "#FF5F87",

	chroma.Operator:    "#FFFFFF",
	chroma.Punctuation: "#FFFFFF",

	chroma.String: "#EACD53",
	chroma.Error:  "bold #FF0000",
}))

package params

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// placeholderLexer tokenizes a `{name:Type}` placeholder. Anything else (spaces,
	// commas, quotes) is a lexing error, which FromPlaceholder reports as no match.
	placeholderLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Number", Pattern: `[0-9]+`},
		{Name: "Punct", Pattern: `[{}:()]`},
	})

	placeholderParser = participle.MustBuild[placeholder](
		participle.Lexer(placeholderLexer),
	)
)

type placeholder struct {
	Name string   `parser:"'{' @Ident ':'"`
	Type []string `parser:"@(Ident | Number | '(' | ')')+ '}'"`
}

// FromPlaceholder parses a `{name:Type}` token back into a Parameter shell with a nil
// value. Names follow [A-Za-z_][A-Za-z0-9_]* and types [A-Za-z0-9()]+. Input that
// doesn't match returns false rather than an error.
//
// Example:
//
//	p, ok := params.FromPlaceholder("{user_id:UInt64}")
//	// p.Name == "user_id", p.Type == "UInt64", p.Value == nil
func FromPlaceholder(s string) (*Parameter, bool) {
	ph, err := placeholderParser.ParseString("", s)
	if err != nil {
		return nil, false
	}

	typ := strings.Join(ph.Type, "")
	if strings.Contains(typ, "_") {
		return nil, false
	}

	return &Parameter{Name: ph.Name, Type: typ, explicit: true}, true
}

package hwdef

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// directionLexer tokenizes ADC_DIRECTION values such as "{1,-1, 1}".
var directionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Integer", Pattern: `[-+]?[0-9]+`},
	{Name: "Punct", Pattern: `[{},]`},
})

// directionVector is the grammar of a brace list of signed integers. The
// braces are optional.
type directionVector struct {
	Values []int `"{"? ( @Integer ( "," @Integer )* )? "}"?`
}

var directionParser = participle.MustBuild[directionVector](
	participle.Lexer(directionLexer),
	participle.Elide("Whitespace"),
)

// ParseDirection parses an ADC direction vector. Any token that is not a
// signed integer, comma or brace yields ErrMalformedDirection.
func ParseDirection(s string) ([]int, error) {
	vec, err := directionParser.ParseString("ADC_DIRECTION", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDirection, err)
	}
	return vec.Values, nil
}

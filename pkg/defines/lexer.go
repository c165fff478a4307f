package defines

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// DefineLexer tokenizes the output of "cc -dM -E": one "#define NAME VALUE"
// per line. After the directive the lexer switches to the Macro state so the
// value is taken verbatim up to the end of the line.
var DefineLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments (C and C++ style)
		{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},

		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n`},

		// Directive
		{Name: "Define", Pattern: `#[ \t]*define[ \t]+`, Action: lexer.Push("Macro")},
	},
	"Macro": {
		// Macro name, function-like macros keep their parameter list
		{Name: "Name", Pattern: `[A-Za-z_][A-Za-z0-9_]*(\([^)\n]*\))?`},

		// Replacement text, leading blanks included
		{Name: "Value", Pattern: `[ \t]+[^\n]*`},

		{Name: "EOL", Pattern: `\r?\n`, Action: lexer.Pop()},
	},
})

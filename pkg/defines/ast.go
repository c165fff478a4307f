package defines

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
)

// File is a parsed defines file.
type File struct {
	Defines []*Define `( @@ | Newline )*`
}

// Define is a single "#define NAME VALUE" line.
// Example: #define ADC_GPIO_PIN_STICK_LH LL_GPIO_PIN_0
type Define struct {
	Pos   lexer.Position
	Name  string  `Define @Name`
	Value *string `@Value? EOL?`
}

// Text returns the replacement text without surrounding blanks.
func (d *Define) Text() string {
	if d.Value == nil {
		return ""
	}
	return strings.TrimSpace(*d.Value)
}

// SymbolValue converts the replacement text to a symbol value: no text is
// an empty value, a run of decimal digits is an integer, anything else is
// kept as a string.
func (d *Define) SymbolValue() hwdef.Value {
	text := d.Text()
	if text == "" {
		return hwdef.Empty()
	}
	if isDigits(text) {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return hwdef.Int(n)
		}
	}
	return hwdef.String(text)
}

// Symbols returns the symbol table of the file. A name defined twice keeps
// its last value.
func (f *File) Symbols() hwdef.SymbolTable {
	symbols := make(hwdef.SymbolTable, len(f.Defines))
	for _, d := range f.Defines {
		symbols[d.Name] = d.SymbolValue()
	}
	return symbols
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

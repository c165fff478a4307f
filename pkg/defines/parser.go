package defines

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
)

// Parser reads defines files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new defines parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(DefineLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a defines file from a reader
func (p *Parser) Parse(name string, r io.Reader) (*File, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseString parses defines from a string
func (p *Parser) ParseString(input string) (*File, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseFile parses a defines file from a file path, "-" reads stdin.
func (p *Parser) ParseFile(filename string) (*File, error) {
	if filename == "-" {
		return p.Parse("<stdin>", os.Stdin)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}

// LoadSymbols parses filename and returns its symbol table.
func LoadSymbols(filename string) (hwdef.SymbolTable, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	file, err := p.ParseFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return file.Symbols(), nil
}

package defines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
)

func TestParseSimpleDefines(t *testing.T) {
	input := `#define ADC_MAIN ADC1
#define ADC_SAMPTIME 3
#define SWITCHES_A_INVERTED
`

	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(file.Defines) != 3 {
		t.Fatalf("Expected 3 defines, got %d", len(file.Defines))
	}

	d := file.Defines[0]
	if d.Name != "ADC_MAIN" {
		t.Errorf("Expected name 'ADC_MAIN', got '%s'", d.Name)
	}
	if d.Text() != "ADC1" {
		t.Errorf("Expected value 'ADC1', got '%s'", d.Text())
	}
	if d.Pos.Line != 1 {
		t.Errorf("Expected line 1, got %d", d.Pos.Line)
	}

	if got := file.Defines[1].SymbolValue(); got != hwdef.Int(3) {
		t.Errorf("Expected integer 3, got %v", got)
	}
	if got := file.Defines[2].SymbolValue(); !got.IsEmpty() {
		t.Errorf("Expected empty value, got %v", got)
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		line string
		name string
		want hwdef.Value
	}{
		{"#define ADC_GPIOA_PINS (ADC_GPIO_PIN_STICK_LH | ADC_GPIO_PIN_STICK_LV)", "ADC_GPIOA_PINS",
			hwdef.String("(ADC_GPIO_PIN_STICK_LH | ADC_GPIO_PIN_STICK_LV)")},
		{"#define ADC_DIRECTION {1,-1,1,-1}", "ADC_DIRECTION", hwdef.String("{1,-1,1,-1}")},
		{"#define STACK_SIZE 0x400", "STACK_SIZE", hwdef.String("0x400")},
		{"#define OFFSET -1", "OFFSET", hwdef.String("-1")},
		{"#define\tTABBED\t\t42   ", "TABBED", hwdef.Int(42)},
		{"#define TRAILING   ", "TRAILING", hwdef.Empty()},
		{"#define MAX(a,b) ((a)>(b)?(a):(b))", "MAX(a,b)", hwdef.String("((a)>(b)?(a):(b))")},
		{"#  define SPACED 7", "SPACED", hwdef.Int(7)},
	}

	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := parser.ParseString(tt.line)
			if err != nil {
				t.Fatalf("Failed to parse %q: %v", tt.line, err)
			}
			symbols := file.Symbols()
			got, ok := symbols.Lookup(tt.name)
			if !ok {
				t.Fatalf("Symbol %s not found in %v", tt.name, symbols)
			}
			if got != tt.want {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	input := "// generated\r\n\r\n#define A 1\r\n/* block\n comment */\n#define B\r\n#define A 2"

	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	symbols := file.Symbols()
	if len(symbols) != 2 {
		t.Fatalf("Expected 2 symbols, got %d: %v", len(symbols), symbols)
	}
	if symbols["A"] != hwdef.Int(2) {
		t.Errorf("Expected redefinition to win, got %v", symbols["A"])
	}
	if !symbols.Has("B") || !symbols["B"].IsEmpty() {
		t.Errorf("Expected B to be defined without a value")
	}
}

func TestParseInvalidLine(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	if _, err := parser.ParseString("#include <stdio.h>\n"); err == nil {
		t.Error("Expected error for non-define directive")
	}
}

func TestLoadSymbols(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hal.defines")
	content := "#define ADC_MAIN ADC1\n#define ADC_SAMPTIME 3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write defines: %v", err)
	}

	symbols, err := LoadSymbols(path)
	if err != nil {
		t.Fatalf("Failed to load symbols: %v", err)
	}
	if symbols["ADC_MAIN"] != hwdef.String("ADC1") {
		t.Errorf("Expected ADC_MAIN=ADC1, got %v", symbols["ADC_MAIN"])
	}

	if _, err := LoadSymbols(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing file")
	}
}

package hwdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSwitchTwoPosition(t *testing.T) {
	symbols := SymbolTable{
		"SWITCHES_GPIO_REG_A": String("GPIOB"),
		"SWITCHES_GPIO_PIN_A": Int(3),
	}

	switches, err := ResolveSwitches(symbols, &ADCInputs{})
	require.NoError(t, err)
	require.Len(t, switches, 1)

	sa := switches[0]
	assert.Equal(t, "SA", sa.Name)
	assert.Equal(t, Switch2POS, sa.Type())
	assert.Equal(t, TwoPosition{GPIO: String("GPIOB"), Pin: Int(3)}, sa.Variant)
	assert.Equal(t, 0, sa.Flags)
	assert.Nil(t, sa.Inverted)
}

func TestResolveSwitchThreePosition(t *testing.T) {
	symbols := SymbolTable{
		"SWITCHES_GPIO_REG_B_H": String("GPIOE"),
		"SWITCHES_GPIO_PIN_B_H": String("LL_GPIO_PIN_1"),
		"SWITCHES_GPIO_REG_B_L": String("GPIOA"),
		"SWITCHES_GPIO_PIN_B_L": String("LL_GPIO_PIN_5"),
		"SWITCHES_B_INVERTED":   Empty(),
	}

	switches, err := ResolveSwitches(symbols, &ADCInputs{})
	require.NoError(t, err)
	require.Len(t, switches, 1)

	sb := switches[0]
	assert.Equal(t, "SB", sb.Name)
	assert.Equal(t, ThreePosition{
		GPIOHigh: String("GPIOE"),
		PinHigh:  String("LL_GPIO_PIN_1"),
		GPIOLow:  String("GPIOA"),
		PinLow:   String("LL_GPIO_PIN_5"),
	}, sb.Variant)
	require.NotNil(t, sb.Inverted)
	assert.True(t, *sb.Inverted)
}

func TestResolveSwitchHalfThreePositionIsNotASwitch(t *testing.T) {
	symbols := SymbolTable{
		"SWITCHES_GPIO_REG_C_H": String("GPIOE"),
		"SWITCHES_GPIO_PIN_C_H": String("LL_GPIO_PIN_1"),
	}
	adc := &ADCInputs{Inputs: []ADCInput{{Name: "SWC", Type: InputSwitch}}}

	switches, err := ResolveSwitches(symbols, adc)
	require.NoError(t, err)
	require.Len(t, switches, 1)
	assert.Equal(t, ADCBacked{Input: "SWC"}, switches[0].Variant,
		"a lone _H register falls through to the ADC input, never to 3POS")

	switches, err = ResolveSwitches(symbols, &ADCInputs{})
	require.NoError(t, err)
	assert.Empty(t, switches)
}

func TestResolveSwitchTwoPositionWins(t *testing.T) {
	symbols := SymbolTable{
		"SWITCHES_GPIO_REG_D":   String("GPIOC"),
		"SWITCHES_GPIO_PIN_D":   Int(1),
		"SWITCHES_GPIO_REG_D_H": String("GPIOE"),
		"SWITCHES_GPIO_REG_D_L": String("GPIOE"),
	}
	adc := &ADCInputs{Inputs: []ADCInput{{Name: "SWD"}}}

	switches, err := ResolveSwitches(symbols, adc)
	require.NoError(t, err)
	require.Len(t, switches, 1)
	assert.Equal(t, Switch2POS, switches[0].Type())
}

func TestResolveSwitchADCBacked(t *testing.T) {
	adc := &ADCInputs{Inputs: []ADCInput{{Name: "SWA", Type: InputSwitch}}}

	switches, err := ResolveSwitches(SymbolTable{"SWITCHES_A_INVERTED": Empty()}, adc)
	require.NoError(t, err)
	require.Len(t, switches, 1)
	assert.Equal(t, "SA", switches[0].Name)
	assert.Equal(t, ADCBacked{Input: "SWA"}, switches[0].Variant)
	assert.True(t, *switches[0].Inverted)
}

func TestResolveSwitchMissingPin(t *testing.T) {
	tests := []struct {
		name    string
		symbols SymbolTable
		missing string
	}{
		{
			name:    "two position",
			symbols: SymbolTable{"SWITCHES_GPIO_REG_E": String("GPIOB")},
			missing: "SWITCHES_GPIO_PIN_E",
		},
		{
			name: "three position low",
			symbols: SymbolTable{
				"SWITCHES_GPIO_REG_F_H": String("GPIOB"),
				"SWITCHES_GPIO_PIN_F_H": Int(1),
				"SWITCHES_GPIO_REG_F_L": String("GPIOB"),
			},
			missing: "SWITCHES_GPIO_PIN_F_L",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSwitches(tt.symbols, &ADCInputs{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingSymbol)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestResolveSwitchesOrderedAndUnique(t *testing.T) {
	symbols := SymbolTable{}
	for _, l := range letters() {
		symbols["SWITCHES_GPIO_REG_"+l] = String("GPIOA")
		symbols["SWITCHES_GPIO_PIN_"+l] = Int(0)
	}

	switches, err := ResolveSwitches(symbols, nil)
	require.NoError(t, err)
	require.Len(t, switches, 26)

	seen := map[string]bool{}
	for i, sw := range switches {
		assert.Equal(t, "S"+string(rune('A'+i)), sw.Name)
		assert.False(t, seen[sw.Name])
		seen[sw.Name] = true
	}
}

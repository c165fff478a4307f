package hwdef

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// radioTable looks like the defines of a small radio with sticks, a pot,
// an ADC sensed switch and GPIO switches.
func radioTable() SymbolTable {
	return SymbolTable{
		"ADC_MAIN":       String("ADC1"),
		"ADC_SAMPTIME":   String("LL_ADC_SAMPLINGTIME_28CYCLES"),
		"ADC_DIRECTION":  String("{1,-1,1,-1,1,1,1}"),
		"ADC_GPIOA_PINS": String("(ADC_GPIO_PIN_STICK_LH | ADC_GPIO_PIN_STICK_LV | ADC_GPIO_PIN_STICK_RV | ADC_GPIO_PIN_STICK_RH)"),
		"ADC_GPIOC_PINS": String("(ADC_GPIO_PIN_POT1 | ADC_GPIO_PIN_SWC | ADC_GPIO_PIN_BATT)"),

		"ADC_GPIO_PIN_STICK_LH": String("LL_GPIO_PIN_0"),
		"ADC_GPIO_PIN_STICK_LV": String("LL_GPIO_PIN_1"),
		"ADC_GPIO_PIN_STICK_RV": String("LL_GPIO_PIN_2"),
		"ADC_GPIO_PIN_STICK_RH": String("LL_GPIO_PIN_3"),
		"ADC_GPIO_PIN_POT1":     String("LL_GPIO_PIN_0"),
		"ADC_GPIO_PIN_SWC":      String("LL_GPIO_PIN_1"),
		"ADC_GPIO_PIN_BATT":     String("LL_GPIO_PIN_2"),

		"ADC_CHANNEL_STICK_LH": String("LL_ADC_CHANNEL_0"),
		"ADC_CHANNEL_STICK_LV": String("LL_ADC_CHANNEL_1"),
		"ADC_CHANNEL_STICK_RV": String("LL_ADC_CHANNEL_2"),
		"ADC_CHANNEL_STICK_RH": String("LL_ADC_CHANNEL_3"),
		"ADC_CHANNEL_POT1":     String("LL_ADC_CHANNEL_10"),
		"ADC_CHANNEL_SWC":      String("LL_ADC_CHANNEL_11"),
		"ADC_CHANNEL_BATT":     String("LL_ADC_CHANNEL_12"),

		"SWITCHES_GPIO_REG_A":   String("GPIOE"),
		"SWITCHES_GPIO_PIN_A":   String("LL_GPIO_PIN_7"),
		"SWITCHES_GPIO_REG_B_H": String("GPIOE"),
		"SWITCHES_GPIO_PIN_B_H": String("LL_GPIO_PIN_8"),
		"SWITCHES_GPIO_REG_B_L": String("GPIOE"),
		"SWITCHES_GPIO_PIN_B_L": String("LL_GPIO_PIN_9"),
		"SWITCHES_A_INVERTED":   Empty(),
	}
}

func TestResolveModel(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)

	m, err := Resolve(radioTable(), Options{Logger: &logger})
	require.NoError(t, err)

	var names []string
	for _, in := range m.ADC.Inputs {
		names = append(names, in.Name)
	}
	assert.Equal(t, []string{"LH", "LV", "RV", "RH", "P1", "SWC", "VBAT"}, names)
	assert.True(t, *m.ADC.Find("LV").Inverted)
	assert.True(t, *m.ADC.Find("RH").Inverted)
	assert.Nil(t, m.ADC.Find("LH").Inverted)
	assert.Equal(t, "GPIOC", *m.ADC.Find("SWC").GPIO)

	require.Len(t, m.Switches, 3)
	assert.Equal(t, "SA", m.Switches[0].Name)
	assert.Equal(t, Switch2POS, m.Switches[0].Type())
	assert.True(t, *m.Switches[0].Inverted)
	assert.Equal(t, Switch3POS, m.Switches[1].Type())
	assert.Equal(t, ADCBacked{Input: "SWC"}, m.Switches[2].Variant)

	assert.Contains(t, logs.String(), "ADC inputs resolved")
}

func TestResolveWithoutADCHasNoADCSwitches(t *testing.T) {
	symbols := radioTable()
	delete(symbols, "ADC_MAIN")

	m, err := Resolve(symbols, Options{})
	require.NoError(t, err)
	assert.Empty(t, m.ADC.ADCs)
	assert.Empty(t, m.ADC.Inputs)
	require.Len(t, m.Switches, 2)
	for _, sw := range m.Switches {
		assert.NotEqual(t, SwitchADC, sw.Type())
	}
}

func TestResolveFailsWithoutPartialModel(t *testing.T) {
	symbols := radioTable()
	delete(symbols, "SWITCHES_GPIO_PIN_B_L")

	m, err := Resolve(symbols, Options{})
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMissingSymbol)
}

func TestModelJSONShape(t *testing.T) {
	m, err := Resolve(radioTable(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf, FormatJSON))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	adc := doc["adc_inputs"].(map[string]any)
	inputs := adc["inputs"].([]any)
	lh := inputs[0].(map[string]any)
	assert.Equal(t, "LH", lh["name"])
	assert.Equal(t, "STICK", lh["type"])
	assert.Equal(t, "MAIN", lh["adc"])
	assert.Equal(t, "GPIOA", lh["gpio"])
	assert.Contains(t, lh, "inverted")
	assert.Nil(t, lh["inverted"])

	switches := doc["switches"].([]any)
	sa := switches[0].(map[string]any)
	for _, key := range []string{"name", "type", "flags", "inverted", "gpio", "pin", "gpio_high", "pin_high", "gpio_low", "pin_low", "adc_input"} {
		assert.Contains(t, sa, key)
	}
	assert.Equal(t, "2POS", sa["type"])
	assert.Nil(t, sa["adc_input"])
	assert.Equal(t, true, sa["inverted"])
}

func TestModelRoundTrip(t *testing.T) {
	m, err := Resolve(radioTable(), Options{})
	require.NoError(t, err)

	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, m.Encode(&buf, f))

			got, err := LoadModel(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, m, got)
		})
	}
}

func TestLoadModelRejectsUnknownSwitchType(t *testing.T) {
	_, err := LoadModel(bytes.NewBufferString(`{"switches":[{"name":"SA","type":"4POS"}]}`), FormatJSON)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

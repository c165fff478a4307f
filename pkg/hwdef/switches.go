package hwdef

import "fmt"

// switchClassifier tries to build one switch variant for a letter. It
// returns nil, nil when the variant does not apply.
type switchClassifier func(symbols SymbolTable, adc *ADCInputs, letter string) (SwitchVariant, error)

// switchClassifiers are tried in order; the first match wins.
var switchClassifiers = []switchClassifier{
	classifyTwoPosition,
	classifyThreePosition,
	classifyADCBacked,
}

func classifyTwoPosition(symbols SymbolTable, _ *ADCInputs, l string) (SwitchVariant, error) {
	reg, ok := symbols.Lookup("SWITCHES_GPIO_REG_" + l)
	if !ok {
		return nil, nil
	}
	pin, err := symbols.Require("SWITCHES_GPIO_PIN_" + l)
	if err != nil {
		return nil, err
	}
	return TwoPosition{GPIO: reg, Pin: pin}, nil
}

func classifyThreePosition(symbols SymbolTable, _ *ADCInputs, l string) (SwitchVariant, error) {
	regHigh, okHigh := symbols.Lookup("SWITCHES_GPIO_REG_" + l + "_H")
	regLow, okLow := symbols.Lookup("SWITCHES_GPIO_REG_" + l + "_L")
	if !okHigh || !okLow {
		return nil, nil
	}
	pinHigh, err := symbols.Require("SWITCHES_GPIO_PIN_" + l + "_H")
	if err != nil {
		return nil, err
	}
	pinLow, err := symbols.Require("SWITCHES_GPIO_PIN_" + l + "_L")
	if err != nil {
		return nil, err
	}
	return ThreePosition{
		GPIOHigh: regHigh,
		PinHigh:  pinHigh,
		GPIOLow:  regLow,
		PinLow:   pinLow,
	}, nil
}

func classifyADCBacked(_ SymbolTable, adc *ADCInputs, l string) (SwitchVariant, error) {
	name := "SW" + l
	if adc == nil || adc.Find(name) == nil {
		return nil, nil
	}
	return ADCBacked{Input: name}, nil
}

// ResolveSwitches builds the switches SA..SZ. adc must be the already
// resolved ADC inputs so that ADC sensed switches can be found.
func ResolveSwitches(symbols SymbolTable, adc *ADCInputs) ([]Switch, error) {
	switches := []Switch{}
	for _, l := range letters() {
		var variant SwitchVariant
		for _, classify := range switchClassifiers {
			v, err := classify(symbols, adc, l)
			if err != nil {
				return nil, fmt.Errorf("switch S%s: %w", l, err)
			}
			if v != nil {
				variant = v
				break
			}
		}
		if variant == nil {
			continue
		}

		sw := Switch{Name: "S" + l, Variant: variant}
		if symbols.Has("SWITCHES_" + l + "_INVERTED") {
			sw.Inverted = boolPtr(true)
		}
		switches = append(switches, sw)
	}
	return switches, nil
}

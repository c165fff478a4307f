package hwdef

import (
	"encoding/json"
	"fmt"
)

// Switch type tags as they appear in serialized models.
const (
	Switch2POS = "2POS"
	Switch3POS = "3POS"
	SwitchADC  = "ADC"
)

// SwitchVariant is implemented by TwoPosition, ThreePosition and ADCBacked.
type SwitchVariant interface {
	switchType() string
}

// TwoPosition is a switch read from a single GPIO pin.
type TwoPosition struct {
	GPIO Value
	Pin  Value
}

// ThreePosition is a switch read from a high and a low GPIO pin.
type ThreePosition struct {
	GPIOHigh Value
	PinHigh  Value
	GPIOLow  Value
	PinLow   Value
}

// ADCBacked is a switch sensed through an ADC input.
type ADCBacked struct {
	Input string
}

func (TwoPosition) switchType() string   { return Switch2POS }
func (ThreePosition) switchType() string { return Switch3POS }
func (ADCBacked) switchType() string     { return SwitchADC }

// Switch is a physical switch named S followed by a letter.
type Switch struct {
	Name     string
	Variant  SwitchVariant
	Flags    int
	Inverted *bool
}

// Type returns the serialized type tag of the switch.
func (s Switch) Type() string {
	if s.Variant == nil {
		return ""
	}
	return s.Variant.switchType()
}

// switchRecord is the flat, fixed-shape form of a Switch. Keys that do not
// apply to the variant are null.
type switchRecord struct {
	Name     string  `json:"name" yaml:"name"`
	Type     string  `json:"type" yaml:"type"`
	Flags    int     `json:"flags" yaml:"flags"`
	Inverted *bool   `json:"inverted" yaml:"inverted"`
	GPIO     *Value  `json:"gpio" yaml:"gpio"`
	Pin      *Value  `json:"pin" yaml:"pin"`
	GPIOHigh *Value  `json:"gpio_high" yaml:"gpio_high"`
	PinHigh  *Value  `json:"pin_high" yaml:"pin_high"`
	GPIOLow  *Value  `json:"gpio_low" yaml:"gpio_low"`
	PinLow   *Value  `json:"pin_low" yaml:"pin_low"`
	ADCInput *string `json:"adc_input" yaml:"adc_input"`
}

func (s Switch) record() switchRecord {
	r := switchRecord{
		Name:     s.Name,
		Type:     s.Type(),
		Flags:    s.Flags,
		Inverted: s.Inverted,
	}
	switch v := s.Variant.(type) {
	case TwoPosition:
		r.GPIO, r.Pin = &v.GPIO, &v.Pin
	case ThreePosition:
		r.GPIOHigh, r.PinHigh = &v.GPIOHigh, &v.PinHigh
		r.GPIOLow, r.PinLow = &v.GPIOLow, &v.PinLow
	case ADCBacked:
		r.ADCInput = &v.Input
	}
	return r
}

func (s Switch) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.record())
}

func (s Switch) MarshalYAML() (any, error) {
	return s.record(), nil
}

func (s *Switch) UnmarshalJSON(data []byte) error {
	var r switchRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	sw := Switch{Name: r.Name, Flags: r.Flags, Inverted: r.Inverted}
	switch r.Type {
	case Switch2POS:
		sw.Variant = TwoPosition{GPIO: deref(r.GPIO), Pin: deref(r.Pin)}
	case Switch3POS:
		sw.Variant = ThreePosition{
			GPIOHigh: deref(r.GPIOHigh),
			PinHigh:  deref(r.PinHigh),
			GPIOLow:  deref(r.GPIOLow),
			PinLow:   deref(r.PinLow),
		}
	case SwitchADC:
		if r.ADCInput == nil {
			return fmt.Errorf("hwdef: switch %s: ADC switch without adc_input", r.Name)
		}
		sw.Variant = ADCBacked{Input: *r.ADCInput}
	default:
		return fmt.Errorf("hwdef: switch %s: unknown type %q", r.Name, r.Type)
	}
	*s = sw
	return nil
}

func deref(v *Value) Value {
	if v == nil {
		return Value{}
	}
	return *v
}

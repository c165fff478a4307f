package hwdef

// Peripheral names.
const (
	ADCMain = "MAIN"
	ADCExt  = "EXT"
)

// InputType is the category of an ADC input.
type InputType string

const (
	InputStick  InputType = "STICK"
	InputPot    InputType = "POT"
	InputSlider InputType = "SLIDER"
	InputExt    InputType = "EXT"
	InputSwitch InputType = "SWITCH"
	InputBatt   InputType = "BATT"
	InputMouse  InputType = "MOUSE"
)

// DMA describes the DMA stream feeding an ADC peripheral.
type DMA struct {
	Controller       Value `json:"controller" yaml:"controller"`
	Channel          Value `json:"channel" yaml:"channel"`
	Stream           Value `json:"stream" yaml:"stream"`
	StreamIRQ        Value `json:"stream_irq" yaml:"stream_irq"`
	StreamIRQHandler Value `json:"stream_irq_handler" yaml:"stream_irq_handler"`
}

// ADCPeripheral is one of the ADC units sampling the inputs.
type ADCPeripheral struct {
	Name       string `json:"name" yaml:"name"`
	Periph     Value  `json:"adc" yaml:"adc"`
	DMA        *DMA   `json:"dma" yaml:"dma"`
	SampleTime Value  `json:"sample_time" yaml:"sample_time"`
}

// ADCInput is a single analog channel. GPIO and Pin are either both set or
// both nil.
type ADCInput struct {
	Name     string    `json:"name" yaml:"name"`
	Type     InputType `json:"type" yaml:"type"`
	ADC      string    `json:"adc" yaml:"adc"`
	GPIO     *string   `json:"gpio" yaml:"gpio"`
	Pin      *Value    `json:"pin" yaml:"pin"`
	Channel  Value     `json:"channel" yaml:"channel"`
	Inverted *bool     `json:"inverted" yaml:"inverted"`
}

// ADCInputs groups the peripherals with the ordered input list. The order
// of Inputs is significant: it is the order of the sampling buffer.
type ADCInputs struct {
	ADCs   []ADCPeripheral `json:"adcs" yaml:"adcs"`
	Inputs []ADCInput      `json:"inputs" yaml:"inputs"`
}

// Find returns the input called name, or nil.
func (a *ADCInputs) Find(name string) *ADCInput {
	for i := range a.Inputs {
		if a.Inputs[i].Name == name {
			return &a.Inputs[i]
		}
	}
	return nil
}

// Model is everything resolved from one symbol table.
type Model struct {
	ADC      ADCInputs `json:"adc_inputs" yaml:"adc_inputs"`
	Switches []Switch  `json:"switches" yaml:"switches"`
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

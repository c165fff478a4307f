package hwdef

import "fmt"

// PortPin is one ADC pin of a GPIO port and the position of its input in
// the sampling buffer.
type PortPin struct {
	Pin Value `json:"pin" yaml:"pin"`
	Idx int   `json:"idx" yaml:"idx"`
}

// GPIOPort is a GPIO port with its ADC pins in input order.
type GPIOPort struct {
	GPIO string    `json:"gpio" yaml:"gpio"`
	Pins []PortPin `json:"pins" yaml:"pins"`
}

// Index holds the lookup tables templates use to address the input
// buffer.
type Index struct {
	Names     map[string]int       `json:"adc_index" yaml:"adc_index"`
	GPIOPorts map[string][]PortPin `json:"adc_gpios" yaml:"adc_gpios"`

	// portOrder lists the GPIOPorts keys in the order each port first
	// appears in the input list.
	portOrder []string
}

// BuildIndex derives the name and GPIO port indices from the ordered input
// list. Inputs without a GPIO consume a position but add no port entry.
func BuildIndex(inputs []ADCInput) (*Index, error) {
	idx := &Index{
		Names:     make(map[string]int, len(inputs)),
		GPIOPorts: make(map[string][]PortPin),
	}
	for i, in := range inputs {
		if _, dup := idx.Names[in.Name]; dup {
			return nil, &SymbolError{Symbol: in.Name, Err: ErrDuplicateInput}
		}
		idx.Names[in.Name] = i

		if in.GPIO == nil {
			continue
		}
		if in.Pin == nil {
			return nil, fmt.Errorf("ADC input %s: GPIO %s without pin", in.Name, *in.GPIO)
		}
		port := *in.GPIO
		if _, seen := idx.GPIOPorts[port]; !seen {
			idx.portOrder = append(idx.portOrder, port)
		}
		idx.GPIOPorts[port] = append(idx.GPIOPorts[port], PortPin{Pin: *in.Pin, Idx: i})
	}
	return idx, nil
}

// Ports returns the GPIO port names in the order they first appear in the
// input list.
func (idx *Index) Ports() []string {
	return append([]string(nil), idx.portOrder...)
}

// PortList returns the GPIO port index as a list in Ports order.
func (idx *Index) PortList() []GPIOPort {
	ports := make([]GPIOPort, 0, len(idx.portOrder))
	for _, p := range idx.portOrder {
		ports = append(ports, GPIOPort{GPIO: p, Pins: idx.GPIOPorts[p]})
	}
	return ports
}

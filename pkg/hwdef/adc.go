package hwdef

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Default input slot counts.
const (
	DefaultMaxPots    = 4
	DefaultMaxSliders = 4
	DefaultMaxExts    = 4
)

// Options tunes resolution. The zero value uses the default limits and a
// disabled logger.
type Options struct {
	MaxPots    int
	MaxSliders int
	MaxExts    int
	Logger     *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxPots <= 0 {
		o.MaxPots = DefaultMaxPots
	}
	if o.MaxSliders <= 0 {
		o.MaxSliders = DefaultMaxSliders
	}
	if o.MaxExts <= 0 {
		o.MaxExts = DefaultMaxExts
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// slot is one candidate ADC input.
type slot struct {
	typ    InputType
	name   string
	suffix string
}

// inputSlots returns every candidate input in sampling order. The order
// fixes both the buffer layout and the alignment with ADC_DIRECTION.
func inputSlots(o Options) []slot {
	var slots []slot
	for _, axis := range []string{"LH", "LV", "RV", "RH"} {
		slots = append(slots, slot{InputStick, axis, "STICK_" + axis})
	}
	for i := 1; i <= o.MaxPots; i++ {
		n := strconv.Itoa(i)
		slots = append(slots, slot{InputPot, "P" + n, "POT" + n})
	}
	for i := 1; i <= o.MaxExts; i++ {
		n := strconv.Itoa(i)
		slots = append(slots, slot{InputExt, "EXT" + n, "EXT" + n})
	}
	for i := 1; i <= o.MaxSliders; i++ {
		n := strconv.Itoa(i)
		slots = append(slots, slot{InputSlider, "SL" + n, "SLIDER" + n})
	}
	for _, l := range letters() {
		slots = append(slots, slot{InputSwitch, "SW" + l, "SW" + l})
	}
	slots = append(slots,
		slot{InputBatt, "VBAT", "BATT"},
		// mouse inputs must come after the battery voltage
		slot{InputMouse, "JSx", "MOUSE1"},
		slot{InputMouse, "JSy", "MOUSE2"},
		slot{InputBatt, "RTC_BAT", "RTC_BAT"},
	)
	return slots
}

// adcResolver carries the per-run lookups shared by all slots.
type adcResolver struct {
	symbols SymbolTable
	regs    []gpioPins
	extList *string
	log     *zerolog.Logger
}

// ResolveADC discovers the ADC peripherals and resolves every ADC input the
// table defines. When ADC_MAIN is not defined both results are empty and
// the error is nil.
func ResolveADC(symbols SymbolTable, opts Options) (*ADCInputs, error) {
	opts = opts.withDefaults()
	out := &ADCInputs{ADCs: []ADCPeripheral{}, Inputs: []ADCInput{}}

	mainADC, err := parsePeripheral(symbols, ADCMain, "ADC_MAIN", "ADC")
	if err != nil {
		return nil, err
	}
	if mainADC == nil {
		opts.Logger.Debug().Msg("ADC_MAIN not defined, no ADC inputs")
		return out, nil
	}
	out.ADCs = append(out.ADCs, *mainADC)

	r := &adcResolver{
		symbols: symbols,
		regs:    gpioPinLists(symbols),
		log:     opts.Logger,
	}

	ext, err := parsePeripheral(symbols, ADCExt, "ADC_EXT", "ADC_EXT")
	if err != nil {
		return nil, err
	}
	if ext != nil {
		out.ADCs = append(out.ADCs, *ext)
		members := ""
		if v, ok := symbols.Lookup("ADC_EXT_CHANNELS"); ok {
			members = v.Text()
		}
		r.extList = &members
	}

	var dirs []int
	if v, ok := symbols.Lookup("ADC_DIRECTION"); ok {
		dirs, err = ParseDirection(v.Text())
		if err != nil {
			return nil, &SymbolError{Symbol: "ADC_DIRECTION", Err: err}
		}
	}

	for _, s := range inputSlots(opts) {
		in, err := r.resolveSlot(s)
		if errors.Is(err, errSlotAbsent) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("ADC input %s: %w", s.name, err)
		}
		out.Inputs = append(out.Inputs, *in)
	}

	if err := applyDirections(out.Inputs, dirs); err != nil {
		return nil, &SymbolError{Symbol: "ADC_DIRECTION", Err: err}
	}

	opts.Logger.Debug().
		Int("adcs", len(out.ADCs)).
		Int("inputs", len(out.Inputs)).
		Msg("ADC inputs resolved")
	return out, nil
}

// applyDirections marks inputs whose direction entry is negative as
// inverted. Battery inputs keep their position but never read the vector.
func applyDirections(inputs []ADCInput, dirs []int) error {
	if len(dirs) < len(inputs) {
		return fmt.Errorf("%w: %d entries for %d inputs", ErrDirectionLength, len(dirs), len(inputs))
	}
	for i := range inputs {
		if inputs[i].Type == InputBatt {
			continue
		}
		if dirs[i] < 0 {
			inputs[i].Inverted = boolPtr(true)
		}
	}
	return nil
}

func (r *adcResolver) resolveSlot(s slot) (*ADCInput, error) {
	in := &ADCInput{Name: s.name, Type: s.typ}

	pinDef := "ADC_GPIO_PIN_" + s.suffix
	pin, hasPin := r.symbols.Lookup(pinDef)
	if !hasPin && s.name != "RTC_BAT" {
		r.log.Debug().Str("input", s.name).Str("symbol", pinDef).Msg("input not defined")
		return nil, errSlotAbsent
	}

	channelDef := "ADC_CHANNEL_" + s.suffix
	channel, ok := r.symbols.Lookup(channelDef)
	if !ok {
		r.log.Debug().Str("input", s.name).Str("symbol", channelDef).Msg("input has no channel")
		return nil, errSlotAbsent
	}
	if channel.IsEmpty() {
		return nil, &SymbolError{Symbol: channelDef, Err: ErrEmptyValue}
	}
	in.Channel = channel
	in.ADC = r.peripheralFor(channelDef)

	// RTC_BAT is sampled internally and has no pin.
	if s.name != "RTC_BAT" {
		gpio, pin, err := r.resolvePin(pinDef, pin)
		if err != nil {
			return nil, err
		}
		in.GPIO, in.Pin = &gpio, &pin
	}
	return in, nil
}

// resolvePin finds the GPIO register owning pinDef and the effective pin
// value after alias resolution.
func (r *adcResolver) resolvePin(pinDef string, pin Value) (string, Value, error) {
	if pin.IsEmpty() {
		return "", pin, &SymbolError{Symbol: pinDef, Err: ErrEmptyValue}
	}

	gpio, found := findGPIO(r.regs, pinDef)
	if !found && pin.Kind == KindString {
		gpio, found = findGPIO(r.regs, pin.Str)
	}

	target, aliased, err := resolveAlias(r.symbols, pinDef, pin)
	if err != nil {
		return "", pin, err
	}
	if aliased {
		if g, ok := findGPIO(r.regs, pin.Str); ok {
			gpio, found = g, true
		}
		pin = target
	}

	if !found {
		return "", pin, &SymbolError{Symbol: pinDef, Err: ErrUnresolvedGPIO}
	}
	return gpio, pin, nil
}

func (r *adcResolver) peripheralFor(channelDef string) string {
	if r.extList != nil && strings.Contains(*r.extList, channelDef) {
		return ADCExt
	}
	return ADCMain
}

// parsePeripheral reads one ADC peripheral. It returns nil when the
// register symbol is undefined or has no value.
func parsePeripheral(symbols SymbolTable, name, periph, prefix string) (*ADCPeripheral, error) {
	reg, ok := symbols.Lookup(periph)
	if !ok || !reg.Truthy() {
		return nil, nil
	}
	adc := &ADCPeripheral{Name: name, Periph: reg}

	if dma, ok := symbols.Lookup(prefix + "_DMA"); ok && dma.Truthy() {
		d := &DMA{Controller: dma}
		fields := []struct {
			suffix string
			dst    *Value
		}{
			{"_DMA_CHANNEL", &d.Channel},
			{"_DMA_STREAM", &d.Stream},
			{"_DMA_STREAM_IRQ", &d.StreamIRQ},
			{"_DMA_STREAM_IRQHandler", &d.StreamIRQHandler},
		}
		for _, f := range fields {
			v, err := symbols.Require(prefix + f.suffix)
			if err != nil {
				return nil, fmt.Errorf("ADC %s DMA: %w", name, err)
			}
			*f.dst = v
		}
		adc.DMA = d
	}

	st, err := symbols.Require(prefix + "_SAMPTIME")
	if err != nil {
		return nil, fmt.Errorf("ADC %s: %w", name, err)
	}
	adc.SampleTime = st
	return adc, nil
}

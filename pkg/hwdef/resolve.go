// Package hwdef resolves the flat symbol table of a radio hardware header
// into a model of its switches and ADC inputs.
package hwdef

import "fmt"

// Resolve runs the ADC and switch resolvers over symbols. ADC inputs are
// resolved first because switches may be sensed through them. No partial
// model is returned on error.
func Resolve(symbols SymbolTable, opts Options) (*Model, error) {
	opts = opts.withDefaults()

	adc, err := ResolveADC(symbols, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve ADC: %w", err)
	}

	switches, err := ResolveSwitches(symbols, adc)
	if err != nil {
		return nil, fmt.Errorf("resolve switches: %w", err)
	}

	opts.Logger.Debug().Int("switches", len(switches)).Msg("switches resolved")
	return &Model{ADC: *adc, Switches: switches}, nil
}

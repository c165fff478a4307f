package hwdef

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSymbol is returned when a symbol required by an already
	// chosen peripheral, input or switch variant is undefined.
	ErrMissingSymbol = errors.New("missing symbol")

	// ErrMalformedDirection is returned when ADC_DIRECTION holds anything
	// other than a list of signed integers.
	ErrMalformedDirection = errors.New("malformed direction vector")

	// ErrDirectionLength is returned when ADC_DIRECTION has fewer entries
	// than there are ADC inputs.
	ErrDirectionLength = errors.New("direction vector shorter than input list")

	// ErrAliasCycle is returned when a pin alias leads back to its origin.
	ErrAliasCycle = errors.New("pin alias cycle")

	// ErrUnresolvedGPIO is returned when no ADC_GPIOx_PINS list holds a pin.
	ErrUnresolvedGPIO = errors.New("pin not listed in any GPIO pin list")

	// ErrEmptyValue is returned when a symbol that needs a value is empty.
	ErrEmptyValue = errors.New("symbol has no value")

	// ErrDuplicateInput is returned when two ADC inputs share a name.
	ErrDuplicateInput = errors.New("duplicate ADC input name")

	// errSlotAbsent marks an optional input that does not exist on the
	// target. It never leaves the package.
	errSlotAbsent = errors.New("slot absent")
)

// SymbolError ties a resolution failure to the symbol it was about.
type SymbolError struct {
	Symbol string
	Err    error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Symbol, e.Err)
}

func (e *SymbolError) Unwrap() error { return e.Err }

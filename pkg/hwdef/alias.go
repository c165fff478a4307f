package hwdef

import "strings"

// findGPIO returns the last GPIO register, in A..Z order, whose pin list
// contains token. Matching is plain substring containment, so a token such
// as "PA1" also matches a list holding only "PA10".
func findGPIO(regs []gpioPins, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	found := ""
	for _, r := range regs {
		if strings.Contains(r.pins, token) {
			found = r.reg
		}
	}
	return found, found != ""
}

type gpioPins struct {
	reg  string
	pins string
}

// gpioPinLists collects the ADC_GPIOx_PINS lists of the table.
func gpioPinLists(symbols SymbolTable) []gpioPins {
	var regs []gpioPins
	for _, l := range letters() {
		reg := "GPIO" + l
		if v, ok := symbols.Lookup("ADC_" + reg + "_PINS"); ok && v.Truthy() {
			regs = append(regs, gpioPins{reg: reg, pins: v.Text()})
		}
	}
	return regs
}

// resolveAlias follows a pin value one hop through the symbol table. It
// returns the target's value and true when pin names a defined symbol with
// a value; a plain pin identifier or an integer comes back unchanged.
// origin is the symbol the pin value was read from and is used to detect
// a target that leads straight back.
func resolveAlias(symbols SymbolTable, origin string, pin Value) (Value, bool, error) {
	if pin.Kind != KindString {
		return pin, false, nil
	}
	target, ok := symbols.Lookup(pin.Str)
	if !ok || target.IsEmpty() {
		return pin, false, nil
	}
	if target.Kind == KindString && (target.Str == origin || target.Str == pin.Str) {
		return pin, false, &SymbolError{Symbol: pin.Str, Err: ErrAliasCycle}
	}
	return target, true, nil
}

func letters() []string {
	out := make([]string, 0, 26)
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, string(c))
	}
	return out
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/hwdefgen/pkg/defines"
	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
)

var showPorts bool

var infoCmd = &cobra.Command{
	Use:   "info <defines-file>",
	Short: "Show the switches and ADC inputs of a defines file",
	Long: `Parse a defines file, resolve it and display its ADC peripherals,
ADC inputs and switches in a human readable form.

Examples:
  hwdefgen info hal.defines
  hwdefgen info --ports hal.defines`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVarP(&showPorts, "ports", "p", false,
		"show ADC pins grouped by GPIO port")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	if verbose {
		fmt.Fprintf(out, "Parsing defines file: %s\n\n", filename)
	}

	parser, err := defines.NewParser()
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	file, err := parser.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	m, err := hwdef.Resolve(file.Symbols(), resolveOptions())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "╔════════════════════════════════════════════════════════════════╗\n")
	fmt.Fprintf(out, "║ Hardware Definition                                            ║\n")
	fmt.Fprintf(out, "╠════════════════════════════════════════════════════════════════╣\n")
	fmt.Fprintf(out, "║ Defines: %-53d ║\n", len(file.Defines))
	fmt.Fprintf(out, "╚════════════════════════════════════════════════════════════════╝\n\n")

	// ADC peripherals
	if len(m.ADC.ADCs) == 0 {
		fmt.Fprintf(out, "ADC: not supported (ADC_MAIN not defined)\n\n")
	} else {
		fmt.Fprintf(out, "ADC Peripherals:\n")
		for _, adc := range m.ADC.ADCs {
			fmt.Fprintf(out, "  %-5s %-10s sample time %s", adc.Name, adc.Periph, adc.SampleTime)
			if adc.DMA != nil {
				fmt.Fprintf(out, " dma %s stream %s", adc.DMA.Controller, adc.DMA.Stream)
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out)
	}

	// ADC inputs
	if len(m.ADC.Inputs) > 0 {
		fmt.Fprintf(out, "ADC Inputs: %d total\n", len(m.ADC.Inputs))
		for i, in := range m.ADC.Inputs {
			gpio, pin := "-", "-"
			if in.GPIO != nil {
				gpio, pin = *in.GPIO, in.Pin.Text()
			}
			fmt.Fprintf(out, "  %2d: %-8s %-7s %-5s %-6s %-16s ch=%s",
				i, in.Name, in.Type, in.ADC, gpio, pin, in.Channel)
			if in.Inverted != nil && *in.Inverted {
				fmt.Fprintf(out, " inverted")
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out)
	}

	// Switches
	if len(m.Switches) > 0 {
		fmt.Fprintf(out, "Switches: %d total\n", len(m.Switches))
		for _, sw := range m.Switches {
			fmt.Fprintf(out, "  %-3s %-4s %s", sw.Name, sw.Type(), describeSwitch(sw))
			if sw.Inverted != nil && *sw.Inverted {
				fmt.Fprintf(out, " inverted")
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out)
	}

	if showPorts {
		idx, err := hwdef.BuildIndex(m.ADC.Inputs)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "GPIO Ports:\n")
		for _, port := range idx.PortList() {
			var pins []string
			for _, p := range port.Pins {
				pins = append(pins, fmt.Sprintf("%s@%d", p.Pin.Text(), p.Idx))
			}
			fmt.Fprintf(out, "  %-6s %s\n", port.GPIO, strings.Join(pins, " "))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Resolution completed successfully!")
	return nil
}

func describeSwitch(sw hwdef.Switch) string {
	switch v := sw.Variant.(type) {
	case hwdef.TwoPosition:
		return fmt.Sprintf("%s/%s", v.GPIO.Text(), v.Pin.Text())
	case hwdef.ThreePosition:
		return fmt.Sprintf("high %s/%s low %s/%s",
			v.GPIOHigh.Text(), v.PinHigh.Text(), v.GPIOLow.Text(), v.PinLow.Text())
	case hwdef.ADCBacked:
		return "adc " + v.Input
	}
	return ""
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/hwdefgen/pkg/defines"
	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
	"github.com/OpenTraceLab/hwdefgen/pkg/render"
	"github.com/OpenTraceLab/hwdefgen/pkg/store"
)

var (
	templateFile  string
	definesFile   string
	renderStore   string
	renderTargets []string
)

var renderCmd = &cobra.Command{
	Use:   "render -t <template> [model-file]...",
	Short: "Render a template from resolved hardware models",
	Long: `Render a Jinja style template once per model. Models are read from JSON
or YAML files written by "hwdefgen defines", or from a model cache with
--store and --target.

The template sees adc_inputs, switches, adc_index and adc_gpios, and the
raw symbol table as "defines" when --defines is given.

Examples:
  hwdefgen render -t hal_adc_inputs.inc.jinja hal.json
  hwdefgen render -t hal_keys.inc.jinja --store models.db --target tx16s`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&templateFile, "template", "t", "",
		"template file")
	renderCmd.Flags().StringVar(&definesFile, "defines", "",
		"defines file passed to the template as 'defines'")
	renderCmd.Flags().StringVar(&renderStore, "store", "",
		"SQLite model cache to read from")
	renderCmd.Flags().StringSliceVar(&renderTargets, "target", nil,
		"target to render from the model cache (repeatable)")
	renderCmd.MarkFlagRequired("template")
}

func runRender(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(renderTargets) == 0 {
		return fmt.Errorf("no model given: pass model files or --target")
	}

	models, err := loadModels(args)
	if err != nil {
		return err
	}

	var symbols hwdef.SymbolTable
	if definesFile != "" {
		if symbols, err = defines.LoadSymbols(definesFile); err != nil {
			return err
		}
	}

	r, err := render.New(filepath.Dir(templateFile))
	if err != nil {
		return err
	}

	for _, m := range models {
		idx, err := hwdef.BuildIndex(m.ADC.Inputs)
		if err != nil {
			return err
		}
		in := render.Input{Model: m, Index: idx, Defines: symbols}
		if err := r.RenderFile(cmd.OutOrStdout(), templateFile, in); err != nil {
			return err
		}
	}
	return nil
}

func loadModels(files []string) ([]*hwdef.Model, error) {
	var models []*hwdef.Model

	for _, filename := range files {
		m, err := loadModelFile(filename)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}

	if len(renderTargets) > 0 {
		path := renderStore
		if path == "" {
			path = cfg.Store
		}
		if path == "" {
			return nil, fmt.Errorf("--target needs --store")
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		for _, target := range renderTargets {
			m, err := st.Load(target)
			if err != nil {
				return nil, err
			}
			log.Debug().Str("target", target).Msg("Loaded model from store")
			models = append(models, m)
		}
	}
	return models, nil
}

func loadModelFile(filename string) (*hwdef.Model, error) {
	f := hwdef.FormatJSON
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		f = hwdef.FormatYAML
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer file.Close()

	m, err := hwdef.LoadModel(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

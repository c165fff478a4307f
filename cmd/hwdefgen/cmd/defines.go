package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/hwdefgen/pkg/defines"
	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
	"github.com/OpenTraceLab/hwdefgen/pkg/store"
)

var (
	outputFormat string
	storePath    string
	targetName   string
)

var definesCmd = &cobra.Command{
	Use:   "defines <defines-file>...",
	Short: "Resolve defines files into hardware models",
	Long: `Parse files of "#define NAME VALUE" lines (as produced by "cc -dM -E")
and print the resolved model of switches and ADC inputs. "-" reads stdin.

With --store the model is also cached in a SQLite file under --target
(default: the file name without extension) for later rendering.

Examples:
  hwdefgen defines hal.defines
  hwdefgen defines -f yaml hal.defines
  hwdefgen defines --store models.db --target tx16s hal.defines`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDefines,
}

func init() {
	rootCmd.AddCommand(definesCmd)

	definesCmd.Flags().StringVarP(&outputFormat, "format", "f", "json",
		"output format (json, yaml)")
	definesCmd.Flags().StringVar(&storePath, "store", "",
		"SQLite model cache to save into")
	definesCmd.Flags().StringVar(&targetName, "target", "",
		"target name for the model cache")
}

func runDefines(cmd *cobra.Command, args []string) error {
	format := outputFormat
	if !cmd.Flags().Changed("format") {
		format = cfg.Format
	}
	f, err := hwdef.ParseFormat(format)
	if err != nil {
		return err
	}

	dbPath := storePath
	if dbPath == "" {
		dbPath = cfg.Store
	}
	if targetName != "" && len(args) > 1 {
		return fmt.Errorf("--target needs a single defines file, got %d", len(args))
	}

	var st *store.Store
	if dbPath != "" {
		if st, err = store.Open(dbPath); err != nil {
			return err
		}
		defer st.Close()
	}

	parser, err := defines.NewParser()
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	for _, filename := range args {
		file, err := parser.ParseFile(filename)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", filename, err)
		}

		m, err := hwdef.Resolve(file.Symbols(), resolveOptions())
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}

		log.Info().
			Str("file", filename).
			Int("inputs", len(m.ADC.Inputs)).
			Int("switches", len(m.Switches)).
			Msg("Resolved hardware model")

		if err := m.Encode(cmd.OutOrStdout(), f); err != nil {
			return err
		}

		if st != nil {
			target := targetName
			if target == "" {
				target = targetFromFile(filename)
			}
			if err := st.Save(target, m); err != nil {
				return err
			}
			log.Info().Str("target", target).Str("store", dbPath).Msg("Saved model")
		}
	}
	return nil
}

func targetFromFile(filename string) string {
	if filename == "-" {
		return "stdin"
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

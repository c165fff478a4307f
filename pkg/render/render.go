// Package render feeds resolved models to Jinja style templates.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/flosch/pongo2/v6"

	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
)

func init() {
	// Templates emit C, not HTML.
	pongo2.SetAutoescape(false)
}

// Renderer renders templates with the block trimming the firmware
// templates are written for.
type Renderer struct {
	set *pongo2.TemplateSet
}

// New returns a Renderer. Templates included by name are looked up
// relative to baseDir.
func New(baseDir string) (*Renderer, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(baseDir)
	if err != nil {
		return nil, fmt.Errorf("template loader: %w", err)
	}
	set := pongo2.NewSet("hwdefgen", loader)
	set.Options.TrimBlocks = true
	return &Renderer{set: set}, nil
}

// lineStartTag matches blanks between the start of a line and a block
// tag. pongo2's LStripBlocks also strips blanks after text on the
// same line, so the stripping is done here on the source instead.
var lineStartTag = regexp.MustCompile(`(?m)^[ \t]+(\{%)`)

func lstripBlocks(src []byte) []byte {
	return lineStartTag.ReplaceAll(src, []byte("$1"))
}

// Input is everything a template can see.
type Input struct {
	Model   *hwdef.Model
	Index   *hwdef.Index
	Defines hwdef.SymbolTable
}

// Context builds the template context. The model and indices are passed
// as plain maps and slices with the same keys as the serialized model, so
// templates read "adc_inputs.inputs", "switches", "adc_index" and
// "adc_gpios". adc_gpios is a list of {gpio, pins} in the order each port
// first appears among the inputs. Symbols are available under "defines" when given.
func Context(in Input) (pongo2.Context, error) {
	if in.Model == nil {
		return nil, fmt.Errorf("template context: no model")
	}
	ctx := pongo2.Context{}

	model, err := toPlain(in.Model)
	if err != nil {
		return nil, err
	}
	for k, v := range model.(map[string]any) {
		ctx[k] = v
	}

	idx := in.Index
	if idx == nil {
		if idx, err = hwdef.BuildIndex(in.Model.ADC.Inputs); err != nil {
			return nil, err
		}
	}
	if ctx["adc_index"], err = toPlain(idx.Names); err != nil {
		return nil, err
	}
	if ctx["adc_gpios"], err = toPlain(idx.PortList()); err != nil {
		return nil, err
	}

	if in.Defines != nil {
		if ctx["defines"], err = toPlain(in.Defines); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// RenderString renders the template source src to w.
func (r *Renderer) RenderString(w io.Writer, src string, in Input) error {
	tpl, err := r.set.FromBytes(lstripBlocks([]byte(src)))
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	return execute(w, tpl, in)
}

// RenderFile renders the template at path to w.
func (r *Renderer) RenderFile(w io.Writer, path string, in Input) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	tpl, err := r.set.FromBytes(lstripBlocks(src))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", path, err)
	}
	return execute(w, tpl, in)
}

func execute(w io.Writer, tpl *pongo2.Template, in Input) error {
	ctx, err := Context(in)
	if err != nil {
		return err
	}
	if err := tpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// toPlain converts v to nested maps and slices through its JSON form.
// Integral numbers become int so templates print "3" rather than "3.0".
func toPlain(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("template context: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("template context: %w", err)
	}
	return fixNumbers(out), nil
}

func fixNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = fixNumbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = fixNumbers(e)
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}

package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/plotline/pkg/errors"
)

// UnmarshalTOML decodes a point from either the compact array form
// [x, y] or the table form {x = ..., y = ...}.
func (p *Point) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case []any:
		if len(t) != 2 {
			return fmt.Errorf("point array must have 2 entries, got %d", len(t))
		}
		x, err := tomlNumber(t[0])
		if err != nil {
			return fmt.Errorf("point x: %w", err)
		}
		y, err := tomlNumber(t[1])
		if err != nil {
			return fmt.Errorf("point y: %w", err)
		}
		p.X, p.Y = x, y
		return nil
	case map[string]any:
		x, err := tomlNumber(t["x"])
		if err != nil {
			return fmt.Errorf("point x: %w", err)
		}
		y, err := tomlNumber(t["y"])
		if err != nil {
			return fmt.Errorf("point y: %w", err)
		}
		p.X, p.Y = x, y
		return nil
	default:
		return fmt.Errorf("point must be an array or table, got %T", v)
	}
}

func tomlNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// DecodeTOML reads a TOML chart document.
func DecodeTOML(r io.Reader) (*Definition, error) {
	var d Definition
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChart, err, "decode TOML chart")
	}
	return &d, nil
}

// DecodeJSON reads a JSON chart document.
func DecodeJSON(r io.Reader) (*Definition, error) {
	var d Definition
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChart, err, "decode JSON chart")
	}
	return &d, nil
}

// ReadFile reads a chart definition from path, selecting the decoder by
// file extension (.toml or .json).
func ReadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return DecodeTOML(f)
	case ".json":
		return DecodeJSON(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported chart file extension %q (want .toml or .json)", filepath.Ext(path))
	}
}

// ApplyDefaults fills unset scale lengths. Width and height are the
// plot dimensions in pixels; series without a kind become lines.
func (d *Definition) ApplyDefaults(width, height float64) {
	if d.X.Length == 0 {
		d.X.Length = width
	}
	if d.Y.Length == 0 {
		d.Y.Length = height
	}
	for i := range d.Series {
		if d.Series[i].Kind == "" {
			d.Series[i].Kind = KindLine
		}
	}
	for i := range d.Stacks {
		for j := range d.Stacks[i].Layers {
			if d.Stacks[i].Layers[j].Kind == "" {
				d.Stacks[i].Layers[j].Kind = KindArea
			}
		}
	}
}

// Validate checks the definition for structural problems. It returns a
// structured error for the first violation found.
//
// Scale lengths must be strictly positive here: the geometry core
// clamps rather than rejects, so this boundary is where zero or
// negative lengths are refused.
func (d *Definition) Validate() error {
	if d.X.Length <= 0 {
		return errors.New(errors.ErrCodeInvalidScale, "x scale length must be positive, got %v", d.X.Length)
	}
	if d.Y.Length <= 0 {
		return errors.New(errors.ErrCodeInvalidScale, "y scale length must be positive, got %v", d.Y.Length)
	}

	for i, s := range d.Series {
		if s.Kind != "" && !ValidKinds[s.Kind] {
			return errors.New(errors.ErrCodeInvalidChart, "series %d: unknown kind %q", i, s.Kind)
		}
	}
	for i, st := range d.Stacks {
		if len(st.Layers) == 0 {
			return errors.New(errors.ErrCodeInvalidChart, "stack %d: must have at least one layer", i)
		}
		for j, l := range st.Layers {
			if l.Kind != "" && !ValidKinds[l.Kind] {
				return errors.New(errors.ErrCodeInvalidChart, "stack %d, layer %d: unknown kind %q", i, j, l.Kind)
			}
		}
	}
	for i, a := range d.Axes {
		if a.Orientation != OrientationX && a.Orientation != OrientationY {
			return errors.New(errors.ErrCodeInvalidOrientation, "axis %d: orientation must be %q or %q", i, OrientationX, OrientationY)
		}
		if a.Ticks.Delta < 0 {
			return errors.New(errors.ErrCodeInvalidTicks, "axis %d: tick delta must not be negative", i)
		}
	}
	for i, g := range d.Grids {
		if g.Orientation != OrientationX && g.Orientation != OrientationY {
			return errors.New(errors.ErrCodeInvalidOrientation, "grid %d: orientation must be %q or %q", i, OrientationX, OrientationY)
		}
	}
	return nil
}

// Marshal serializes the definition to pretty-printed JSON.
func Marshal(d *Definition) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

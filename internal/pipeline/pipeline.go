// Package pipeline describes an image processing run (resize, filters and
// parallelism) and loads that description from TOML.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"slices"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/filter"
)

// ErrInvalidConfig is returned when a pipeline description is inconsistent.
var ErrInvalidConfig = errors.New("pipeline: invalid config")

// Config is a pipeline description.
//
// Example file:
//
//	workers = 4
//
//	[resize]
//	width = 128
//	height = 96
//	method = "lanczos"
//
//	[[filter]]
//	name = "grayscale"
//
//	[[filter]]
//	name = "contrast"
//	amount = 1.2
type Config struct {
	// Workers is the number of bands for parallel traversal; 0 picks a
	// default.
	Workers int `toml:"workers"`

	// Threshold is the pixel count below which traversal is serial; 0 keeps
	// bitmap.DefaultParallelThreshold.
	Threshold int `toml:"threshold"`

	// Resize, when set, resamples the input before filtering.
	Resize *Resize `toml:"resize"`

	// Filters are applied in order.
	Filters []Filter `toml:"filter"`
}

// Resize is a target pixel size and resampling method.
type Resize struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Method string `toml:"method"`
}

// Filter names a filter from package filter and its amount.
type Filter struct {
	Name   string  `toml:"name"`
	Amount float64 `toml:"amount"`
}

var resampleFilters = map[string]transform.ResampleFilter{
	"nearest":           transform.NearestNeighbor,
	"box":               transform.Box,
	"linear":            transform.Linear,
	"gaussian":          transform.Gaussian,
	"mitchellnetravali": transform.MitchellNetravali,
	"catmullrom":        transform.CatmullRom,
	"lanczos":           transform.Lanczos,
}

// Methods lists the accepted resize methods.
func Methods() []string {
	m := make([]string, 0, len(resampleFilters))
	for k := range resampleFilters {
		m = append(m, k)
	}
	slices.Sort(m)
	return m
}

// Load reads and validates a TOML pipeline file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML pipeline. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks sizes, counts and names.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: threshold %d", ErrInvalidConfig, c.Threshold)
	}
	if r := c.Resize; r != nil {
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("%w: resize %dx%d", ErrInvalidConfig, r.Width, r.Height)
		}
		if _, err := r.filter(); err != nil {
			return err
		}
	}
	if _, err := c.Chain(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (r *Resize) filter() (transform.ResampleFilter, error) {
	m := strings.ToLower(r.Method)
	if m == "" {
		m = "linear"
	}
	f, ok := resampleFilters[m]
	if !ok {
		return transform.ResampleFilter{}, fmt.Errorf("%w: resize method %q", ErrInvalidConfig, r.Method)
	}
	return f, nil
}

// MapOptions returns the traversal options for the configured parallelism.
func (c *Config) MapOptions() []bitmap.MapOption {
	var opts []bitmap.MapOption
	if c.Workers > 0 {
		opts = append(opts, bitmap.WithWorkers(c.Workers))
	}
	if c.Threshold > 0 {
		opts = append(opts, bitmap.WithParallelThreshold(c.Threshold))
	}
	return opts
}

// Chain builds the configured filters.
func (c *Config) Chain() (filter.Chain, error) {
	chain := make(filter.Chain, 0, len(c.Filters))
	for _, f := range c.Filters {
		ff, err := filter.ByName(f.Name, f.Amount)
		if err != nil {
			return nil, err
		}
		chain = append(chain, ff)
	}
	return chain, nil
}

// Run resizes img if configured, decodes it, applies the filters and encodes
// the result. The device scale is preserved.
func (c *Config) Run(img *bitmap.Image) (*bitmap.Image, error) {
	if c.Resize != nil {
		rf, err := c.Resize.filter()
		if err != nil {
			return nil, err
		}
		var src image.Image = transform.Resize(img.Std(), c.Resize.Width, c.Resize.Height, rf)
		if img, err = bitmap.NewImage(src, img.Scale()); err != nil {
			return nil, fmt.Errorf("pipeline: resize: %w", err)
		}
	}

	chain, err := c.Chain()
	if err != nil {
		return nil, err
	}

	b, err := bitmap.Decode(img)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	out, err := chain.Apply(b, c.MapOptions()...).Encode()
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	bitmap.Logger().Info("pipeline finished",
		"width", b.Width(), "height", b.Height(), "filters", len(chain))
	return out, nil
}

// Package recipe describes nested layer stacks in YAML and applies them to
// an engine.
//
// Example recipe:
//
//	layers:
//	  - mode: multiply
//	    opacity: 60
//	    fill: "#ff8800"
//	  - copy_parent: true
//	    mode: screen
//	    effects:
//	      - name: sepia
//	      - name: brightness
//	        amount: 1.2
//	    layers:
//	      - overlay: texture.png
//	        mode: softLight
//	        opacity: 40
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gglayer"
	"github.com/gogpu/gglayer/internal/filter"
)

// ErrInvalidRecipe is wrapped by every validation error.
var ErrInvalidRecipe = errors.New("recipe: invalid")

// Recipe is an ordered list of top-level layers.
type Recipe struct {
	Layers []Step `yaml:"layers"`

	// dir resolves relative overlay paths; empty means the working directory.
	dir string
}

// Step configures one layer. At most one of CopyParent, Fill and Overlay
// initializes the layer buffer; with none of them it stays transparent.
type Step struct {
	// Mode is a blend mode name. Empty keeps the layer default.
	Mode string `yaml:"mode,omitempty"`

	// Opacity is a percentage passed to Layer.SetOpacity.
	Opacity *float64 `yaml:"opacity,omitempty"`

	CopyParent bool   `yaml:"copy_parent,omitempty"`
	Fill       string `yaml:"fill,omitempty"`
	Overlay    string `yaml:"overlay,omitempty"`

	// Effects run in order on the layer after it is initialized.
	Effects []Effect `yaml:"effects,omitempty"`

	// Layers are nested inside this one and merged into it first.
	Layers []Step `yaml:"layers,omitempty"`
}

// Effect names a color effect from the filter package.
type Effect struct {
	Name string `yaml:"name"`

	// Amount is the effect's factor or angle; it defaults to 1.
	Amount *float64 `yaml:"amount,omitempty"`
}

func (fx Effect) matrix() (filter.ColorMatrix, error) {
	amount := 1.0
	if fx.Amount != nil {
		amount = *fx.Amount
	}
	return filter.ByName(fx.Name, amount)
}

// ImageLoader opens the image at path for Step.Overlay.
type ImageLoader func(path string) (image.Image, error)

// Parse decodes and validates a recipe. Unknown keys are rejected.
// Blend mode names are not checked here: they are resolved by the engine
// when each layer is composited.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("recipe: decode: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads and parses the recipe at path. Relative overlay paths in the
// recipe are resolved against the recipe's directory.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: read file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.dir = filepath.Dir(path)
	return r, nil
}

// Validate checks the structure of every step.
func (r *Recipe) Validate() error {
	return validateSteps("layers", r.Layers)
}

func validateSteps(prefix string, steps []Step) error {
	for i, s := range steps {
		at := fmt.Sprintf("%s[%d]", prefix, i)

		inits := 0
		if s.CopyParent {
			inits++
		}
		if s.Fill != "" {
			inits++
			if _, err := gglayer.ParseHex(s.Fill); err != nil {
				return fmt.Errorf("%w: %s: fill: %w", ErrInvalidRecipe, at, err)
			}
		}
		if s.Overlay != "" {
			inits++
		}
		if inits > 1 {
			return fmt.Errorf("%w: %s: copy_parent, fill and overlay are mutually exclusive", ErrInvalidRecipe, at)
		}
		for j, fx := range s.Effects {
			if _, err := fx.matrix(); err != nil {
				return fmt.Errorf("%w: %s.effects[%d]: %w", ErrInvalidRecipe, at, j, err)
			}
		}

		if err := validateSteps(at+".layers", s.Layers); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs every layer of the recipe against e in order. load may be nil
// if the recipe has no overlays.
func (r *Recipe) Apply(e *gglayer.Engine, load ImageLoader) error {
	a := applier{dir: r.dir, load: load}
	for i := range r.Layers {
		if err := e.NewLayer(a.layerFunc(&r.Layers[i])); err != nil {
			return fmt.Errorf("recipe: layers[%d]: %w", i, err)
		}
	}
	return nil
}

type applier struct {
	dir  string
	load ImageLoader
}

func (a applier) layerFunc(s *Step) func(*gglayer.Layer) error {
	return func(l *gglayer.Layer) error {
		if s.Mode != "" {
			l.SetBlendingMode(s.Mode)
		}
		if s.Opacity != nil {
			l.SetOpacity(*s.Opacity)
		}

		switch {
		case s.CopyParent:
			l.CopyParent()
		case s.Fill != "":
			c, err := gglayer.ParseHex(s.Fill)
			if err != nil {
				return err
			}
			l.FillColor(c)
		case s.Overlay != "":
			if a.load == nil {
				return fmt.Errorf("overlay %q: no image loader", s.Overlay)
			}
			path := s.Overlay
			if a.dir != "" && !filepath.IsAbs(path) {
				path = filepath.Join(a.dir, path)
			}
			img, err := a.load(path)
			if err != nil {
				return fmt.Errorf("overlay %q: %w", s.Overlay, err)
			}
			l.OverlayImage(img)
		}

		for _, fx := range s.Effects {
			m, err := fx.matrix()
			if err != nil {
				return err
			}
			if err := l.Process(fx.Name, m.PixelFunc()); err != nil {
				return err
			}
		}

		for i := range s.Layers {
			if err := l.NewLayer(a.layerFunc(&s.Layers[i])); err != nil {
				return fmt.Errorf("layers[%d]: %w", i, err)
			}
		}
		return nil
	}
}

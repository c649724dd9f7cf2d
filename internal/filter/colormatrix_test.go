package filter

import (
	"errors"
	"testing"

	"github.com/gogpu/gglayer"
)

func TestColorMatrixApply(t *testing.T) {
	in := gglayer.RGBA(200, 100, 50, 128)

	tests := []struct {
		name string
		m    ColorMatrix
		want gglayer.Color
	}{
		{"identity", Identity(), in},
		{"brightness 0.5", Brightness(0.5), gglayer.RGBA(100, 50, 25, 128)},
		{"brightness 2 clamps", Brightness(2), gglayer.RGBA(255, 200, 100, 128)},
		{"contrast 0", Contrast(0), gglayer.RGBA(128, 128, 128, 128)},
		{"invert", Invert(), gglayer.RGBA(55, 155, 205, 128)},
		{"saturation 1", Saturation(1), in},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Apply(in); got != tt.want {
				t.Errorf("Apply(%v) = %v, want %v", in, got, tt.want)
			}
		})
	}
}

func TestGrayscaleEqualChannels(t *testing.T) {
	m := Grayscale()
	for _, c := range []gglayer.Color{
		gglayer.RGB(255, 0, 0),
		gglayer.RGB(10, 200, 90),
		gglayer.RGB(255, 255, 255),
	} {
		got := m.Apply(c)
		if got.R != got.G || got.G != got.B {
			t.Errorf("Grayscale(%v) = %v, want equal channels", c, got)
		}
	}
}

func TestHueRotateFullTurn(t *testing.T) {
	c := gglayer.RGB(180, 60, 20)
	m := HueRotate(360)
	got := m.Apply(c)
	if diff(got.R, c.R) > 1 || diff(got.G, c.G) > 1 || diff(got.B, c.B) > 1 {
		t.Errorf("HueRotate(360)(%v) = %v, want ~unchanged", c, got)
	}
}

func TestColorMatrixThen(t *testing.T) {
	c := gglayer.RGB(200, 100, 50)

	combined := Brightness(0.5).Then(Invert())
	b := Brightness(0.5)
	inv := Invert()
	want := inv.Apply(b.Apply(c))

	if got := combined.Apply(c); got != want {
		t.Errorf("Brightness.Then(Invert) = %v, want %v", got, want)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"identity", "brightness", "contrast", "saturation", "grayscale", "sepia", "invert", "hueRotate"} {
		if _, err := ByName(name, 1); err != nil {
			t.Errorf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("blur", 1); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("ByName(blur) error = %v, want %v", err, ErrUnknownEffect)
	}
}

func TestPixelFuncOnLayer(t *testing.T) {
	e, err := gglayer.NewEngine(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	e.FillColor(gglayer.RGB(0, 0, 0))

	err = e.NewLayer(func(l *gglayer.Layer) error {
		l.FillColor(gglayer.RGB(10, 20, 30))
		return l.Process("invert", Invert().PixelFunc())
	})
	if err != nil {
		t.Fatalf("NewLayer: %v", err)
	}

	data := e.PixelData()
	if got := (gglayer.Color{R: data[0], G: data[1], B: data[2], A: data[3]}); got != gglayer.RGB(245, 235, 225) {
		t.Errorf("pixel = %v, want (245,235,225,255)", got)
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

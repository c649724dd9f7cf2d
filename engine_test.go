package gglayer

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newTestEngine creates an engine that is closed when the test ends.
func newTestEngine(t *testing.T, width, height int, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(width, height, opts...)
	if err != nil {
		t.Fatalf("NewEngine(%d, %d): %v", width, height, err)
	}
	t.Cleanup(e.Close)
	return e
}

// fillBuffer writes c into every pixel of buf.
func fillBuffer(buf []byte, c Color) {
	for i := 0; i < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = c.R, c.G, c.B, c.A
	}
}

// pixelAt returns the pixel at index i (in pixels) of buf.
func pixelAt(buf []byte, i int) Color {
	return Color{R: buf[4*i], G: buf[4*i+1], B: buf[4*i+2], A: buf[4*i+3]}
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine(t, 3, 2)

	if got, want := e.Dimensions(), (Dimensions{Width: 3, Height: 2}); got != want {
		t.Errorf("Dimensions() = %+v, want %+v", got, want)
	}
	if got := len(e.PixelData()); got != 3*2*4 {
		t.Errorf("len(PixelData()) = %d, want 24", got)
	}
	for i, v := range e.PixelData() {
		if v != 0 {
			t.Fatalf("base buffer byte %d = %d, want 0", i, v)
		}
	}
	if e.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", e.Depth())
	}
	if got := len(e.PixelStack()); got != 1 {
		t.Errorf("len(PixelStack()) = %d, want 1", got)
	}
}

func TestNewEngineInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, 5},
		{"overflow", math.MaxInt / 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.width, tt.height)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("NewEngine(%d, %d) error = %v, want %v", tt.width, tt.height, err, ErrInvalidDimensions)
			}
		})
	}
}

func TestNewEngineFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	src.SetNRGBA(10, 10, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	src.SetNRGBA(11, 10, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	e, err := NewEngineFromImage(src)
	if err != nil {
		t.Fatalf("NewEngineFromImage: %v", err)
	}
	defer e.Close()

	want := []byte{1, 2, 3, 255, 200, 100, 50, 255}
	if diff := cmp.Diff(want, e.PixelData()); diff != "" {
		t.Errorf("base buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineImageSharesBase(t *testing.T) {
	e := newTestEngine(t, 2, 2)
	img := e.Image()

	e.FillColor(RGB(9, 8, 7))

	if got, want := img.NRGBAAt(1, 1), (color.NRGBA{R: 9, G: 8, B: 7, A: 255}); got != want {
		t.Errorf("Image().NRGBAAt(1, 1) = %v, want %v", got, want)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("Image().Bounds() = %v, want (0,0)-(2,2)", img.Bounds())
	}
}

func TestEngineFillColor(t *testing.T) {
	e := newTestEngine(t, 2, 1)
	e.FillColor(RGBA(10, 20, 30, 40))

	want := []byte{10, 20, 30, 40, 10, 20, 30, 40}
	if diff := cmp.Diff(want, e.PixelData()); diff != "" {
		t.Errorf("PixelData mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineProcess(t *testing.T) {
	for _, workers := range []int{1, 4} {
		e := newTestEngine(t, 3, 5, WithWorkers(workers))
		e.FillColor(RGB(100, 100, 100))

		err := e.Process("gradient", func(x, y int, p Color) Color {
			p.R = uint8(x)
			p.G = uint8(y)
			p.B = 255 - p.B
			return p
		})
		if err != nil {
			t.Fatalf("workers=%d: Process: %v", workers, err)
		}

		buf := e.PixelData()
		for y := range 5 {
			for x := range 3 {
				got := pixelAt(buf, y*3+x)
				want := Color{R: uint8(x), G: uint8(y), B: 155, A: 255}
				if got != want {
					t.Errorf("workers=%d: pixel (%d,%d) = %v, want %v", workers, x, y, got, want)
				}
			}
		}
	}
}

func TestEngineProcessNil(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	if err := e.Process("nil", nil); !errors.Is(err, ErrNilPixelFunc) {
		t.Errorf("Process(nil) error = %v, want %v", err, ErrNilPixelFunc)
	}
}

func TestEngineCloseThenUse(t *testing.T) {
	e := newTestEngine(t, 4, 4, WithWorkers(3))
	e.Close()
	e.Close()

	e.FillColor(RGB(50, 50, 50))
	err := e.NewLayer(func(l *Layer) error {
		l.FillColor(RGB(150, 150, 150))
		l.SetOpacity(50)
		return nil
	})
	if err != nil {
		t.Fatalf("NewLayer after Close: %v", err)
	}
	if got, want := pixelAt(e.PixelData(), 15), RGB(100, 100, 100); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

// Command gglayer composites the layers described by a YAML recipe onto an
// image and writes the result as PNG.
//
// Usage:
//
//	gglayer --recipe layers.yaml --in photo.jpg --out result.png
//	gglayer --recipe layers.yaml --size 640x480 --background '#202020'
//	gglayer --modes
package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/gglayer"
	"github.com/gogpu/gglayer/blend"
	"github.com/gogpu/gglayer/internal/recipe"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "gglayer: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	recipe     string
	in         string
	out        string
	size       string
	background string
	workers    int
	verbose    bool
	modes      bool
}

func run(args []string) error {
	var cfg config

	flagSet := pflag.NewFlagSet("gglayer", pflag.ContinueOnError)
	flagSet.StringVarP(&cfg.recipe, "recipe", "r", "", "YAML layer recipe")
	flagSet.StringVarP(&cfg.in, "in", "i", "", "input image (png, jpeg, bmp, tiff, webp)")
	flagSet.StringVarP(&cfg.out, "out", "o", "out.png", "output PNG file")
	flagSet.StringVar(&cfg.size, "size", "512x512", "canvas size WxH when no input image is given")
	flagSet.StringVar(&cfg.background, "background", "#000000", "canvas color when no input image is given")
	flagSet.IntVarP(&cfg.workers, "workers", "w", 1, "goroutines used for compositing")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "log layer activity to stderr")
	flagSet.BoolVar(&cfg.modes, "modes", false, "list built-in blend modes and exit")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if cfg.modes {
		for _, name := range blend.Default().Names() {
			fmt.Println(name)
		}
		return nil
	}
	if cfg.recipe == "" {
		return errors.New("--recipe is required")
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	gglayer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	r, err := recipe.Load(cfg.recipe)
	if err != nil {
		return err
	}

	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := r.Apply(e, loadImage); err != nil {
		return err
	}

	return savePNG(cfg.out, e.Image())
}

// newEngine creates the engine from the input image, or a blank canvas.
func newEngine(cfg config) (*gglayer.Engine, error) {
	opts := []gglayer.Option{gglayer.WithWorkers(cfg.workers)}

	if cfg.in != "" {
		img, err := loadImage(cfg.in)
		if err != nil {
			return nil, err
		}
		return gglayer.NewEngineFromImage(img, opts...)
	}

	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(cfg.size), "%dx%d", &w, &h); err != nil {
		return nil, fmt.Errorf("--size %q: want WxH", cfg.size)
	}
	bg, err := gglayer.ParseHex(cfg.background)
	if err != nil {
		return nil, fmt.Errorf("--background: %w", err)
	}

	e, err := gglayer.NewEngine(w, h, opts...)
	if err != nil {
		return nil, err
	}
	e.FillColor(bg)
	return e, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode PNG: %w", err)
	}
	return f.Close()
}

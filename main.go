package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-spectral-pathtracer/pkg/imageio"
	"github.com/df07/go-spectral-pathtracer/pkg/integrator"
	"github.com/df07/go-spectral-pathtracer/pkg/renderer"
	"github.com/df07/go-spectral-pathtracer/pkg/scene"
)

// options holds everything read from the command line
type options struct {
	Scene     string
	ScenesDir string
	Output    string
	PNG       string
	Exposure  float64
	List      bool
	Help      bool
	Render    renderer.Config
}

func main() {
	opts, err := parseFlags(os.Args[1:], io.Discard)
	if errors.Is(err, flag.ErrHelp) {
		printHelp()
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if opts.Help {
		printHelp()
		return
	}

	if opts.List {
		if err := listScenes(os.Stdout, opts.ScenesDir); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Starting Spectral Path Tracer...")

	selectedScene, err := createScene(opts.Scene)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using %s scene (%d spheres)...\n", opts.Scene, selectedScene.Len())

	r, err := renderer.NewRenderer(selectedScene, opts.Render, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error creating renderer: %v\n", err)
		os.Exit(1)
	}

	img, stats := r.Render()
	fmt.Printf("Mean luminance %.4f (variance %.4g) over %d pixels\n", stats.MeanLuminance, stats.MeanVariance, stats.TotalPixels)

	if err := save(img, opts); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet registers every command line flag against opts, which must hold the
// defaults. It returns the raw visibility value for parseFlags to convert.
func newFlagSet(opts *options, usage io.Writer) (*flag.FlagSet, *string) {
	defaults := opts.Render

	fs := flag.NewFlagSet("spectral-pathtracer", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVar(&opts.Scene, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.StringVar(&opts.ScenesDir, "scenes-dir", "scenes", "Directory searched for .json scenes by -list")
	fs.BoolVar(&opts.List, "list", false, "List available scenes and exit")
	fs.StringVar(&opts.Output, "output", "image.hdr", "Radiance HDR output file")
	fs.StringVar(&opts.PNG, "png", "", "Optional tone-mapped PNG preview file")
	fs.Float64Var(&opts.Exposure, "exposure", 1.0, "Exposure multiplier for the PNG preview")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	fs.IntVar(&opts.Render.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&opts.Render.Height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&opts.Render.SamplesPerPixel, "spp", defaults.SamplesPerPixel, "Samples per pixel (per sub-pixel with -supersample)")
	fs.BoolVar(&opts.Render.Supersample, "supersample", defaults.Supersample, "Use 2x2 tent-filtered sub-pixels")
	fs.IntVar(&opts.Render.NumWorkers, "workers", defaults.NumWorkers, "Number of parallel workers (0 = auto)")

	fs.IntVar(&opts.Render.Integrator.RussianRouletteDepth, "rr-depth", defaults.Integrator.RussianRouletteDepth, "Bounces before Russian roulette may terminate a path")
	fs.BoolVar(&opts.Render.Integrator.IndirectLight, "indirect", defaults.Integrator.IndirectLight, "Trace indirect light (false = direct lighting only)")
	fs.IntVar(&opts.Render.Integrator.ShadowRays, "shadow-rays", defaults.Integrator.ShadowRays, "Light samples per diffuse hit")
	visibility := fs.String("visibility", defaults.Integrator.Visibility.String(), "Shadow ray test: 'distance' or 'light-id'")

	return fs, visibility
}

// parseFlags reads the command line into options. Usage output from the flag package
// goes to usage.
func parseFlags(args []string, usage io.Writer) (*options, error) {
	opts := &options{Render: renderer.DefaultConfig()}
	fs, visibility := newFlagSet(opts, usage)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	v, err := integrator.ParseVisibility(*visibility)
	if err != nil {
		return nil, err
	}
	opts.Render.Integrator.Visibility = v

	if opts.Exposure <= 0 {
		return nil, fmt.Errorf("exposure must be positive, got %v", opts.Exposure)
	}
	if err := opts.Render.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// createScene loads a built-in scene or a .json scene file
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given")
	}
	return scene.Load(name)
}

func listScenes(w io.Writer, dir string) error {
	scenes, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available scenes:")
	for _, s := range scenes {
		line := fmt.Sprintf("  %-16s %s", s.ID, s.DisplayName)
		if s.Description != "" {
			line += " - " + s.Description
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// save writes the HDR image and, if requested, the PNG preview
func save(img *renderer.Image, opts *options) error {
	for _, path := range []string{opts.Output, opts.PNG} {
		if path == "" {
			continue
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
	}

	start := time.Now()
	if err := imageio.SaveHDR(opts.Output, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s (%v)\n", opts.Output, time.Since(start))

	if opts.PNG != "" {
		if err := imageio.SavePNG(opts.PNG, img, opts.Exposure); err != nil {
			return err
		}
		fmt.Printf("Preview saved as %s\n", opts.PNG)
	}
	return nil
}

func printHelp() {
	fmt.Println("Spectral Path Tracer")
	fmt.Println("Usage: spectral-pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs, _ := newFlagSet(&options{Render: renderer.DefaultConfig()}, os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	if err := listScenes(os.Stdout, "scenes"); err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
	}
	fmt.Println()
	fmt.Println("Output is written as Radiance HDR (-output) with an optional PNG preview (-png)")
}

package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"volcast/internal/models"
	"volcast/pkg/config"
	"volcast/pkg/geom"
	"volcast/pkg/raycast"
	"volcast/pkg/render"
	"volcast/pkg/texture"
	"volcast/pkg/validation"
	"volcast/pkg/visualization"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "volcast.yaml", "Path to YAML configuration file")
	outputName := flag.String("output", "render.png", "Output image filename")
	depthName := flag.String("depth", "", "Optional depth image filename")
	volumePath := flag.String("volume", "", "Raw little-endian float32 volume file (volume-size^3 voxels); empty renders a synthetic sphere")
	volumeSize := flag.Int("volume-size", 64, "Edge length of the volume in voxels")
	sphereRadius := flag.Float64("radius", 0.35, "Radius of the synthetic sphere in texture units")
	extractSlices := flag.Bool("extract-slices", false, "Extract and save volume slices along all axes")
	slicesDir := flag.String("slices-dir", "volume_slices", "Directory to save extracted slices")
	verify := flag.Bool("verify", false, "Cross-check the multi-pass result against a single-pass render")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("VOLCAST - VOLUME RAY CASTING RENDERER")
	fmt.Println("================================")

	shape := models.Shape{Width: *volumeSize, Height: *volumeSize, Depth: *volumeSize}
	var volume *texture.Volume
	if *volumePath != "" {
		volume, err = loadRawVolume(*volumePath, shape)
		if err != nil {
			log.Fatalf("Failed to load volume: %v", err)
		}
		fmt.Printf("Loaded volume %s (%dx%dx%d voxels)\n",
			*volumePath, shape.Width, shape.Height, shape.Depth)
	} else {
		// Synthetic test volume: a uniform-density sphere centred in the
		// unit cube.
		volume, err = texture.NewSphereVolume(shape, float32(*sphereRadius), 1, 0)
		if err != nil {
			log.Fatalf("Failed to build volume: %v", err)
		}
	}

	sampler, err := buildSampler(cfg, volume)
	if err != nil {
		log.Fatalf("Failed to configure sampler: %v", err)
	}

	params := buildParams(cfg, sampler)

	renderer, err := render.NewRenderer(params)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	fmt.Printf("Rendering %dx%d fragments, %d steps in %d pass(es)...\n",
		params.Width, params.Height, params.TotalSteps, renderer.PassCount())

	startTime := time.Now()
	fb, err := renderer.Render()
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	renderTime := time.Since(startTime)

	stats := renderer.Stats()
	fmt.Printf("\nRender completed in %.3f seconds\n", renderTime.Seconds())
	fmt.Printf("Ray statistics:\n")
	fmt.Printf("===============\n")
	fmt.Printf("Fragments traced: %d\n", stats.Fragments)
	fmt.Printf("Fragments discarded: %d\n", stats.Discarded)
	fmt.Printf("Samples composited: %d\n", stats.Samples)
	fmt.Printf("Saturated rays: %d\n", stats.Saturated)
	fmt.Printf("Coverage: %.1f%%\n", validation.CoverageRatio(fb)*100)

	// Save the composed image
	img := visualization.FramebufferImage(fb, color.NRGBA{A: 255})
	if err := visualization.SaveImage(img, *outputName); err != nil {
		log.Fatalf("Failed to save image: %v", err)
	}
	fmt.Printf("\nOutput image saved to: %s\n", *outputName)

	if *depthName != "" {
		if err := visualization.SaveImage(visualization.DepthImage(fb), *depthName); err != nil {
			log.Fatalf("Failed to save depth image: %v", err)
		}
		fmt.Printf("Depth image saved to: %s\n", *depthName)
	}

	// Cross-check pass splitting against a single-pass render of the same
	// scene: the hand-off through the pass buffers must not change the
	// result beyond floating-point noise.
	if *verify {
		fmt.Println("\nVerifying multi-pass consistency...")
		single := *params
		single.StepsPerPass = 0
		singleRenderer, err := render.NewRenderer(&single)
		if err != nil {
			log.Fatalf("Failed to create verification renderer: %v", err)
		}
		sfb, err := singleRenderer.Render()
		if err != nil {
			log.Fatalf("Verification render failed: %v", err)
		}
		metrics, err := validation.Compare(fb, sfb)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
		fmt.Printf("Colour RMSE: %.9f\n", metrics.ColourRMSE)
		fmt.Printf("Depth RMSE: %.9f\n", metrics.DepthRMSE)
		fmt.Printf("Max component difference: %.9f\n", metrics.MaxAbsDiff)
		fmt.Printf("Correlation: %.6f\n", metrics.Correlation)
		fmt.Printf("Write-mask mismatches: %d\n", metrics.MaskMismatches)
	}

	// Extract and save volume slices if requested
	if *extractSlices {
		fmt.Println("\nExtracting volume slices along all axes...")
		for _, axis := range []string{"x", "y", "z"} {
			axisDir := filepath.Join(*slicesDir, axis)
			fmt.Printf("Saving %s-axis slices to: %s\n", axis, axisDir)
			if err := visualization.SaveSliceSequence(volume, axis, axisDir); err != nil {
				log.Printf("Warning: Failed to save %s-axis slices: %v", axis, err)
			}
		}
		fmt.Println("Slice extraction completed!")
	}

	if cfg.Output.Verbose {
		fmt.Println("\nRender settings:")
		fmt.Printf("- Blend factor: %.3f\n", cfg.Raycast.BlendFactor)
		fmt.Printf("- Dither: %v\n", cfg.Raycast.Dither)
		fmt.Printf("- Clip window: [%g, %g] invert=%v\n",
			cfg.Display.ClipLow, cfg.Display.ClipHigh, cfg.Display.InvertClip)
		fmt.Printf("- Active clip planes: %d\n", len(cfg.ClipPlanes))
	}
}

// buildSampler assembles the per-sample routine from the configuration.
func buildSampler(cfg *config.Config, volume *texture.Volume) (*raycast.Sampler, error) {
	pos, err := lutByName(cfg.Display.Colormap)
	if err != nil {
		return nil, err
	}

	sampler := &raycast.Sampler{
		Image:       volume,
		ImageIsClip: true,
		ValueXform:  texture.IdentityValueTransform(),
		LUTCoord:    texture.IdentityValueTransform(),
		PosLUT:      pos,
		ClipLow:     float32(cfg.Display.ClipLow),
		ClipHigh:    float32(cfg.Display.ClipHigh),
		InvertClip:  cfg.Display.InvertClip,
		TexZero:     float32(cfg.Display.TexZero),
	}

	if cfg.Display.NegColormap != "" {
		neg, err := lutByName(cfg.Display.NegColormap)
		if err != nil {
			return nil, err
		}
		sampler.NegLUT = neg
		sampler.UseNegLUT = true
	}

	return sampler, nil
}

// buildParams maps the configuration onto renderer parameters, looking
// straight down the z axis of the texture cube.
func buildParams(cfg *config.Config, sampler *raycast.Sampler) *render.Params {
	planes := make([]geom.Plane, 0, len(cfg.ClipPlanes))
	for _, p := range cfg.ClipPlanes {
		planes = append(planes, geom.Plane{
			A: float32(p.A), B: float32(p.B), C: float32(p.C), D: float32(p.D),
		})
	}

	return &render.Params{
		Width:        cfg.Output.Width,
		Height:       cfg.Output.Height,
		Sampler:      sampler,
		ScreenToTex:  geom.Identity(),
		TotalSteps:   cfg.Raycast.TotalSteps,
		StepsPerPass: cfg.Raycast.StepsPerPass,
		BlendFactor:  float32(cfg.Raycast.BlendFactor),
		Planes:       planes,
		Dither:       cfg.Raycast.Dither,
		ClobberAlpha: cfg.Display.ClobberAlpha,
		ClobberValue: float32(cfg.Display.ClobberValue),
		Workers:      cfg.Raycast.Workers,
	}
}

// loadRawVolume reads a raw little-endian float32 voxel file laid out in the
// module's flat z-major order.
func loadRawVolume(path string, shape models.Shape) (*texture.Volume, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read volume file: %w", err)
	}
	want := shape.Count() * 4
	if len(raw) != want {
		return nil, fmt.Errorf("volume file holds %d bytes, want %d for %dx%dx%d float32 voxels",
			len(raw), want, shape.Width, shape.Height, shape.Depth)
	}
	data := make([]float32, shape.Count())
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return texture.NewVolume(data, shape)
}

// lutByName resolves a colour table name from the configuration.
func lutByName(name string) (*texture.LUT, error) {
	const entries = 256
	switch name {
	case "grayscale", "gray", "":
		return texture.Grayscale(entries)
	case "hot":
		return texture.Hot(entries)
	case "cool":
		return texture.Cool(entries)
	}
	return nil, fmt.Errorf("unknown colour map %q (want grayscale, hot or cool)", name)
}

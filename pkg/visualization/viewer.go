// Package visualization converts rendered framebuffers and volume slices
// into standard images for inspection on disk.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"volcast/pkg/render"
	"volcast/pkg/texture"
)

// FramebufferImage composes a framebuffer over a uniform background colour
// and returns it as an image. The framebuffer holds premultiplied colour,
// so compositing over the background is a single multiply-add per channel;
// discarded fragments show the background untouched.
func FramebufferImage(fb *render.Framebuffer, background color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))

	bgR := float32(background.R) / 255
	bgG := float32(background.G) / 255
	bgB := float32(background.B) / 255

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			res, ok := fb.At(x, y)
			if !ok {
				img.SetNRGBA(x, y, background)
				continue
			}
			a := clamp01(res.Colour.W)
			r := clamp01(res.Colour.X) + (1-a)*bgR
			g := clamp01(res.Colour.Y) + (1-a)*bgG
			b := clamp01(res.Colour.Z) + (1-a)*bgB
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(clamp01(r) * 255),
				G: uint8(clamp01(g) * 255),
				B: uint8(clamp01(b) * 255),
				A: 255,
			})
		}
	}
	return img
}

// DepthImage renders the framebuffer's depth plane as a grayscale image,
// normalized across the written fragments. Discarded fragments come out
// black.
func DepthImage(fb *render.Framebuffer) image.Image {
	img := image.NewGray16(image.Rect(0, 0, fb.Width, fb.Height))

	minD, maxD := float32(0), float32(0)
	first := true
	for i, w := range fb.Written {
		if !w {
			continue
		}
		d := fb.Depth[i]
		if first || d < minD {
			minD = d
		}
		if first || d > maxD {
			maxD = d
		}
		first = false
	}
	span := maxD - minD
	if span == 0 {
		span = 1
	}

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			i := y*fb.Width + x
			if !fb.Written[i] {
				continue
			}
			v := (fb.Depth[i] - minD) / span
			img.SetGray16(x, y, color.Gray16{Y: uint16(clamp01(v) * 65535)})
		}
	}
	return img
}

// SaveImage writes an image to path, choosing the encoder from the file
// extension (.png or .jpg/.jpeg).
func SaveImage(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		if err := png.Encode(file, img); err != nil {
			return fmt.Errorf("failed to encode image: %w", err)
		}
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(file, img, &jpeg.Options{Quality: 90}); err != nil {
			return fmt.Errorf("failed to encode image: %w", err)
		}
	default:
		return fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
	return nil
}

// ExtractSlice extracts a 2D slice from a volume along the specified axis
// as a grayscale image, for inspecting the data being rendered.
func ExtractSlice(vol *texture.Volume, axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}
	shape := vol.Shape()

	switch axis {
	case "x", "X":
		if position >= shape.Width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, shape.Width)
		}
		img := image.NewGray16(image.Rect(0, 0, shape.Depth, shape.Height))
		for y := 0; y < shape.Height; y++ {
			for z := 0; z < shape.Depth; z++ {
				img.SetGray16(z, y, gray16(vol.At(position, y, z)))
			}
		}
		return img, nil

	case "y", "Y":
		if position >= shape.Height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, shape.Height)
		}
		img := image.NewGray16(image.Rect(0, 0, shape.Width, shape.Depth))
		for z := 0; z < shape.Depth; z++ {
			for x := 0; x < shape.Width; x++ {
				img.SetGray16(x, z, gray16(vol.At(x, position, z)))
			}
		}
		return img, nil

	case "z", "Z":
		if position >= shape.Depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, shape.Depth)
		}
		img := image.NewGray16(image.Rect(0, 0, shape.Width, shape.Height))
		for y := 0; y < shape.Height; y++ {
			for x := 0; x < shape.Width; x++ {
				img.SetGray16(x, y, gray16(vol.At(x, y, position)))
			}
		}
		return img, nil
	}

	return nil, fmt.Errorf("unknown axis %q, want x, y or z", axis)
}

// SaveSliceSequence extracts and saves every slice along an axis into a
// directory as numbered JPEG files.
func SaveSliceSequence(vol *texture.Volume, axis, dir string) error {
	shape := vol.Shape()
	var count int
	switch axis {
	case "x", "X":
		count = shape.Width
	case "y", "Y":
		count = shape.Height
	case "z", "Z":
		count = shape.Depth
	default:
		return fmt.Errorf("unknown axis %q, want x, y or z", axis)
	}

	for i := 0; i < count; i++ {
		img, err := ExtractSlice(vol, axis, i)
		if err != nil {
			return fmt.Errorf("failed to extract slice %d: %w", i, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%03d.jpg", i))
		if err := SaveImage(img, path); err != nil {
			return fmt.Errorf("failed to save slice %d: %w", i, err)
		}
	}
	return nil
}

func gray16(v float32) color.Gray16 {
	return color.Gray16{Y: uint16(clamp01(v) * 65535)}
}

func clamp01(v float32) float32 {
	if v < 0 || v != v { // NaN renders as black
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package gifgen

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"
	"sort"

	"github.com/nfnt/resize"
)

// Options configures GIF generation
type Options struct {
	FPS      int
	MaxWidth uint
}

// Generate writes frames to outputPath as a looping GIF and returns the file size.
// The canvas takes the first frame's aspect ratio; later frames with a
// different viewport are scaled to fit and centered.
func Generate(frames []image.Image, outputPath string, opts Options) (int64, error) {
	if len(frames) == 0 {
		return 0, fmt.Errorf("no frames to encode")
	}
	if opts.FPS <= 0 {
		return 0, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}

	g := Encode(frames, opts)

	f, err := os.Create(outputPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := gif.EncodeAll(f, g); err != nil {
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Encode builds the paletted animation without writing it
func Encode(frames []image.Image, opts Options) *gif.GIF {
	// Delay is in 100ths of a second
	delay := 100 / opts.FPS
	if delay < 1 {
		delay = 1
	}

	canvas := canvasSize(frames[0].Bounds(), opts.MaxWidth)

	g := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: 0, // Infinite loop
	}

	palette := generatePalette(frames[0])

	for i, frame := range frames {
		fitted := fit(frame, canvas)

		paletted := image.NewPaletted(canvas, palette)
		draw.FloydSteinberg.Draw(paletted, canvas, fitted, image.Point{})

		g.Image[i] = paletted
		g.Delay[i] = delay
	}

	return g
}

func canvasSize(bounds image.Rectangle, maxWidth uint) image.Rectangle {
	if maxWidth == 0 {
		maxWidth = 800
	}
	width := uint(bounds.Dx())
	if width > maxWidth {
		width = maxWidth
	}

	aspectRatio := float64(bounds.Dy()) / float64(bounds.Dx())
	height := uint(float64(width) * aspectRatio)
	if height == 0 {
		height = 1
	}
	return image.Rect(0, 0, int(width), int(height))
}

// fit scales img into canvas keeping its aspect ratio, on a white background
func fit(img image.Image, canvas image.Rectangle) image.Image {
	b := img.Bounds()
	if b.Dx() == canvas.Dx() && b.Dy() == canvas.Dy() {
		return img
	}

	// Thumbnail returns img untouched when it already fits
	scaled := resize.Thumbnail(uint(canvas.Dx()), uint(canvas.Dy()), img, resize.Lanczos3)

	out := image.NewRGBA(canvas)
	draw.Draw(out, canvas, image.White, image.Point{}, draw.Src)

	sb := scaled.Bounds()
	offset := image.Pt((canvas.Dx()-sb.Dx())/2, (canvas.Dy()-sb.Dy())/2)
	draw.Draw(out, sb.Sub(sb.Min).Add(offset), scaled, sb.Min, draw.Over)
	return out
}

// generatePalette creates a 256-color palette from the most frequent colors of img
func generatePalette(img image.Image) color.Palette {
	bounds := img.Bounds()
	colorMap := make(map[color.RGBA]int)

	// Sample every 4th pixel for performance
	step := 4
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			c := color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: uint8(a >> 8),
			}
			colorMap[c]++
		}
	}

	type colorCount struct {
		c     color.RGBA
		count int
	}
	colors := make([]colorCount, 0, len(colorMap))
	for c, count := range colorMap {
		colors = append(colors, colorCount{c, count})
	}
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].count != colors[j].count {
			return colors[i].count > colors[j].count
		}
		return rgbaKey(colors[i].c) < rgbaKey(colors[j].c)
	})

	palette := make(color.Palette, 0, 256)
	palette = append(palette, color.RGBA{0, 0, 0, 0})
	// Letterboxing after a resize needs white even if the first frame has none
	palette = append(palette, color.RGBA{255, 255, 255, 255})

	for i := 0; i < len(colors) && len(palette) < 256; i++ {
		palette = append(palette, colors[i].c)
	}

	// Pad with grayscale
	for len(palette) < 256 {
		gray := uint8(len(palette))
		palette = append(palette, color.RGBA{gray, gray, gray, 255})
	}

	return palette
}

func rgbaKey(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

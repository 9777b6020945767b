package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	badgePadding = 6
	badgeMargin  = 12
)

var (
	badgeFill   = color.RGBA{0, 0, 0, 180}
	badgeBorder = color.RGBA{66, 133, 244, 255}
	badgeText   = color.RGBA{255, 255, 255, 255}
)

// Options configures the badge overlay
type Options struct {
	FadeFrames int // Frames spent easing a new badge in, 0 or 1 shows it at once
}

// ApplyLabels draws each frame's label as a badge in the bottom-right corner.
// Frames with an empty label are passed through. When the label changes, the
// frame is repeated so the new badge fades in over FadeFrames frames.
func ApplyLabels(frames []image.Image, labels []string, opts Options) ([]image.Image, error) {
	if len(labels) == 0 {
		return frames, nil
	}
	if len(labels) != len(frames) {
		return nil, fmt.Errorf("got %d labels for %d frames", len(labels), len(frames))
	}

	result := make([]image.Image, 0, len(frames))
	previous := ""
	for i, frame := range frames {
		label := labels[i]
		if label == "" {
			result = append(result, frame)
			previous = ""
			continue
		}

		if label != previous {
			for step := 1; step < opts.FadeFrames; step++ {
				alpha := easeInOut(float64(step) / float64(opts.FadeFrames))
				result = append(result, drawBadgeOnFrame(frame, label, alpha))
			}
		}
		result = append(result, drawBadgeOnFrame(frame, label, 1))
		previous = label
	}

	return result, nil
}

// easeInOut provides smooth acceleration and deceleration
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// drawBadgeOnFrame copies frame and draws label on the copy at the given opacity
func drawBadgeOnFrame(frame image.Image, label string, alpha float64) image.Image {
	bounds := frame.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, frame, bounds.Min, draw.Src)

	box := badgeBounds(bounds, label)

	fill := fade(badgeFill, alpha)
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			setPixelSafe(result, x, y, fill)
		}
	}

	border := fade(badgeBorder, alpha)
	right, bottom := box.Max.X-1, box.Max.Y-1
	drawLine(result, box.Min.X, box.Min.Y, right, box.Min.Y, border)
	drawLine(result, right, box.Min.Y+1, right, bottom, border)
	drawLine(result, right-1, bottom, box.Min.X, bottom, border)
	drawLine(result, box.Min.X, bottom-1, box.Min.X, box.Min.Y+1, border)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  result,
		Src:  image.NewUniform(fade(badgeText, alpha)),
		Face: face,
		Dot:  fixed.P(box.Min.X+badgePadding, box.Min.Y+badgePadding+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(label)

	return result
}

// badgeBounds sizes the badge to the label and anchors it bottom-right,
// clamped to the frame when the frame is smaller than the badge
func badgeBounds(frame image.Rectangle, label string) image.Rectangle {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	w := font.MeasureString(face, label).Ceil() + 2*badgePadding
	h := (metrics.Ascent + metrics.Descent).Ceil() + 2*badgePadding

	x := max(frame.Max.X-w-badgeMargin, frame.Min.X)
	y := max(frame.Max.Y-h-badgeMargin, frame.Min.Y)
	return image.Rect(x, y, x+w, y+h).Intersect(frame)
}

// fade scales a premultiplied color by alpha
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// drawLine draws a line between two points using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		setPixelSafe(img, x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// setPixelSafe composites c over the pixel at (x, y), ignoring points outside img
func setPixelSafe(img *image.RGBA, x, y int, c color.RGBA) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return
	}
	dst := img.RGBAAt(x, y)
	keep := 255 - uint32(c.A)
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(uint32(c.R) + uint32(dst.R)*keep/255),
		G: uint8(uint32(c.G) + uint32(dst.G)*keep/255),
		B: uint8(uint32(c.B) + uint32(dst.B)*keep/255),
		A: uint8(uint32(c.A) + uint32(dst.A)*keep/255),
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/james-nesbitt/coding-challenges/internal/detection"
	"github.com/james-nesbitt/coding-challenges/internal/geometry"
)

// MaxDimension caps the width and height of a plot in pixels.
const MaxDimension = 4096

// ErrNoPoints is returned when there is nothing to plot.
var ErrNoPoints = errors.New("no points to plot")

// Options controls plot layout.
type Options struct {
	// Cell is the number of pixels per coordinate unit. Default 32.
	Cell int

	// Margin is the blank border in pixels around the outermost points.
	// Default 24.
	Margin int

	// Labels draws each point's index next to it.
	Labels bool

	// Scale resizes the finished plot. 0 or 1 leaves it unchanged.
	Scale float64
}

func (o Options) withDefaults() Options {
	if o.Cell <= 0 {
		o.Cell = 32
	}
	if o.Margin <= 0 {
		o.Margin = 24
	}
	if o.Scale <= 0 {
		o.Scale = 1.0
	}
	return o
}

var (
	background = color.NRGBA{255, 255, 255, 255}
	pointColor = color.NRGBA{0, 0, 0, 255}
	labelColor = color.NRGBA{90, 90, 90, 255}
)

// Palette returns n visually distinct colours spread evenly around the hue
// wheel. The same n always yields the same colours.
func Palette(n int) []colorful.Color {
	colors := make([]colorful.Color, n)
	for i := range colors {
		colors[i] = colorful.Hsv(360*float64(i)/float64(max(n, 1)), 0.75, 0.85)
	}
	return colors
}

// canvas maps plane coordinates onto image pixels. Y grows upward in the
// plane and downward in the image.
type canvas struct {
	img        *image.NRGBA
	minX, maxY float64
	cell       float64
	margin     int
}

func (c *canvas) pixel(p geometry.Point) (int, int) {
	x := c.margin + int(math.Round((p.X-c.minX)*c.cell))
	y := c.margin + int(math.Round((c.maxY-p.Y)*c.cell))
	return x, y
}

// Plot draws the point set as dots and every match as a closed outline in
// its own colour.
//
// Returns ErrNoPoints for an empty point set, and an error if the plot would
// exceed MaxDimension in either direction.
func Plot(pts []geometry.Point, matches []detection.Match, opts Options) (*image.NRGBA, error) {
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}
	opts = opts.withDefaults()

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	// Sizes are checked as floats; huge spans overflow int
	border := float64(2*opts.Margin + 1)
	fw := math.Ceil((maxX-minX)*float64(opts.Cell)) + border
	fh := math.Ceil((maxY-minY)*float64(opts.Cell)) + border
	if !(fw <= MaxDimension && fh <= MaxDimension) {
		return nil, fmt.Errorf("plot size %.0fx%.0f exceeds %d pixels; reduce cell size", fw, fh, MaxDimension)
	}
	width, height := int(fw), int(fh)

	c := &canvas{
		img:    imaging.New(width, height, background),
		minX:   minX,
		maxY:   maxY,
		cell:   float64(opts.Cell),
		margin: opts.Margin,
	}

	palette := Palette(len(matches))
	for i, m := range matches {
		corners := m.Perimeter()
		for k := range corners {
			c.line(corners[k], corners[(k+1)%4], palette[i])
		}
	}

	for i, p := range pts {
		c.dot(p, 2, pointColor)
		if opts.Labels {
			c.label(p, strconv.Itoa(i))
		}
	}

	if opts.Scale != 1.0 {
		w := int(float64(width) * opts.Scale)
		h := int(float64(height) * opts.Scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %.3f collapses %dx%d plot", opts.Scale, width, height)
		}
		return imaging.Resize(c.img, w, h, imaging.Lanczos), nil
	}
	return c.img, nil
}

// line draws a one-pixel segment with a DDA walk along the longer axis.
func (c *canvas) line(p1, p2 geometry.Point, col color.Color) {
	x1, y1 := c.pixel(p1)
	x2, y2 := c.pixel(p2)

	dx, dy := x2-x1, y2-y1
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		c.img.Set(x1, y1, col)
		return
	}
	for s := 0; s <= steps; s++ {
		x := x1 + int(math.Round(float64(dx*s)/float64(steps)))
		y := y1 + int(math.Round(float64(dy*s)/float64(steps)))
		c.img.Set(x, y, col)
	}
}

// dot fills a square of side 2r+1 centred on p.
func (c *canvas) dot(p geometry.Point, r int, col color.Color) {
	cx, cy := c.pixel(p)
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			c.img.Set(x, y, col)
		}
	}
}

func (c *canvas) label(p geometry.Point, text string) {
	x, y := c.pixel(p)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x+4, y-4),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PlotResult is a rendered plot encoded for transport.
type PlotResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Points      int    `json:"points"`
	Rectangles  int    `json:"rectangles"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 encodes img as a base64 PNG.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode plot: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// PlotBase64 renders a plot and wraps it in a PlotResult.
func PlotBase64(pts []geometry.Point, matches []detection.Match, opts Options) (*PlotResult, error) {
	img, err := Plot(pts, matches, opts)
	if err != nil {
		return nil, err
	}
	encoded, err := EncodePNGBase64(img)
	if err != nil {
		return nil, err
	}
	return &PlotResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Points:      len(pts),
		Rectangles:  len(matches),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// Save writes img to path as a PNG file.
func Save(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

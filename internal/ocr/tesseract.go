package ocr

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/james-nesbitt/coding-challenges/internal/geometry"
	"github.com/james-nesbitt/coding-challenges/internal/points"
)

// coordinateWhitelist restricts recognition to characters that can appear
// in a printed point list.
const coordinateWhitelist = "0123456789.,-+()#; "

// TextResult contains the raw text read from an image.
type TextResult struct {
	// Text is the recognized text with original line breaks.
	Text string `json:"text"`
}

// PointsResult contains the point set read from an image.
type PointsResult struct {
	// Points holds every pair that parsed, in reading order.
	Points []geometry.Point `json:"points"`

	// Count is len(Points).
	Count int `json:"count"`

	// Skipped lists the non-empty lines that did not parse as point pairs.
	Skipped []string `json:"skipped,omitempty"`

	// Text is the raw OCR output the points were parsed from.
	Text string `json:"text"`
}

// ExtractText runs Tesseract over the image file at imagePath.
//
// Recognition is limited to digits and the separators of the point format,
// which sharply reduces misreads on coordinate listings.
//
// Parameters:
//   - imagePath: path to a PNG, JPEG, TIFF or BMP file.
//   - language: Tesseract language code, "eng" if empty. The language data
//     must be installed.
func ExtractText(imagePath string, language string) (*TextResult, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if language == "" {
		language = "eng"
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetWhitelist(coordinateWhitelist); err != nil {
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	return &TextResult{Text: text}, nil
}

// ExtractPoints reads a printed point list from an image file.
func ExtractPoints(imagePath string, language string) (*PointsResult, error) {
	text, err := ExtractText(imagePath, language)
	if err != nil {
		return nil, err
	}
	return PointsFromText(text.Text), nil
}

// ExtractPointsFromImage writes img to a temporary PNG and reads a point list
// from it. Tesseract only accepts file paths or encoded bytes.
func ExtractPointsFromImage(img image.Image, language string) (*PointsResult, error) {
	tmpFile, err := os.CreateTemp("", "ocr-points-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := imaging.Encode(tmpFile, img, imaging.PNG); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	return ExtractPoints(tmpPath, language)
}

// ExtractPointsScaled resizes the image at imagePath by scale before
// reading a point list from it. Upscaling small print improves recognition.
// A scale of 0 or 1 reads the file as is.
func ExtractPointsScaled(imagePath string, language string, scale float64) (*PointsResult, error) {
	if scale == 0 || scale == 1 {
		return ExtractPoints(imagePath, language)
	}
	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %g", scale)
	}

	img, err := imaging.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("scale %g collapses %dx%d image", scale, b.Dx(), b.Dy())
	}
	return ExtractPointsFromImage(imaging.Resize(img, w, h, imaging.Lanczos), language)
}

// ocrConfusions maps glyphs Tesseract commonly returns for digits.
var ocrConfusions = strings.NewReplacer(
	"O", "0", "o", "0", "D", "0",
	"l", "1", "I", "1", "|", "1",
	"S", "5", "B", "8",
)

// PointsFromText parses OCR output line by line. Lines that do not parse are
// collected in Skipped instead of failing the whole read.
func PointsFromText(text string) *PointsResult {
	result := &PointsResult{
		Points: make([]geometry.Point, 0),
		Text:   text,
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(ocrConfusions.Replace(line))
		if line == "" {
			continue
		}
		pts, err := points.ParseString(line)
		if err != nil {
			result.Skipped = append(result.Skipped, line)
			continue
		}
		result.Points = append(result.Points, pts...)
	}

	result.Count = len(result.Points)
	return result
}

// Info describes the OCR backend.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Backend   string `json:"backend"`
}

// GetInfo reports the linked Tesseract version.
func GetInfo() Info {
	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	return Info{
		Available: version != "",
		Version:   version,
		Backend:   "gosseract",
	}
}

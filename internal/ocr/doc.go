// Package ocr reads printed point lists from images using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). It is meant
// for scans or screenshots of coordinate listings such as
//
//	(1, 1)
//	(1, 4)
//	3,1 ; 3,4
//
// and hands the recognized text to the points parser.
//
// # Prerequisites
//
// Tesseract and its development headers must be installed:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Recognition
//
// Recognition is restricted to digits and the point-format separators.
// Glyphs that Tesseract often returns in place of digits (O for 0, l for 1)
// are mapped back before parsing. Lines that still fail to parse are
// reported in PointsResult.Skipped rather than aborting the read.
package ocr

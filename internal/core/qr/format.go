package qr

import "strings"

// Format is the closed set of export formats
type Format string

// Supported formats
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Formats lists every format in a stable order
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF}

// ParseFormat is case insensitive and tolerates a leading dot
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	return f, f.Valid()
}

// Valid reports membership in Formats
func (f Format) Valid() bool {
	switch f {
	case FormatSVG, FormatPNG, FormatPDF:
		return true
	}
	return false
}

// NeedsRaster is false only for SVG
func (f Format) NeedsRaster() bool { return f != FormatSVG }

// Extension returns the file extension without the dot
func (f Format) Extension() string { return string(f) }

// ContentType returns the media type written for f
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

func (f Format) String() string { return string(f) }

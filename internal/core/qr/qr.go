// Package qr holds the value types shared by the export and batch pipelines
package qr

import (
	"strings"

	"github.com/srwiley/oksvg"
)

// Bounds and defaults for export options
const (
	MinSize = 100
	MaxSize = 1000

	DefaultSize       = 300
	DefaultForeground = "#000000"
	DefaultBackground = "#ffffff"

	// Transparent is the background sentinel meaning no fill
	Transparent = "transparent"

	// MaxPayloadBytes is the byte-mode capacity of a version 40-L symbol
	MaxPayloadBytes = 2953
)

// Level is the error correction level passed through to the QR engine
type Level string

// Error correction levels
const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

// Valid reports whether l is one of L, M, Q, H
func (l Level) Valid() bool {
	switch l {
	case LevelL, LevelM, LevelQ, LevelH:
		return true
	}
	return false
}

// ParseLevel is case insensitive
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	return l, l.Valid()
}

// Options is one export request; values are copied per call
type Options struct {
	Payload    string `json:"payload"`
	SizePx     int    `json:"size_px"`
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Level      Level  `json:"level"`
}

// WithDefaults fills zero fields with the documented defaults
func (o Options) WithDefaults() Options {
	if o.SizePx == 0 {
		o.SizePx = DefaultSize
	}
	if strings.TrimSpace(o.Foreground) == "" {
		o.Foreground = DefaultForeground
	}
	if strings.TrimSpace(o.Background) == "" {
		o.Background = DefaultBackground
	}
	if o.Level == "" {
		o.Level = LevelM
	}
	return o
}

// WithPayload returns a copy carrying payload
func (o Options) WithPayload(payload string) Options {
	o.Payload = payload
	return o
}

// IsTransparent reports whether the background is the transparent sentinel
func (o Options) IsTransparent() bool { return IsTransparent(o.Background) }

// OpaqueBackground resolves the transparent sentinel to white
func (o Options) OpaqueBackground() Options {
	if o.IsTransparent() {
		o.Background = DefaultBackground
	}
	return o
}

// IsTransparent reports whether s is the transparent sentinel
func IsTransparent(s string) bool { return strings.EqualFold(strings.TrimSpace(s), Transparent) }

// ValidColor reports whether s parses as an SVG paint color (hex, rgb(), or a named color)
func ValidColor(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || IsTransparent(s) {
		return false
	}
	c, err := oksvg.ParseSVGColor(s)
	return err == nil && c != nil
}

// ValidBackground accepts any ValidColor plus the transparent sentinel
func ValidBackground(s string) bool { return IsTransparent(s) || ValidColor(s) }

// ValidSize reports whether px is inside [MinSize, MaxSize]
func ValidSize(px int) bool { return px >= MinSize && px <= MaxSize }

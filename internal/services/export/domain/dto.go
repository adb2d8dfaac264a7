// Package domain holds the DTOs and ports of the single-item export service
package domain

import (
	"strings"

	"qrforge/internal/core/qr"
)

// Request is one export as received from the API or the CLI
type Request struct {
	Payload    string `json:"payload"              validate:"required,max=2953"                        example:"https://example.com"`
	Format     string `json:"format"               validate:"required,qrformat"                        example:"png"`
	SizePx     int    `json:"size_px,omitempty"    validate:"omitempty,min=100,max=1000"               example:"300"`
	Foreground string `json:"foreground,omitempty" validate:"omitempty,qrcolor"                        example:"#000000"`
	Background string `json:"background,omitempty" validate:"omitempty,qrbackground"                   example:"transparent"`
	Level      string `json:"level,omitempty"      validate:"omitempty,oneof=L M Q H l m q h"          example:"M"`
	Name       string `json:"name,omitempty"       validate:"omitempty,max=200"                        example:"table-4"`
	Title      string `json:"title,omitempty"      validate:"omitempty,max=120"                        example:"Table 4"`
}

// Options converts the request into export options with defaults applied
func (r Request) Options() qr.Options {
	return qr.Options{
		Payload:    r.Payload,
		SizePx:     r.SizePx,
		Foreground: r.Foreground,
		Background: r.Background,
		Level:      qr.Level(strings.ToUpper(r.Level)),
	}.WithDefaults()
}

// FormatValue returns the parsed format; callers validate first
func (r Request) FormatValue() qr.Format {
	f, _ := qr.ParseFormat(r.Format)
	return f
}

// Item says how one vector source is encoded and named
type Item struct {
	Format   qr.Format
	Options  qr.Options
	BaseName string
	Title    string
}

package domain

import (
	"strings"

	"qrforge/internal/core/qr"
)

// Request is a batch as received over HTTP: rows plus the shared export settings
type Request struct {
	Rows       []qr.Row `json:"rows"                 validate:"required,min=1"`
	Format     string   `json:"format"               validate:"required,qrformat"               example:"png"`
	SizePx     int      `json:"size_px,omitempty"    validate:"omitempty,min=100,max=1000"      example:"300"`
	Foreground string   `json:"foreground,omitempty" validate:"omitempty,qrcolor"               example:"#000000"`
	Background string   `json:"background,omitempty" validate:"omitempty,qrbackground"          example:"#ffffff"`
	Level      string   `json:"level,omitempty"      validate:"omitempty,oneof=L M Q H l m q h" example:"M"`
	Title      string   `json:"title,omitempty"      validate:"omitempty,max=120"               example:"Menu"`
}

// Config builds a run configuration from the request and the process limits
func (r Request) Config(l Limits) Config {
	f, _ := qr.ParseFormat(r.Format)
	return Config{
		Limits: l,
		Format: f,
		Options: qr.Options{
			SizePx:     r.SizePx,
			Foreground: r.Foreground,
			Background: r.Background,
			Level:      qr.Level(strings.ToUpper(r.Level)),
		}.WithDefaults(),
		Title: r.Title,
	}
}

package domain

import (
	"qrforge/internal/core/qr"
	"qrforge/internal/platform/net/http/bind"
)

func init() {
	bind.MustRegisterTag("qrcolor", func(fl bind.FieldLevel) bool {
		return qr.ValidColor(fl.Field().String())
	}, "{0} must be an SVG color such as #000000, rgb(0,0,0) or black")
	bind.MustRegisterTag("qrbackground", func(fl bind.FieldLevel) bool {
		return qr.ValidBackground(fl.Field().String())
	}, "{0} must be an SVG color or transparent")
	bind.MustRegisterTag("qrformat", func(fl bind.FieldLevel) bool {
		_, ok := qr.ParseFormat(fl.Field().String())
		return ok
	}, "{0} must be one of svg, png, pdf")
}

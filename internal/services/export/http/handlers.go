// Package http provides http transport for single exports
package http

import (
	stdhttp "net/http"

	"qrforge/internal/adapters/save"
	"qrforge/internal/modkit/httpkit"
	"qrforge/internal/services/export/domain"
)

// Register mounts export endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.Request](r, "/", h.export, httpkit.JSONOptions{MaxBytes: 64 << 10, DisallowUnknown: true})
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /export Export exportOne
// @Summary Render one QR code and download it as SVG, PNG or PDF
// @Tags Export
// @Accept json
// @Produce image/svg+xml,image/png,application/pdf
// @Param payload body domain.Request true "Export request"
// @Success 200 {file} binary "attachment"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 500 {object} httpkit.Envelope "pipeline failure"
// @Router /export [post]
func (h *handlers) export(r *stdhttp.Request, in domain.Request) (any, error) {
	mem := save.NewMemory()
	art, err := h.svc.Export(r.Context(), in, mem)
	if err != nil {
		return nil, err
	}
	return httpkit.File{Name: art.FileName, ContentType: art.ContentType, Bytes: art.Bytes}, nil
}

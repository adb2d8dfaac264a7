package domain

import (
	"context"

	"qrforge/internal/adapters/save"
	"qrforge/internal/core/qr"
	"qrforge/internal/core/vector"
)

// ServicePort is the export contract other modules and hosts depend on
type ServicePort interface {
	// Export validates req, renders it and saves the artifact
	Export(ctx context.Context, req Request, sink save.Port) (qr.Artifact, error)
	// ExportOne encodes an existing vector source and saves it as qrcode.{ext}
	ExportOne(ctx context.Context, src *vector.Source, format qr.Format, opts qr.Options, sink save.Port) (qr.Artifact, error)
}

// Producer renders and encodes without saving; the batch pipeline drives one per row
type Producer interface {
	Render(ctx context.Context, opts qr.Options) (*vector.Source, error)
	Produce(ctx context.Context, src *vector.Source, item Item) (qr.Artifact, error)
}

// Package service contains the single-item export workflow
package service

import (
	"context"
	"time"

	"qrforge/internal/adapters/save"
	"qrforge/internal/core/encode"
	"qrforge/internal/core/markup"
	"qrforge/internal/core/naming"
	"qrforge/internal/core/qr"
	"qrforge/internal/core/vector"
	perr "qrforge/internal/platform/errors"
	"qrforge/internal/platform/logger"
	"qrforge/internal/platform/net/http/bind"
	"qrforge/internal/services/export/domain"
)

// Service defines the export service contract
type Service interface {
	domain.ServicePort
	domain.Producer
}

// Svc implements Service
type Svc struct {
	renderer vector.Renderer
	encoders *encode.Registry
	title    string
}

// Option configures Svc
type Option func(*Svc)

// WithDefaultTitle sets the PDF title used when a request carries none
func WithDefaultTitle(title string) Option { return func(s *Svc) { s.title = title } }

// New creates an export service
func New(renderer vector.Renderer, encoders *encode.Registry, opts ...Option) *Svc {
	if renderer == nil {
		panic("export.Service requires a non nil Renderer")
	}
	if encoders == nil {
		panic("export.Service requires a non nil encoder Registry")
	}
	s := &Svc{renderer: renderer, encoders: encoders}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Render builds the vector source for opts
func (s *Svc) Render(ctx context.Context, opts qr.Options) (*vector.Source, error) {
	return s.renderer.Render(ctx, opts)
}

// Produce serializes src and runs the encoder for item.Format.
// Steps run strictly in order: serialize, rasterize when needed, encode
func (s *Svc) Produce(ctx context.Context, src *vector.Source, item domain.Item) (qr.Artifact, error) {
	if src.Empty() {
		return qr.Artifact{}, perr.SourceNotFoundf("generate a QR code first")
	}
	enc, err := s.encoders.For(item.Format)
	if err != nil {
		return qr.Artifact{}, err
	}
	m, err := markup.Serialize(src)
	if err != nil {
		return qr.Artifact{}, err
	}

	opts := item.Options.WithDefaults()
	if src.Size > 0 {
		opts.SizePx = src.Size
	}
	title := item.Title
	if title == "" {
		title = s.title
	}

	start := time.Now()
	b, err := enc.Encode(ctx, encode.Input{Markup: m, Options: opts, Title: title})
	if err != nil {
		return qr.Artifact{}, perr.WithOp(err, "encode."+string(item.Format))
	}
	logger.C(ctx).Debug().
		Str("format", string(item.Format)).
		Int("size_px", opts.SizePx).
		Int("bytes", len(b)).
		Dur("took", time.Since(start)).
		Msg("export encoded")

	return qr.Artifact{
		FileName:    naming.Sanitize(item.BaseName) + "." + enc.Extension(),
		ContentType: enc.ContentType(),
		Bytes:       b,
	}, nil
}

// ExportOne encodes src and hands the file to sink
func (s *Svc) ExportOne(ctx context.Context, src *vector.Source, format qr.Format, opts qr.Options, sink save.Port) (qr.Artifact, error) {
	return s.deliver(ctx, src, domain.Item{Format: format, Options: opts}, sink)
}

// Export validates req, renders the vector source, then behaves like ExportOne
func (s *Svc) Export(ctx context.Context, req domain.Request, sink save.Port) (qr.Artifact, error) {
	if err := bind.Struct(req); err != nil {
		return qr.Artifact{}, err
	}
	opts := req.Options()
	src, err := s.renderer.Render(ctx, opts)
	if err != nil {
		return qr.Artifact{}, err
	}
	return s.deliver(ctx, src, domain.Item{
		Format:   req.FormatValue(),
		Options:  opts,
		BaseName: req.Name,
		Title:    req.Title,
	}, sink)
}

func (s *Svc) deliver(ctx context.Context, src *vector.Source, item domain.Item, sink save.Port) (qr.Artifact, error) {
	if sink == nil {
		return qr.Artifact{}, perr.Internalf("export: no save port")
	}
	art, err := s.Produce(ctx, src, item)
	if err != nil {
		logger.C(ctx).Warn().Err(err).
			Str("code", perr.CodeOf(err).String()).
			Bool("retryable", perr.Retryable(err)).
			Msg("export failed")
		return qr.Artifact{}, err
	}
	if err := sink.Save(ctx, art.FileName, art.Bytes); err != nil {
		if _, ours := perr.As(err); ours {
			return qr.Artifact{}, err
		}
		return qr.Artifact{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "export: save failed")
	}
	return art, nil
}

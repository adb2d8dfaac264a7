// Package service contains the batch pipeline and the asynchronous job registry
package service

import (
	"context"
	stderrs "errors"
	"runtime"
	"strings"
	"time"

	"qrforge/internal/core/archive"
	"qrforge/internal/core/naming"
	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"
	"qrforge/internal/platform/logger"
	pstrings "qrforge/internal/platform/strings"
	"qrforge/internal/services/batch/domain"
	exportdom "qrforge/internal/services/export/domain"
	exportsvc "qrforge/internal/services/export/service"
)

// Pipeline runs rows through an export producer one at a time and packages the results
type Pipeline struct {
	producer exportdom.Producer
	now      func() time.Time
}

// NewPipeline creates a pipeline. now stamps the archive comment; nil means time.Now
func NewPipeline(producer exportdom.Producer, now func() time.Time) *Pipeline {
	if producer == nil {
		panic("batch.Pipeline requires a non nil Producer")
	}
	if now == nil {
		now = time.Now
	}
	return &Pipeline{producer: producer, now: now}
}

type produced struct {
	base string
	data []byte
}

// Run processes rows strictly in input order. A bad row is recorded and skipped;
// only too many rows, cancellation, archive failures and a failed save end the batch
func (p *Pipeline) Run(ctx context.Context, rows []qr.Row, cfg domain.Config, onProgress domain.Progress) (domain.Summary, error) {
	cfg.Limits = cfg.Limits.WithDefaults()
	sum := domain.Summary{State: domain.StateIdle, ArchiveName: cfg.ArchiveName}

	total := len(rows)
	if err := cfg.CheckRows(total); err != nil {
		return sum, err
	}
	if !cfg.Format.Valid() {
		return sum, perr.WithField(perr.Validationf("format must be one of svg, png, pdf"), "format")
	}

	log := logger.C(ctx).With().Str("format", string(cfg.Format)).Int("rows", total).Logger()
	sum.State = domain.StateRunning
	start := time.Now()

	ok := make([]produced, 0, total)
	for i, row := range rows {
		index := i + 1
		data, base, err := p.row(ctx, index, row, cfg)
		if err != nil {
			sum.Failed++
			sum.Failures = append(sum.Failures, failure(index, row, err))
			log.Warn().Err(err).Int("row", index).Str("identifier", row.Identifier).
				Str("code", perr.CodeOf(err).String()).Msg("batch row failed")
		} else {
			sum.Succeeded++
			ok = append(ok, produced{base: base, data: data})
			log.Debug().Int("row", index).Str("name", base).Int("bytes", len(data)).Msg("batch row done")
		}
		if onProgress != nil {
			onProgress(index, total)
		}
		if index%cfg.ChunkSize == 0 || ctx.Err() != nil {
			runtime.Gosched()
			if err := ctx.Err(); err != nil {
				return p.abort(ctx, sum, perr.Wrapf(err, perr.ErrorCodeUnavailable, "batch cancelled after %d of %d rows", index, total))
			}
		}
	}

	b, err := archive.New(archive.Options{
		Level:   cfg.Compression,
		Comment: "qrforge batch " + p.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return p.abort(ctx, sum, err)
	}
	ext := cfg.Format.Extension()
	names := naming.NewRegistry()
	for _, a := range ok {
		name := names.Claim(a.base, ext)
		if err := b.Add(name, a.data); err != nil {
			return p.abort(ctx, sum, err)
		}
		sum.Entries = append(sum.Entries, name)
	}
	zipped, err := b.Finalize()
	if err != nil {
		return p.abort(ctx, sum, err)
	}
	sum.Archive = zipped

	if cfg.Save != nil {
		if err := cfg.Save.Save(ctx, cfg.ArchiveName, zipped); err != nil {
			if _, ours := perr.As(err); !ours {
				err = perr.Wrap(err, perr.ErrorCodeUnavailable, "batch: save archive failed")
			}
			return p.abort(ctx, sum, err)
		}
	}

	sum.State = domain.StateCompleted
	log.Info().
		Int("succeeded", sum.Succeeded).
		Int("failed", sum.Failed).
		Int("archive_bytes", len(zipped)).
		Dur("took", time.Since(start)).
		Msg("batch completed")
	return sum, nil
}

func (p *Pipeline) row(ctx context.Context, index int, row qr.Row, cfg domain.Config) ([]byte, string, error) {
	if strings.TrimSpace(row.Payload) == "" {
		return nil, "", perr.WithField(perr.Validationf("row %d has no payload", index), "payload")
	}
	if len(row.Payload) > cfg.MaxPayloadBytes {
		return nil, "", perr.WithField(perr.Validationf("row %d payload is %d bytes, limit is %d",
			index, len(row.Payload), cfg.MaxPayloadBytes), "payload")
	}

	base := naming.Positional(index)
	switch {
	case strings.TrimSpace(row.Identifier) == "":
	case cfg.FoldNames:
		base = naming.SanitizeFolded(row.Identifier)
	default:
		base = naming.Sanitize(row.Identifier)
	}

	opts := cfg.Options.WithPayload(row.Payload)
	src, err := p.producer.Render(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	art, err := p.producer.Produce(ctx, src, exportdom.Item{
		Format:   cfg.Format,
		Options:  opts,
		BaseName: base,
		Title:    pstrings.FirstNonEmpty(row.Identifier, cfg.Title),
	})
	if err != nil {
		return nil, "", err
	}
	return art.Bytes, base, nil
}

func (p *Pipeline) abort(ctx context.Context, sum domain.Summary, err error) (domain.Summary, error) {
	sum.State = domain.StateAborted
	sum.Archive = nil
	sum.Entries = nil
	logger.C(ctx).Error().Err(err).
		Int("succeeded", sum.Succeeded).
		Int("failed", sum.Failed).
		Msg("batch aborted")
	return sum, err
}

func failure(index int, row qr.Row, err error) domain.RowFailure {
	f := domain.RowFailure{
		Index:      index,
		Identifier: row.Identifier,
		Code:       perr.CodeOf(err).String(),
		Message:    exportsvc.UserMessage(err),
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		f.Message = "cancelled"
	}
	return f
}

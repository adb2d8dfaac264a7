package domain

import (
	"context"

	"qrforge/internal/core/qr"
)

// Runner executes one batch to completion or abort
type Runner interface {
	Run(ctx context.Context, rows []qr.Row, cfg Config, onProgress Progress) (Summary, error)
}

// JobsPort is the asynchronous batch contract the HTTP layer depends on
type JobsPort interface {
	Start(ctx context.Context, rows []qr.Row, cfg Config) Job
	Get(id string) (Job, error)
	Take(id string) (Summary, error)
	Cancel(id string) (Job, error)
}

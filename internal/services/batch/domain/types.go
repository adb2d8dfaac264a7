// Package domain holds the batch pipeline types, DTOs and ports
package domain

import (
	"time"

	"qrforge/internal/adapters/save"
	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"
)

// Defaults for Limits
const (
	DefaultMaxRows     = 1000
	DefaultChunkSize   = 10
	DefaultArchiveName = "qrcodes.zip"
	DefaultJobTTL      = 15 * time.Minute
)

// State is the lifecycle of one batch
type State string

// Batch states; Completed and Aborted are terminal
const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateAborted   State = "aborted"
)

// Terminal reports whether no further transition can happen
func (s State) Terminal() bool { return s == StateCompleted || s == StateAborted }

// Limits are the process-wide batch ceilings, read from CORE_BATCH_*
type Limits struct {
	MaxRows         int
	MaxPayloadBytes int
	// ChunkSize rows run between cooperative yields and cancellation checks
	ChunkSize   int
	ArchiveName string
	// Compression is a flate level in [-2, 9]
	Compression int
	// FoldNames strips accents from identifiers before sanitizing them
	FoldNames bool
}

// DefaultLimits returns the documented ceilings
func DefaultLimits() Limits {
	return Limits{
		MaxRows:         DefaultMaxRows,
		MaxPayloadBytes: qr.MaxPayloadBytes,
		ChunkSize:       DefaultChunkSize,
		ArchiveName:     DefaultArchiveName,
		Compression:     -1,
	}
}

// WithDefaults fills zero fields from DefaultLimits. Compression 0 is a valid level and is kept
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	if l.MaxRows <= 0 {
		l.MaxRows = d.MaxRows
	}
	if l.MaxPayloadBytes <= 0 {
		l.MaxPayloadBytes = d.MaxPayloadBytes
	}
	if l.ChunkSize <= 0 {
		l.ChunkSize = d.ChunkSize
	}
	if l.ArchiveName == "" {
		l.ArchiveName = d.ArchiveName
	}
	return l
}

// CheckRows rejects an empty batch or one over MaxRows before any work starts
func (l Limits) CheckRows(n int) error {
	if n == 0 {
		return perr.WithField(perr.Validationf("at least one row is required"), "rows")
	}
	if limit := l.WithDefaults().MaxRows; n > limit {
		return perr.WithField(perr.Validationf("a batch holds at most %d rows, got %d", limit, n), "rows")
	}
	return nil
}

// Config is one batch run: the shared export settings plus the ceilings
type Config struct {
	Limits

	Format qr.Format
	// Options are shared by every row; each row overlays its own payload
	Options qr.Options
	// Title is the PDF heading for rows without an identifier
	Title string
	// Save receives the finished archive; nil keeps it in Summary only
	Save save.Port
}

// Progress is called after every row, in order, with completed in 1..total
type Progress func(completed, total int)

// RowFailure records why one row was skipped
type RowFailure struct {
	Index      int    `json:"index"`
	Identifier string `json:"identifier,omitempty"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// Summary is the outcome of one batch run
type Summary struct {
	State       State        `json:"state"`
	Succeeded   int          `json:"succeeded"`
	Failed      int          `json:"failed"`
	Archive     []byte       `json:"-"`
	ArchiveName string       `json:"archive_name,omitempty"`
	Entries     []string     `json:"entries,omitempty"`
	Failures    []RowFailure `json:"failures,omitempty"`
}

// Job is a snapshot of an asynchronous batch
type Job struct {
	ID        string       `json:"id"`
	State     State        `json:"state"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Percent   float64      `json:"percent"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Failures  []RowFailure `json:"failures,omitempty"`
	Error     string       `json:"error,omitempty"`
	Created   time.Time    `json:"created_at"`
	Updated   time.Time    `json:"updated_at"`
}

// Percentage is completed/total scaled to 0..100 with one decimal
func Percentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(completed) * 1000 / float64(total)
	return float64(int(p+0.5)) / 10
}

package module

import (
	"time"

	"qrforge/internal/platform/config"
	"qrforge/internal/services/batch/domain"
)

// Options holds the batch ceilings and job retention
type Options struct {
	Limits domain.Limits
	JobTTL time.Duration
}

// FromConfig reads the batch options from config with CORE_BATCH_ prefix
func FromConfig(cfg config.Conf) Options {
	b := cfg.Prefix("CORE_BATCH_")
	d := domain.DefaultLimits()
	return Options{
		Limits: domain.Limits{
			MaxRows:         b.MayIntRange("MAX_ROWS", d.MaxRows, 1, 100000),
			MaxPayloadBytes: b.MayIntRange("MAX_PAYLOAD_BYTES", d.MaxPayloadBytes, 1, d.MaxPayloadBytes),
			ChunkSize:       b.MayIntRange("CHUNK", d.ChunkSize, 1, 1000),
			ArchiveName:     b.MayString("ARCHIVE_NAME", d.ArchiveName),
			Compression:     b.MayIntRange("COMPRESSION", d.Compression, -2, 9),
			FoldNames:       b.MayBool("FOLD_NAMES", false),
		},
		JobTTL: b.MayDuration("JOB_TTL", domain.DefaultJobTTL),
	}
}

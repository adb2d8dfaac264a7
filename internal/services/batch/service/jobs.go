package service

import (
	"context"
	"sync"
	"time"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"
	"qrforge/internal/platform/logger"
	"qrforge/internal/services/batch/domain"

	"github.com/google/uuid"
)

// Jobs runs batches in the background and keeps their progress in memory until
// the archive is taken or the job goes stale
type Jobs struct {
	runner domain.Runner
	ttl    time.Duration
	now    func() time.Time

	mu   sync.Mutex
	jobs map[string]*job
}

type job struct {
	view    domain.Job
	summary domain.Summary
	err     error
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewJobs creates a registry. ttl <= 0 uses the default
func NewJobs(runner domain.Runner, ttl time.Duration, now func() time.Time) *Jobs {
	if runner == nil {
		panic("batch.Jobs requires a non nil Runner")
	}
	if ttl <= 0 {
		ttl = domain.DefaultJobTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Jobs{runner: runner, ttl: ttl, now: now, jobs: map[string]*job{}}
}

// Start registers a job and runs it on its own goroutine. The job outlives ctx
// but keeps its values, so request scoped logging follows it
func (j *Jobs) Start(ctx context.Context, rows []qr.Row, cfg domain.Config) domain.Job {
	j.Sweep(j.now())

	id := uuid.NewString()
	now := j.now()
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	runCtx = logger.WithJob(runCtx, id)

	jb := &job{
		view: domain.Job{
			ID:      id,
			State:   domain.StatePending,
			Total:   len(rows),
			Created: now,
			Updated: now,
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}
	j.mu.Lock()
	j.jobs[id] = jb
	snap := jb.snapshot()
	j.mu.Unlock()

	go j.run(runCtx, jb, rows, cfg)
	return snap
}

func (j *Jobs) run(ctx context.Context, jb *job, rows []qr.Row, cfg domain.Config) {
	defer close(jb.done)
	defer jb.cancel()

	j.mu.Lock()
	jb.view.State = domain.StateRunning
	jb.view.Updated = j.now()
	j.mu.Unlock()

	sum, err := j.runner.Run(ctx, rows, cfg, func(completed, total int) {
		j.mu.Lock()
		jb.view.Completed, jb.view.Total = completed, total
		jb.view.Updated = j.now()
		j.mu.Unlock()
	})

	j.mu.Lock()
	defer j.mu.Unlock()
	jb.summary, jb.err = sum, err
	jb.view.Succeeded, jb.view.Failed = sum.Succeeded, sum.Failed
	jb.view.Failures = sum.Failures
	jb.view.Updated = j.now()
	if err != nil {
		jb.view.State = domain.StateAborted
		jb.view.Error = err.Error()
		if e, ok := perr.As(err); ok {
			jb.view.Error = e.Message()
		}
		return
	}
	jb.view.State = domain.StateCompleted
}

// Get returns a snapshot of the job
func (j *Jobs) Get(id string) (domain.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	jb, ok := j.jobs[id]
	if !ok {
		return domain.Job{}, perr.NotFoundf("batch job %q not found", id)
	}
	return jb.snapshot(), nil
}

// Wait blocks until the job reaches a terminal state or ctx ends
func (j *Jobs) Wait(ctx context.Context, id string) (domain.Job, error) {
	j.mu.Lock()
	jb, ok := j.jobs[id]
	j.mu.Unlock()
	if !ok {
		return domain.Job{}, perr.NotFoundf("batch job %q not found", id)
	}
	select {
	case <-jb.done:
	case <-ctx.Done():
		return domain.Job{}, ctx.Err()
	}
	return j.Get(id)
}

// Take hands over the archive of a completed job exactly once, then forgets the job.
// An aborted job is forgotten too and reports why it ended
func (j *Jobs) Take(id string) (domain.Summary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	jb, ok := j.jobs[id]
	if !ok {
		return domain.Summary{}, perr.NotFoundf("batch job %q not found", id)
	}
	switch jb.view.State {
	case domain.StateCompleted:
		delete(j.jobs, id)
		return jb.summary, nil
	case domain.StateAborted:
		delete(j.jobs, id)
		return jb.summary, perr.Wrapf(jb.err, perr.ErrorCodeConflict, "batch job %q was aborted", id)
	default:
		return domain.Summary{}, perr.Conflictf("batch job %q is still %s", id, jb.view.State)
	}
}

// Cancel asks a pending or running job to stop at its next chunk boundary
func (j *Jobs) Cancel(id string) (domain.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	jb, ok := j.jobs[id]
	if !ok {
		return domain.Job{}, perr.NotFoundf("batch job %q not found", id)
	}
	jb.cancel()
	return jb.snapshot(), nil
}

// Sweep drops finished jobs nobody collected within the TTL and returns how many went
func (j *Jobs) Sweep(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for id, jb := range j.jobs {
		if jb.view.State.Terminal() && now.Sub(jb.view.Updated) > j.ttl {
			delete(j.jobs, id)
			n++
		}
	}
	return n
}

// Len reports how many jobs are held
func (j *Jobs) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.jobs)
}

func (jb *job) snapshot() domain.Job {
	v := jb.view
	v.Percent = domain.Percentage(v.Completed, v.Total)
	v.Failures = append([]domain.RowFailure(nil), v.Failures...)
	return v
}

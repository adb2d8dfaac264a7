// Package http provides http transport for batch exports
package http

import (
	stdhttp "net/http"
	"strconv"

	"qrforge/internal/adapters/save"
	"qrforge/internal/modkit/httpkit"
	"qrforge/internal/services/batch/domain"
)

// ArchiveContentType is the media type of every batch download
const ArchiveContentType = "application/zip"

// Register mounts batch endpoints on the given router
func Register(r httpkit.Router, runner domain.Runner, jobs domain.JobsPort, limits domain.Limits) {
	h := &handlers{runner: runner, jobs: jobs, limits: limits.WithDefaults()}
	body := httpkit.JSONOptions{MaxBytes: 8 << 20, DisallowUnknown: true}
	httpkit.PostJSON[domain.Request](r, "/", h.run, body)
	httpkit.PostJSON[domain.Request](r, "/jobs", h.start, body)
	httpkit.Get(r, "/jobs/{id}", h.status)
	httpkit.Get(r, "/jobs/{id}/archive", h.archive)
	httpkit.Delete(r, "/jobs/{id}", h.cancel)
}

type handlers struct {
	runner domain.Runner
	jobs   domain.JobsPort
	limits domain.Limits
}

// swagger:route POST /batch Batch batchRun
// @Summary Export every row and download one ZIP
// @Tags Batch
// @Accept json
// @Produce application/zip
// @Param payload body domain.Request true "Rows and shared settings"
// @Success 200 {file} binary "archive; X-Batch-Succeeded and X-Batch-Failed carry the counts"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /batch [post]
func (h *handlers) run(r *stdhttp.Request, in domain.Request) (any, error) {
	if err := h.limits.CheckRows(len(in.Rows)); err != nil {
		return nil, err
	}
	mem := save.NewMemory()
	cfg := in.Config(h.limits)
	cfg.Save = mem
	sum, err := h.runner.Run(r.Context(), in.Rows, cfg, nil)
	if err != nil {
		return nil, err
	}
	return download(sum), nil
}

// swagger:route POST /batch/jobs Batch batchStart
// @Summary Start a background batch
// @Tags Batch
// @Accept json
// @Produce json
// @Param payload body domain.Request true "Rows and shared settings"
// @Success 201 {object} domain.Job "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /batch/jobs [post]
func (h *handlers) start(r *stdhttp.Request, in domain.Request) (any, error) {
	if err := h.limits.CheckRows(len(in.Rows)); err != nil {
		return nil, err
	}
	return httpkit.Created(h.jobs.Start(r.Context(), in.Rows, in.Config(h.limits))), nil
}

// swagger:route GET /batch/jobs/{id} Batch batchStatus
// @Summary Progress of a background batch
// @Tags Batch
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {object} domain.Job "ok"
// @Failure 404 {object} httpkit.Envelope "unknown job"
// @Router /batch/jobs/{id} [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.jobs.Get(httpkit.Param(r, "id"))
}

// swagger:route GET /batch/jobs/{id}/archive Batch batchArchive
// @Summary Download the archive of a finished batch; the job is discarded afterwards
// @Tags Batch
// @Produce application/zip
// @Param id path string true "Job id"
// @Success 200 {file} binary "archive"
// @Failure 404 {object} httpkit.Envelope "unknown job"
// @Failure 409 {object} httpkit.Envelope "still pending, running or aborted"
// @Router /batch/jobs/{id}/archive [get]
func (h *handlers) archive(r *stdhttp.Request) (any, error) {
	sum, err := h.jobs.Take(httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	return download(sum), nil
}

// swagger:route DELETE /batch/jobs/{id} Batch batchCancel
// @Summary Cancel a background batch at its next chunk boundary
// @Tags Batch
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {object} domain.Job "ok"
// @Router /batch/jobs/{id} [delete]
func (h *handlers) cancel(r *stdhttp.Request) (any, error) {
	return h.jobs.Cancel(httpkit.Param(r, "id"))
}

func download(sum domain.Summary) httpkit.File {
	hdr := stdhttp.Header{}
	hdr.Set("X-Batch-Succeeded", strconv.Itoa(sum.Succeeded))
	hdr.Set("X-Batch-Failed", strconv.Itoa(sum.Failed))
	return httpkit.File{Name: sum.ArchiveName, ContentType: ArchiveContentType, Bytes: sum.Archive, Header: hdr}
}

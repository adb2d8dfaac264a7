package swaggerkit

import (
	"net/http"
	"strings"

	"qrforge/internal/core/version"
)

// doc is a hand-maintained OpenAPI skeleton; it lists the routes and their media types
const doc = `{
  "openapi": "3.0.3",
  "info": {"title": "qrforge API", "version": "%VERSION%"},
  "paths": {
    "/api/v1/export": {"post": {"summary": "Export one QR code as svg, png or pdf",
      "responses": {"200": {"description": "file", "content": {
        "image/svg+xml": {}, "image/png": {}, "application/pdf": {}}}}}},
    "/api/v1/batch": {"post": {"summary": "Export many QR codes into one ZIP archive",
      "responses": {"200": {"description": "archive", "content": {"application/zip": {}}}}}},
    "/api/v1/batch/jobs": {"post": {"summary": "Start an asynchronous batch job",
      "responses": {"201": {"description": "job"}}}},
    "/api/v1/batch/jobs/{id}": {
      "get": {"summary": "Batch job status and progress",
        "responses": {"200": {"description": "job"}, "404": {"description": "unknown job"}}},
      "delete": {"summary": "Cancel a running batch job",
        "responses": {"200": {"description": "job"}, "404": {"description": "unknown job"}}}},
    "/api/v1/batch/jobs/{id}/archive": {"get": {"summary": "Download the finished archive once",
      "responses": {"200": {"description": "archive", "content": {"application/zip": {}}},
        "409": {"description": "job still pending, running or aborted"}}}},
    "/api/v1/meta/health": {"get": {"summary": "Liveness", "responses": {"200": {"description": "ok"}}}},
    "/api/v1/meta/ready": {"get": {"summary": "Readiness with an export probe", "responses": {"200": {"description": "ok"}}}},
    "/api/v1/meta/version": {"get": {"summary": "Build info", "responses": {"200": {"description": "ok"}}}},
    "/api/v1/meta/service": {"get": {"summary": "Service name and uptime", "responses": {"200": {"description": "ok"}}}},
    "/api/v1/meta/capabilities": {"get": {"summary": "Formats, size range and batch ceilings", "responses": {"200": {"description": "ok"}}}}
  }
}`

var docReader = func() string { return strings.Replace(doc, "%VERSION%", version.Info().Version, 1) }

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(docReader()))
	}
}

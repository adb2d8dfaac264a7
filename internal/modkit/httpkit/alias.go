// Package httpkit re-exports the platform http helpers modules need, so module code
// does not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "qrforge/internal/platform/net/http"
	"qrforge/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the return-style response type
	Response = phttp.Response

	// File is a binary download
	File = phttp.File

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router

	// JSONOptions controls body parsing limits
	JSONOptions = bind.JSONOptions
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Download returns a response that writes f as an attachment
func Download(f File) Response { return phttp.Download(f) }

// Param returns a named path parameter
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.JSONHandlerNoBody(fn) }

package service

import (
	"context"
	stderrs "errors"

	perr "qrforge/internal/platform/errors"
)

// UserMessage turns a failure into the text shown to a person. Input problems
// keep their specific message; pipeline failures say whether trying again can help
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if stderrs.Is(err, context.Canceled) {
		return "Export cancelled."
	}
	e, ok := perr.As(err)
	if !ok {
		return "Export failed. Please try again."
	}
	switch e.Code() {
	case perr.ErrorCodeSourceNotFound:
		return "Generate a QR code first."
	case perr.ErrorCodeValidation, perr.ErrorCodeInvalidArgument, perr.ErrorCodeJSON:
		return e.Message()
	case perr.ErrorCodeSerialization:
		return "The QR code could not be read. Regenerate it and export again."
	case perr.ErrorCodeRasterization:
		return "Rendering the image failed. Please try again."
	case perr.ErrorCodeEncoding:
		return "Building the file failed. Please try again."
	case perr.ErrorCodeArchive:
		return "Packaging the archive failed. Please start the batch again."
	case perr.ErrorCodeTooManyRequests:
		return "Too many exports at once. Please wait and try again."
	}
	if perr.Retryable(err) {
		return "Export failed. Please try again."
	}
	return "Export failed."
}

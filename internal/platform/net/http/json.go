package http

import (
	"net/http"

	"qrforge/internal/platform/net/http/bind"
)

// JSONHandler adapts a pure JSON handler to a platform Handler.
// A handler may return a Response to control status, or a File to stream a download
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		return wrap(out, err)
	})
}

// JSONHandlerNoBody calls fn without parsing a request body and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		return wrap(out, err)
	})
}

func wrap(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	switch v := out.(type) {
	case Response:
		return v
	case File:
		return Download(v)
	}
	return OK(out)
}

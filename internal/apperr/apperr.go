// Package apperr classifies failures of the list client so that every layer
// can decide how to surface them: validation problems never leave the
// process, network and server failures become retry-capable notices, auth
// failures end the session.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNetwork    Kind = "network"
	KindServer     Kind = "server"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindState      Kind = "state"
)

type Metadata struct {
	HTTPStatus int
	Retryable  bool
}

var metadataByKind = map[Kind]Metadata{
	KindValidation: {HTTPStatus: http.StatusBadRequest},
	KindNetwork:    {HTTPStatus: http.StatusBadGateway, Retryable: true},
	KindServer:     {HTTPStatus: http.StatusBadGateway, Retryable: true},
	KindNotFound:   {HTTPStatus: http.StatusNotFound},
	KindAuth:       {HTTPStatus: http.StatusUnauthorized},
	KindState:      {HTTPStatus: http.StatusConflict},
}

func MetadataFor(kind Kind) Metadata {
	if meta, ok := metadataByKind[kind]; ok {
		return meta
	}
	return metadataByKind[KindServer]
}

type Error struct {
	Kind    Kind
	Message string
	// Status is the backend HTTP status when the error came from a response.
	Status  int
	Details map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Retryable() bool { return MetadataFor(e.Kind).Retryable }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: err}
}

func Validation(message string) *Error { return New(KindValidation, message) }

func NotFound(message string) *Error { return New(KindNotFound, message) }

func State(message string) *Error { return New(KindState, message) }

func Auth(message string) *Error { return New(KindAuth, message) }

// Server builds an error for a non-2xx backend response.
func Server(status int, message string) *Error {
	kind := KindServer
	switch status {
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusUnauthorized:
		kind = KindAuth
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: kind, Message: message, Status: status}
}

// Network wraps a transport failure: dial errors, resets and timeouts.
func Network(err error) *Error {
	msg := "backend unreachable"
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		msg = "backend timed out"
	}
	return Wrap(KindNetwork, err, msg)
}

func (e *Error) WithDetails(details map[string]string) *Error {
	e.Details = details
	return e
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// KindOf reports the kind of err. Unclassified errors count as server errors.
func KindOf(err error) Kind {
	if typed := As(err); typed != nil {
		return typed.Kind
	}
	return KindServer
}

func Is(err error, kind Kind) bool {
	if typed := As(err); typed != nil {
		return typed.Kind == kind
	}
	return false
}

// Package webguard holds the HTTP helpers shared by the web tier.
package webguard

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// WriteJSON writes status and the JSON value produced by fn to w.
func WriteJSON(w http.ResponseWriter, status int, fn func(*jx.Encoder)) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	fn(e)

	SetContentType(w, ContentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(e.Bytes()); err != nil {
		return errors.Wrap(err, "webguard: write response")
	}
	return nil
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, status int, message string) error {
	return writeField(w, status, "error", message)
}

// WriteMessage writes {"message": message} with the given status.
func WriteMessage(w http.ResponseWriter, status int, message string) error {
	return writeField(w, status, "message", message)
}

func writeField(w http.ResponseWriter, status int, name, value string) error {
	return WriteJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart(name)
		e.Str(value)
		e.ObjEnd()
	})
}

// Package store persists the session record across runs.
package store

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/Andebugulin/bloglist/internal/model"
)

// ErrCorruptRecord indicates the stored session could not be decoded.
// Callers treat it as "no session" and clear the store.
var ErrCorruptRecord = errors.New("corrupt session record")

// SessionStore holds at most one session record. Save overwrites any
// previous record; Load returns (nil, nil) when no record exists.
type SessionStore interface {
	Load() (*model.Session, error)
	Save(session *model.Session) error
	Clear() error
}

var storeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storeLogger = l
}

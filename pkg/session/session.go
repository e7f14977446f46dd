// Package session remembers the explorer's state between runs.
//
// A [Session] records what was on screen when the explorer closed: the
// search text, whether the legend was open, and the camera. The next
// "explore --resume" starts from it. Sessions expire after [DefaultTTL].
//
// # Usage
//
//	store, err := session.NewFileStore("") // ~/.config/descendants/sessions/
//	if err != nil {
//	    return err
//	}
//	sess, err := store.Get(ctx, session.DefaultID)
//	if err != nil {
//	    return err
//	}
//	if sess != nil {
//	    // restore sess.Query ...
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/descendants/pkg/view"
)

// DefaultTTL is how long a saved session stays usable.
const DefaultTTL = 30 * 24 * time.Hour

// DefaultID names the single explorer session the CLI keeps.
const DefaultID = "explore"

// ErrInvalidID is returned for ids that cannot name a session file.
var ErrInvalidID = errors.New("invalid session id")

// Session is a saved explorer state.
type Session struct {
	ID     string       `json:"id"`
	Query  string       `json:"query"`
	Legend bool         `json:"legend"`
	Camera *view.Camera `json:"camera,omitempty"`
	// Data is the dataset file the session was explored over; empty for
	// the built-in dataset.
	Data string `json:"data,omitempty"`

	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New returns a session stamped now and expiring after ttl.
func New(id, query string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Query:     query,
		SavedAt:   now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store persists sessions.
type Store interface {
	// Get returns the session, or nil if it does not exist or expired.
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

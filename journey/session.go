package journey

import (
	"errors"
	"sync"

	"journey-map/model"
)

// ErrStaleBatch is returned when a batch tries to commit after a newer
// batch has already started.
var ErrStaleBatch = errors.New("batch superseded by a newer upload")

// BatchToken identifies one started batch within a session.
type BatchToken struct {
	seq uint64
}

// Session owns the current journey. Batches are sequenced: only the
// most-recently-started batch may commit, so a stale batch that finishes
// late can never overwrite the journey of a later upload. Readers never
// observe a partially built journey; commits replace it wholesale.
type Session struct {
	mu      sync.Mutex
	seq     uint64
	journey model.Journey
	has     bool
}

// StartBatch registers a new batch and returns its token. Starting a
// batch immediately invalidates every earlier token.
func (s *Session) StartBatch() BatchToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return BatchToken{seq: s.seq}
}

// Commit replaces the current journey with the batch's result. A token
// from anything but the latest started batch is rejected with
// ErrStaleBatch and the journey is left untouched.
func (s *Session) Commit(tok BatchToken, j model.Journey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.seq != s.seq {
		return ErrStaleBatch
	}
	s.journey = j
	s.has = true
	return nil
}

// Current returns the committed journey, if any batch has committed yet.
func (s *Session) Current() (model.Journey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journey, s.has
}

package api

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gatescan/internal/locate"
	"gatescan/internal/selector"
)

type session struct {
	path      string
	original  locate.Document
	remaining locate.Document
	lastUsed  time.Time
}

// SessionStore holds per-document resolution state for editor
// integrations. Access is serialized so sequential resolves against
// one session honor the duplicate-consumption invariant.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: map[string]*session{},
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a document and returns the session id. The text is
// normalized to "\n" line endings before splitting.
func (s *SessionStore) Create(path, text string) string {
	doc := locate.NewDocument(strings.ReplaceAll(text, "\r\n", "\n"))
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.sessions[id] = &session{path: path, original: doc, remaining: doc, lastUsed: s.now()}
	return id
}

// Resolve locates sel against the session's remaining buffer and
// advances it. The second return is false when the session is unknown
// or expired.
func (s *SessionStore) Resolve(id string, sel selector.Selector) (locate.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.getLocked(id)
	if !ok {
		return locate.Result{}, false
	}
	res := locate.Locate(sess.remaining, sel)
	sess.remaining = res.Remaining
	return res, true
}

// Reset restores the remaining buffer to the original document.
func (s *SessionStore) Reset(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.getLocked(id)
	if !ok {
		return false
	}
	sess.remaining = sess.original
	return true
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) getLocked(id string) (*session, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(sess.lastUsed) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastUsed = s.now()
	return sess, true
}

func (s *SessionStore) evictLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

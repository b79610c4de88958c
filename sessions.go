package folio

import (
	"sync"
	"time"

	"github.com/aydenstechdungeon/folio/page"
)

// session is one loaded page. A page is single-threaded, so every access
// holds mu.
type session struct {
	mu      sync.Mutex
	page    *page.Page
	expires time.Time
}

type sessions struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	byID map[string]*session
}

func newSessions(ttl time.Duration) *sessions {
	return &sessions{
		ttl:  ttl,
		now:  time.Now,
		byID: make(map[string]*session),
	}
}

func (s *sessions) put(id string, p *page.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = &session{page: p, expires: s.now().Add(s.ttl)}
}

// get returns a live session and extends its lifetime.
func (s *sessions) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.After(sess.expires) {
		delete(s.byID, id)
		return nil, false
	}
	sess.expires = now.Add(s.ttl)
	return sess, true
}

func (s *sessions) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[id]
	delete(s.byID, id)
	return ok
}

// prune drops expired sessions and returns how many were dropped.
func (s *sessions) prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, sess := range s.byID {
		if now.After(sess.expires) {
			delete(s.byID, id)
			n++
		}
	}
	return n
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

package http

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"webmall/evaluation/webmall/task"
)

const defaultSessionCacheSize = 256

// session is one task instance driven by a remote agent loop. mu serializes
// validate calls so the checklist sees one step at a time.
type session struct {
	mu        sync.Mutex
	id        string
	task      *task.Task
	weighting string
	createdAt time.Time
	steps     int
	done      bool
}

// sessionStore keeps the most recently used sessions; the oldest are evicted
// once the capacity is reached.
type sessionStore struct {
	cache *lru.Cache[string, *session]
}

func newSessionStore(size int, onClose func()) (*sessionStore, error) {
	if size <= 0 {
		size = defaultSessionCacheSize
	}
	cache, err := lru.NewWithEvict[string, *session](size, func(string, *session) {
		if onClose != nil {
			onClose()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &sessionStore{cache: cache}, nil
}

func (s *sessionStore) add(t *task.Task, weighting string) *session {
	sess := &session{
		id:        uuid.NewString(),
		task:      t,
		weighting: weighting,
		createdAt: time.Now(),
	}
	s.cache.Add(sess.id, sess)
	return sess
}

func (s *sessionStore) get(id string) (*session, bool) {
	return s.cache.Get(id)
}

func (s *sessionStore) remove(id string) bool {
	return s.cache.Remove(id)
}

func (s *sessionStore) len() int {
	return s.cache.Len()
}

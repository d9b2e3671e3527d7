package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"vetvox-be/internal/recording"
)

// SessionRepository tracks open recording sessions so the status endpoint can
// observe them. Entries expire on inactivity: a client that vanished without
// stopping must not pin a dead session forever.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Recording sessions are short; purge anything untouched for 30 minutes.
	c := cache.New(30*time.Minute, 5*time.Minute)
	return &SessionRepository{cache: c}
}

func (r *SessionRepository) Save(id string, controller *recording.SessionController) {
	r.cache.Set(id, controller, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(id string) (*recording.SessionController, bool) {
	if x, found := r.cache.Get(id); found {
		// Touch to keep live sessions resident.
		r.cache.Set(id, x, cache.DefaultExpiration)
		return x.(*recording.SessionController), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(id string) {
	r.cache.Delete(id)
}

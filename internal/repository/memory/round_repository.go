package memory

import (
	"time"

	"ai-profiling-be/pkg/refine"

	"github.com/patrickmn/go-cache"
)

// RoundRepository holds active round state in memory, keyed by user id.
// Abandoned rounds expire on their own; nothing here survives a restart,
// which is fine because every round is recomputable from the stores.
type RoundRepository struct {
	cache *cache.Cache
}

func NewRoundRepository() *RoundRepository {
	// Rounds live at most an hour without activity, purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &RoundRepository{
		cache: c,
	}
}

func (r *RoundRepository) Save(state *refine.RoundState) {
	r.cache.Set(state.UserID, state, cache.DefaultExpiration)
}

func (r *RoundRepository) Get(userID string) (*refine.RoundState, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*refine.RoundState), true
	}
	return nil, false
}

func (r *RoundRepository) Delete(userID string) {
	r.cache.Delete(userID)
}

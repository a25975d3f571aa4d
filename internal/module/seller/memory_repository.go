package seller

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps sellers in process memory. Used with the "memory"
// database driver and in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	sellers map[string]*Seller
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sellers: make(map[string]*Seller)}
}

func (r *MemoryRepository) Save(_ context.Context, seller *Seller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sellers[seller.ID] = seller.Clone()
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sellers[id]
	if !ok {
		return nil, ErrSellerNotFound
	}
	return s.Clone(), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Seller, 0, len(r.sellers))
	for _, s := range r.sellers {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ConnectedAt.Equal(out[j].ConnectedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ConnectedAt.Before(out[j].ConnectedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.sellers)), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sellers[id]; !ok {
		return ErrSellerNotFound
	}
	delete(r.sellers, id)
	return nil
}

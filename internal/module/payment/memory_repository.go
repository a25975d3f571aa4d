package payment

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryRepository keeps payments in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	payments map[string]*Payment
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{payments: make(map[string]*Payment)}
}

func (r *MemoryRepository) Create(_ context.Context, p *Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.payments[p.ID]; ok {
		existing.SellerID = p.SellerID
		existing.PayerEmail = p.PayerEmail
		existing.CreatedAt = p.CreatedAt
		return nil
	}
	r.payments[p.ID] = p.Clone()
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	return p.Clone(), nil
}

func (r *MemoryRepository) Merge(_ context.Context, p *Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.payments[p.ID]
	if !ok {
		r.payments[p.ID] = p.Clone()
		return nil
	}
	existing.Status = p.Status
	existing.StatusDetail = p.StatusDetail
	existing.Amount = p.Amount
	existing.Fee = p.Fee
	existing.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Totals(_ context.Context, status string) (*Totals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t := &Totals{Amount: decimal.Zero, Fee: decimal.Zero}
	for _, p := range r.payments {
		if p.Status != status {
			continue
		}
		t.Count++
		t.Amount = t.Amount.Add(p.Amount)
		t.Fee = t.Fee.Add(p.Fee)
	}
	return t, nil
}

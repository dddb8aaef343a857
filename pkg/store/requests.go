package store

import (
	"sort"
	"sync"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// RequestBook holds the open donation requests posted by requesters.
// Requests are immutable once added; there is no edit or cancel flow.
type RequestBook struct {
	mu       sync.Mutex
	requests []model.DonationRequest
}

func NewRequestBook() *RequestBook {
	return &RequestBook{}
}

// Add registers a new donation request
func (r *RequestBook) Add(request model.DonationRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, request)
}

// List returns all requests sorted by urgency (Critical first), breaking
// ties by recency
func (r *RequestBook) List() []model.DonationRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.DonationRequest, len(r.requests))
	copy(out, r.requests)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Urgency.Rank() != out[j].Urgency.Rank() {
			return out[i].Urgency.Rank() > out[j].Urgency.Rank()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

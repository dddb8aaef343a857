package store

import (
	"sync"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// DonationHistory holds donation records most-recent-first. Successful
// scheduling attempts prepend, so ordering is the submission order of
// successful attempts.
type DonationHistory struct {
	mu        sync.Mutex
	donations []model.Donation
}

func NewDonationHistory() *DonationHistory {
	return &DonationHistory{}
}

// Prepend inserts a donation at the head of the history
func (h *DonationHistory) Prepend(donation model.Donation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.donations = append([]model.Donation{donation}, h.donations...)
}

// Append adds a donation at the tail; used for seeding older records
func (h *DonationHistory) Append(donation model.Donation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.donations = append(h.donations, donation)
}

// List returns a copy of the full history, most recent first
func (h *DonationHistory) List() []model.Donation {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.Donation, len(h.donations))
	copy(out, h.donations)
	return out
}

// ListForDonor returns the history rows owned by the given donor,
// preserving most-recent-first order
func (h *DonationHistory) ListForDonor(donorID string) []model.Donation {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.Donation, 0)
	for _, d := range h.donations {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	return out
}

package store

import (
	"errors"
	"sync"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// ErrDonorNotFound is returned when a donor id is not present in the directory
var ErrDonorNotFound = errors.New("donor not found")

// DonorDirectory is the process-wide mutable list of donors surfaced by
// search. Insertion order is preserved and is the order search results are
// returned in. Every mutating operation runs under a single critical section.
type DonorDirectory struct {
	mu     sync.Mutex
	donors []model.User
}

func NewDonorDirectory() *DonorDirectory {
	return &DonorDirectory{}
}

// Add appends a donor to the directory, preserving insertion order
func (d *DonorDirectory) Add(donor model.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.donors = append(d.donors, donor)
}

// List returns a copy of the directory in insertion order
func (d *DonorDirectory) List() []model.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]model.User, len(d.donors))
	copy(out, d.donors)
	return out
}

// Get returns the donor with the given id
func (d *DonorDirectory) Get(id string) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, donor := range d.donors {
		if donor.ID == id {
			return donor, nil
		}
	}
	return model.User{}, ErrDonorNotFound
}

// SetAvailability updates a donor's availability and deferral reason in one
// critical section. Pass a nil reason when marking a donor available.
func (d *DonorDirectory) SetAvailability(id string, available bool, reason *string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.donors {
		if d.donors[i].ID == id {
			d.donors[i].IsAvailable = available
			if available {
				d.donors[i].DeferralReason = nil
			} else {
				d.donors[i].DeferralReason = reason
			}
			return nil
		}
	}
	return ErrDonorNotFound
}

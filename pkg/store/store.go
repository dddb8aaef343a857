package store

// Store bundles the process-wide collections. All state lives in memory for
// the lifetime of the process and resets on restart.
type Store struct {
	Users    *UserDirectory
	Donors   *DonorDirectory
	History  *DonationHistory
	Requests *RequestBook
	Events   *EventStore
	Sessions *SessionRegistry
	Badges   *BadgeCatalog
}

// NewStore creates an empty store. Call Seed to populate the demo dataset.
func NewStore() *Store {
	return &Store{
		Users:    NewUserDirectory(),
		Donors:   NewDonorDirectory(),
		History:  NewDonationHistory(),
		Requests: NewRequestBook(),
		Events:   NewEventStore(),
		Sessions: NewSessionRegistry(),
		Badges:   NewBadgeCatalog(nil),
	}
}

package store

import "github.com/kmcneely/bloodlink/pkg/core/model"

// BadgeCatalog is the static catalog of badges users can earn. It is
// immutable after construction; ownership is recorded on User.Badges as a
// set of ids referencing this catalog.
type BadgeCatalog struct {
	badges []model.Badge
	byID   map[string]model.Badge
}

func NewBadgeCatalog(badges []model.Badge) *BadgeCatalog {
	byID := make(map[string]model.Badge, len(badges))
	for _, b := range badges {
		byID[b.ID] = b
	}
	return &BadgeCatalog{badges: badges, byID: byID}
}

// List returns the catalog in definition order
func (c *BadgeCatalog) List() []model.Badge {
	out := make([]model.Badge, len(c.badges))
	copy(out, c.badges)
	return out
}

// Get looks a badge up by id
func (c *BadgeCatalog) Get(id string) (model.Badge, bool) {
	b, ok := c.byID[id]
	return b, ok
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// DonorFilters narrows the donor directory. Empty fields are ignored, so
// the zero value returns the full directory.
type DonorFilters struct {
	BloodGroup string
	RhFactor   string
	Location   string
}

// IsEmpty reports whether every filter field is unset
func (f DonorFilters) IsEmpty() bool {
	return f.BloodGroup == "" && f.RhFactor == "" && f.Location == ""
}

// DonorLister provides the donor directory in insertion order
type DonorLister interface {
	List() []model.User
}

// SearchDonors returns the donors matching the conjunction of the non-empty
// filters, in directory (insertion) order. Donors without a blood profile
// fail any non-empty blood-type filter. The search is deterministic and
// side-effect free.
func SearchDonors(ctx context.Context, directory DonorLister, logger *zap.Logger, filters DonorFilters) ([]model.User, error) {
	if filters.BloodGroup != "" && !model.BloodGroup(filters.BloodGroup).IsValid() {
		return nil, fmt.Errorf("invalid blood group filter %q", filters.BloodGroup)
	}
	if filters.RhFactor != "" && !model.RhFactor(filters.RhFactor).IsValid() {
		return nil, fmt.Errorf("invalid rh factor filter %q", filters.RhFactor)
	}

	donors := directory.List()
	matched := lo.Filter(donors, func(donor model.User, _ int) bool {
		return donorMatches(donor, filters)
	})

	logger.Debug("Donor search completed",
		zap.Int("directory_size", len(donors)),
		zap.Int("matched", len(matched)),
		zap.String("blood_group", filters.BloodGroup),
		zap.String("rh_factor", filters.RhFactor),
		zap.String("location", filters.Location))

	return matched, nil
}

func donorMatches(donor model.User, filters DonorFilters) bool {
	if filters.BloodGroup != "" {
		if donor.BloodType == nil || donor.BloodType.Group != model.BloodGroup(filters.BloodGroup) {
			return false
		}
	}
	if filters.RhFactor != "" {
		if donor.BloodType == nil || donor.BloodType.RhFactor != model.RhFactor(filters.RhFactor) {
			return false
		}
	}
	if filters.Location != "" {
		if !strings.Contains(strings.ToLower(donor.Location), strings.ToLower(filters.Location)) {
			return false
		}
	}
	return true
}

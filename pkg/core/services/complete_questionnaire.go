package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/eligibility"
)

// AvailabilityStore updates a donor's availability state in the directory
type AvailabilityStore interface {
	SetAvailability(id string, available bool, reason *string) error
}

// CompleteQuestionnaire evaluates the health questionnaire and applies the
// verdict to the donor's directory entry: IsAvailable follows eligibility
// and DeferralReason carries the failing rule's reason (nil when eligible).
// An incomplete questionnaire is rejected before any state change.
func CompleteQuestionnaire(
	ctx context.Context,
	donors AvailabilityStore,
	logger *zap.Logger,
	donorID string,
	answers eligibility.Answers,
) (eligibility.Result, error) {
	result, err := eligibility.Evaluate(answers)
	if err != nil {
		return eligibility.Result{}, err
	}

	if err := donors.SetAvailability(donorID, result.Eligible, result.Reason); err != nil {
		return eligibility.Result{}, fmt.Errorf("failed to update donor availability: %w", err)
	}

	if result.Eligible {
		logger.Info("Donor passed eligibility questionnaire", zap.String("donor_id", donorID))
	} else {
		logger.Info("Donor deferred by eligibility questionnaire",
			zap.String("donor_id", donorID),
			zap.String("reason", *result.Reason))
	}

	return result, nil
}

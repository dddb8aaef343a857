package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// RequestLister returns open requests ordered by urgency then recency
type RequestLister interface {
	List() []model.DonationRequest
}

// EventLister returns events ordered by date ascending
type EventLister interface {
	List() []model.BloodDriveEvent
}

// HistoryLister returns donation history rows, most recent first
type HistoryLister interface {
	ListForDonor(donorID string) []model.Donation
}

// ListRequests returns the open donation requests, most urgent first
func ListRequests(ctx context.Context, requests RequestLister, logger *zap.Logger) []model.DonationRequest {
	out := requests.List()
	logger.Debug("Listed donation requests", zap.Int("count", len(out)))
	return out
}

// ListEvents returns the blood drive events, soonest first
func ListEvents(ctx context.Context, events EventLister, logger *zap.Logger) []model.BloodDriveEvent {
	out := events.List()
	logger.Debug("Listed blood drive events", zap.Int("count", len(out)))
	return out
}

// ViewHistory returns a donor's donation history, most recent first.
// Ordering is the prepend order of successful scheduling attempts followed
// by the seeded records.
func ViewHistory(ctx context.Context, history HistoryLister, logger *zap.Logger, donorID string) []model.Donation {
	out := history.ListForDonor(donorID)
	logger.Debug("Listed donation history",
		zap.String("donor_id", donorID),
		zap.Int("count", len(out)))
	return out
}

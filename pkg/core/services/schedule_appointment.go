package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/clients/bookingclient"
	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// ErrInvalidDetails is returned when an appointment is submitted without a
// usable date and time. The attempt never reaches the backend.
var ErrInvalidDetails = errors.New("a valid date and time are required")

// ErrNoBloodProfile is returned when the target donor has not completed
// blood type profiling
var ErrNoBloodProfile = errors.New("donor has no blood type profile")

// AppointmentDetails is the scheduling form input. Date is 2006-01-02 and
// Time is 15:04; Notes is free text.
type AppointmentDetails struct {
	Date  string
	Time  string
	Notes string
}

// ScheduleOutcome is the terminal state of one scheduling attempt. A failed
// attempt is a business outcome, not an error: Scheduled is false, Reason
// explains why, and no state was mutated. A new attempt starts fresh.
type ScheduleOutcome struct {
	Scheduled bool
	Reason    string
	Donation  *model.Donation
}

// ScheduleDonorStore provides donor lookup and availability updates
type ScheduleDonorStore interface {
	Get(id string) (model.User, error)
	SetAvailability(id string, available bool, reason *string) error
}

// HistoryPrepender records a new donation at the head of the history
type HistoryPrepender interface {
	Prepend(donation model.Donation)
}

// BookingBackend is the (simulated) scheduling backend
type BookingBackend interface {
	BookAppointment(ctx context.Context, donorID string, when time.Time) error
}

// ScheduleAppointment runs one scheduling attempt against the backend.
// actorID is the user whose donation history the appointment lands in;
// targetDonorID is the donor being booked. On success a SCHEDULED donation
// is prepended to the history and the target donor is marked unavailable
// with the appointment deferral reason. On backend failure nothing is
// mutated and the outcome invites a retry.
func ScheduleAppointment(
	ctx context.Context,
	donors ScheduleDonorStore,
	history HistoryPrepender,
	backend BookingBackend,
	logger *zap.Logger,
	actorID string,
	targetDonorID string,
	details AppointmentDetails,
) (*ScheduleOutcome, error) {
	when, err := parseAppointmentTime(details)
	if err != nil {
		return nil, err
	}

	donor, err := donors.Get(targetDonorID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up donor: %w", err)
	}
	if donor.BloodType == nil {
		return nil, ErrNoBloodProfile
	}

	logger.Info("Submitting scheduling attempt",
		zap.String("actor_id", actorID),
		zap.String("donor_id", targetDonorID),
		zap.Time("when", when))

	if err := backend.BookAppointment(ctx, targetDonorID, when); err != nil {
		if errors.Is(err, bookingclient.ErrUnavailable) {
			logger.Warn("Scheduling attempt failed",
				zap.String("donor_id", targetDonorID),
				zap.String("reason", err.Error()))
			return &ScheduleOutcome{Scheduled: false, Reason: err.Error()}, nil
		}
		return nil, fmt.Errorf("booking call failed: %w", err)
	}

	donation := model.Donation{
		ID:        uuid.New().String(),
		DonorID:   actorID,
		Date:      when,
		Location:  fmt.Sprintf("Appointment with %s", donor.Name),
		BloodType: *donor.BloodType,
		Units:     1,
		Status:    model.DonationScheduled,
	}
	history.Prepend(donation)

	reason := model.DeferralAppointmentScheduled
	if err := donors.SetAvailability(targetDonorID, false, &reason); err != nil {
		return nil, fmt.Errorf("failed to mark donor unavailable: %w", err)
	}

	logger.Info("Appointment scheduled",
		zap.String("donation_id", donation.ID),
		zap.String("donor_id", targetDonorID),
		zap.Time("when", when))

	return &ScheduleOutcome{Scheduled: true, Donation: &donation}, nil
}

// parseAppointmentTime validates and combines the date and time fields.
// Empty or unparseable values are a validation error surfaced before any
// backend call.
func parseAppointmentTime(details AppointmentDetails) (time.Time, error) {
	date := strings.TrimSpace(details.Date)
	clock := strings.TrimSpace(details.Time)
	if date == "" || clock == "" {
		return time.Time{}, ErrInvalidDetails
	}

	when, err := time.ParseInLocation("2006-01-02T15:04", date+"T"+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDetails, err)
	}
	return when, nil
}

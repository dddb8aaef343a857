package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// RequestAdder registers new donation requests
type RequestAdder interface {
	Add(request model.DonationRequest)
}

// CreateRequestInput is the request posting form used by requesters
type CreateRequestInput struct {
	Requester     model.User `validate:"required"`
	BloodGroup    string     `validate:"required"`
	RhFactor      string     `validate:"required"`
	UnitsRequired int        `validate:"required,min=1"`
	Location      string     `validate:"required"`
	Urgency       string     `validate:"required"`
	Note          string
	PointsOffered int `validate:"min=0"`
}

// CreateRequest validates and stores a new donation request. Requests are
// immutable once created; there is no edit or cancel flow.
func CreateRequest(
	ctx context.Context,
	requests RequestAdder,
	logger *zap.Logger,
	input CreateRequestInput,
) (*model.DonationRequest, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid request input: %w", err)
	}
	if !model.BloodGroup(input.BloodGroup).IsValid() {
		return nil, fmt.Errorf("invalid blood group %q", input.BloodGroup)
	}
	if !model.RhFactor(input.RhFactor).IsValid() {
		return nil, fmt.Errorf("invalid rh factor %q", input.RhFactor)
	}
	urgency := model.Urgency(input.Urgency)
	if urgency.Rank() == 0 {
		return nil, fmt.Errorf("invalid urgency %q", input.Urgency)
	}
	if input.Requester.Role != model.RoleRequester {
		return nil, fmt.Errorf("only requesters may post donation requests")
	}

	request := model.DonationRequest{
		ID:        uuid.New().String(),
		Requester: input.Requester,
		BloodType: model.BloodType{
			Group:    model.BloodGroup(input.BloodGroup),
			RhFactor: model.RhFactor(input.RhFactor),
		},
		UnitsRequired: input.UnitsRequired,
		Location:      input.Location,
		Urgency:       urgency,
		CreatedAt:     time.Now(),
		Note:          input.Note,
		PointsOffered: input.PointsOffered,
	}
	requests.Add(request)

	logger.Info("Donation request posted",
		zap.String("request_id", request.ID),
		zap.String("blood_type", request.BloodType.String()),
		zap.String("urgency", string(request.Urgency)))

	return &request, nil
}

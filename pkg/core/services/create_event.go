package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

var validate = validator.New()

// maxSeriesOccurrences bounds how many dated occurrences a recurring drive
// series may expand into
const maxSeriesOccurrences = 12

// TextGenerator produces event copy; unavailable configuration or call
// failures degrade to templated fallbacks inside the gateway
type TextGenerator interface {
	GenerateEventDescription(ctx context.Context, theme string) string
}

// EventAdder registers new blood drive events
type EventAdder interface {
	Add(event model.BloodDriveEvent)
}

// CreateEventInput is the event creation form. When Description is empty
// the gateway generates one from Theme (falling back to Title). RRule, if
// set, expands the drive into a recurring series starting at Date.
type CreateEventInput struct {
	Title       string `validate:"required"`
	Theme       string
	Description string
	Location    string    `validate:"required"`
	Date        time.Time `validate:"required"`
	Organizer   string    `validate:"required"`
	RRule       string
	Occurrences int `validate:"omitempty,min=1"`
}

// CreateEventResult holds the created event, or the full series when a
// recurrence rule was supplied
type CreateEventResult struct {
	Events []model.BloodDriveEvent
}

// CreateEvent validates the input, generates a description through the
// text gateway when none is supplied, and stores the event. A recurrence
// rule expands into up to Occurrences dated events sharing the same copy.
func CreateEvent(
	ctx context.Context,
	events EventAdder,
	textgen TextGenerator,
	logger *zap.Logger,
	input CreateEventInput,
) (*CreateEventResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid event input: %w", err)
	}

	description := input.Description
	if description == "" {
		theme := input.Theme
		if theme == "" {
			theme = input.Title
		}
		logger.Debug("Generating event description", zap.String("theme", theme))
		description = textgen.GenerateEventDescription(ctx, theme)
	}

	dates := []time.Time{input.Date}
	if input.RRule != "" {
		expanded, err := expandSeries(input)
		if err != nil {
			return nil, err
		}
		dates = expanded
	}

	created := make([]model.BloodDriveEvent, 0, len(dates))
	for _, date := range dates {
		event := model.BloodDriveEvent{
			ID:          uuid.New().String(),
			Title:       input.Title,
			Description: description,
			Location:    input.Location,
			Date:        date,
			Organizer:   input.Organizer,
		}
		events.Add(event)
		created = append(created, event)
	}

	logger.Info("Blood drive event created",
		zap.String("title", input.Title),
		zap.Int("occurrences", len(created)))

	return &CreateEventResult{Events: created}, nil
}

// expandSeries resolves the recurrence rule into concrete occurrence dates
// anchored at the input date
func expandSeries(input CreateEventInput) ([]time.Time, error) {
	rule, err := rrule.StrToRRule(input.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule: %w", err)
	}
	rule.DTStart(input.Date)

	count := input.Occurrences
	if count == 0 || count > maxSeriesOccurrences {
		count = maxSeriesOccurrences
	}

	// Iterate rather than materializing the rule: an unbounded rule (no
	// COUNT/UNTIL) would otherwise never terminate.
	next := rule.Iterator()
	dates := make([]time.Time, 0, count)
	for len(dates) < count {
		date, ok := next()
		if !ok {
			break
		}
		dates = append(dates, date)
	}
	if len(dates) == 0 {
		return []time.Time{input.Date}, nil
	}
	return dates, nil
}

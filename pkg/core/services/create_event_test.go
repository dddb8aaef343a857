package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// mockEventStore implements EventAdder
type mockEventStore struct {
	events []model.BloodDriveEvent
}

func (m *mockEventStore) Add(event model.BloodDriveEvent) {
	m.events = append(m.events, event)
}

// mockTextGen implements TextGenerator with a canned description
type mockTextGen struct {
	description string
	themes      []string
}

func (m *mockTextGen) GenerateEventDescription(ctx context.Context, theme string) string {
	m.themes = append(m.themes, theme)
	return m.description
}

func validEventInput() CreateEventInput {
	return CreateEventInput{
		Title:     "Community Heroes Blood Drive",
		Theme:     "superheroes",
		Location:  "Metropolis City Hall",
		Date:      time.Date(2026, 10, 3, 9, 0, 0, 0, time.Local),
		Organizer: "Metropolis Red Cross",
	}
}

func TestCreateEvent_GeneratesDescriptionFromTheme(t *testing.T) {
	events := &mockEventStore{}
	textgen := &mockTextGen{description: "Be a hero, give blood!"}

	result, err := CreateEvent(context.Background(), events, textgen, zap.NewNop(), validEventInput())
	require.NoError(t, err)
	require.Len(t, result.Events, 1)

	event := result.Events[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "Be a hero, give blood!", event.Description)
	assert.Equal(t, []string{"superheroes"}, textgen.themes)
	assert.Len(t, events.events, 1)
}

func TestCreateEvent_SuppliedDescriptionSkipsGateway(t *testing.T) {
	textgen := &mockTextGen{description: "should not be used"}
	input := validEventInput()
	input.Description = "Hand-written copy."

	result, err := CreateEvent(context.Background(), &mockEventStore{}, textgen, zap.NewNop(), input)
	require.NoError(t, err)
	assert.Equal(t, "Hand-written copy.", result.Events[0].Description)
	assert.Empty(t, textgen.themes, "gateway must not be called when a description is supplied")
}

func TestCreateEvent_ThemeDefaultsToTitle(t *testing.T) {
	textgen := &mockTextGen{description: "generated"}
	input := validEventInput()
	input.Theme = ""

	_, err := CreateEvent(context.Background(), &mockEventStore{}, textgen, zap.NewNop(), input)
	require.NoError(t, err)
	assert.Equal(t, []string{"Community Heroes Blood Drive"}, textgen.themes)
}

func TestCreateEvent_RecurringSeries(t *testing.T) {
	events := &mockEventStore{}
	input := validEventInput()
	input.RRule = "FREQ=WEEKLY;COUNT=4"
	input.Occurrences = 4

	result, err := CreateEvent(context.Background(), events, &mockTextGen{description: "d"}, zap.NewNop(), input)
	require.NoError(t, err)
	require.Len(t, result.Events, 4)

	for i, event := range result.Events {
		expected := input.Date.AddDate(0, 0, 7*i)
		assert.Equal(t, expected, event.Date, "occurrence %d", i)
		assert.Equal(t, input.Title, event.Title)
		assert.Equal(t, "d", event.Description)
	}
	assert.Len(t, events.events, 4)
}

func TestCreateEvent_SeriesOccurrenceCap(t *testing.T) {
	input := validEventInput()
	input.RRule = "FREQ=WEEKLY;COUNT=10"
	input.Occurrences = 2

	result, err := CreateEvent(context.Background(), &mockEventStore{}, &mockTextGen{description: "d"}, zap.NewNop(), input)
	require.NoError(t, err)
	assert.Len(t, result.Events, 2)
}

func TestCreateEvent_InvalidRRule(t *testing.T) {
	input := validEventInput()
	input.RRule = "FREQ=SOMETIMES"

	_, err := CreateEvent(context.Background(), &mockEventStore{}, &mockTextGen{}, zap.NewNop(), input)
	assert.Error(t, err)
}

func TestCreateEvent_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateEventInput)
	}{
		{"missing title", func(i *CreateEventInput) { i.Title = "" }},
		{"missing location", func(i *CreateEventInput) { i.Location = "" }},
		{"missing date", func(i *CreateEventInput) { i.Date = time.Time{} }},
		{"missing organizer", func(i *CreateEventInput) { i.Organizer = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &mockEventStore{}
			input := validEventInput()
			tt.mutate(&input)

			_, err := CreateEvent(context.Background(), events, &mockTextGen{}, zap.NewNop(), input)
			assert.Error(t, err)
			assert.Empty(t, events.events)
		})
	}
}

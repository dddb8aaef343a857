package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmcneely/bloodlink/pkg/core/services"
)

// ListEventsCmd creates the listEvents command
func ListEventsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEvents",
		Short: "List blood drive events, soonest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events := services.ListEvents(app.Ctx, app.Store.Events, app.Logger)

			fmt.Printf("\n📅 Blood drive events (%d):\n\n", len(events))
			for _, e := range events {
				fmt.Printf("- %s — %s @ %s (by %s)\n", e.Date.Format("2006-01-02 15:04"), e.Title, e.Location, e.Organizer)
				fmt.Printf("    %s\n", e.Description)
			}

			return nil
		},
	}
}

// CreateEventCmd creates the createEvent command
func CreateEventCmd(app *AppContext) *cobra.Command {
	var title, theme, description, location, date, organizer, rruleStr string
	var occurrences int

	cmd := &cobra.Command{
		Use:   "createEvent",
		Short: "Create a blood drive event (description generated when omitted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := time.ParseInLocation("2006-01-02T15:04", date, time.Local)
			if err != nil {
				return fmt.Errorf("date must be formatted as 2006-01-02T15:04: %w", err)
			}

			result, err := services.CreateEvent(app.Ctx, app.Store.Events, app.Gemini, app.Logger, services.CreateEventInput{
				Title:       title,
				Theme:       theme,
				Description: description,
				Location:    location,
				Date:        when,
				Organizer:   organizer,
				RRule:       rruleStr,
				Occurrences: occurrences,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Created %d event(s):\n\n", len(result.Events))
			for _, e := range result.Events {
				fmt.Printf("- %s — %s (%s)\n", e.Date.Format("2006-01-02 15:04"), e.Title, e.ID)
			}
			fmt.Printf("\nDescription: %s\n", result.Events[0].Description)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title (required)")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme used to generate the description")
	cmd.Flags().StringVar(&description, "description", "", "Description (generated when omitted)")
	cmd.Flags().StringVar(&location, "location", "", "Event location (required)")
	cmd.Flags().StringVar(&date, "date", "", "Event date and time, 2006-01-02T15:04 (required)")
	cmd.Flags().StringVar(&organizer, "organizer", "", "Organizer name (required)")
	cmd.Flags().StringVar(&rruleStr, "rrule", "", "Recurrence rule for a drive series (e.g. FREQ=WEEKLY;COUNT=4)")
	cmd.Flags().IntVar(&occurrences, "occurrences", 0, "Cap on how many series occurrences to create")

	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmcneely/bloodlink/pkg/core/services"
	"github.com/kmcneely/bloodlink/pkg/store"
)

// ScheduleAppointmentCmd creates the scheduleAppointment command
func ScheduleAppointmentCmd(app *AppContext) *cobra.Command {
	var date, timeOfDay, notes, actorID string

	cmd := &cobra.Command{
		Use:   "scheduleAppointment <donor_id>",
		Short: "Schedule a donation appointment with a donor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if actorID == "" {
				actorID = store.SeedDonorUserID
			}

			outcome, err := services.ScheduleAppointment(
				app.Ctx,
				app.Store.Donors,
				app.Store.History,
				app.Booking,
				app.Logger,
				actorID,
				args[0],
				services.AppointmentDetails{Date: date, Time: timeOfDay, Notes: notes},
			)
			if err != nil {
				return err
			}

			if outcome.Scheduled {
				donor, _ := app.Store.Donors.Get(args[0])
				fmt.Printf("\n✓ Request sent! Your donation request to %s has been successfully sent.\n", donor.Name)
				fmt.Printf("  You can track this in your donation history (record %s).\n", outcome.Donation.ID)
			} else {
				fmt.Printf("\n✗ Scheduling failed: %s\n", outcome.Reason)
				fmt.Printf("  Please try again.\n")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Preferred date (2006-01-02)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Preferred time (15:04)")
	cmd.Flags().StringVar(&notes, "notes", "", "Additional notes")
	cmd.Flags().StringVar(&actorID, "actor", "", "Acting user id (defaults to the demo donor)")

	return cmd
}

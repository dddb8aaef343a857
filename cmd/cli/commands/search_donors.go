package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmcneely/bloodlink/pkg/core/services"
)

// SearchDonorsCmd creates the searchDonors command
func SearchDonorsCmd(app *AppContext) *cobra.Command {
	var bloodGroup, rhFactor, location string

	cmd := &cobra.Command{
		Use:   "searchDonors",
		Short: "Search the donor directory by blood group, rh factor and location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			donors, err := services.SearchDonors(app.Ctx, app.Store.Donors, app.Logger, services.DonorFilters{
				BloodGroup: bloodGroup,
				RhFactor:   rhFactor,
				Location:   location,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d donors:\n\n", len(donors))
			for _, d := range donors {
				bloodType := "unprofiled"
				if d.BloodType != nil {
					bloodType = d.BloodType.String()
				}
				availability := "✓ available"
				if !d.IsAvailable {
					availability = "✗ unavailable"
					if d.DeferralReason != nil {
						availability += fmt.Sprintf(" (%s)", *d.DeferralReason)
					}
				}
				fmt.Printf("- %s (%s) - %s - %s - %s\n", d.Name, d.ID, bloodType, d.Location, availability)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&bloodGroup, "bloodGroup", "", "Blood group filter (A, B, AB, O)")
	cmd.Flags().StringVar(&rhFactor, "rhFactor", "", "Rh factor filter (+ or -)")
	cmd.Flags().StringVar(&location, "location", "", "Case-insensitive location substring filter")

	return cmd
}

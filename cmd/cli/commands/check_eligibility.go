package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmcneely/bloodlink/pkg/core/eligibility"
	"github.com/kmcneely/bloodlink/pkg/core/services"
	"github.com/kmcneely/bloodlink/pkg/store"
)

// CheckEligibilityCmd creates the checkEligibility command. The five flags
// mirror the health questionnaire; all must be answered yes or no.
func CheckEligibilityCmd(app *AppContext) *cobra.Command {
	var donorID, age, weight, illness, medication, tattoo string

	cmd := &cobra.Command{
		Use:   "checkEligibility",
		Short: "Run the health questionnaire and update the donor's availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if donorID == "" {
				donorID = store.SeedDonorUserID
			}

			result, err := services.CompleteQuestionnaire(app.Ctx, app.Store.Donors, app.Logger, donorID, eligibility.Answers{
				Age:           eligibility.Answer(age),
				Weight:        eligibility.Answer(weight),
				RecentIllness: eligibility.Answer(illness),
				Medication:    eligibility.Answer(medication),
				RecentTattoo:  eligibility.Answer(tattoo),
			})
			if err != nil {
				return err
			}

			if result.Eligible {
				fmt.Printf("\n✓ Eligible to donate! Availability updated.\n")
			} else {
				fmt.Printf("\n✗ Not eligible: %s\n", *result.Reason)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&donorID, "donor", "", "Donor id (defaults to the demo donor)")
	cmd.Flags().StringVar(&age, "age", "", "Between 18 and 65 years old? (yes/no)")
	cmd.Flags().StringVar(&weight, "weight", "", "Weigh more than 50kg? (yes/no)")
	cmd.Flags().StringVar(&illness, "illness", "", "Fever or felt unwell in the last 48 hours? (yes/no)")
	cmd.Flags().StringVar(&medication, "medication", "", "Currently taking antibiotics? (yes/no)")
	cmd.Flags().StringVar(&tattoo, "tattoo", "", "Tattoo, piercing or permanent make-up in the last 3 months? (yes/no)")

	return cmd
}

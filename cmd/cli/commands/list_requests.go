package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmcneely/bloodlink/pkg/core/services"
)

// ListRequestsCmd creates the listRequests command
func ListRequestsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRequests",
		Short: "List open donation requests, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requests := services.ListRequests(app.Ctx, app.Store.Requests, app.Logger)

			fmt.Printf("\n🩸 Open donation requests (%d):\n\n", len(requests))
			for _, r := range requests {
				fmt.Printf("- [%s] %s needs %d unit(s) of %s at %s (+%d pts)\n",
					r.Urgency,
					r.Requester.Name,
					r.UnitsRequired,
					r.BloodType.String(),
					r.Location,
					r.PointsOffered,
				)
				if r.Note != "" {
					fmt.Printf("    %s\n", r.Note)
				}
			}

			return nil
		},
	}
}

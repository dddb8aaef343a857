package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmcneely/bloodlink/pkg/core/services"
	"github.com/kmcneely/bloodlink/pkg/store"
)

// ViewHistoryCmd creates the viewHistory command
func ViewHistoryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewHistory [donor_id]",
		Short: "View a donor's donation history, most recent first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			donorID := store.SeedDonorUserID
			if len(args) > 0 {
				donorID = args[0]
			}

			history := services.ViewHistory(app.Ctx, app.Store.History, app.Logger, donorID)

			fmt.Printf("\n📖 Donation history for %s (%d records):\n\n", donorID, len(history))
			for _, d := range history {
				fmt.Printf("- %s  %-9s  %s  %d unit(s) of %s\n",
					d.Date.Format("2006-01-02 15:04"),
					d.Status,
					d.Location,
					d.Units,
					d.BloodType.String(),
				)
			}

			return nil
		},
	}
}

// ListBadgesCmd creates the listBadges command
func ListBadgesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listBadges",
		Short: "List the badge catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			badges := app.Store.Badges.List()

			fmt.Printf("\n🏅 Badges (%d):\n\n", len(badges))
			for _, b := range badges {
				fmt.Printf("- %s (%s): %s\n", b.Name, b.ID, b.Description)
			}

			return nil
		},
	}
}

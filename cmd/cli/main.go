package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/cmd/cli/commands"
	"github.com/kmcneely/bloodlink/internal/config"
	"github.com/kmcneely/bloodlink/pkg/clients/bookingclient"
	"github.com/kmcneely/bloodlink/pkg/clients/geminiclient"
	"github.com/kmcneely/bloodlink/pkg/core/chat"
	"github.com/kmcneely/bloodlink/pkg/store"
	"github.com/kmcneely/bloodlink/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "BloodLink CLI - Coordinate blood donations",
		Long:  `A CLI tool for browsing donation requests, searching donors, scheduling appointments and chatting with donors. All state is in-memory and resets between runs; use interactive mode to keep state across commands.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name used to prefix log files")

	rootCmd.AddCommand(commands.SearchDonorsCmd(appRef()))
	rootCmd.AddCommand(commands.CheckEligibilityCmd(appRef()))
	rootCmd.AddCommand(commands.ScheduleAppointmentCmd(appRef()))
	rootCmd.AddCommand(commands.ChatCmd(appRef()))
	rootCmd.AddCommand(commands.ListRequestsCmd(appRef()))
	rootCmd.AddCommand(commands.ListEventsCmd(appRef()))
	rootCmd.AddCommand(commands.CreateEventCmd(appRef()))
	rootCmd.AddCommand(commands.ViewHistoryCmd(appRef()))
	rootCmd.AddCommand(commands.ListBadgesCmd(appRef()))
	rootCmd.AddCommand(commands.InteractiveCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext. It is allocated up front so command
// constructors can capture it before initApp populates it in
// PersistentPreRunE.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, stores and clients
func initApp() error {
	var err error
	appRef()
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Store = store.NewStore()
	store.Seed(app.Store, time.Now())
	app.Logger.Debug("Store seeded",
		zap.Int("donors", len(app.Store.Donors.List())),
		zap.Int("requests", len(app.Store.Requests.List())))

	app.Gemini = geminiclient.NewClient(app.Cfg.GeminiAPIKey, app.Cfg.Gemini.Model, app.Logger)
	if !app.Gemini.Configured() {
		app.Logger.Debug("Gemini key not configured, generated text uses fallbacks")
	}

	app.Booking = bookingclient.NewClient(app.Cfg.BackendLatency(), app.Logger)
	app.Chat = chat.NewManager(app.Store.Sessions, app.Gemini, app.Logger, app.Cfg.AutoReplyDelay())

	return nil
}

package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/internal/config"
	"github.com/kmcneely/bloodlink/pkg/clients/bookingclient"
	"github.com/kmcneely/bloodlink/pkg/clients/geminiclient"
	"github.com/kmcneely/bloodlink/pkg/core/chat"
	"github.com/kmcneely/bloodlink/pkg/store"
)

// AppContext holds the application dependencies shared by all commands
type AppContext struct {
	Ctx     context.Context
	Cfg     *config.Config
	Logger  *zap.Logger
	Store   *store.Store
	Chat    *chat.Manager
	Gemini  *geminiclient.Client
	Booking *bookingclient.Client
}

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap/zapcore"

	"github.com/kmcneely/bloodlink/internal/config"
	transport "github.com/kmcneely/bloodlink/internal/transport/http"
	"github.com/kmcneely/bloodlink/pkg/clients/bookingclient"
	"github.com/kmcneely/bloodlink/pkg/clients/geminiclient"
	"github.com/kmcneely/bloodlink/pkg/core/chat"
	"github.com/kmcneely/bloodlink/pkg/store"
	"github.com/kmcneely/bloodlink/pkg/utils/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.InitConsoleLogger(zapcore.InfoLevel)
	defer logger.Sync()

	st := store.NewStore()
	store.Seed(st, time.Now())

	gemini := geminiclient.NewClient(cfg.GeminiAPIKey, cfg.Gemini.Model, logger)
	booking := bookingclient.NewClient(cfg.BackendLatency(), logger)
	chatMgr := chat.NewManager(st.Sessions, gemini, logger, cfg.AutoReplyDelay())

	app := fiber.New(fiber.Config{AppName: "bloodlink"})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.AllowedOrigins}))

	handler := transport.NewHandler(st, chatMgr, gemini, booking, logger)
	handler.Register(app)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Starting bloodlink server")
	if err := app.Listen(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

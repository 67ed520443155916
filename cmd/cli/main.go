package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/padips/padips-cli/internal/api"
	"github.com/padips/padips-cli/internal/buildinfo"
	"github.com/padips/padips-cli/internal/cli"
	"github.com/padips/padips-cli/internal/config"
	"github.com/padips/padips-cli/internal/logging"
	"github.com/padips/padips-cli/internal/realtime"
	"github.com/padips/padips-cli/internal/services"
	"github.com/padips/padips-cli/internal/session"
	"github.com/padips/padips-cli/internal/storage"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	apiClient := api.NewHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.RequestTimeout)
	store := storage.NewSQLiteSessionStore(db)
	channel := realtime.NewWebSocketChannel(cfg.RealtimeURL, logger)

	sessions := session.NewManager(store, apiClient, channel, logger, cli.ForceLogoutNotice)
	apiClient.OnSessionRevoked(sessions.HandleForceLogout)

	app := cli.NewApp(cfg, logger,
		services.NewAuthService(apiClient),
		services.NewTestService(apiClient),
		services.NewAdminService(apiClient),
		services.NewCommunityService(apiClient),
		sessions,
	)

	app.Run(ctx)
}

package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Sheets   *sheetsclient.Client
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
	Env      string
}

// EnsureSheets initializes the sheets client on first use. Commands that
// never touch a spreadsheet skip the OAuth flow entirely.
func (app *AppContext) EnsureSheets() (*sheetsclient.Client, error) {
	if app.Sheets != nil {
		return app.Sheets, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	app.Sheets = client
	app.Logger.Debug("Sheets client initialized successfully")
	return client, nil
}

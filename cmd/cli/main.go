package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/cmd/cli/commands"
	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/postgres"
	"github.com/jakechorley/duty-roster/pkg/utils/logging"
)

var (
	env      string
	app      = &commands.AppContext{}
	database *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "duty-roster",
		Short: "Duty Roster CLI - Build fair duty rosters",
		Long: `A CLI for running a duty roster: import the employee directory from a
spreadsheet, solve a roster that honours blackouts, rest rules and holiday
bids while levelling points, publish it back to a sheet and record the
points earned.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if database != nil {
				database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(
		commands.ImportEmployeesCmd(app),
		commands.ListEmployeesCmd(app),
		commands.SolveRosterCmd(app),
		commands.PublishRosterCmd(app),
		commands.RecordPointsCmd(app),
		commands.ServeCmd(app),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initApp wires up the logger, config and database shared by every command.
// The sheets client is created lazily by the commands that need it.
func initApp() error {
	var err error

	app.Ctx = context.Background()
	app.Env = env

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Starting duty-roster", zap.String("environment", env))

	// .env carries DATABASE_URL in development
	if err := godotenv.Load(); err == nil {
		app.Logger.Debug("Loaded environment variables from .env")
	}

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	app.Logger.Debug("Connecting to database")
	database, err = postgres.NewDB(app.Ctx, connString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Debug("Running database migrations")
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = database

	app.Logger.Info("Application initialized")
	return nil
}

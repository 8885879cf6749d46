package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/camden-git/carregistrybackend/config"
	"github.com/camden-git/carregistrybackend/database"
	"github.com/camden-git/carregistrybackend/logger"
)

var (
	// dbFlag overrides DATABASE_PATH when set
	dbFlag string

	cfg    config.Config
	appLog *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "carregistry",
	Short: "Persons and cars registry backed by SQLite",
	Long: `carregistry keeps a registry of persons and the cars they own in a
single SQLite file. It serves a JSON API, imports and exports CSV files
and prints registry statistics.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLog != nil {
			appLog.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "SQLite database file (overrides DATABASE_PATH)")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbFlag != "" {
		cfg.DatabasePath = dbFlag
	}

	appLog, err = logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	return nil
}

func openStore(path string) (*database.Store, error) {
	store, err := database.OpenAndInit(database.Options{Path: path, SQLDebug: cfg.SQLDebug}, appLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return store, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/scentvault/storefront-backend/pkg/config"
	"github.com/scentvault/storefront-backend/pkg/db"
	"github.com/scentvault/storefront-backend/pkg/logger"
	"github.com/scentvault/storefront-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmdFlag := flag.String("cmd", "up", "up|down|status|redo|version|create|validate")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version YYYYMMDDHHMMSS (for version)")
	flag.Parse()

	// create and validate only touch the filesystem.
	switch *cmdFlag {
	case "create":
		path, err := migrate.CreateSQLMigration(*dir, *name)
		exitOn(context.Background(), logg, "create migration", err)
		fmt.Println("created migration:", path)
		return
	case "validate":
		exitOn(context.Background(), logg, "validate migrations", migrate.ValidateDir(*dir))
		fmt.Println("migration validation passed")
		return
	}

	cmd, err := migrate.ParseCommand(*cmdFlag)
	exitOn(context.Background(), logg, "parse command", err)

	cfg, err := config.Load()
	exitOn(context.Background(), logg, "load config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": string(cmd),
		"dir": *dir,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	exitOn(ctx, logg, "connect database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.SQL()
	exitOn(ctx, logg, "extract sql.DB", err)

	logg.Info(ctx, "migrate ready")
	exitOn(ctx, logg, "run migrations", migrate.Run(ctx, sqlDB, *dir, cmd, *version))
	logg.Info(ctx, "migrate finished")
}

func exitOn(ctx context.Context, logg *logger.Logger, step string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("migrate: %s failed", step), err)
	os.Exit(1)
}

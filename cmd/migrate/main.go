package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sagar-developer08/admin-ecom-sub002/pkg/config"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/db"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/migrate"
)

const usage = `usage: migrate [-dir <path>] <command> [args]

commands:
  up                 apply all pending migrations
  down               roll back the most recent migration
  status             print applied and pending migrations
  version <target>   migrate up or down to an exact version
  create <name>      write a new empty migration file
  validate           lint migration filenames and goose markers
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	logg := logger.New(logger.Options{ServiceName: "migrate"})
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fatal(ctx, logg, "loading config", err)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "command": command, "dir": *dir})

	// create and validate work on files alone.
	switch command {
	case "create":
		name := flag.Arg(1)
		if name == "" {
			fatal(ctx, logg, "create", fmt.Errorf("migration name required"))
		}
		path, err := migrate.CreateSQLMigration(*dir, name)
		if err != nil {
			fatal(ctx, logg, "creating migration", err)
		}
		fmt.Println("created", path)
		return
	case "validate":
		if err := migrate.ValidateDir(*dir); err != nil {
			fatal(ctx, logg, "validating migrations", err)
		}
		fmt.Println("migrations valid")
		return
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		fatal(ctx, logg, "connecting to database", err)
	}
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		fatal(ctx, logg, "unwrapping sql.DB", err)
	}

	switch command {
	case "up", "down", "status":
		if err := migrate.Run(ctx, sqlDB, *dir, command); err != nil {
			fatal(ctx, logg, "goose "+command, err)
		}
	case "version":
		target := flag.Arg(1)
		if target == "" {
			fatal(ctx, logg, "version", fmt.Errorf("target version required"))
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, *dir, target); err != nil {
			fatal(ctx, logg, "migrating to version", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func fatal(ctx context.Context, logg *logger.Logger, step string, err error) {
	logg.Error(ctx, step+" failed", err)
	os.Exit(1)
}

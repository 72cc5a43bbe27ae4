package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"
)

const (
	DefaultDir     = "pkg/migrate/migrations"
	DefaultDialect = "postgres"
)

// Command is a goose verb that runs against a live database.
type Command string

const (
	CommandUp      Command = "up"
	CommandDown    Command = "down"
	CommandStatus  Command = "status"
	CommandRedo    Command = "redo"
	CommandVersion Command = "version"
)

// ParseCommand accepts the goose verbs exposed by cmd/migrate.
func ParseCommand(raw string) (Command, error) {
	switch cmd := Command(strings.ToLower(strings.TrimSpace(raw))); cmd {
	case CommandUp, CommandDown, CommandStatus, CommandRedo, CommandVersion:
		return cmd, nil
	default:
		return "", fmt.Errorf("unknown migrate command %q", raw)
	}
}

// Run executes cmd against db. CommandVersion requires a target version.
func Run(ctx context.Context, db *sql.DB, dir string, cmd Command, target string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	if err := goose.SetDialect(DefaultDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch cmd {
	case CommandUp:
		return wrapGoose(cmd, goose.UpContext(ctx, db, dir))
	case CommandDown:
		return wrapGoose(cmd, goose.DownContext(ctx, db, dir))
	case CommandStatus:
		return wrapGoose(cmd, goose.StatusContext(ctx, db, dir))
	case CommandRedo:
		return wrapGoose(cmd, goose.RedoContext(ctx, db, dir))
	case CommandVersion:
		return migrateToVersion(ctx, db, dir, target)
	default:
		return fmt.Errorf("unknown migrate command %q", cmd)
	}
}

func wrapGoose(cmd Command, err error) error {
	if err != nil {
		return fmt.Errorf("goose %s: %w", cmd, err)
	}
	return nil
}

// migrateToVersion moves up or down until the schema sits at targetVersion.
func migrateToVersion(ctx context.Context, db *sql.DB, dir string, targetVersion string) error {
	target, err := parseVersion(targetVersion)
	if err != nil {
		return err
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		return wrapGoose("up-to", goose.UpToContext(ctx, db, dir, target))
	default:
		return wrapGoose("down-to", goose.DownToContext(ctx, db, dir, target))
	}
}

func parseVersion(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if !versionRe.MatchString(v) {
		return 0, fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS)", v)
	}
	return strconv.ParseInt(v, 10, 64)
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/modelctl/internal/flags"
	"github.com/zjrosen/modelctl/internal/lifecycle"
	"github.com/zjrosen/modelctl/internal/log"
)

// loadRegistry reads the configured registry file. A missing file is an empty
// registry.
func loadRegistry(ctx context.Context) (*lifecycle.Registry, error) {
	r := lifecycle.NewRegistry()
	if err := env.store.LoadOrEmpty(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// saveRegistry writes the registry file and, with the sqlite-mirror flag on,
// refreshes the SQLite mirror too.
func saveRegistry(ctx context.Context, r *lifecycle.Registry) error {
	if err := env.store.Save(ctx, r); err != nil {
		return err
	}
	if env.flags.Enabled(flags.FlagSQLiteMirror) {
		if _, err := exportRegistry(ctx, r, cfg.SQLite.Path); err != nil {
			return fmt.Errorf("updating sqlite mirror: %w", err)
		}
		log.Debug(log.CatCLI, "Refreshed sqlite mirror", "path", cfg.SQLite.Path)
	}
	return nil
}

// parseDate reads a command line date. Date-only and offset-less values are UTC
// unless the strict-dates flag requires a full RFC 3339 timestamp.
func parseDate(flag, value string) (time.Time, error) {
	if env.flags.Enabled(flags.FlagStrictDates) {
		t, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date for --%s: %q (strict-dates requires RFC 3339, e.g. 2024-01-31T00:00:00Z)", flag, value)
		}
		return t.UTC(), nil
	}
	t, err := lifecycle.ParseTimestamp(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date for --%s: %q (use YYYY-MM-DD or RFC 3339)", flag, value)
	}
	return t, nil
}

// referenceTime returns the parsed --at value, or the current time when unset.
func referenceTime(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	return parseDate("at", value)
}

func notFound(name, version string) error {
	return fmt.Errorf("model %s v%s not found", name, version)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/modelctl/internal/infrastructure/sqlite"
	"github.com/zjrosen/modelctl/internal/lifecycle"
	"github.com/zjrosen/modelctl/internal/log"
	"github.com/zjrosen/modelctl/internal/tracing"
)

var dbPath string

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Mirror the registry to and from SQLite",
	Long: `Copy the registry into a SQLite database for ad-hoc SQL queries, or
restore the registry file from one.

The database path comes from --db, the sqlite.path config key, or
MODELCTL_SQLITE_PATH.`,
}

var dbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Replace the SQLite mirror with the registry contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRegistry(cmd.Context())
		if err != nil {
			return err
		}
		path := mirrorPath()
		n, err := exportRegistry(cmd.Context(), r, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d model(s) to %s\n", n, path)
		return nil
	},
}

var dbImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the registry file with the SQLite mirror contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := mirrorPath()
		r, err := importRegistry(cmd.Context(), path)
		if err != nil {
			return err
		}
		if err := env.store.Save(cmd.Context(), r); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d model(s) from %s\n", r.Len(), path)
		return nil
	},
}

func mirrorPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.SQLite.Path
}

// exportRegistry writes every model in r to the database at path and returns
// how many were written.
func exportRegistry(ctx context.Context, r *lifecycle.Registry, path string) (n int, err error) {
	ctx, span := tracing.Start(ctx, env.tracer.Tracer(), tracing.SpanDBExport,
		attribute.String(tracing.AttrDBPath, path),
		attribute.Int(tracing.AttrRegistryModels, r.Len()),
	)
	defer func() { tracing.Finish(span, err) }()

	db, err := sqlite.NewDB(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	models := r.List()
	if err := db.Models().ReplaceAll(ctx, models); err != nil {
		return 0, err
	}
	log.Info(log.CatDB, "Exported registry", "path", path, "models", len(models))
	return len(models), nil
}

// importRegistry builds a registry from the database at path. Rows are
// validated like file records, and nothing is returned unless all pass.
func importRegistry(ctx context.Context, path string) (r *lifecycle.Registry, err error) {
	ctx, span := tracing.Start(ctx, env.tracer.Tracer(), tracing.SpanDBImport,
		attribute.String(tracing.AttrDBPath, path),
	)
	defer func() { tracing.Finish(span, err) }()

	db, err := sqlite.NewDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	models, err := db.Models().List(ctx)
	if err != nil {
		return nil, err
	}
	r = lifecycle.NewRegistry()
	if err := r.Replace(models); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrRegistryModels, r.Len()))
	log.Info(log.CatDB, "Imported registry", "path", path, "models", r.Len())
	return r, nil
}

func init() {
	dbCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default: sqlite.path from config)")
	dbCmd.AddCommand(dbExportCmd, dbImportCmd)
	rootCmd.AddCommand(dbCmd)
}

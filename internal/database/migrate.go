package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"image-judge/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.up.sql
var migrationFiles embed.FS

// Oracle reports an existing object as ORA-00955; rerunning a migration is a no-op.
const oraNameAlreadyUsed = "ORA-00955"

// Migration is one embedded migration file split into statements.
type Migration struct {
	Name       string
	Statements []string
}

// LoadMigrations returns the embedded migrations in file name order.
func LoadMigrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("could not list migrations: %w", err)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		migrations = append(migrations, Migration{
			Name:       strings.TrimPrefix(name, "migrations/"),
			Statements: SplitStatements(string(content)),
		})
	}
	return migrations, nil
}

// SplitStatements splits a script on semicolons. Oracle executes one statement per call
// and rejects the trailing semicolon.
func SplitStatements(script string) []string {
	var statements []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// RunMigrations executes every embedded migration. Objects that already exist are skipped.
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	migrations, err := LoadMigrations()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		for _, stmt := range m.Statements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				if strings.Contains(err.Error(), oraNameAlreadyUsed) {
					logger.Get().Info("Migration object already exists, skipping", zap.String("file", m.Name))
					continue
				}
				return fmt.Errorf("could not execute migration %s: %w", m.Name, err)
			}
		}
		logger.Get().Info("Executed migration", zap.String("file", m.Name))
	}

	logger.Get().Info("Migrations completed successfully")
	return nil
}

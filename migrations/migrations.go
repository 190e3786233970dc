// Package migrations applies the embedded schema files in filename order and
// records each one in a ledger table, so reruns are no-ops.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/careslot/appointment-service/internal/utils"
)

//go:embed *.sql
var files embed.FS

const ledgerTable = `
CREATE TABLE IF NOT EXISTS migrations (
    name VARCHAR(255) PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
)`

// Run applies the embedded migration files.
func Run(ctx context.Context, db *gorm.DB, logger utils.Logger) error {
	return RunFS(ctx, db, files, logger)
}

// RunFS applies every *.sql file in fsys that is not yet in the ledger. Each
// file runs in its own transaction together with its ledger insert, so a
// failed migration leaves no partial ledger entry.
func RunFS(ctx context.Context, db *gorm.DB, fsys fs.FS, logger utils.Logger) error {
	if err := db.WithContext(ctx).Exec(ledgerTable).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		var count int64
		if err := db.WithContext(ctx).Table("migrations").Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, stmt := range splitStatements(string(raw)) {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return tx.Exec("INSERT INTO migrations (name, applied_at) VALUES (?, ?)", name, time.Now().UTC()).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", name, err)
		}

		logger.Info("applied migration", "name", name)
	}

	return nil
}

// splitStatements breaks a migration file into individual statements. The
// schema files hold plain DDL, so splitting on semicolons is enough.
func splitStatements(raw string) []string {
	var stmts []string
	for _, part := range strings.Split(raw, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

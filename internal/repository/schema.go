package repository

import (
	"context"
	"fmt"

	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/migrations"
)

// Migrate applies every embedded SurrealQL migration in file name order.
// The statements use IF NOT EXISTS, so running it on every start is safe.
func Migrate(ctx context.Context, db database.Database) error {
	scripts, err := migrations.Scripts()
	if err != nil {
		return err
	}
	for i, script := range scripts {
		if err := db.Execute(ctx, script, nil); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

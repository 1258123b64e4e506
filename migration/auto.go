package migration

import (
	"context"
)

// AutoMigrate creates or updates every table to the latest schema, then
// loads the static catalogs. When this migrator is called, no other
// migration step is needed.
func AutoMigrate(ctx context.Context) error {
	if err := MigrateTable(ctx); err != nil {
		return err
	}

	return Seed(ctx)
}

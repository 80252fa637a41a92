// Package database provides SQLite connectivity and schema migrations for Homestead.
//
// This package manages:
//   - Database connection with WAL mode for concurrent reads
//   - Foreign key enforcement (rooms reference houses)
//   - Embedded SQL migrations with up, down and status operations
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path, WALMode: true})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx, migrations.FS); err != nil {
//	    return err
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql with an
// optional matching .down.sql.
package database

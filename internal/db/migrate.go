package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/diewo77/go-blogs/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations
var migrationsFS embed.FS

// Models lists every table managed by AutoMigrate, in dependency order.
func Models() []any {
	return []any{&models.User{}, &models.Category{}, &models.Theme{}, &models.News{}}
}

// Migrate brings the schema up to date. With useSQL the embedded SQL migrations are
// applied through golang-migrate; otherwise gorm AutoMigrate is used.
func Migrate(gdb *gorm.DB, useSQL bool) error {
	if useSQL {
		if err := runSQLMigrations(gdb); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range Models() {
			if err := gdb.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}
	for _, table := range []string{"users", "category", "themes", "news"} {
		if !gdb.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// runSQLMigrations runs on the connection already opened by gorm. The migrate instance
// is not closed since that would close the shared *sql.DB.
func runSQLMigrations(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}

	var (
		driver  database.Driver
		name    string
		srcPath string
	)
	switch gdb.Dialector.Name() {
	case "postgres":
		driver, err = migratepg.WithInstance(sqlDB, &migratepg.Config{})
		name, srcPath = "postgres", "migrations/postgres"
	case "sqlite":
		driver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
		name, srcPath = "sqlite3", "migrations/sqlite"
	default:
		return fmt.Errorf("no migrations for dialect %q", gdb.Dialector.Name())
	}
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, srcPath)
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, name, driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

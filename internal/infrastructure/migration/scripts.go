package migration

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/pressly/goose/v3"

	"github.com/orris-inc/helpdesk/internal/shared/config"
)

//go:embed scripts
var embeddedScripts embed.FS

// ScriptsDir is where `migrate create` writes new scripts, relative to the
// repository root.
const ScriptsDir = "internal/infrastructure/migration/scripts"

// dialectFor maps a configured database driver to its goose dialect and
// script directory.
func dialectFor(driver string) (goose.Dialect, string, error) {
	switch driver {
	case config.DriverMySQL:
		return goose.DialectMySQL, "mysql", nil
	case config.DriverPostgres:
		return goose.DialectPostgres, "postgres", nil
	case config.DriverSQLite:
		return goose.DialectSQLite3, "sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for database driver %q", driver)
	}
}

func scriptsFS(dir string) (fs.FS, error) {
	sub, err := fs.Sub(embeddedScripts, path.Join("scripts", dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migration scripts: %w", dir, err)
	}
	return sub, nil
}

package app

import (
	"context"
	"fmt"

	"github.com/opsbots/statusbot/internal/infrastructure/persistence/memory"
	"github.com/opsbots/statusbot/internal/infrastructure/persistence/mysql"
	"github.com/opsbots/statusbot/internal/infrastructure/persistence/sqlite"
)

func (app *Application) initializeStorage() error {
	switch app.config.Storage.Type {
	case "mysql":
		db, err := mysql.NewDB(&app.config.Storage.MySQL)
		if err != nil {
			return fmt.Errorf("mysql init: %w", err)
		}

		if !app.config.Storage.SkipMigrations {
			migrator := mysql.NewMigrator(db.Primary())
			if err := migrator.Up(context.Background()); err != nil {
				db.Close()
				return fmt.Errorf("mysql migration: %w", err)
			}
		}

		repos := mysql.NewRepositories(db)
		app.teamRepo = repos.Team
		app.userRepo = repos.User
		app.dbPinger = db
		app.dbCloser = db

		app.logger.Get().Info("MySQL storage initialized",
			"host", app.config.Storage.MySQL.Primary.Host,
			"database", app.config.Storage.MySQL.Primary.Database,
			"replica", app.config.Storage.MySQL.Replica.Enabled,
		)

	case "sqlite":
		db, err := sqlite.NewDB(app.config.Storage.SQLite.Path)
		if err != nil {
			return fmt.Errorf("sqlite init: %w", err)
		}

		if !app.config.Storage.SkipMigrations {
			if err := db.Migrate(context.Background()); err != nil {
				db.Close()
				return fmt.Errorf("sqlite migration: %w", err)
			}
		}

		repos := sqlite.NewRepositories(db)
		app.teamRepo = repos.Team
		app.userRepo = repos.User
		app.dbPinger = db
		app.dbCloser = db

		app.logger.Get().Info("SQLite storage initialized",
			"path", app.config.Storage.SQLite.Path,
		)

	case "memory", "":
		users := memory.NewUserRepository()
		app.userRepo = users
		app.teamRepo = memory.NewTeamRepository(users)

		app.logger.Get().Info("in-memory storage initialized")

	default:
		return fmt.Errorf("unknown storage type: %s", app.config.Storage.Type)
	}

	return nil
}

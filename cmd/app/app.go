package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mysticpicks/picks-api/internal/api"
	"github.com/mysticpicks/picks-api/internal/config"
	"github.com/mysticpicks/picks-api/internal/db"
	"github.com/mysticpicks/picks-api/internal/logger"
	"github.com/mysticpicks/picks-api/internal/repository"
	"github.com/mysticpicks/picks-api/internal/repository/dao"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := setup()
	if err != nil {
		return err
	}

	documents, closer, err := OpenDocuments(context.Background(), conf)
	if err != nil {
		return fmt.Errorf("failed to initialize document store -> %w", err)
	}
	defer closer.Close()

	s := api.NewServer(conf, documents)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr),
		zap.String("backend", conf.Store.Backend),
		zap.String("document", conf.Store.DocumentKey()),
		zap.Bool("conditional_writes", conf.Store.ConditionalWrites),
	)
	if err = http.ListenAndServe(addr, s); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// Migrate rewrites the entries document in the current schema. Legacy rows
// are already upgraded on every read; this makes the upgrade permanent.
func Migrate() error {
	conf, err := setup()
	if err != nil {
		return err
	}

	ctx := context.Background()
	documents, closer, err := OpenDocuments(ctx, conf)
	if err != nil {
		return fmt.Errorf("failed to initialize document store -> %w", err)
	}
	defer closer.Close()

	repo := repository.NewEntryRepository(documents, *conf.Store)
	stored, err := MigrateEntries(ctx, repo)
	if err != nil {
		return fmt.Errorf("failed to migrate entries -> %w", err)
	}

	zap.L().Info("entries migrated",
		zap.String("document", conf.Store.DocumentKey()),
		zap.Int("count", stored),
	)

	return nil
}

// MigrateEntries loads every entry and saves it back in canonical form.
func MigrateEntries(ctx context.Context, repo *repository.EntryRepository) (int, error) {
	entries, err := repo.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.LoadAll -> %w", err)
	}

	stored, err := repo.SaveAll(ctx, entries)
	if err != nil {
		return 0, fmt.Errorf("repo.SaveAll -> %w", err)
	}

	return len(stored), nil
}

func setup() (*config.AppConfig, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API); err != nil {
		return nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	conf.OnChange(func(apiConf *config.APIConfig) {
		if err := logger.SetLevel(apiConf.LogLevel); err != nil {
			zap.L().Warn("ignoring log level from reloaded config", zap.Error(err))
			return
		}
		zap.L().Info("log level reloaded", zap.Stringer("level", logger.Level()))
	})

	return conf, nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

// OpenDocuments connects the document backend named by the store config.
// The returned closer releases it.
func OpenDocuments(ctx context.Context, conf *config.AppConfig) (repository.DocumentDAO, io.Closer, error) {
	noop := closerFunc(func() error { return nil })

	switch conf.Store.Backend {
	case config.BackendFile, "":
		return dao.NewFileDAO(afero.NewOsFs(), conf.Store.Bucket), noop, nil

	case config.BackendBolt:
		boltDB, err := db.OpenBolt(conf.Store.Bucket)
		if err != nil {
			return nil, nil, err
		}
		documents, err := dao.NewBoltDAO(boltDB)
		if err != nil {
			_ = boltDB.Close()
			return nil, nil, err
		}
		return documents, boltDB, nil

	case config.BackendSQLite:
		sqlDB, err := db.OpenSQLite(conf.Store.Bucket)
		if err != nil {
			return nil, nil, err
		}
		documents, err := dao.NewSQLiteDAO(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return documents, sqlDB, nil

	case config.BackendPostgres:
		postgresDB, err := db.OpenPostgres(conf.Postgres)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := postgresDB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("postgresDB.DB -> %w", err)
		}
		return dao.NewPostgresDAO(postgresDB), sqlDB, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", conf.Store.Backend)
	}
}

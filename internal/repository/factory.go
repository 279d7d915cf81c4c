// Package repository selects and constructs the configured snapshot
// backend.
package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arkhew/moneta/moneta-backend/internal/config"
	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	filerepo "github.com/arkhew/moneta/moneta-backend/internal/repository/file"
	mongorepo "github.com/arkhew/moneta/moneta-backend/internal/repository/mongo"
	postgresrepo "github.com/arkhew/moneta/moneta-backend/internal/repository/postgres"
	s3repo "github.com/arkhew/moneta/moneta-backend/internal/repository/s3"
	sqliterepo "github.com/arkhew/moneta/moneta-backend/internal/repository/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// CleanupFunc releases a backend's resources.
type CleanupFunc func(ctx context.Context) error

func noCleanup(ctx context.Context) error { return nil }

// NewSnapshotRepository builds the snapshot backend named by the config.
// The returned repository may additionally implement
// domain.SnapshotSubscriber (postgres and mongo do).
func NewSnapshotRepository(ctx context.Context, cfg *config.Config) (domain.SnapshotRepository, CleanupFunc, error) {
	switch cfg.Backend {
	case config.BackendFile:
		repo, err := filerepo.NewSnapshotRepository(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize file backend: %w", err)
		}
		log.Info().Str("data_dir", cfg.DataDir).Msg("Initialized file backend")
		return repo, noCleanup, nil

	case config.BackendSQLite:
		repo, err := sqliterepo.NewSnapshotRepository(filepath.Join(cfg.DataDir, "moneta.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		log.Info().Str("data_dir", cfg.DataDir).Msg("Initialized sqlite backend")
		return repo, func(ctx context.Context) error { return repo.Close() }, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		repo, err := postgresrepo.NewSnapshotRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("initialize postgres backend: %w", err)
		}
		log.Info().Msg("Initialized postgres backend")
		return repo, func(ctx context.Context) error { pool.Close(); return nil }, nil

	case config.BackendMongo:
		repo, err := mongorepo.NewSnapshotRepository(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize mongo backend: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("Initialized mongo backend")
		return repo, repo.Close, nil

	case config.BackendS3:
		repo, err := s3repo.NewSnapshotRepository(ctx, cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize s3 backend: %w", err)
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Initialized s3 backend")
		return repo, noCleanup, nil

	default:
		return nil, nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}

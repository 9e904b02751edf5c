package application

import (
	"context"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

// Schema is a directory of goose SQL migrations inside fsys.
type Schema struct {
	FS  fs.FS
	Dir string
}

type MigrationManager interface {
	RegisterSchema(schemas ...Schema)
	Schemas() []Schema
	Run(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type migrationManager struct {
	pool    *pgxpool.Pool
	logger  *logrus.Logger
	schemas []Schema
}

func NewMigrationManager(pool *pgxpool.Pool, logger *logrus.Logger) MigrationManager {
	return &migrationManager{pool: pool, logger: logger}
}

func (m *migrationManager) RegisterSchema(schemas ...Schema) {
	m.schemas = append(m.schemas, schemas...)
}

func (m *migrationManager) Schemas() []Schema {
	return m.schemas
}

func (m *migrationManager) Run(ctx context.Context) error {
	return m.each(func(schema Schema) error {
		db := stdlib.OpenDBFromPool(m.pool)
		defer db.Close()
		m.logger.WithField("dir", schema.Dir).Info("applying migrations")
		return goose.UpContext(ctx, db, schema.Dir)
	})
}

func (m *migrationManager) Rollback(ctx context.Context) error {
	return m.each(func(schema Schema) error {
		db := stdlib.OpenDBFromPool(m.pool)
		defer db.Close()
		m.logger.WithField("dir", schema.Dir).Info("rolling back last migration")
		return goose.DownContext(ctx, db, schema.Dir)
	})
}

func (m *migrationManager) each(fn func(Schema) error) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	defer goose.SetBaseFS(nil)
	for _, schema := range m.schemas {
		goose.SetBaseFS(schema.FS)
		if err := fn(schema); err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mock-auth/internal/domain"
)

const snapshotSchema = `
	CREATE TABLE IF NOT EXISTS mock_auth_snapshots (
		name     TEXT PRIMARY KEY,
		document JSONB NOT NULL
	)
`

// PgSnapshotStore implementa SnapshotStore guardando el documento completo
// en una única fila JSONB, con la misma semántica load/save que el archivo.
type PgSnapshotStore struct {
	pool *pgxpool.Pool
	name string
}

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	// Configuración razonable para ambientes iniciales.
	poolCfg.MaxConns = 5
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// NewPgSnapshotStore asegura el esquema y devuelve el store listo para usar.
func NewPgSnapshotStore(ctx context.Context, pool *pgxpool.Pool, name string) (*PgSnapshotStore, error) {
	if name == "" {
		name = CollectionName
	}
	if _, err := pool.Exec(ctx, snapshotSchema); err != nil {
		return nil, fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return &PgSnapshotStore{pool: pool, name: name}, nil
}

func (s *PgSnapshotStore) Load(ctx context.Context) (domain.Collection, error) {
	const query = `SELECT document FROM mock_auth_snapshots WHERE name = $1`

	var data []byte
	err := s.pool.QueryRow(ctx, query, s.name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		col := domain.Collection{Users: []domain.User{}}
		if err := s.Save(ctx, col); err != nil {
			return col, err
		}
		return col, nil
	}
	if err != nil {
		return domain.Collection{}, fmt.Errorf("read snapshot %s: %w", s.name, err)
	}

	var col domain.Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return domain.Collection{}, fmt.Errorf("decode snapshot %s: %w", s.name, err)
	}
	return col, nil
}

func (s *PgSnapshotStore) Save(ctx context.Context, col domain.Collection) error {
	const query = `
		INSERT INTO mock_auth_snapshots (name, document) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET document = excluded.document
	`
	data, err := json.Marshal(col)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.pool.Exec(ctx, query, s.name, data); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.name, err)
	}
	return nil
}

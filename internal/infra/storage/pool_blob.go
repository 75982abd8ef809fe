package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool arma un pool chico para procesos cortos (lambda): pocas conexiones
// y vida acotada. No migra; eso lo hace el bot al arrancar.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 4
	cfg.MaxConnLifetime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// PoolBlob es el mismo documento de roster_documents, leído con pgx nativo.
type PoolBlob struct {
	pool *pgxpool.Pool
	name string
}

func NewPoolBlob(pool *pgxpool.Pool, name string) *PoolBlob {
	return &PoolBlob{pool: pool, name: name}
}

func (b *PoolBlob) Read(ctx context.Context) ([]byte, error) {
	var body string
	err := b.pool.QueryRow(ctx, `
SELECT body
  FROM roster_documents
 WHERE name = $1
`, b.name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (b *PoolBlob) Write(ctx context.Context, data []byte) error {
	_, err := b.pool.Exec(ctx, `
INSERT INTO roster_documents (name, body, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET
  body       = EXCLUDED.body,
  updated_at = EXCLUDED.updated_at
`, b.name, string(data), time.Now().UTC())
	return err
}

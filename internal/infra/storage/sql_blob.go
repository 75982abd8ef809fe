package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"
)

var rePlaceholder = regexp.MustCompile(`\$\d+`)

// SQLBlob guarda el roster como un documento con nombre en roster_documents.
type SQLBlob struct {
	db     *sql.DB
	name   string
	driver string
}

func NewSQLBlob(db *sql.DB, driver, name string) *SQLBlob {
	return &SQLBlob{db: db, name: name, driver: driver}
}

func (b *SQLBlob) Read(ctx context.Context) ([]byte, error) {
	var body string
	err := b.db.QueryRowContext(ctx, b.q(`
SELECT body
  FROM roster_documents
 WHERE name = $1
`), b.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (b *SQLBlob) Write(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx, b.q(`
INSERT INTO roster_documents (name, body, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET
  body       = EXCLUDED.body,
  updated_at = EXCLUDED.updated_at
`), b.name, string(data), time.Now().UTC())
	return err
}

// q adapta los placeholders $n a ? para sqlite.
func (b *SQLBlob) q(query string) string {
	if b.driver == DriverSQLite {
		return rePlaceholder.ReplaceAllString(query, "?")
	}
	return query
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gemma3n-site/backend/internal/cache"
)

// Store is a sqlite-backed cache.Store for deployments that want cached
// pages to survive restarts. One table holds every namespace; dropping a
// namespace is a single DELETE.
type Store struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS cache_entries (
	namespace TEXT NOT NULL,
	request_key TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	header TEXT NOT NULL,
	body BLOB NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (namespace, request_key)
);
`

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Open(ctx context.Context, name string) (cache.Namespace, error) {
	return &namespace{db: s.db, name: name}, nil
}

func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT namespace FROM cache_entries ORDER BY namespace`)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan namespace: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE namespace = ?`, name); err != nil {
		return fmt.Errorf("failed to delete namespace: %w", err)
	}
	return nil
}

type namespace struct {
	db   *sql.DB
	name string
}

func (n *namespace) Match(ctx context.Context, key string) (*cache.Response, bool, error) {
	var (
		statusCode int
		headerJSON string
		body       []byte
	)

	err := n.db.QueryRowContext(ctx,
		`SELECT status_code, header, body FROM cache_entries WHERE namespace = ? AND request_key = ?`,
		n.name, key,
	).Scan(&statusCode, &headerJSON, &body)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	var header http.Header
	if err := json.Unmarshal([]byte(headerJSON), &header); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal header: %w", err)
	}

	return &cache.Response{StatusCode: statusCode, Header: header, Body: body}, true, nil
}

func (n *namespace) Put(ctx context.Context, key string, resp *cache.Response) error {
	headerJSON, err := json.Marshal(resp.Header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	_, err = n.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_entries (namespace, request_key, status_code, header, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.name, key, resp.StatusCode, string(headerJSON), resp.Body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}
	return nil
}

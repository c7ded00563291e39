package capture

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// SurrealStore implements the Store interface using SurrealDB as the
// backend, so captured exchanges survive process restarts.
type SurrealStore struct {
	db     *surrealdb.DB
	closed bool
}

// SurrealConfig holds configuration for the SurrealDB connection
type SurrealConfig struct {
	// EndpointURL is the SurrealDB connection URL (ws://... or http://...)
	EndpointURL string
	// Namespace for the SurrealDB instance
	Namespace string
	// Database name within the namespace
	Database string
	// Authentication credentials, optional
	Username string
	Password string
}

// surrealExchange is the storage representation of an Exchange. Raw
// payloads are hex-encoded strings so the row stays inspectable from the
// SurrealDB shell.
type surrealExchange struct {
	ID        any       `json:"id,omitempty"`
	Name      string    `json:"name"`
	QueryType string    `json:"query_type"`
	Server    string    `json:"server"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	RCode     string    `json:"rcode"`
	Truncated bool      `json:"truncated"`
	DurationN int64     `json:"duration_ns"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// NewSurrealStore creates a new SurrealDB capture store
func NewSurrealStore(ctx context.Context, config *SurrealConfig) (*SurrealStore, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	db, err := surrealdb.FromEndpointURLString(ctx, config.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	namespace := config.Namespace
	if namespace == "" {
		namespace = "dnswire"
	}
	database := config.Database
	if database == "" {
		database = "captures"
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	if config.Username != "" && config.Password != "" {
		auth := surrealdb.Auth{
			Namespace: namespace,
			Database:  database,
			Username:  config.Username,
			Password:  config.Password,
		}
		if _, err := db.SignIn(ctx, auth); err != nil {
			db.Close(ctx)
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
	}

	store := &SurrealStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the exchanges table and its indexes
func (s *SurrealStore) initSchema(ctx context.Context) error {
	schemaQueries := []string{
		`DEFINE TABLE IF NOT EXISTS exchanges SCHEMAFULL;`,

		`DEFINE FIELD IF NOT EXISTS name ON exchanges TYPE string;`,
		`DEFINE FIELD IF NOT EXISTS query_type ON exchanges TYPE string;`,
		`DEFINE FIELD IF NOT EXISTS server ON exchanges TYPE string;`,
		`DEFINE FIELD IF NOT EXISTS query ON exchanges TYPE string;`,
		`DEFINE FIELD IF NOT EXISTS response ON exchanges TYPE string;`,
		`DEFINE FIELD IF NOT EXISTS rcode ON exchanges TYPE string;`,
		`DEFINE FIELD IF NOT EXISTS truncated ON exchanges TYPE bool;`,
		`DEFINE FIELD IF NOT EXISTS duration_ns ON exchanges TYPE int;`,
		`DEFINE FIELD IF NOT EXISTS created_at ON exchanges TYPE datetime DEFAULT time::now();`,

		`DEFINE INDEX IF NOT EXISTS name_idx ON exchanges FIELDS name;`,
	}

	for _, query := range schemaQueries {
		if _, err := surrealdb.Query[any](ctx, s.db, query, nil); err != nil {
			return err
		}
	}

	return nil
}

// Put stores an exchange and assigns its ID
func (s *SurrealStore) Put(ctx context.Context, exchange *Exchange) error {
	if s.closed {
		return ErrStoreClosed
	}

	if exchange.CreatedAt.IsZero() {
		exchange.CreatedAt = time.Now()
	}

	query := `
		CREATE exchanges
		SET name = $name,
		    query_type = $query_type,
		    server = $server,
		    query = $query,
		    response = $response,
		    rcode = $rcode,
		    truncated = $truncated,
		    duration_ns = $duration_ns,
		    created_at = time::now()
	`

	result, err := surrealdb.Query[[]surrealExchange](ctx, s.db, query, map[string]any{
		"name":        exchange.Name,
		"query_type":  exchange.QueryType,
		"server":      exchange.Server,
		"query":       hex.EncodeToString(exchange.Query),
		"response":    hex.EncodeToString(exchange.Response),
		"rcode":       exchange.RCode,
		"truncated":   exchange.Truncated,
		"duration_ns": exchange.Duration.Nanoseconds(),
	})
	if err != nil {
		return fmt.Errorf("failed to store exchange: %w", err)
	}

	if len(*result) > 0 && len((*result)[0].Result) > 0 {
		exchange.ID = fmt.Sprint((*result)[0].Result[0].ID)
	}

	return nil
}

// Get returns a single exchange by ID
func (s *SurrealStore) Get(ctx context.Context, id string) (*Exchange, error) {
	if s.closed {
		return nil, ErrStoreClosed
	}

	query := "SELECT * FROM exchanges WHERE <string>id = $id LIMIT 1"
	result, err := surrealdb.Query[[]surrealExchange](ctx, s.db, query, map[string]any{
		"id": id,
	})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	if len(*result) == 0 || len((*result)[0].Result) == 0 {
		return nil, ErrExchangeNotFound
	}

	return convertExchange(&(*result)[0].Result[0])
}

// List returns all stored exchanges in insertion order
func (s *SurrealStore) List(ctx context.Context) ([]*Exchange, error) {
	if s.closed {
		return nil, ErrStoreClosed
	}

	query := "SELECT * FROM exchanges ORDER BY created_at"
	result, err := surrealdb.Query[[]surrealExchange](ctx, s.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	if len(*result) == 0 {
		return []*Exchange{}, nil
	}

	return convertExchanges((*result)[0].Result)
}

// ListByName returns all exchanges for a queried domain name
func (s *SurrealStore) ListByName(ctx context.Context, name string) ([]*Exchange, error) {
	if s.closed {
		return nil, ErrStoreClosed
	}

	query := "SELECT * FROM exchanges WHERE name = $name ORDER BY created_at"
	result, err := surrealdb.Query[[]surrealExchange](ctx, s.db, query, map[string]any{
		"name": name,
	})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	if len(*result) == 0 {
		return []*Exchange{}, nil
	}

	return convertExchanges((*result)[0].Result)
}

// Close closes the store and the underlying connection
func (s *SurrealStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close(context.Background())
}

func convertExchanges(rows []surrealExchange) ([]*Exchange, error) {
	exchanges := make([]*Exchange, 0, len(rows))
	for i := range rows {
		exchange, err := convertExchange(&rows[i])
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges, exchange)
	}
	return exchanges, nil
}

func convertExchange(row *surrealExchange) (*Exchange, error) {
	query, err := hex.DecodeString(row.Query)
	if err != nil {
		return nil, fmt.Errorf("corrupt query payload: %w", err)
	}
	response, err := hex.DecodeString(row.Response)
	if err != nil {
		return nil, fmt.Errorf("corrupt response payload: %w", err)
	}
	return &Exchange{
		ID:        fmt.Sprint(row.ID),
		Name:      row.Name,
		QueryType: row.QueryType,
		Server:    row.Server,
		Query:     query,
		Response:  response,
		RCode:     row.RCode,
		Truncated: row.Truncated,
		Duration:  time.Duration(row.DurationN),
		CreatedAt: row.CreatedAt,
	}, nil
}

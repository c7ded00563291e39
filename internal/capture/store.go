// Package capture persists completed query/response exchanges. It backs the
// dataset-capture mode of the CLI: every exchange is stored with its raw
// wire payloads so decoded results can be reproduced offline.
package capture

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrExchangeNotFound is returned when an exchange is not found
	ErrExchangeNotFound = errors.New("exchange not found")
	// ErrStoreClosed is returned when operating on a closed store
	ErrStoreClosed = errors.New("capture store is closed")
)

// Exchange is one completed query/response cycle.
type Exchange struct {
	ID        string        // assigned by the store on Put
	Name      string        // queried domain name
	QueryType string        // question type in presentation form ("A", "MX", ...)
	Server    string        // upstream server the query was sent to
	Query     []byte        // raw query payload as sent
	Response  []byte        // raw response payload as received
	RCode     string        // response status in presentation form
	Truncated bool          // TC bit of the response
	Duration  time.Duration // round-trip time of the exchange
	CreatedAt time.Time
}

// Store defines the interface for exchange capture backends
type Store interface {
	// Put stores an exchange and assigns its ID
	Put(ctx context.Context, exchange *Exchange) error

	// Get returns a single exchange by ID
	Get(ctx context.Context, id string) (*Exchange, error)

	// List returns all stored exchanges in insertion order
	List(ctx context.Context) ([]*Exchange, error)

	// ListByName returns all exchanges for a queried domain name
	ListByName(ctx context.Context, name string) ([]*Exchange, error)

	// Close closes the store and cleans up resources
	Close() error
}

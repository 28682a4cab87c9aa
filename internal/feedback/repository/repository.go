package repository

import (
	"context"
	"errors"

	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
)

var (
	ErrNotFound  = errors.New("feedback not found")
	ErrInvalidID = errors.New("invalid feedback id")
)

// Repository is the feedback record store. Implementations assign ID and
// CreatedAt on Create and never modify a record afterwards.
type Repository interface {
	Create(ctx context.Context, r *feedback.Record) error
	Get(ctx context.Context, id string) (*feedback.Record, error)
	// List returns the requested page of records matching q and the total
	// number of matches ignoring pagination.
	List(ctx context.Context, q feedback.ListQuery) ([]*feedback.Record, int64, error)
	// Each streams every record to fn in insertion order. A non-nil error from
	// fn stops the iteration and is returned.
	Each(ctx context.Context, fn func(*feedback.Record) error) error
	Ping(ctx context.Context) error
}

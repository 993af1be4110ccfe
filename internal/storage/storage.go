// Package storage provides persistence adapters for the card collection.
// The contract is deliberately narrow: load the full collection, save the
// full collection. Anything key-value-capable can implement it.
package storage

import (
	"context"

	"github.com/avoronov/flashdeck/internal/model"
)

// Store reads and writes the persisted card collection.
//
// Load never fails on missing or corrupted data: a missing envelope yields
// an empty list, a corrupted one is backed up and discarded. Save fails
// only with errs.ErrQuotaExceeded or errs.ErrStorageUnavailable (wrapped);
// a failed save leaves previously persisted data intact.
type Store interface {
	Load(ctx context.Context) ([]model.Card, error)
	Save(ctx context.Context, cards []model.Card) error
}

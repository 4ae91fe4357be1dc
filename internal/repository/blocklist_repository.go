package repository

import (
	"context"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// BlockListRepository is the persistence interface for block entries. The
// pipeline only calls Exists; the remaining operations serve the admin
// surface.
type BlockListRepository interface {
	// Exists performs a point lookup of ip against the block list. It is
	// backed by a unique index on ip_address, so lookup cost is independent
	// of block-list size.
	Exists(ctx context.Context, ip string) (bool, error)

	List(ctx context.Context) ([]*model.BlockEntry, error)
	Create(ctx context.Context, entry *model.BlockEntry) error
	Delete(ctx context.Context, id string) error
}

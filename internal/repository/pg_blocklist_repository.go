package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// PgBlockListRepository is the PostgreSQL implementation of BlockListRepository.
type PgBlockListRepository struct {
	pool *pgxpool.Pool
}

// NewPgBlockListRepository creates a PgBlockListRepository backed by the given pool.
func NewPgBlockListRepository(pool *pgxpool.Pool) *PgBlockListRepository {
	return &PgBlockListRepository{pool: pool}
}

// Ensure PgBlockListRepository implements BlockListRepository at compile time.
var _ BlockListRepository = (*PgBlockListRepository)(nil)

// Exists performs a point lookup against the unique ip_address index. This
// is the hot path of the filter stage; its cost does not grow with the size
// of the block list.
func (r *PgBlockListRepository) Exists(ctx context.Context, ip string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blocked_contacts WHERE ip_address = $1)`, ip,
	).Scan(&exists)
	return exists, err
}

// List returns all block entries.
func (r *PgBlockListRepository) List(ctx context.Context) ([]*model.BlockEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, ip_address, COALESCE(user_agent, ''), is_blocked
		 FROM blocked_contacts ORDER BY ip_address`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*model.BlockEntry
	for rows.Next() {
		var e model.BlockEntry
		if err := rows.Scan(&e.ID, &e.IPAddress, &e.UserAgent, &e.IsBlocked); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Create inserts a block entry. A second entry for the same ip_address is
// rejected with ErrDuplicate (unique_violation).
func (r *PgBlockListRepository) Create(ctx context.Context, entry *model.BlockEntry) error {
	entry.IsBlocked = true
	_, err := r.pool.Exec(ctx,
		`INSERT INTO blocked_contacts (id, ip_address, user_agent, is_blocked)
		 VALUES ($1, $2, NULLIF($3, ''), $4)`,
		entry.ID, entry.IPAddress, entry.UserAgent, entry.IsBlocked,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// Delete removes the block entry with the given id, or returns ErrNotFound.
func (r *PgBlockListRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blocked_contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
